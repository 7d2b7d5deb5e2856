package sqlite

import (
	"database/sql"

	"tasknote/internal/domain"
	"tasknote/internal/ports"
)

// indexTx implements ports.IndexTx
type indexTx struct {
	tx *sql.Tx
}

// Ensure indexTx implements IndexTx
var _ ports.IndexTx = (*indexTx)(nil)

// Upsert inserts or updates a record
func (t *indexTx) Upsert(r *domain.IndexRecord) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO notes (path, title, mtime, total, completed)
		VALUES (?, ?, ?, ?, ?)
	`, r.Path, r.Title, r.Mtime, r.Total, r.Completed)
	return err
}

// Delete removes a record by path
func (t *indexTx) Delete(path string) error {
	_, err := t.tx.Exec(`DELETE FROM notes WHERE path = ?`, path)
	return err
}

// Commit commits the transaction
func (t *indexTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *indexTx) Rollback() error {
	return t.tx.Rollback()
}
