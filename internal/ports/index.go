package ports

import "tasknote/internal/domain"

// NoteIndex caches checklist progress per note.
type NoteIndex interface {
	// Lifecycle
	Open(root string) error
	Close() error

	// Sync operations
	SyncIncremental() (*domain.SyncStats, error)
	SyncFull() (*domain.SyncStats, error)

	// Queries
	Get(path string) (*domain.IndexRecord, error)
	List() ([]domain.IndexRecord, error)
	Incomplete() ([]domain.IndexRecord, error)

	// Batch updates
	BeginTx() (IndexTx, error)
}

// IndexTx represents a transaction for atomic cache updates
type IndexTx interface {
	Upsert(record *domain.IndexRecord) error
	Delete(path string) error

	Commit() error
	Rollback() error
}
