package sqlite

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"tasknote/internal/domain"
	"tasknote/internal/logging"
	"tasknote/internal/ports"

	_ "github.com/mattn/go-sqlite3"
)

const schemaVersion = "1"

// Index implements ports.NoteIndex using SQLite
type Index struct {
	db       *sql.DB
	notesDir string
	dbPath   string
	logger   *log.Logger
}

// Ensure Index implements NoteIndex
var _ ports.NoteIndex = (*Index)(nil)

// NewIndex creates a new SQLite index. An empty dbPath stores the database
// under $XDG_DATA_HOME/tasknote, keyed by the notes directory.
func NewIndex(dbPath string, logger *log.Logger) *Index {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Index{dbPath: dbPath, logger: logger}
}

// Open initializes the index for the given notes directory
func (idx *Index) Open(notesDir string) error {
	// Expand ~ in path
	if len(notesDir) > 0 && notesDir[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		notesDir = filepath.Join(home, notesDir[1:])
	}

	idx.notesDir = notesDir
	if idx.dbPath == "" {
		idx.dbPath = databasePath(notesDir)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(idx.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite3", "file:"+idx.dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	idx.db = db

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS notes (
			path TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			mtime INTEGER NOT NULL,
			total INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_notes_pending ON notes(total - completed);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	rebuild := idx.NeedsFullRebuild()

	// Update metadata
	if err := idx.updateMeta(); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	if rebuild {
		idx.logger.Debug("index needs full rebuild", "db", idx.dbPath)
		if _, err := idx.db.Exec(`DELETE FROM notes; DELETE FROM meta WHERE key = 'last_sync_time';`); err != nil {
			db.Close()
			return fmt.Errorf("failed to reset index: %w", err)
		}
	}

	return nil
}

// Close closes the database connection
func (idx *Index) Close() error {
	if idx.db != nil {
		return idx.db.Close()
	}
	return nil
}

// Path returns the database file path
func (idx *Index) Path() string {
	return idx.dbPath
}

// NeedsFullRebuild returns true if the index should be fully rebuilt
func (idx *Index) NeedsFullRebuild() bool {
	var version, dirHash string

	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&version)
	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'notes_dir_hash'").Scan(&dirHash)

	return version != schemaVersion || dirHash != hashNotesDir(idx.notesDir)
}

// databasePath returns the default path for the SQLite database
func databasePath(notesDir string) string {
	// XDG data directory
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "tasknote", hashNotesDir(notesDir)+".db")
}

// hashNotesDir returns a short hash of the notes directory
func hashNotesDir(notesDir string) string {
	h := sha256.Sum256([]byte(notesDir))
	return hex.EncodeToString(h[:8]) // First 8 bytes = 16 hex chars
}

// updateMeta updates the schema version and notes directory hash
func (idx *Index) updateMeta() error {
	_, err := idx.db.Exec(`
		INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?);
		INSERT OR REPLACE INTO meta (key, value) VALUES ('notes_dir_hash', ?);
	`, schemaVersion, hashNotesDir(idx.notesDir))
	return err
}

// Get retrieves a record by path; it returns nil when the note is not indexed
func (idx *Index) Get(path string) (*domain.IndexRecord, error) {
	var r domain.IndexRecord

	err := idx.db.QueryRow(`
		SELECT path, title, mtime, total, completed
		FROM notes WHERE path = ?
	`, path).Scan(&r.Path, &r.Title, &r.Mtime, &r.Total, &r.Completed)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// List returns every indexed note ordered by path
func (idx *Index) List() ([]domain.IndexRecord, error) {
	return idx.query(`
		SELECT path, title, mtime, total, completed
		FROM notes ORDER BY path
	`)
}

// Incomplete returns notes with pending tasks, least complete first
func (idx *Index) Incomplete() ([]domain.IndexRecord, error) {
	return idx.query(`
		SELECT path, title, mtime, total, completed
		FROM notes
		WHERE total > completed
		ORDER BY CAST(completed AS REAL) / total, path
	`)
}

func (idx *Index) query(q string, args ...any) ([]domain.IndexRecord, error) {
	rows, err := idx.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.IndexRecord
	for rows.Next() {
		var r domain.IndexRecord
		if err := rows.Scan(&r.Path, &r.Title, &r.Mtime, &r.Total, &r.Completed); err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// BeginTx starts a new transaction
func (idx *Index) BeginTx() (ports.IndexTx, error) {
	tx, err := idx.db.Begin()
	if err != nil {
		return nil, err
	}
	return &indexTx{tx: tx}, nil
}
