package sqlite

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tasknote/internal/domain"
)

// SyncFull performs a complete rebuild of the index
func (idx *Index) SyncFull() (*domain.SyncStats, error) {
	start := time.Now()
	stats := &domain.SyncStats{}

	sqlTx, err := idx.db.Begin()
	if err != nil {
		return nil, err
	}
	tx := &indexTx{tx: sqlTx}
	defer tx.Rollback()

	// Clear existing data
	if _, err := sqlTx.Exec(`DELETE FROM notes`); err != nil {
		return nil, err
	}

	err = idx.walkNotes(func(rel string, info fs.FileInfo) error {
		stats.FilesScanned++

		record, err := idx.readRecord(rel, info)
		if err != nil {
			idx.logger.Warn("skipping unreadable note", "path", rel, "err", err)
			return nil // Continue on error
		}
		if err := tx.Upsert(record); err != nil {
			return err
		}
		stats.NotesAdded++
		return nil
	})
	if err != nil {
		return stats, err
	}

	if err := tx.Commit(); err != nil {
		return stats, fmt.Errorf("failed to commit sync: %w", err)
	}

	if err := idx.touchSyncTime(); err != nil {
		return stats, err
	}
	stats.Duration = time.Since(start)
	idx.logger.Debug("full sync done", "added", stats.NotesAdded, "duration", stats.Duration)
	return stats, nil
}

// SyncIncremental updates only notes whose mtime changed and removes
// notes that no longer exist
func (idx *Index) SyncIncremental() (*domain.SyncStats, error) {
	start := time.Now()
	stats := &domain.SyncStats{}

	// Track existing paths to detect deletions
	existing, err := idx.indexedMtimes()
	if err != nil {
		return nil, err
	}

	tx, err := idx.BeginTx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Track paths we've seen during this walk
	seen := make(map[string]bool)

	err = idx.walkNotes(func(rel string, info fs.FileInfo) error {
		seen[rel] = true
		stats.FilesScanned++

		mtime, known := existing[rel]
		if known && mtime == info.ModTime().Unix() {
			return nil
		}

		record, err := idx.readRecord(rel, info)
		if err != nil {
			idx.logger.Warn("skipping unreadable note", "path", rel, "err", err)
			return nil
		}
		if err := tx.Upsert(record); err != nil {
			return err
		}
		if known {
			stats.NotesUpdated++
		} else {
			stats.NotesAdded++
		}
		return nil
	})
	if err != nil {
		return stats, err
	}

	// Delete notes that no longer exist
	for path := range existing {
		if !seen[path] {
			if err := tx.Delete(path); err != nil {
				return stats, err
			}
			stats.NotesDeleted++
		}
	}

	if err := tx.Commit(); err != nil {
		return stats, fmt.Errorf("failed to commit sync: %w", err)
	}

	if err := idx.touchSyncTime(); err != nil {
		return stats, err
	}
	stats.Duration = time.Since(start)
	idx.logger.Debug("incremental sync done",
		"added", stats.NotesAdded, "updated", stats.NotesUpdated, "deleted", stats.NotesDeleted)
	return stats, nil
}

// indexedMtimes returns the mtime of every indexed note by path
func (idx *Index) indexedMtimes() (map[string]int64, error) {
	rows, err := idx.db.Query(`SELECT path, mtime FROM notes`)
	if err != nil {
		return nil, fmt.Errorf("failed to read indexed notes: %w", err)
	}
	defer rows.Close()

	mtimes := make(map[string]int64)
	for rows.Next() {
		var path string
		var mtime int64
		if err := rows.Scan(&path, &mtime); err != nil {
			return nil, fmt.Errorf("failed to read indexed notes: %w", err)
		}
		mtimes[path] = mtime
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read indexed notes: %w", err)
	}
	return mtimes, nil
}

// walkNotes calls fn for every Markdown note below the notes directory,
// skipping hidden directories
func (idx *Index) walkNotes(fn func(rel string, info fs.FileInfo) error) error {
	return filepath.WalkDir(idx.notesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == idx.notesDir {
				return err
			}
			return nil // Skip errors
		}

		// Skip hidden directories
		if d.IsDir() {
			if path != idx.notesDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !domain.IsNoteName(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(idx.notesDir, path)
		if err != nil {
			return nil
		}
		return fn(filepath.ToSlash(rel), info)
	})
}

// readRecord builds the index record of a note from its content
func (idx *Index) readRecord(rel string, info fs.FileInfo) (*domain.IndexRecord, error) {
	data, err := os.ReadFile(filepath.Join(idx.notesDir, filepath.FromSlash(rel)))
	if err != nil {
		return nil, err
	}
	content := string(data)

	fm, body, err := domain.ParseFrontmatter(content)
	if err != nil {
		body = content
	}
	stats := domain.Stats(content)

	return &domain.IndexRecord{
		Path:      rel,
		Title:     domain.NoteTitle(rel, fm, body),
		Mtime:     info.ModTime().Unix(),
		Total:     stats.Total,
		Completed: stats.Completed,
	}, nil
}

// touchSyncTime records the time of the last successful sync
func (idx *Index) touchSyncTime() error {
	_, err := idx.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('last_sync_time', ?)`,
		time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to record sync time: %w", err)
	}
	return nil
}

// LastSync returns the time of the last successful sync, zero if never synced
func (idx *Index) LastSync() time.Time {
	var unix int64
	if err := idx.db.QueryRow(`SELECT value FROM meta WHERE key = 'last_sync_time'`).Scan(&unix); err != nil {
		return time.Time{}
	}
	return time.Unix(unix, 0)
}
