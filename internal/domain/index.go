package domain

import "time"

// IndexRecord is the cached checklist summary of a note
type IndexRecord struct {
	Path      string // Relative path from the notes root (primary key)
	Title     string
	Mtime     int64 // Unix timestamp for incremental sync
	Total     int
	Completed int
}

// Progress returns the completion percentage of the record
func (r IndexRecord) Progress() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Completed) / float64(r.Total) * 100
}

// Pending returns the number of unchecked tasks
func (r IndexRecord) Pending() int {
	return r.Total - r.Completed
}

// SyncStats holds statistics from a sync operation
type SyncStats struct {
	NotesAdded   int
	NotesUpdated int
	NotesDeleted int
	FilesScanned int
	Duration     time.Duration
}
