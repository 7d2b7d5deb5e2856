package sqlite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tasknote/internal/domain"
)

func writeNote(t *testing.T, root, rel, content string, mtime time.Time) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes %s: %v", rel, err)
	}
}

func openTestIndex(t *testing.T, root string) *Index {
	t.Helper()
	idx := NewIndex(filepath.Join(t.TempDir(), "index.db"), nil)
	if err := idx.Open(root); err != nil {
		t.Fatalf("failed to open index: %v", err)
	}
	t.Cleanup(func() {
		if err := idx.Close(); err != nil {
			t.Errorf("failed to close index: %v", err)
		}
	})
	return idx
}

func TestSyncFull(t *testing.T) {
	root := t.TempDir()
	past := time.Now().Add(-time.Hour)
	writeNote(t, root, "groceries.md", "---\ntitle: Groceries\n---\n- [x] eggs\n- [ ] milk\n", past)
	writeNote(t, root, "work/sprint.md", "# Sprint\n- [ ] a\n- [ ] b\n- [ ] c\n- [x] d\n", past)
	writeNote(t, root, "done.md", "- [x] all done\n", past)
	writeNote(t, root, ".trash/old.md", "- [ ] ignored\n", past)
	writeNote(t, root, "image.png", "PNG", past)

	idx := openTestIndex(t, root)

	stats, err := idx.SyncFull()
	if err != nil {
		t.Fatalf("SyncFull failed: %v", err)
	}
	if stats.NotesAdded != 3 || stats.FilesScanned != 3 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	rec, err := idx.Get("groceries.md")
	if err != nil || rec == nil {
		t.Fatalf("Get failed: %v, %v", rec, err)
	}
	if rec.Title != "Groceries" || rec.Total != 2 || rec.Completed != 1 || rec.Mtime != past.Unix() {
		t.Errorf("unexpected record: %+v", rec)
	}

	missing, err := idx.Get("nope.md")
	if err != nil || missing != nil {
		t.Errorf("expected nil record for unknown path, got %+v, %v", missing, err)
	}

	all, err := idx.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 || all[0].Path != "done.md" || all[2].Path != "work/sprint.md" {
		t.Errorf("unexpected list: %+v", all)
	}

	pending, err := idx.Incomplete()
	if err != nil {
		t.Fatalf("Incomplete failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 incomplete notes, got %d", len(pending))
	}
	// sprint.md is 25% done, groceries.md 50%
	if pending[0].Path != "work/sprint.md" || pending[1].Path != "groceries.md" {
		t.Errorf("unexpected order: %s, %s", pending[0].Path, pending[1].Path)
	}
	if idx.LastSync().IsZero() {
		t.Error("LastSync should be set after a sync")
	}
}

func TestSyncIncremental(t *testing.T) {
	root := t.TempDir()
	past := time.Now().Add(-time.Hour)
	writeNote(t, root, "a.md", "- [ ] a\n", past)
	writeNote(t, root, "b.md", "- [ ] b\n", past)

	idx := openTestIndex(t, root)
	if _, err := idx.SyncFull(); err != nil {
		t.Fatalf("SyncFull failed: %v", err)
	}

	// Modify a.md, delete b.md, add c.md
	writeNote(t, root, "a.md", "- [x] a\n", past.Add(time.Minute))
	if err := os.Remove(filepath.Join(root, "b.md")); err != nil {
		t.Fatalf("remove: %v", err)
	}
	writeNote(t, root, "c.md", "- [ ] c\n- [ ] d\n", past)

	stats, err := idx.SyncIncremental()
	if err != nil {
		t.Fatalf("SyncIncremental failed: %v", err)
	}
	if stats.NotesAdded != 1 || stats.NotesUpdated != 1 || stats.NotesDeleted != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	a, _ := idx.Get("a.md")
	if a == nil || a.Completed != 1 {
		t.Errorf("a.md not updated: %+v", a)
	}
	if b, _ := idx.Get("b.md"); b != nil {
		t.Errorf("b.md should be deleted, got %+v", b)
	}

	// Nothing changed: second run is a no-op
	stats, err = idx.SyncIncremental()
	if err != nil {
		t.Fatalf("SyncIncremental failed: %v", err)
	}
	if stats.NotesAdded+stats.NotesUpdated+stats.NotesDeleted != 0 {
		t.Errorf("expected no changes, got %+v", stats)
	}
}

func TestSync_StorageErrors(t *testing.T) {
	tests := []struct {
		name    string
		drop    string
		sync    func(*Index) (*domain.SyncStats, error)
		wantErr string
	}{
		{
			name:    "incremental without notes table",
			drop:    "notes",
			sync:    (*Index).SyncIncremental,
			wantErr: "indexed notes",
		},
		{
			name:    "incremental without meta table",
			drop:    "meta",
			sync:    (*Index).SyncIncremental,
			wantErr: "sync time",
		},
		{
			name:    "full without meta table",
			drop:    "meta",
			sync:    (*Index).SyncFull,
			wantErr: "sync time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeNote(t, root, "a.md", "- [ ] a\n", time.Now().Add(-time.Hour))
			idx := openTestIndex(t, root)

			if _, err := idx.db.Exec("DROP TABLE " + tt.drop); err != nil {
				t.Fatalf("drop %s: %v", tt.drop, err)
			}

			_, err := tt.sync(idx)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestTxRollback(t *testing.T) {
	root := t.TempDir()
	idx := openTestIndex(t, root)

	tx, err := idx.BeginTx()
	if err != nil {
		t.Fatalf("BeginTx failed: %v", err)
	}
	record := &domain.IndexRecord{Path: "x.md", Title: "x", Total: 1}
	if err := tx.Upsert(record); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback failed: %v", err)
	}

	if rec, _ := idx.Get(record.Path); rec != nil {
		t.Errorf("rolled back record should not exist: %+v", rec)
	}
}

func TestReopenKeepsRecords(t *testing.T) {
	root := t.TempDir()
	writeNote(t, root, "a.md", "- [ ] a\n", time.Now().Add(-time.Hour))
	dbPath := filepath.Join(t.TempDir(), "index.db")

	idx := NewIndex(dbPath, nil)
	if err := idx.Open(root); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := idx.SyncFull(); err != nil {
		t.Fatalf("SyncFull failed: %v", err)
	}
	idx.Close()

	reopened := NewIndex(dbPath, nil)
	if err := reopened.Open(root); err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	if reopened.NeedsFullRebuild() {
		t.Error("same directory should not need a rebuild")
	}
	if rec, _ := reopened.Get("a.md"); rec == nil {
		t.Error("record lost after reopen")
	}
}

func TestDatabasePath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")

	got := databasePath("/home/me/notes")
	if filepath.Dir(got) != "/data/tasknote" || filepath.Ext(got) != ".db" {
		t.Errorf("unexpected database path: %s", got)
	}
	if got == databasePath("/home/me/other") {
		t.Error("different directories should map to different databases")
	}
}
