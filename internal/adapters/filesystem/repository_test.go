package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tasknote/internal/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func setupTestNotes(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "groceries.md"), "---\ntitle: Groceries\ntags: [home]\n---\n- [ ] eggs\n- [x] bread\n")
	writeFile(t, filepath.Join(root, "work", "sprint.md"), "# Sprint 12\n- [ ] review PR\n- [ ] deploy\n")
	writeFile(t, filepath.Join(root, "notes.txt"), "not markdown")
	writeFile(t, filepath.Join(root, ".hidden", "secret.md"), "- [ ] hidden\n")
	writeFile(t, filepath.Join(root, ".dotfile"), "x")

	return root
}

func TestListEntries_SortedWithDotEntries(t *testing.T) {
	root := setupTestNotes(t)
	repo := NewRepository(root)

	entries, err := repo.ListEntries()
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}

	want := []domain.Entry{
		{Name: ".dotfile"},
		{Name: ".hidden", IsDir: true},
		{Name: "groceries.md"},
		{Name: "notes.txt"},
		{Name: "work", IsDir: true},
	}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d: %+v", len(want), len(entries), entries)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestListEntries_MissingDirectory(t *testing.T) {
	repo := NewRepository(filepath.Join(t.TempDir(), "missing"))

	if _, err := repo.ListEntries(); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestListNotes(t *testing.T) {
	root := setupTestNotes(t)
	repo := NewRepository(root)

	notes, err := repo.ListNotes()
	if err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}

	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(notes))
	}
	if notes[0].Name != "groceries.md" || notes[0].Title != "Groceries" {
		t.Errorf("unexpected first note: %s %q", notes[0].Name, notes[0].Title)
	}
	if len(notes[0].Tags) != 1 || notes[0].Tags[0] != "home" {
		t.Errorf("unexpected tags: %v", notes[0].Tags)
	}
	if notes[1].Name != "work/sprint.md" || notes[1].Title != "Sprint 12" {
		t.Errorf("unexpected second note: %s %q", notes[1].Name, notes[1].Title)
	}
}

func TestReadNote_NotFound(t *testing.T) {
	repo := NewRepository(t.TempDir())

	_, err := repo.ReadNote("missing.md")
	if !errors.Is(err, domain.ErrNoteNotFound) {
		t.Errorf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestReadNote_OutsideRoot(t *testing.T) {
	repo := NewRepository(t.TempDir())

	_, err := repo.ReadNote("../escape.md")
	if !errors.Is(err, domain.ErrOutsideRoot) {
		t.Errorf("expected ErrOutsideRoot, got %v", err)
	}
}

func TestWriteNote_ReplacesContentAndKeepsMode(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "todo.md")
	writeFile(t, path, "- [ ] a\n")
	if err := os.Chmod(path, 0600); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	repo := NewRepository(root)
	if err := repo.WriteNote("todo.md", "- [x] a\n"); err != nil {
		t.Fatalf("WriteNote failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "- [x] a\n" {
		t.Errorf("content = %q", data)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}

	// No temp files left behind
	entries, _ := os.ReadDir(root)
	if len(entries) != 1 {
		t.Errorf("expected only the note in the directory, got %d entries", len(entries))
	}
}

func TestWriteNote_DoesNotCreate(t *testing.T) {
	root := t.TempDir()
	repo := NewRepository(root)

	err := repo.WriteNote("new.md", "content")
	if !errors.Is(err, domain.ErrNoteNotFound) {
		t.Errorf("expected ErrNoteNotFound, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(root, "new.md")); !os.IsNotExist(statErr) {
		t.Error("WriteNote should not create missing notes")
	}
}

func TestSearch(t *testing.T) {
	root := setupTestNotes(t)
	repo := NewRepository(root)

	tests := []struct {
		name      string
		query     string
		wantCount int
		wantLine  int
	}{
		{name: "title match", query: "groceries", wantCount: 1, wantLine: -1},
		{name: "task label match", query: "DEPLOY", wantCount: 1, wantLine: 2},
		{name: "hidden notes are skipped", query: "hidden", wantCount: 0},
		{name: "empty query", query: "  ", wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := repo.Search(tt.query)
			if err != nil {
				t.Fatalf("Search failed: %v", err)
			}
			if len(results) != tt.wantCount {
				t.Fatalf("expected %d results, got %d: %+v", tt.wantCount, len(results), results)
			}
			if tt.wantCount > 0 && results[0].Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", results[0].Line, tt.wantLine)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := ExpandHome("~/notes"); got != filepath.Join(home, "notes") {
		t.Errorf("ExpandHome(~/notes) = %s", got)
	}
	if got := ExpandHome("/abs/notes"); got != "/abs/notes" {
		t.Errorf("ExpandHome should leave absolute paths alone, got %s", got)
	}
}

func TestImageResolver(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "work", "sprint.md"), "![chart](img/chart.png)")
	writeFile(t, filepath.Join(root, "work", "img", "chart.png"), "PNG")
	writeFile(t, filepath.Join(root, "work", "doc.txt"), "text")
	writeFile(t, filepath.Join(filepath.Dir(root), "outside.png"), "PNG")

	resolver := NewRepository(root).ImageResolver("work/sprint.md")

	tests := []struct {
		name   string
		dest   string
		wantOK bool
	}{
		{name: "relative image", dest: "img/chart.png", wantOK: true},
		{name: "root relative image", dest: "/work/img/chart.png", wantOK: true},
		{name: "remote url", dest: "https://example.com/a.png", wantOK: false},
		{name: "data uri", dest: "data:image/png;base64,AAAA", wantOK: false},
		{name: "missing file", dest: "img/none.png", wantOK: false},
		{name: "not an image", dest: "doc.txt", wantOK: false},
		{name: "escapes root", dest: "../../outside.png", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := resolver.ResolveImage(tt.dest)
			if ok != tt.wantOK {
				t.Fatalf("ResolveImage(%q) ok = %v, want %v", tt.dest, ok, tt.wantOK)
			}
			if ok && !strings.HasPrefix(got, "data:image/png;base64,") {
				t.Errorf("unexpected data uri: %s", got)
			}
		})
	}
}
