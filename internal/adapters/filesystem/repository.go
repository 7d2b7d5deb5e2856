package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tasknote/internal/domain"
)

// Repository implements ports.NoteRepository using the filesystem
type Repository struct {
	root string
}

// NewRepository creates a new filesystem repository rooted at root
func NewRepository(root string) *Repository {
	return &Repository{root: ExpandHome(root)}
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[1:])
	}
	return path
}

// Root returns the absolute notes directory
func (r *Repository) Root() string {
	return r.root
}

// ListEntries returns every entry of the notes directory, dot entries included
func (r *Repository) ListEntries() ([]domain.Entry, error) {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read notes directory: %w", err)
	}

	result := make([]domain.Entry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, domain.Entry{
			Name:  entry.Name(),
			IsDir: entry.IsDir(),
		})
	}

	// os.ReadDir already sorts by file name
	return result, nil
}

// ListNotes returns all Markdown notes below the notes directory.
// Hidden directories are skipped.
func (r *Repository) ListNotes() ([]domain.Note, error) {
	var notes []domain.Note

	err := filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == r.root {
				return err
			}
			return nil // Skip unreadable entries
		}

		if d.IsDir() {
			if path != r.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !domain.IsNoteName(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(r.root, path)
		if err != nil {
			return nil
		}

		note, err := r.loadNote(filepath.ToSlash(rel), path)
		if err != nil {
			return nil
		}
		notes = append(notes, *note)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	sort.Slice(notes, func(i, j int) bool {
		return notes[i].Name < notes[j].Name
	})

	return notes, nil
}

// ReadNote loads a note by its name relative to the notes directory
func (r *Repository) ReadNote(name string) (*domain.Note, error) {
	path, err := r.NotePath(name)
	if err != nil {
		return nil, err
	}
	return r.loadNote(name, path)
}

func (r *Repository) loadNote(name, path string) (*domain.Note, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", name, domain.ErrNoteNotFound)
		}
		return nil, fmt.Errorf("failed to stat note: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory: %w", name, domain.ErrNoteNotFound)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read note: %w", err)
	}
	content := string(data)

	// Malformed frontmatter still yields a usable note
	fm, body, err := domain.ParseFrontmatter(content)
	if err != nil {
		body = content
	}

	return &domain.Note{
		Name:    name,
		Path:    path,
		Title:   domain.NoteTitle(name, fm, body),
		Tags:    fm.Tags,
		Content: content,
		ModTime: info.ModTime(),
	}, nil
}

// WriteNote replaces the content of an existing note atomically.
// The file is written to a temp file in the same directory and renamed over
// the original, keeping its permissions.
func (r *Repository) WriteNote(name, content string) error {
	path, err := r.NotePath(name)
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", name, domain.ErrNoteNotFound)
		}
		return fmt.Errorf("failed to stat note: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	// Rollback on failure
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write note: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync note: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close note: %w", err)
	}
	if err := os.Chmod(tmpPath, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to set note permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace note: %w", err)
	}

	success = true
	return nil
}

// NotePath resolves a note name to an absolute path inside the notes directory
func (r *Repository) NotePath(name string) (string, error) {
	return r.resolve(name)
}

// resolve joins rel to the root and rejects results that escape it
func (r *Repository) resolve(rel string) (string, error) {
	path := filepath.Join(r.root, filepath.FromSlash(rel))
	within, err := filepath.Rel(r.root, path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", rel, err)
	}
	if within == ".." || strings.HasPrefix(within, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: %w", rel, domain.ErrOutsideRoot)
	}
	return path, nil
}

// Search returns notes whose name, title or task labels contain the query
func (r *Repository) Search(query string) ([]domain.SearchResult, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, nil
	}

	notes, err := r.ListNotes()
	if err != nil {
		return nil, err
	}

	var results []domain.SearchResult
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Name), query) || strings.Contains(strings.ToLower(n.Title), query) {
			results = append(results, domain.SearchResult{
				Name:        n.Name,
				Title:       n.Title,
				Path:        n.Path,
				MatchedText: n.Title,
				Line:        -1,
			})
		}

		for _, task := range domain.ScanTasks(n.Content) {
			if strings.Contains(strings.ToLower(task.Label), query) {
				results = append(results, domain.SearchResult{
					Name:        n.Name,
					Title:       n.Title,
					Path:        n.Path,
					MatchedText: task.Label,
					Line:        task.Line,
				})
			}
		}
	}

	return results, nil
}
