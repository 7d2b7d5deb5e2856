package commands

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"tasknote/internal/domain"
	"tasknote/internal/ports"
)

// fakeRepo is an in-memory ports.NoteRepository
type fakeRepo struct {
	notes         map[string]string
	writes        int
	writeErr      error
	searchResults []domain.SearchResult
}

func newFakeRepo(notes map[string]string) *fakeRepo {
	return &fakeRepo{notes: notes}
}

func (f *fakeRepo) Root() string { return "/notes" }

func (f *fakeRepo) ListEntries() ([]domain.Entry, error) {
	var entries []domain.Entry
	for name := range f.notes {
		entries = append(entries, domain.Entry{Name: name})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (f *fakeRepo) ListNotes() ([]domain.Note, error) {
	entries, _ := f.ListEntries()
	notes := make([]domain.Note, 0, len(entries))
	for _, e := range entries {
		n, _ := f.ReadNote(e.Name)
		notes = append(notes, *n)
	}
	return notes, nil
}

func (f *fakeRepo) ReadNote(name string) (*domain.Note, error) {
	content, ok := f.notes[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, domain.ErrNoteNotFound)
	}
	return &domain.Note{
		Name:    name,
		Path:    "/notes/" + name,
		Title:   strings.TrimSuffix(name, domain.NoteExt),
		Content: content,
	}, nil
}

func (f *fakeRepo) WriteNote(name, content string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	if _, ok := f.notes[name]; !ok {
		return domain.ErrNoteNotFound
	}
	f.notes[name] = content
	f.writes++
	return nil
}

func (f *fakeRepo) NotePath(name string) (string, error) {
	return "/notes/" + name, nil
}

func (f *fakeRepo) Search(query string) ([]domain.SearchResult, error) {
	return f.searchResults, nil
}

func (f *fakeRepo) ImageResolver(name string) ports.ImageResolver {
	return stubResolver{}
}

type stubResolver struct{}

func (stubResolver) ResolveImage(dest string) (string, bool) {
	return "data:image/png;base64,AAAA", true
}

// fakeRenderer records the last request and echoes the document
type fakeRenderer struct {
	last ports.RenderRequest
	err  error
}

func (r *fakeRenderer) Render(ctx context.Context, req ports.RenderRequest) (ports.RenderResult, error) {
	r.last = req
	if r.err != nil {
		return ports.RenderResult{}, r.err
	}
	return ports.RenderResult{HTML: "<p>" + req.Document + "</p>", Tasks: len(domain.ScanTasks(req.Document))}, nil
}

var errDisk = errors.New("disk full")
