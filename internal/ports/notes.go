package ports

import "tasknote/internal/domain"

// NoteRepository defines the interface for note storage operations
type NoteRepository interface {
	// Root returns the absolute notes directory
	Root() string

	// ListEntries lists every visible entry of the notes directory by name
	ListEntries() ([]domain.Entry, error)

	// ListNotes returns the Markdown notes of the notes directory
	ListNotes() ([]domain.Note, error)

	// ReadNote loads a note by file name
	ReadNote(name string) (*domain.Note, error)

	// WriteNote replaces the content of an existing note
	WriteNote(name, content string) error

	// NotePath resolves a note name to its absolute path
	NotePath(name string) (string, error)

	// Search matches note names, titles and task labels
	Search(query string) ([]domain.SearchResult, error)

	// ImageResolver returns a resolver for images referenced by the named note
	ImageResolver(name string) ImageResolver
}
