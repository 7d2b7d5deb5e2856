package commands

import (
	"context"

	"tasknote/internal/domain"
	"tasknote/internal/ports"
)

// ListEntriesCommand lists the entries of the notes directory
type ListEntriesCommand struct {
	repo ports.NoteRepository
}

// NewListEntriesCommand creates a new ListEntriesCommand
func NewListEntriesCommand(repo ports.NoteRepository) *ListEntriesCommand {
	return &ListEntriesCommand{repo: repo}
}

// Execute runs the list entries command
func (c *ListEntriesCommand) Execute(ctx context.Context) ([]domain.Entry, error) {
	return c.repo.ListEntries()
}

// ListNotesCommand lists the Markdown notes of the notes directory
type ListNotesCommand struct {
	repo           ports.NoteRepository
	IncompleteOnly bool
}

// NewListNotesCommand creates a new ListNotesCommand
func NewListNotesCommand(repo ports.NoteRepository, incompleteOnly bool) *ListNotesCommand {
	return &ListNotesCommand{
		repo:           repo,
		IncompleteOnly: incompleteOnly,
	}
}

// Execute runs the list notes command
func (c *ListNotesCommand) Execute(ctx context.Context) ([]domain.Note, error) {
	notes, err := c.repo.ListNotes()
	if err != nil {
		return nil, err
	}
	if !c.IncompleteOnly {
		return notes, nil
	}

	filtered := notes[:0]
	for _, n := range notes {
		if s := n.Stats(); s.Pending > 0 {
			filtered = append(filtered, n)
		}
	}
	return filtered, nil
}
