package commands

import (
	"context"

	"tasknote/internal/application"
	"tasknote/internal/domain"
	"tasknote/internal/ports"
)

// StatsResult contains the checklist of a note
type StatsResult struct {
	Note  *domain.Note
	Tasks []domain.Task
	Stats domain.ChecklistStats
}

// StatsCommand reads a note and reports its tasks and progress
type StatsCommand struct {
	repo ports.NoteRepository
	Name string
}

// NewStatsCommand creates a new StatsCommand
func NewStatsCommand(repo ports.NoteRepository, name string) *StatsCommand {
	return &StatsCommand{
		repo: repo,
		Name: name,
	}
}

// Validate checks if the stats operation is valid
func (c *StatsCommand) Validate() error {
	return application.ValidateNoteName("noteName", c.Name)
}

// Execute runs the stats command
func (c *StatsCommand) Execute(ctx context.Context) (*StatsResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	note, err := c.repo.ReadNote(c.Name)
	if err != nil {
		return nil, &application.NoteError{Name: c.Name, Reason: "read failed", Err: err}
	}

	tasks := domain.ScanTasks(note.Content)
	return &StatsResult{
		Note:  note,
		Tasks: tasks,
		Stats: domain.StatsOf(tasks),
	}, nil
}
