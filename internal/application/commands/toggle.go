package commands

import (
	"context"
	"fmt"

	"tasknote/internal/application"
	"tasknote/internal/domain"
	"tasknote/internal/ports"
)

// ToggleResult contains the result of toggling a task
type ToggleResult struct {
	Changed bool
	Task    *domain.Task // state after the toggle, nil when nothing changed
	Stats   domain.ChecklistStats
	Message string
}

// ToggleCommand flips the checkbox of the task at Index in a note
type ToggleCommand struct {
	repo  ports.NoteRepository
	Name  string
	Index int
}

// NewToggleCommand creates a new ToggleCommand
func NewToggleCommand(repo ports.NoteRepository, name string, index int) *ToggleCommand {
	return &ToggleCommand{
		repo:  repo,
		Name:  name,
		Index: index,
	}
}

// Validate checks if the toggle operation is valid
func (c *ToggleCommand) Validate() error {
	if err := application.ValidateNoteName("noteName", c.Name); err != nil {
		return err
	}
	return application.ValidateIndex("index", c.Index)
}

// Execute runs the toggle command. An index past the last task is not an
// error: the note is left untouched and Changed is false.
func (c *ToggleCommand) Execute(ctx context.Context) (*ToggleResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	note, err := c.repo.ReadNote(c.Name)
	if err != nil {
		return nil, &application.NoteError{Name: c.Name, Reason: "read failed", Err: err}
	}

	updated := domain.ToggleCheckbox(note.Content, c.Index)
	if updated == note.Content {
		total := len(domain.ScanTasks(note.Content))
		return &ToggleResult{
			Stats:   domain.Stats(note.Content),
			Message: fmt.Sprintf("No task at index %d in %s (%d tasks)", c.Index, c.Name, total),
		}, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.repo.WriteNote(c.Name, updated); err != nil {
		return nil, &application.NoteError{Name: c.Name, Reason: "write failed", Err: err}
	}

	tasks := domain.ScanTasks(updated)
	task := tasks[c.Index]

	verb := "Unchecked"
	if task.Checked {
		verb = "Checked"
	}

	return &ToggleResult{
		Changed: true,
		Task:    &task,
		Stats:   domain.StatsOf(tasks),
		Message: fmt.Sprintf("%s task %d: %s", verb, c.Index, task.Label),
	}, nil
}

// SetAllResult contains the result of setting every task of a note
type SetAllResult struct {
	Changed bool
	Stats   domain.ChecklistStats
	Message string
}

// SetAllCommand checks or unchecks every task of a note
type SetAllCommand struct {
	repo    ports.NoteRepository
	Name    string
	Checked bool
}

// NewSetAllCommand creates a new SetAllCommand
func NewSetAllCommand(repo ports.NoteRepository, name string, checked bool) *SetAllCommand {
	return &SetAllCommand{
		repo:    repo,
		Name:    name,
		Checked: checked,
	}
}

// Validate checks if the operation is valid
func (c *SetAllCommand) Validate() error {
	return application.ValidateNoteName("noteName", c.Name)
}

// Execute runs the set-all command. The note is only written when at least
// one task changed state.
func (c *SetAllCommand) Execute(ctx context.Context) (*SetAllResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	note, err := c.repo.ReadNote(c.Name)
	if err != nil {
		return nil, &application.NoteError{Name: c.Name, Reason: "read failed", Err: err}
	}

	updated := domain.SetAllCheckboxes(note.Content, c.Checked)
	stats := domain.Stats(updated)

	state := "unchecked"
	if c.Checked {
		state = "checked"
	}

	if updated == note.Content {
		return &SetAllResult{
			Stats:   stats,
			Message: fmt.Sprintf("All %d tasks in %s already %s", stats.Total, c.Name, state),
		}, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.repo.WriteNote(c.Name, updated); err != nil {
		return nil, &application.NoteError{Name: c.Name, Reason: "write failed", Err: err}
	}

	return &SetAllResult{
		Changed: true,
		Stats:   stats,
		Message: fmt.Sprintf("Marked %d tasks in %s as %s", stats.Total, c.Name, state),
	}, nil
}
