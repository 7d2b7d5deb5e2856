package views

import (
	"strconv"

	"tasknote/internal/domain"
)

// ViewState is embedded by every view: the terminal size and the status line
// left by the last command.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets the status line
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the status line
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// NoteFocus is a note together with its checklist statistics. The notes list
// holds one per row and the checklist holds the one it has open.
type NoteFocus struct {
	Note  *domain.Note
	Stats domain.ChecklistStats
}

// FocusOn builds the focus of a note from its parsed tasks
func FocusOn(note *domain.Note) NoteFocus {
	return NoteFocus{Note: note, Stats: note.Stats()}
}

// Name is the note path relative to the notes directory, empty when nothing
// is focused
func (f NoteFocus) Name() string {
	if f.Note == nil {
		return ""
	}
	return f.Note.Name
}

// Title prefers the frontmatter title over the file name
func (f NoteFocus) Title() string {
	if f.Note == nil {
		return ""
	}
	if f.Note.Title != "" {
		return f.Note.Title
	}
	return f.Note.Name
}

// Progress renders the completion bar of the focused note
func (f NoteFocus) Progress(width int) string {
	return RenderProgress(f.Stats.Completed, f.Stats.Total, f.Stats.Progress, width)
}

func noteKey(f NoteFocus) string {
	return f.Name()
}

func taskKey(t domain.Task) string {
	return strconv.Itoa(t.Ordinal)
}
