package views

import tea "github.com/charmbracelet/bubbletea"

// SwitchToNotesMsg returns to the notes list and reloads it
type SwitchToNotesMsg struct{}

// SwitchToHelpMsg opens the help view
type SwitchToHelpMsg struct{}

// OpenChecklistMsg opens the checklist of a note
type OpenChecklistMsg struct {
	Name string
}

// OpenEditorMsg asks the app to open a file in the external editor.
// Line is 0-based; a negative line opens the file at the top.
type OpenEditorMsg struct {
	Path string
	Line int
}

type errMsg struct {
	err error
}

type successMsg struct {
	message string
}

func switchTo(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
