package ports

import "os/exec"

// EditorOpener defines the interface for opening notes in an external editor
type EditorOpener interface {
	// Command returns an exec.Cmd that opens path, positioned at the 0-based
	// line when the editor supports it. Pass a negative line to skip it.
	Command(path string, line int) (*exec.Cmd, error)
}
