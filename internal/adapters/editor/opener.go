package editor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Opener implements ports.EditorOpener
type Opener struct {
	editor string // configured command, may include arguments
}

// NewOpener creates a new editor opener. An empty editor falls back to
// $VISUAL, $EDITOR and common editors on $PATH.
func NewOpener(editor string) *Opener {
	return &Opener{editor: strings.TrimSpace(editor)}
}

// Command returns an exec.Cmd for opening a file in the editor, positioned
// at the 0-based line when the editor understands it. A negative line opens
// the file at the top. This is useful for integrating with bubbletea's
// ExecProcess.
func (o *Opener) Command(path string, line int) (*exec.Cmd, error) {
	editor := o.findEditor()
	if editor == "" {
		return nil, fmt.Errorf("no editor found: set editor in the config file or $VISUAL/$EDITOR")
	}

	fields := strings.Fields(editor)
	args := append(fields[1:], lineArgs(fields[0], path, line)...)

	cmd := exec.Command(fields[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// lineArgs builds the file arguments for editors with a known line syntax
func lineArgs(editor, path string, line int) []string {
	if line < 0 {
		return []string{path}
	}
	n := fmt.Sprint(line + 1)

	switch filepath.Base(editor) {
	case "vi", "vim", "nvim", "nano", "emacs", "emacsclient", "kak", "micro":
		return []string{"+" + n, path}
	case "code", "codium", "cursor":
		return []string{"--goto", path + ":" + n}
	case "hx", "helix", "subl", "zed":
		return []string{path + ":" + n}
	default:
		return []string{path}
	}
}

// findEditor returns the editor to use
func (o *Opener) findEditor() string {
	if o.editor != "" {
		return o.editor
	}

	for _, env := range []string{"VISUAL", "EDITOR"} {
		if editor := strings.TrimSpace(os.Getenv(env)); editor != "" {
			return editor
		}
	}

	// Try common editors
	editors := []string{"nvim", "vim", "vi", "nano", "code"}
	for _, editor := range editors {
		if path, err := exec.LookPath(editor); err == nil {
			return path
		}
	}

	return ""
}
