package preview

import (
	"fmt"
	"html"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
.task-list-item { list-style: none; }
.task-list-item-checkbox { margin-right: .4em; }
pre { background: #f4f4f5; padding: .75rem; overflow-x: auto; }
</style>
</head>
<body>
%s</body>
</html>
`

// Opener implements ports.PreviewOpener
type Opener struct {
	dir  string
	open func(uri string) error
}

// NewOpener creates a preview opener writing pages below dir. An empty dir
// uses a tasknote directory under the system temp dir.
func NewOpener(dir string) *Opener {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "tasknote-preview")
	}
	return &Opener{dir: dir, open: openURI}
}

// Open writes the page and opens it in the default browser
func (o *Opener) Open(name, body string) (string, error) {
	path, err := o.Write(name, body)
	if err != nil {
		return "", err
	}
	if err := o.open(BuildURI(path)); err != nil {
		return path, fmt.Errorf("failed to open preview: %w", err)
	}
	return path, nil
}

// Write stores body as a standalone HTML page and returns its path
func (o *Opener) Write(name, body string) (string, error) {
	if err := os.MkdirAll(o.dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create preview directory: %w", err)
	}

	path := o.PagePath(name)
	page := fmt.Sprintf(pageTemplate, html.EscapeString(name), body)
	if err := os.WriteFile(path, []byte(page), 0600); err != nil {
		return "", fmt.Errorf("failed to write preview: %w", err)
	}
	return path, nil
}

// PagePath returns the page file for a note name. Nested names are
// flattened so every page lives directly in the preview directory.
func (o *Opener) PagePath(name string) string {
	flat := strings.ReplaceAll(filepath.ToSlash(filepath.Clean(name)), "/", "_")
	flat = strings.TrimLeft(flat, "._")
	flat = strings.TrimSuffix(flat, filepath.Ext(flat))
	if flat == "" {
		flat = "note"
	}
	return filepath.Join(o.dir, flat+".html")
}

// BuildURI constructs the file:// URI for a local path
func BuildURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

func openURI(uri string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", uri)
	case "linux", "freebsd", "openbsd":
		cmd = exec.Command("xdg-open", uri)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", uri)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	return cmd.Start()
}
