package preview

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPagePath(t *testing.T) {
	o := NewOpener("/tmp/pv")

	tests := []struct {
		name string
		note string
		want string
	}{
		{name: "simple", note: "groceries.md", want: "/tmp/pv/groceries.html"},
		{name: "nested", note: "work/sprint.md", want: "/tmp/pv/work_sprint.html"},
		{name: "dotted", note: "../evil.md", want: "/tmp/pv/evil.html"},
		{name: "empty", note: "", want: "/tmp/pv/note.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := o.PagePath(tt.note); got != tt.want {
				t.Errorf("PagePath(%q) = %q, want %q", tt.note, got, tt.want)
			}
		})
	}
}

func TestBuildURI(t *testing.T) {
	if got := BuildURI("/tmp/my notes/a.html"); got != "file:///tmp/my%20notes/a.html" {
		t.Errorf("BuildURI = %q", got)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	o := NewOpener(dir)

	var opened string
	o.open = func(uri string) error {
		opened = uri
		return nil
	}

	path, err := o.Open("todo <1>.md", `<ul><li><input type="checkbox" data-task-index="0"> a</li></ul>`)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if path != filepath.Join(dir, "todo <1>.html") {
		t.Errorf("path = %q", path)
	}
	if opened != BuildURI(path) {
		t.Errorf("opened %q, want %q", opened, BuildURI(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	page := string(data)
	if !strings.Contains(page, "<title>todo &lt;1&gt;.md</title>") {
		t.Errorf("title not escaped: %s", page)
	}
	if !strings.Contains(page, `data-task-index="0"`) {
		t.Errorf("body missing: %s", page)
	}
}
