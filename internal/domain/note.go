package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// NoteExt is the file extension of Markdown notes
const NoteExt = ".md"

// Entry is a single directory entry as reported by the lister
type Entry struct {
	Name  string
	IsDir bool
}

// Note is a Markdown note stored in the notes directory
type Note struct {
	Name    string // File name relative to the notes directory, e.g. "groceries.md"
	Path    string // Absolute path
	Title   string
	Tags    []string
	Content string
	ModTime time.Time
}

// Stats returns the checklist statistics of the note's content
func (n *Note) Stats() ChecklistStats {
	return Stats(n.Content)
}

// Frontmatter holds the metadata read from a note's YAML header
type Frontmatter struct {
	Title string   `yaml:"title"`
	Tags  []string `yaml:"tags"`
}

// ParseFrontmatter splits content into its frontmatter and Markdown body.
// Content without frontmatter is returned unchanged as the body.
func ParseFrontmatter(content string) (Frontmatter, string, error) {
	var fm Frontmatter
	body, err := frontmatter.Parse(strings.NewReader(content), &fm)
	if err != nil {
		return Frontmatter{}, content, fmt.Errorf("parse frontmatter: %w", err)
	}
	return fm, string(body), nil
}

// NoteTitle picks a display title: frontmatter title, first "# " heading,
// then the file name without extension.
func NoteTitle(name string, fm Frontmatter, body string) string {
	if t := strings.TrimSpace(fm.Title); t != "" {
		return t
	}
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
}

// BodyOffset returns the byte offset where the Markdown body starts and the
// number of lines before it. Only a frontmatter block that ScanTasks would
// skip counts; anything else yields (0, 0).
func BodyOffset(content string) (int, int) {
	if !strings.HasPrefix(content, "---\n") && !strings.HasPrefix(content, "---\r\n") {
		return 0, 0
	}

	offset := strings.IndexByte(content, '\n') + 1
	lines := 1
	for offset < len(content) {
		end := strings.IndexByte(content[offset:], '\n')
		next := len(content)
		if end >= 0 {
			next = offset + end + 1
		}
		line := strings.TrimRight(content[offset:next], "\r\n")
		offset = next
		lines++
		if line == "---" || line == "..." {
			return offset, lines
		}
	}
	return 0, 0
}

// IsNoteName reports whether name looks like a Markdown note file
func IsNoteName(name string) bool {
	return strings.EqualFold(filepath.Ext(name), NoteExt)
}

// SearchResult represents a search match inside the notes directory
type SearchResult struct {
	Name        string // Note file name
	Title       string
	Path        string
	MatchedText string
	Line        int // 0-based line of the match, -1 for name/title matches
}
