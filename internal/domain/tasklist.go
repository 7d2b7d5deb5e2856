package domain

import (
	"regexp"
	"strings"
)

// taskLineRegex matches a task-list line without its terminator.
// Groups: 1 indent, 2 bullet marker, 3 checkbox state, 4 label.
var taskLineRegex = regexp.MustCompile(`^([ \t]*)([-*+]|[0-9]{1,9}[.)])[ \t]+\[([ xX])\](?:[ \t]+(.*))?$`)

// Task is a task-list line recognised in a Markdown document
type Task struct {
	Ordinal     int    // 0-based position among tasks, in document order
	Line        int    // 0-based source line number
	StateOffset int    // Byte offset of the state character between the brackets
	Checked     bool   // true for [x] / [X]
	Indent      string // Leading whitespace
	Marker      string // "-", "*", "+", "1." ...
	Label       string
}

// ChecklistStats summarises the task lines of a document
type ChecklistStats struct {
	Total     int
	Completed int
	Pending   int
	Progress  float64 // 0-100
}

// ScanTasks returns the task-list lines of document in document order.
//
// This is the single traversal rule shared by toggling and rendering: the
// N-th task returned here is the N-th checkbox the renderer indexes. Lines of
// a leading frontmatter block and of fenced code blocks are never tasks.
func ScanTasks(document string) []Task {
	var tasks []Task

	var blocks blockState
	inFrontmatter := false
	offset := 0

	for lineNum := 0; offset < len(document); lineNum++ {
		end := strings.IndexByte(document[offset:], '\n')
		next := len(document)
		if end >= 0 {
			next = offset + end + 1
			end = offset + end
		} else {
			end = len(document)
		}
		line := strings.TrimSuffix(document[offset:end], "\r")
		lineStart := offset
		offset = next

		switch {
		case lineNum == 0 && line == "---" && hasFrontmatterEnd(document[next:]):
			inFrontmatter = true
			continue
		case inFrontmatter:
			if line == "---" || line == "..." {
				inFrontmatter = false
			}
			continue
		case blocks.skip(line):
			continue
		}

		m := taskLineRegex.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}

		state := line[m[6]]
		label := ""
		if m[8] >= 0 {
			label = strings.TrimSpace(line[m[8]:m[9]])
		}
		tasks = append(tasks, Task{
			Ordinal:     len(tasks),
			Line:        lineNum,
			StateOffset: lineStart + m[6],
			Checked:     state == 'x' || state == 'X',
			Indent:      line[m[2]:m[3]],
			Marker:      line[m[4]:m[5]],
			Label:       label,
		})
	}

	return tasks
}

// ToggleCheckbox flips the checked state of the task with the given ordinal
// and returns the new document. Only the state character changes; every
// other byte is preserved. An index with no matching task leaves the
// document unchanged.
func ToggleCheckbox(document string, index int) string {
	task, ok := taskAt(document, index)
	if !ok {
		return document
	}
	return setState(document, task, !task.Checked)
}

// SetCheckbox sets the checked state of the task with the given ordinal.
// Like ToggleCheckbox it is a no-op for an index with no matching task.
func SetCheckbox(document string, index int, checked bool) string {
	task, ok := taskAt(document, index)
	if !ok || task.Checked == checked {
		return document
	}
	return setState(document, task, checked)
}

// SetAllCheckboxes sets every task in the document to the given state
func SetAllCheckboxes(document string, checked bool) string {
	tasks := ScanTasks(document)
	if len(tasks) == 0 {
		return document
	}

	b := []byte(document)
	for _, t := range tasks {
		if t.Checked != checked {
			b[t.StateOffset] = stateByte(checked)
		}
	}
	return string(b)
}

// Stats calculates checklist statistics for a document
func Stats(document string) ChecklistStats {
	return StatsOf(ScanTasks(document))
}

// StatsOf calculates checklist statistics for already scanned tasks
func StatsOf(tasks []Task) ChecklistStats {
	total := len(tasks)
	if total == 0 {
		return ChecklistStats{}
	}

	completed := 0
	for _, t := range tasks {
		if t.Checked {
			completed++
		}
	}

	return ChecklistStats{
		Total:     total,
		Completed: completed,
		Pending:   total - completed,
		Progress:  float64(completed) / float64(total) * 100,
	}
}

// IsComplete reports whether a document has tasks and all of them are checked
func IsComplete(document string) bool {
	s := Stats(document)
	return s.Total > 0 && s.Pending == 0
}

// OrdinalAtLine returns the ordinal of the task on the given source line
func OrdinalAtLine(tasks []Task, line int) (int, bool) {
	lo, hi := 0, len(tasks)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case tasks[mid].Line == line:
			return tasks[mid].Ordinal, true
		case tasks[mid].Line < line:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return 0, false
}

func taskAt(document string, index int) (Task, bool) {
	if index < 0 || document == "" {
		return Task{}, false
	}
	tasks := ScanTasks(document)
	if index >= len(tasks) {
		return Task{}, false
	}
	return tasks[index], true
}

func setState(document string, task Task, checked bool) string {
	b := []byte(document)
	b[task.StateOffset] = stateByte(checked)
	return string(b)
}

func stateByte(checked bool) byte {
	if checked {
		return 'x'
	}
	return ' '
}

// hasFrontmatterEnd reports whether rest contains a closing frontmatter line
func hasFrontmatterEnd(rest string) bool {
	for _, l := range strings.Split(rest, "\n") {
		l = strings.TrimSuffix(l, "\r")
		if l == "---" || l == "..." {
			return true
		}
	}
	return false
}

// listItemRegex matches the start of a list item. Group 1 is the indent,
// group 2 the marker and group 3 the spacing before the item content.
var listItemRegex = regexp.MustCompile(`^([ \t]*)([-*+]|[0-9]{1,9}[.)])([ \t]+|$)`)

// blockState tracks the list items and fenced code block enclosing a line.
//
// A fence only opens with at most three columns of indentation relative to
// the list item holding it; deeper lines are indented code. A fence opened
// inside a list item ends with that item, when a non-blank line is indented
// less than the item's content.
type blockState struct {
	items []int // content columns of the open list items, innermost last

	fenceChar      byte
	fenceSize      int
	fenceContainer int
}

// skip consumes a line and reports whether it belongs to a fenced block,
// including the opening and closing fence lines themselves.
func (b *blockState) skip(line string) bool {
	if strings.TrimSpace(line) == "" {
		return b.fenceSize > 0
	}

	indent, rest := splitIndent(line)

	if b.fenceSize > 0 {
		if b.fenceContainer == 0 || indent >= b.fenceContainer {
			c, n := fenceRun(rest)
			if c == b.fenceChar && n >= b.fenceSize && indent-b.fenceContainer < 4 &&
				strings.TrimSpace(rest[n:]) == "" {
				b.fenceChar, b.fenceSize = 0, 0
			}
			return true
		}
		// The list item holding the fence has ended.
		b.fenceChar, b.fenceSize = 0, 0
	}

	for len(b.items) > 0 && indent < b.items[len(b.items)-1] {
		b.items = b.items[:len(b.items)-1]
	}
	container := 0
	if len(b.items) > 0 {
		container = b.items[len(b.items)-1]
	}
	if indent-container >= 4 {
		return false
	}

	if c, n := fenceRun(rest); n >= 3 {
		// A backtick fence's info string may not contain backticks.
		if c != '`' || !strings.ContainsRune(rest[n:], '`') {
			b.fenceChar, b.fenceSize, b.fenceContainer = c, n, container
			return true
		}
	}

	if m := listItemRegex.FindStringSubmatchIndex(line); m != nil {
		b.items = append(b.items, columnWidth(line[:m[7]]))
	}
	return false
}

// splitIndent returns the indentation width of line, counting tabs to the
// next multiple of four, and the text after it.
func splitIndent(line string) (int, string) {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return columnWidth(line[:i]), line[i:]
}

// columnWidth returns the display columns of a prefix, with tab stops of four
func columnWidth(prefix string) int {
	col := 0
	for i := 0; i < len(prefix); i++ {
		if prefix[i] == '\t' {
			col += 4 - col%4
		} else {
			col++
		}
	}
	return col
}

func fenceRun(s string) (byte, int) {
	if s == "" || (s[0] != '`' && s[0] != '~') {
		return 0, 0
	}
	n := 0
	for n < len(s) && s[n] == s[0] {
		n++
	}
	return s[0], n
}
