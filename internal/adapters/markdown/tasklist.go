package markdown

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"tasknote/internal/domain"
)

// TaskCheckBox is a task list checkbox that knows its toggle ordinal.
type TaskCheckBox struct {
	ast.BaseInline
	Checked bool
	Index   int
	Indexed bool // false when the source line is not a scanned task
}

// Dump implements Node.Dump.
func (n *TaskCheckBox) Dump(source []byte, level int) {
	m := map[string]string{
		"Checked": fmt.Sprintf("%v", n.Checked),
		"Index":   fmt.Sprintf("%d", n.Index),
		"Indexed": fmt.Sprintf("%v", n.Indexed),
	}
	ast.DumpHelper(n, source, level, m, nil)
}

// KindTaskCheckBox is a NodeKind of the TaskCheckBox node.
var KindTaskCheckBox = ast.NewNodeKind("TasknoteCheckBox")

// Kind implements Node.Kind.
func (n *TaskCheckBox) Kind() ast.NodeKind {
	return KindTaskCheckBox
}

var (
	tasksKey      = parser.NewContextKey()
	lineOffsetKey = parser.NewContextKey()
	indexedKey    = parser.NewContextKey()
)

// checkboxTransformer swaps goldmark's task checkboxes for TaskCheckBox
// nodes carrying the ordinal of their source line.
type checkboxTransformer struct{}

func (t *checkboxTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	tasks, _ := pc.Get(tasksKey).([]domain.Task)
	lineOffset, _ := pc.Get(lineOffsetKey).(int)

	var found []*extast.TaskCheckBox
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if cb, ok := n.(*extast.TaskCheckBox); ok {
			found = append(found, cb)
		}
		return ast.WalkContinue, nil
	})
	if len(found) == 0 {
		return
	}

	starts := lineStarts(reader.Source())
	indexed := 0
	for _, cb := range found {
		parent := cb.Parent()
		if parent == nil {
			continue
		}

		node := &TaskCheckBox{Checked: cb.IsChecked}
		if lines := parent.Lines(); lines != nil && lines.Len() > 0 {
			line := lineAt(starts, lines.At(0).Start) + lineOffset
			if ordinal, ok := domain.OrdinalAtLine(tasks, line); ok {
				node.Index = ordinal
				node.Indexed = true
				node.Checked = tasks[ordinal].Checked
				indexed++
			}
		}
		parent.ReplaceChild(parent, cb, node)
	}
	pc.Set(indexedKey, indexed)
}

// lineStarts returns the byte offset of every line start in src
func lineStarts(src []byte) []int {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lineAt returns the 0-based line holding offset
func lineAt(starts []int, offset int) int {
	return sort.Search(len(starts), func(i int) bool { return starts[i] > offset }) - 1
}

// checkboxRenderer renders TaskCheckBox nodes as interactive inputs.
// Unindexed checkboxes are rendered disabled.
type checkboxRenderer struct{}

func (r *checkboxRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindTaskCheckBox, r.renderTaskCheckBox)
}

func (r *checkboxRenderer) renderTaskCheckBox(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*TaskCheckBox)

	_, _ = w.WriteString(`<input type="checkbox" class="task-list-item-checkbox"`)
	if n.Indexed {
		_, _ = w.WriteString(` data-task-index="`)
		_, _ = w.WriteString(strconv.Itoa(n.Index))
		_ = w.WriteByte('"')
	} else {
		_, _ = w.WriteString(` disabled=""`)
	}
	if n.Checked {
		_, _ = w.WriteString(` checked=""`)
	}
	_, _ = w.WriteString("> ")
	return ast.WalkContinue, nil
}

// taskIndexExtension wires the checkbox transformer and renderer
type taskIndexExtension struct{}

func (e *taskIndexExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(&checkboxTransformer{}, 100),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&checkboxRenderer{}, 100),
	))
}
