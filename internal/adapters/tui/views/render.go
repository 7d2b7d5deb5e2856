package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"tasknote/internal/adapters/tui/styles"
	"tasknote/internal/domain"
)

// RenderHelpLine renders key bindings as a help line separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styles.HelpKey.Render(h.Key)+" "+styles.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderProgress renders "done/total" next to a progress bar
func RenderProgress(completed, total int, progress float64, width int) string {
	if total == 0 {
		return styles.MutedText.Render("no tasks")
	}
	return fmt.Sprintf("%s %s", styles.ProgressBar(progress, width), styles.MutedText.Render(fmt.Sprintf("%d/%d", completed, total)))
}

// RenderCheckbox renders a task checkbox glyph
func RenderCheckbox(checked bool) string {
	if checked {
		return styles.CheckboxDone.Render("[x]")
	}
	return styles.CheckboxOpen.Render("[ ]")
}

// RenderTask renders one checklist row, nested by the task's indentation
func RenderTask(t domain.Task, selected bool) string {
	label := styles.TaskOpen.Render(t.Label)
	if t.Checked {
		label = styles.TaskDone.Render(t.Label)
	}

	prefix := "  "
	if selected {
		prefix = styles.RowSelected.Render(">") + " "
	}
	return prefix + strings.Repeat("  ", len(t.Indent)/2) + RenderCheckbox(t.Checked) + " " + label
}

// ViewBuilder assembles a view: title, body lines, pager, status and help
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds the title and an optional caption under it
func (v *ViewBuilder) Title(title, caption string) *ViewBuilder {
	v.b.WriteString(styles.Title.Render(title))
	v.b.WriteString("\n\n")
	if caption != "" {
		v.b.WriteString(styles.Subtitle.Render(caption))
		v.b.WriteString("\n\n")
	}
	return v
}

// Line adds a line of text
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

// BlankLine adds a blank line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

// Muted adds muted text followed by a newline
func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	return v.Line(styles.MutedText.Render(text))
}

// Pager adds the page indicator when there is more than one page
func (v *ViewBuilder) Pager(current, total int) *ViewBuilder {
	if total > 1 {
		v.BlankLine().Muted(fmt.Sprintf("page %d/%d", current, total))
	}
	return v
}

// Footer adds the status line of s, if any, and the help line
func (v *ViewBuilder) Footer(s ViewState, bindings ...key.Binding) *ViewBuilder {
	v.BlankLine()
	if s.Message != "" {
		style := styles.Success
		if s.MessageErr {
			style = styles.ErrorMsg
		}
		v.b.WriteString(style.Render(s.Message))
		v.b.WriteString("\n\n")
	}
	v.b.WriteString(RenderHelpLine(bindings...))
	return v
}

// String returns the view wrapped in the app style
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}
