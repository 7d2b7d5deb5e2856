package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tasknote/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return closeHelpMsg{}
			}
		}
	}

	return m, nil
}

// closeHelpMsg returns to the view that opened help
type closeHelpMsg struct{}

// IsCloseHelp reports whether msg asks to leave the help view
func IsCloseHelp(msg tea.Msg) bool {
	_, ok := msg.(closeHelpMsg)
	return ok
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Tasknote Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render("Markdown checklists in a notes directory"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Notes"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move up/down"))
	b.WriteString(helpLine("Enter / l", "Open checklist"))
	b.WriteString(helpLine("/", "Filter notes by name or title"))
	b.WriteString(helpLine("i", "Only notes with open tasks"))
	b.WriteString(helpLine("e", "Edit note"))
	b.WriteString(helpLine("r", "Reload"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Checklist"))
	b.WriteString("\n")
	b.WriteString(helpLine("Space / Enter / x", "Toggle task"))
	b.WriteString(helpLine("a / A", "Check all / uncheck all"))
	b.WriteString(helpLine("e", "Edit note at task line"))
	b.WriteString(helpLine("y", "Copy rendered HTML"))
	b.WriteString(helpLine("Esc / h", "Back to notes"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Task lines"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  - [ ] open task"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  - [x] done task"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  Tasks in frontmatter or fenced code are ignored"))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
