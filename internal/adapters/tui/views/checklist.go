package views

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tasknote/internal/application/commands"
	"tasknote/internal/domain"
	"tasknote/internal/ports"
)

// ChecklistKeyMap defines key bindings for the checklist view
type ChecklistKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Toggle   key.Binding
	CheckAll key.Binding
	ClearAll key.Binding
	Edit     key.Binding
	CopyHTML key.Binding
	Back     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var ChecklistKeys = ChecklistKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "prev page"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "next page"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "enter", "x"),
		key.WithHelp("space", "toggle"),
	),
	CheckAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "check all"),
	),
	ClearAll: key.NewBinding(
		key.WithKeys("A"),
		key.WithHelp("A", "uncheck all"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	CopyHTML: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy html"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "h", "left"),
		key.WithHelp("esc", "back"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ChecklistModel shows the tasks of one note and toggles them by ordinal
type ChecklistModel struct {
	ViewState
	NoteFocus

	repo      ports.NoteRepository
	renderer  ports.Renderer
	copy      func(string) error
	paginator *Paginator[domain.Task]

	name string
}

// NewChecklistModel creates a new checklist model. renderer may be nil, in
// which case copying HTML is unavailable.
func NewChecklistModel(repo ports.NoteRepository, renderer ports.Renderer) *ChecklistModel {
	return &ChecklistModel{
		repo:      repo,
		renderer:  renderer,
		copy:      clipboard.WriteAll,
		paginator: NewPaginator(15, taskKey),
	}
}

// SetNote selects the note to show and returns the command loading it
func (m *ChecklistModel) SetNote(name string) tea.Cmd {
	if name != m.name {
		m.paginator.Reset()
		m.NoteFocus = NoteFocus{}
	}
	m.name = name
	m.ClearMessage()
	return m.Reload()
}

// Init initializes the checklist
func (m *ChecklistModel) Init() tea.Cmd {
	return m.Reload()
}

// Reload reads the note again
func (m *ChecklistModel) Reload() tea.Cmd {
	repo, name := m.repo, m.name
	return func() tea.Msg {
		result, err := commands.NewStatsCommand(repo, name).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return checklistLoadedMsg{result}
	}
}

type checklistLoadedMsg struct {
	result *commands.StatsResult
}

// Update handles messages for the checklist
func (m *ChecklistModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case checklistLoadedMsg:
		if msg.result.Note.Name != m.name {
			return m, nil
		}
		m.NoteFocus = NoteFocus{Note: msg.result.Note, Stats: msg.result.Stats}
		m.paginator.SetItems(msg.result.Tasks)
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case successMsg:
		m.SetMessage(msg.message, false)
		return m, m.Reload()

	case checklistCopiedMsg:
		m.SetMessage(fmt.Sprintf("Copied HTML with %d indexed tasks", msg.tasks), false)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, ChecklistKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, ChecklistKeys.Back):
			return m, switchTo(SwitchToNotesMsg{})

		case key.Matches(msg, ChecklistKeys.Up):
			m.paginator.CursorUp()
		case key.Matches(msg, ChecklistKeys.Down):
			m.paginator.CursorDown()
		case key.Matches(msg, ChecklistKeys.PageUp):
			m.paginator.PrevPage()
		case key.Matches(msg, ChecklistKeys.PageDown):
			m.paginator.NextPage()

		case key.Matches(msg, ChecklistKeys.Toggle):
			if t, ok := m.paginator.Selected(); ok {
				return m, m.toggle(t.Ordinal)
			}

		case key.Matches(msg, ChecklistKeys.CheckAll):
			return m, m.setAll(true)

		case key.Matches(msg, ChecklistKeys.ClearAll):
			return m, m.setAll(false)

		case key.Matches(msg, ChecklistKeys.Edit):
			if m.Note != nil {
				line := -1
				if t, ok := m.paginator.Selected(); ok {
					line = t.Line
				}
				return m, switchTo(OpenEditorMsg{Path: m.Note.Path, Line: line})
			}

		case key.Matches(msg, ChecklistKeys.CopyHTML):
			return m, m.copyHTML()

		case key.Matches(msg, ChecklistKeys.Help):
			return m, switchTo(SwitchToHelpMsg{})
		}
	}

	return m, nil
}

func (m *ChecklistModel) toggle(index int) tea.Cmd {
	repo, name := m.repo, m.name
	return func() tea.Msg {
		result, err := commands.NewToggleCommand(repo, name, index).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return successMsg{result.Message}
	}
}

func (m *ChecklistModel) setAll(checked bool) tea.Cmd {
	repo, name := m.repo, m.name
	return func() tea.Msg {
		result, err := commands.NewSetAllCommand(repo, name, checked).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return successMsg{result.Message}
	}
}

func (m *ChecklistModel) copyHTML() tea.Cmd {
	if m.renderer == nil {
		return nil
	}
	repo, renderer, name, copyFn := m.repo, m.renderer, m.name, m.copy
	return func() tea.Msg {
		result, err := commands.NewRenderCommand(repo, renderer, name, false).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		if err := copyFn(result.HTML); err != nil {
			return errMsg{fmt.Errorf("copy to clipboard: %w", err)}
		}
		return checklistCopiedMsg{tasks: result.Tasks}
	}
}

type checklistCopiedMsg struct {
	tasks int
}

// Current returns the name of the note being shown
func (m *ChecklistModel) Current() string {
	return m.name
}

// View renders the checklist
func (m *ChecklistModel) View() string {
	title := m.Title()
	if title == "" {
		title = m.name
	}
	vb := NewViewBuilder().Title(title, "")
	vb.Line(m.Progress(30)).BlankLine()

	if m.paginator.Len() == 0 {
		vb.Muted("This note has no tasks").BlankLine()
	}

	start, page := m.paginator.Page()
	for i, t := range page {
		vb.Line(RenderTask(t, start+i == m.paginator.Cursor()))
	}

	vb.Pager(m.paginator.Pages())
	vb.Footer(m.ViewState, ChecklistKeys.Toggle, ChecklistKeys.CheckAll, ChecklistKeys.ClearAll, ChecklistKeys.Edit, ChecklistKeys.CopyHTML, ChecklistKeys.Back)

	return vb.String()
}
