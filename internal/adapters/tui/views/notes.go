package views

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tasknote/internal/adapters/tui/styles"
	"tasknote/internal/application/commands"
	"tasknote/internal/domain"
	"tasknote/internal/ports"
)

// NotesKeyMap defines key bindings for the notes list
type NotesKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Open       key.Binding
	Edit       key.Binding
	Filter     key.Binding
	Incomplete key.Binding
	Reload     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var NotesKeys = NotesKeyMap{
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
	Open: key.NewBinding(
		key.WithKeys("enter", "l", "right"),
		key.WithHelp("enter", "open"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Incomplete: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "incomplete only"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
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

// NotesModel lists the notes of the notes directory with their progress
type NotesModel struct {
	ViewState

	repo      ports.NoteRepository
	rows      []NoteFocus
	paginator *Paginator[NoteFocus]

	filter         textinput.Model
	filtering      bool
	incompleteOnly bool
}

// NewNotesModel creates a new notes list model
func NewNotesModel(repo ports.NoteRepository) *NotesModel {
	ti := textinput.New()
	ti.Placeholder = "filter notes..."
	ti.CharLimit = 100
	ti.Width = 40

	return &NotesModel{
		repo:      repo,
		paginator: NewPaginator(15, noteKey),
		filter:    ti,
	}
}

// Init initializes the notes list
func (m *NotesModel) Init() tea.Cmd {
	return m.Reload()
}

// Reload reads the notes directory again
func (m *NotesModel) Reload() tea.Cmd {
	repo := m.repo
	incompleteOnly := m.incompleteOnly
	return func() tea.Msg {
		notes, err := commands.NewListNotesCommand(repo, incompleteOnly).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return notesLoadedMsg{notes}
	}
}

type notesLoadedMsg struct {
	notes []domain.Note
}

// Update handles messages for the notes list
func (m *NotesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case notesLoadedMsg:
		m.rows = make([]NoteFocus, len(msg.notes))
		for i := range msg.notes {
			m.rows[i] = FocusOn(&msg.notes[i])
		}
		m.applyFilter()
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		m.ClearMessage()

		switch {
		case key.Matches(msg, NotesKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, NotesKeys.Up):
			m.paginator.CursorUp()
		case key.Matches(msg, NotesKeys.Down):
			m.paginator.CursorDown()
		case key.Matches(msg, NotesKeys.PageUp):
			m.paginator.PrevPage()
		case key.Matches(msg, NotesKeys.PageDown):
			m.paginator.NextPage()

		case key.Matches(msg, NotesKeys.Open):
			if row, ok := m.paginator.Selected(); ok {
				return m, switchTo(OpenChecklistMsg{Name: row.Name()})
			}

		case key.Matches(msg, NotesKeys.Edit):
			if row, ok := m.paginator.Selected(); ok {
				return m, switchTo(OpenEditorMsg{Path: row.Note.Path, Line: -1})
			}

		case key.Matches(msg, NotesKeys.Filter):
			m.filtering = true
			m.filter.Focus()
			return m, textinput.Blink

		case key.Matches(msg, NotesKeys.Incomplete):
			m.incompleteOnly = !m.incompleteOnly
			return m, m.Reload()

		case key.Matches(msg, NotesKeys.Reload):
			return m, m.Reload()

		case key.Matches(msg, NotesKeys.Help):
			return m, switchTo(SwitchToHelpMsg{})
		}
	}

	return m, nil
}

func (m *NotesModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyFilter()
		return m, nil
	case "enter":
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case "up", "down":
		if msg.String() == "up" {
			m.paginator.CursorUp()
		} else {
			m.paginator.CursorDown()
		}
		return m, nil
	}

	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.paginator.Top()
	}
	m.applyFilter()
	return m, cmd
}

// applyFilter ranks rows by fuzzy score against the filter query
func (m *NotesModel) applyFilter() {
	query := strings.TrimSpace(m.filter.Value())
	if query == "" {
		m.paginator.SetItems(m.rows)
		return
	}

	type scored struct {
		row   NoteFocus
		score int
	}
	var matches []scored
	for _, r := range m.rows {
		score := max(commands.FuzzyScore(r.Note.Name, query), commands.FuzzyScore(r.Note.Title, query))
		if score > 0 {
			matches = append(matches, scored{r, score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	visible := make([]NoteFocus, len(matches))
	for i, s := range matches {
		visible[i] = s.row
	}
	m.paginator.SetItems(visible)
}

// Selected returns the name of the note under the cursor
func (m *NotesModel) Selected() string {
	row, _ := m.paginator.Selected()
	return row.Name()
}

// View renders the notes list
func (m *NotesModel) View() string {
	caption := fmt.Sprintf("%d notes", m.paginator.Len())
	if m.incompleteOnly {
		caption += " with open tasks"
	}
	vb := NewViewBuilder().Title("Notes", caption)

	if m.filtering || m.filter.Value() != "" {
		style := styles.InputField
		if m.filtering {
			style = styles.InputFocused
		}
		vb.Line(style.Render(m.filter.View())).BlankLine()
	}

	if m.paginator.Len() == 0 {
		vb.Muted("No notes found").BlankLine()
	}

	start, page := m.paginator.Page()
	nameWidth := 0
	for _, r := range page {
		nameWidth = max(nameWidth, lipgloss.Width(r.Name()))
	}

	for i, r := range page {
		name := r.Name() + strings.Repeat(" ", nameWidth-lipgloss.Width(r.Name()))
		if start+i == m.paginator.Cursor() {
			vb.Line(styles.RowSelected.Render("> "+name) + "  " + r.Progress(20))
		} else {
			vb.Line(styles.Row.Render("  " + name + "  " + r.Progress(20)))
		}
	}

	vb.Pager(m.paginator.Pages())
	vb.Footer(m.ViewState, NotesKeys.Open, NotesKeys.Edit, NotesKeys.Filter, NotesKeys.Incomplete, NotesKeys.Help, NotesKeys.Quit)

	return vb.String()
}
