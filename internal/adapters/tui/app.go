package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"tasknote/internal/adapters/tui/views"
	"tasknote/internal/logging"
	"tasknote/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewNotes ViewState = iota
	ViewChecklist
	ViewHelp
)

// App is the main TUI application model
type App struct {
	repo   ports.NoteRepository
	editor ports.EditorOpener
	logger *log.Logger

	state     ViewState
	prevState ViewState
	notes     *views.NotesModel
	checklist *views.ChecklistModel
	help      *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. ed and renderer may be nil.
func NewApp(repo ports.NoteRepository, renderer ports.Renderer, ed ports.EditorOpener, logger *log.Logger) *App {
	if logger == nil {
		logger = logging.Discard()
	}
	return &App{
		repo:      repo,
		editor:    ed,
		logger:    logger,
		state:     ViewNotes,
		notes:     views.NewNotesModel(repo),
		checklist: views.NewChecklistModel(repo, renderer),
		help:      views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.notes.Init()
}

// State returns the current view
func (a *App) State() ViewState {
	return a.state
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.notes.SetSize(msg.Width, msg.Height)
		a.checklist.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.OpenChecklistMsg:
		a.logger.Debug("open checklist", "note", msg.Name)
		a.state = ViewChecklist
		return a, a.checklist.SetNote(msg.Name)

	case views.SwitchToNotesMsg:
		a.state = ViewNotes
		return a, a.notes.Reload()

	case views.SwitchToHelpMsg:
		a.prevState = a.state
		a.state = ViewHelp
		return a, nil

	case views.OpenEditorMsg:
		a.logger.Debug("open editor", "path", msg.Path, "line", msg.Line)
		return a, a.openEditor(msg.Path, msg.Line)

	case editorFinishedMsg:
		if msg.err != nil {
			a.logger.Error("editor failed", "err", msg.err)
		}
		return a, a.reloadCurrent()
	}

	if views.IsCloseHelp(msg) {
		a.state = a.prevState
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewNotes:
		_, cmd = a.notes.Update(msg)
	case ViewChecklist:
		_, cmd = a.checklist.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string, line int) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.Command(path, line)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// reloadCurrent re-reads the view the editor returned to
func (a *App) reloadCurrent() tea.Cmd {
	if a.state == ViewChecklist {
		return a.checklist.Reload()
	}
	return a.notes.Reload()
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewChecklist:
		return a.checklist.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.notes.View()
	}
}
