package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNotesModel_Load(t *testing.T) {
	_, repo := setupNotes(t)
	m := NewNotesModel(repo)
	drain(t, m, m.Init())

	if m.paginator.Len() != 3 {
		t.Fatalf("got %d notes, want 3", m.paginator.Len())
	}
	view := m.View()
	for _, want := range []string{"done.md", "groceries.md", "plain.md", "0/2", "1/1"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestNotesModel_IncompleteOnly(t *testing.T) {
	_, repo := setupNotes(t)
	m := NewNotesModel(repo)
	drain(t, m, m.Init())

	_, cmd := m.Update(runes("i"))
	drain(t, m, cmd)

	if m.paginator.Len() != 1 || m.Selected() != "groceries.md" {
		t.Errorf("incomplete notes = %d, selected %q", m.paginator.Len(), m.Selected())
	}
}

func TestNotesModel_Filter(t *testing.T) {
	_, repo := setupNotes(t)
	m := NewNotesModel(repo)
	drain(t, m, m.Init())

	m.Update(runes("/"))
	for _, r := range "groc" {
		m.Update(runes(string(r)))
	}
	if m.paginator.Len() != 1 || m.Selected() != "groceries.md" {
		t.Fatalf("filtered notes = %d, selected %q", m.paginator.Len(), m.Selected())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.paginator.Len() != 3 {
		t.Errorf("esc should clear the filter, got %d notes", m.paginator.Len())
	}
}

func TestNotesModel_Open(t *testing.T) {
	_, repo := setupNotes(t)
	m := NewNotesModel(repo)
	drain(t, m, m.Init())

	m.Update(runes("j"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected open command")
	}
	msg, ok := cmd().(OpenChecklistMsg)
	if !ok || msg.Name != "groceries.md" {
		t.Errorf("unexpected message %#v", msg)
	}
}
