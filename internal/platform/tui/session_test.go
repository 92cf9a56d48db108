package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
)

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm, cmd
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	m := NewSessionModel(nil, core.DefaultConfig(), nil)

	m, cmd := sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame {
		t.Fatalf("screen = %d after enter, want game", m.screen)
	}
	if cmd == nil {
		t.Error("starting a game should schedule a tick")
	}
	if m.lastGameID == "" {
		t.Error("selected game should be remembered")
	}

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu || m.quitting {
		t.Fatalf("esc in game: screen = %d, quitting = %v", m.screen, m.quitting)
	}
	if m.menu.items[m.menu.cursor].GameID != m.lastGameID {
		t.Error("menu should reopen on the last played game")
	}
}

func TestSessionScoreboard(t *testing.T) {
	m := NewSessionModel(nil, core.DefaultConfig(), nil)

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatalf("screen = %d after tab, want scores", m.screen)
	}

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Errorf("esc on scoreboard: screen = %d, want menu", m.screen)
	}
}

func TestSessionQuit(t *testing.T) {
	m := NewSessionModel(nil, core.DefaultConfig(), nil)

	m, cmd := sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !m.quitting || cmd == nil {
		t.Error("q in the menu should end the session")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}
