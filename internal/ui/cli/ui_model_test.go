package cli

import (
	"errors"
	"strings"
	"testing"
	"time"

	"tangutlex/internal/lexicon"

	tea "github.com/charmbracelet/bubbletea"
)

func press(t *testing.T, m model, msg tea.KeyMsg) (model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	state, ok := updated.(model)
	if !ok {
		t.Fatalf("expected model type, got %T", updated)
	}
	return state, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_ScriptLookupFlow(t *testing.T) {
	m := initialModel(newTestApp(t))
	if m.state != stateAwaitingDirection {
		t.Fatalf("expected initial state awaiting_direction, got %v", m.state)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != stateAwaitingQuery || m.dir != lexicon.ScriptToEnglish {
		t.Fatalf("expected script query after enter on first item, got %v/%v", m.state, m.dir)
	}

	m, _ = press(t, m, runes("𗳄𘀀"))
	if got := m.input.Value(); got != "𗳄𘀀" {
		t.Fatalf("expected input to hold query, got %q", got)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != stateDisplaying {
		t.Fatalf("expected displaying state, got %v", m.state)
	}
	if m.query != "𗳄𘀀" {
		t.Fatalf("unexpected query %q", m.query)
	}
	if m.status != "1 of 2 unmatched" {
		t.Fatalf("unexpected status %q", m.status)
	}
	if view := m.results.View(); !strings.Contains(view, "UNKNOWN CHARACTER") {
		t.Fatalf("expected unknown marker in results view, got %q", view)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != stateAwaitingDirection {
		t.Fatalf("expected menu after esc, got %v", m.state)
	}
}

func TestModel_EnglishLookupAndClear(t *testing.T) {
	m := initialModel(newTestApp(t))

	m, cmd := press(t, m, runes("2"))
	if m.state != stateAwaitingQuery || m.dir != lexicon.EnglishToScript {
		t.Fatalf("expected english query after 2, got %v/%v", m.state, m.dir)
	}
	if cmd == nil {
		t.Fatal("expected focus command for the input")
	}

	m, _ = press(t, m, runes("heaven"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.status != "0 of 1 unmatched" {
		t.Fatalf("unexpected status %q", m.status)
	}

	m, _ = press(t, m, runes("4"))
	if m.state != stateAwaitingDirection {
		t.Fatalf("expected menu after clear, got %v", m.state)
	}
	if m.query != "" || m.status != "Display cleared." {
		t.Fatalf("expected cleared display, got query=%q status=%q", m.query, m.status)
	}
}

func TestModel_EmptyQueryStaysInInput(t *testing.T) {
	m := initialModel(newTestApp(t))
	m, _ = press(t, m, runes("1"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.state != stateAwaitingQuery {
		t.Fatalf("expected to stay in query state, got %v", m.state)
	}
	if m.status != "Enter a query first." {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestModel_QuitFromMenu(t *testing.T) {
	m := initialModel(newTestApp(t))

	m, cmd := press(t, m, runes("q"))
	if m.state != stateExiting {
		t.Fatalf("expected exiting state, got %v", m.state)
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Fatal("expected empty view once exiting")
	}
}

func TestModel_ReloadUpdates(t *testing.T) {
	m := initialModel(newTestApp(t))
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	updated, _ := m.Update(updateMsg{summary: lexicon.Summary{Total: 5, MissingPhonetics: 1}, loadedAt: at})
	m = updated.(model)
	if m.summary.Total != 5 || !m.loadedAt.Equal(at) {
		t.Fatalf("expected summary to be replaced, got %+v", m.summary)
	}
	if !m.reloadOK || !strings.Contains(m.status, "Loaded 5 entries.") {
		t.Fatalf("unexpected status %q", m.status)
	}

	updated, _ = m.Update(updateMsg{err: errors.New("bad json")})
	m = updated.(model)
	if m.summary.Total != 5 {
		t.Fatal("failed reload must keep the previous summary")
	}
	if !strings.Contains(m.status, "Reload failed") {
		t.Fatalf("unexpected status %q", m.status)
	}
}
