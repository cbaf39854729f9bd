package cli

import (
	"context"
	"fmt"
	"strings"

	"tangutlex/internal/lexicon"

	tea "github.com/charmbracelet/bubbletea"
)

func handleKeyActions(msg tea.KeyMsg, m model) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.state = stateExiting
		return m, tea.Quit
	}

	switch m.state {
	case stateAwaitingQuery:
		switch msg.String() {
		case "esc":
			m.input.Blur()
			m.state = stateAwaitingDirection
			return m, nil
		case "enter":
			return runLookup(m)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case stateDisplaying:
		switch msg.String() {
		case "q":
			return chooseAction(m, "3")
		case "1", "2", "4":
			return chooseAction(m, msg.String())
		case "enter", "esc", "backspace":
			m.state = stateAwaitingDirection
			return m, nil
		}
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return chooseAction(m, "3")
	case "1", "2", "3", "4":
		return chooseAction(m, msg.String())
	case "enter":
		if selected, ok := m.menu.SelectedItem().(item); ok {
			return chooseAction(m, selected.key)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func chooseAction(m model, key string) (model, tea.Cmd) {
	switch key {
	case "1", "2":
		m.dir = lexicon.ScriptToEnglish
		if key == "2" {
			m.dir = lexicon.EnglishToScript
		}
		m.state = stateAwaitingQuery
		m.input.Reset()
		return m, m.input.Focus()
	case "3":
		m.state = stateExiting
		return m, tea.Quit
	case "4":
		m.results.SetContent("")
		m.query = ""
		m.status = "Display cleared."
		m.reloadOK = false
		m.state = stateAwaitingDirection
	}
	return m, nil
}

func runLookup(m model) (model, tea.Cmd) {
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		m.status = "Enter a query first."
		m.reloadOK = false
		return m, nil
	}
	if m.app == nil {
		m.status = "No dataset loaded."
		m.reloadOK = false
		return m, nil
	}

	result, err := m.app.Translate(context.Background(), m.dir, query)
	if err != nil {
		m.status = fmt.Sprintf("Lookup failed: %v", err)
		m.reloadOK = false
		return m, nil
	}

	m.query = query
	m.results.SetContent(result.Render(m.style))
	m.results.GotoTop()
	m.input.Blur()
	m.status = fmt.Sprintf("%d of %d unmatched", result.Unmatched(), result.Segments())
	m.reloadOK = false
	m.state = stateDisplaying
	return m, nil
}
