package cli

import (
	"fmt"
	"time"

	"tangutlex/internal/app"
	"tangutlex/internal/lexicon"
	"tangutlex/internal/render"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true)

	glyphStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8FAFC")).
			Bold(true)

	unknownStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

func lipglossStyle() render.Style {
	return render.Style{
		Heading: renderWith(headingStyle),
		Glyph:   renderWith(glyphStyle),
		Marker:  renderWith(unknownStyle),
		Muted:   renderWith(statusStyle),
	}
}

func renderWith(style lipgloss.Style) func(string) string {
	return func(s string) string { return style.Render(s) }
}

type item struct {
	title, desc, key string
}

func (i item) Title() string       { return i.key + ". " + i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

type model struct {
	app      *app.App
	state    sessionState
	dir      lexicon.Direction
	menu     list.Model
	input    textinput.Model
	results  viewport.Model
	style    render.Style
	query    string
	status   string
	summary  lexicon.Summary
	loadedAt time.Time
	reloadOK bool
	width    int
}

// updateMsg carries a dataset (re)load into the program.
type updateMsg struct {
	summary  lexicon.Summary
	loadedAt time.Time
	err      error
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return handleKeyActions(msg, m)
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		width := msg.Width - h
		height := msg.Height - v - 6
		if height < 5 {
			height = 5
		}
		m.width = width
		m.menu.SetSize(width, height)
		m.input.Width = width - 4
		m.results.Width = width
		m.results.Height = height
		return m, nil
	case updateMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Reload failed, keeping previous dataset: %v", msg.err)
			m.reloadOK = false
			return m, nil
		}
		m.summary = msg.summary
		m.loadedAt = msg.loadedAt
		m.status = msg.summary.String()
		m.reloadOK = true
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case stateAwaitingQuery:
		m.input, cmd = m.input.Update(msg)
	case stateDisplaying:
		m.results, cmd = m.results.Update(msg)
	default:
		m.menu, cmd = m.menu.Update(msg)
	}
	return m, cmd
}

func (m model) View() string {
	if m.state == stateExiting {
		return ""
	}

	status := statusStyle.Render(fmt.Sprintf("%d entries | loaded %s", m.summary.Total, m.loadedAt.Format("15:04:05")))
	header := fmt.Sprintf("%s\n%s\n", titleStyle("Tangut Raw Translator"), status)

	var body string
	switch m.state {
	case stateAwaitingQuery:
		body = headingStyle.Render(directionTitle(m.dir)) + "\n\n" + m.input.View()
	case stateDisplaying:
		body = m.results.View()
	default:
		body = m.menu.View()
	}

	footer := renderHelp(m)
	if m.status != "" {
		line := statusStyle.Render(m.status)
		if m.reloadOK {
			line = successStyle.Render(m.status)
		}
		footer = line + "\n" + footer
	}

	return docStyle.Render(header + "\n" + body + "\n\n" + footer)
}

func directionTitle(dir lexicon.Direction) string {
	if dir == lexicon.EnglishToScript {
		return "English -> Tangut"
	}
	return "Tangut -> English"
}

func renderHelp(m model) string {
	switch m.state {
	case stateAwaitingQuery:
		return statusStyle.Render("enter: look up | esc: back to menu | ctrl+c: quit")
	case stateDisplaying:
		return statusStyle.Render("up/down: scroll | enter/esc: back to menu | 4: clear | q: quit")
	default:
		return statusStyle.Render("1-4 or enter: choose | q: quit")
	}
}

func initialModel(a *app.App) model {
	items := make([]list.Item, 0, len(menuChoices))
	for _, c := range menuChoices {
		items = append(items, item{key: c.key, title: c.title, desc: c.desc})
	}
	menu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	menu.Title = "Choose translation direction"
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)
	menu.SetShowHelp(false)

	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 256

	m := model{
		app:     a,
		state:   stateAwaitingDirection,
		menu:    menu,
		input:   input,
		results: viewport.New(80, 20),
		style:   lipglossStyle(),
	}
	if a != nil {
		update := a.CurrentUpdate()
		m.summary = update.Summary
		m.loadedAt = update.LoadedAt
	}
	return m
}
