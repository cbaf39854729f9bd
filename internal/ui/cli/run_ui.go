package cli

import (
	"tangutlex/internal/app"

	tea "github.com/charmbracelet/bubbletea"
)

func runUI(a *app.App) error {
	m := initialModel(a)
	p := tea.NewProgram(m, tea.WithAltScreen())

	a.SetUpdateHandler(func(update app.Update) {
		p.Send(updateMsg{
			summary:  update.Summary,
			loadedAt: update.LoadedAt,
			err:      update.Err,
		})
	})
	defer a.SetUpdateHandler(nil)

	_, err := p.Run()
	return err
}
