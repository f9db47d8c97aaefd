package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ensigniasec/sar-runner/internal/runner"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { // nolint:ireturn
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = x.Width, x.Height
		var cmd tea.Cmd
		m.runner, cmd = m.runner.Step(tea.WindowSizeMsg{Width: m.runnerWidth(), Height: x.Height})
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(x)

	case runner.PatternCompleteMsg:
		// A runner replaced before this message arrived reports an old key.
		if x.Key == m.pattern.Key() {
			m.completed = x.Key
		}
		return m, nil
	}

	// Timer ticks, completions and mouse events belong to the runner.
	var cmd tea.Cmd
	m.runner, cmd = m.runner.Step(msg)
	return m, cmd
}
