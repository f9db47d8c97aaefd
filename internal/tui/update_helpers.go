package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKey processes global keys, then routes the rest to the focused pane.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) { // nolint:ireturn
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		m.help.ShowAll = m.helpVisible
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		return m.toggleFocus()
	}

	if m.focus == focusForm {
		return m.handleFormKey(msg)
	}
	var cmd tea.Cmd
	m.runner, cmd = m.runner.Step(msg)
	return m, cmd
}

func (m Model) toggleFocus() (Model, tea.Cmd) {
	if m.focus == focusForm {
		m.focus = focusRunner
		m.form.Blur()
		return m, nil
	}
	m.focus = focusForm
	return m, m.form.Focus()
}

// handleFormKey feeds the form and applies whatever pattern it now describes.
func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	var (
		cmd     tea.Cmd
		changed bool
	)
	m.form, cmd, changed = m.form.Update(msg)
	if changed {
		m, _ = m.SetPattern(m.form.Pattern())
	}
	return m, cmd
}
