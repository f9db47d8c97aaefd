package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap defines global key bindings plus the form's navigation keys.
type keyMap struct {
	Quit     key.Binding
	Help     key.Binding
	Focus    key.Binding
	Up       key.Binding
	Down     key.Binding
	PrevKind key.Binding
	NextKind key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch form/runner"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "shift+tab"),
			key.WithHelp("↑", "previous field"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "enter"),
			key.WithHelp("↓/enter", "next field"),
		),
		PrevKind: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "previous pattern"),
		),
		NextKind: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next pattern"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Focus, k.Help, k.Quit},
		{k.Up, k.Down, k.PrevKind, k.NextKind},
	}
}
