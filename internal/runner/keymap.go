package runner

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap defines the runner's key bindings. Bindings for transitions that
// are not currently allowed are disabled so help only shows what works.
type keyMap struct {
	Run       key.Binding
	Pause     key.Binding
	Toggle    key.Binding
	Previous  key.Binding
	Skip      key.Binding
	Reset     key.Binding
	EditSpeed key.Binding
	CycleUnit key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Run: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "run/resume"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "run/pause"),
		),
		Previous: key.NewBinding(
			key.WithKeys("b", "left"),
			key.WithHelp("b/←", "previous leg"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s", "right"),
			key.WithHelp("s/→", "skip leg"),
		),
		Reset: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reset"),
		),
		EditSpeed: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit speed"),
		),
		CycleUnit: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "speed unit"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Run, k.Pause, k.Previous, k.Skip, k.Reset, k.EditSpeed, k.CycleUnit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Run, k.Pause},
		{k.Previous, k.Skip, k.Reset},
		{k.EditSpeed, k.CycleUnit, k.Confirm, k.Cancel},
	}
}

// sync enables exactly the bindings whose transitions are allowed.
func (k *keyMap) sync(s State, editing bool) {
	k.Run.SetEnabled(!editing && (s.Allowed(ActionRun) || s.Allowed(ActionResume)))
	k.Pause.SetEnabled(!editing && s.Allowed(ActionPause))
	k.Toggle.SetEnabled(!editing && !s.Complete())
	k.Previous.SetEnabled(!editing && s.Allowed(ActionPrevious))
	k.Skip.SetEnabled(!editing && s.Allowed(ActionSkip))
	k.Reset.SetEnabled(!editing && s.Allowed(ActionReset))
	k.EditSpeed.SetEnabled(!editing)
	k.CycleUnit.SetEnabled(!editing)
	k.Confirm.SetEnabled(editing)
	k.Cancel.SetEnabled(editing)
}
