// Package tui hosts the runner behind a pattern configuration form.
//
// The shell owns the configured pattern. Whenever the form produces a
// pattern with a different identity, the shell throws the current runner
// away and mounts a fresh one, so no leg, timer or speed edit survives a
// change of pattern.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/sar-runner/internal/pattern"
	"github.com/ensigniasec/sar-runner/internal/runner"
	"github.com/ensigniasec/sar-runner/internal/units"
)

// focusArea selects which pane receives keys.
type focusArea int

const (
	focusRunner focusArea = iota
	focusForm
)

// Model is the root Bubble Tea model.
type Model struct {
	form    form
	pattern pattern.Pattern
	runner  runner.Controller
	speed   units.Speed
	mounts  int

	// completed holds the key of the pattern last reported complete.
	completed string

	focus       focusArea
	keys        keyMap
	help        help.Model
	helpVisible bool
	zones       *zone.Manager

	width    int
	height   int
	quitting bool

	log *logrus.Entry
}

// NewModel constructs the shell around the pattern described by params. Each
// mounted runner starts at speed.
func NewModel(params pattern.Params, speed units.Speed, zones *zone.Manager) (Model, error) {
	p, err := pattern.New(params)
	if err != nil {
		return Model{}, fmt.Errorf("initial pattern: %w", err)
	}
	m := Model{
		form:    newForm(params),
		pattern: p,
		speed:   speed,
		focus:   focusRunner,
		keys:    newKeyMap(),
		help:    help.New(),
		zones:   zones,
		log:     logrus.WithField("component", "shell"),
	}
	m.mount()
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.runner.Init()
}

// Pattern returns the configured pattern.
func (m Model) Pattern() pattern.Pattern { return m.pattern }

// Runner returns the mounted runner.
func (m Model) Runner() runner.Controller { return m.runner }

// Mounts counts how many runners this shell has built.
func (m Model) Mounts() int { return m.mounts }

// SetPattern applies a configuration change. A nil pattern (the form does
// not describe a valid one) and a pattern with the current identity are both
// ignored; anything else replaces the pattern and remounts the runner.
func (m Model) SetPattern(p *pattern.Pattern) (Model, bool) {
	if p == nil {
		m.log.Debug("ignoring undefined pattern")
		return m, false
	}
	if p.Key() == m.pattern.Key() {
		return m, false
	}
	m.log.WithFields(logrus.Fields{"from": m.pattern.Key(), "to": p.Key()}).Info("pattern changed")
	m.pattern = *p
	m.completed = ""
	m.mount()
	return m, true
}

// mount builds a brand-new runner for the current pattern.
func (m *Model) mount() {
	m.runner = runner.New(
		runner.WithPattern(m.pattern),
		runner.WithSpeed(m.speed),
		runner.WithZones(m.zones),
	)
	m.mounts++
	if m.width > 0 {
		m.runner, _ = m.runner.Step(tea.WindowSizeMsg{Width: m.runnerWidth(), Height: m.height})
	}
}

// runnerWidth is the width left for the runner column beside the form.
func (m Model) runnerWidth() int {
	if m.width > formWidth+columnGap {
		return min(m.width-formWidth-columnGap, rightViewportMax)
	}
	return min(m.width, rightViewportMax)
}
