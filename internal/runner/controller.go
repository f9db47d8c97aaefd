// Package runner walks a user through a search pattern one leg at a time.
//
// State and Reduce hold the transition table (Run, Resume, Pause, Previous,
// Skip, Reset, TimerComplete) as plain values. Controller is the Bubble Tea
// model around them: it owns the leg timer, the speed input and the leg list.
package runner

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	zone "github.com/lrstanley/bubblezone"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/sar-runner/internal/legtimer"
	"github.com/ensigniasec/sar-runner/internal/pattern"
	"github.com/ensigniasec/sar-runner/internal/units"
)

// Controller is the Bubble Tea model for one run through one pattern. It is
// never reused across patterns: the host builds a new Controller instead.
type Controller struct {
	id    string
	state State

	// timer exists only while the state says a countdown is visible.
	timer    *legtimer.Timer
	timerLeg int

	onComplete func()

	keys         keyMap
	help         help.Model
	legs         list.Model
	progress     progress.Model
	speedInput   textinput.Model
	editingSpeed bool
	speedErr     string

	zones  *zone.Manager
	width  int
	height int

	log *logrus.Entry
}

// Option configures a Controller.
type Option func(*Controller)

// WithPattern runs p instead of the default creeping-line-ahead search.
func WithPattern(p pattern.Pattern) Option {
	return func(c *Controller) { c.state.Pattern = p }
}

// WithSpeed sets the initial travel speed.
func WithSpeed(s units.Speed) Option {
	return func(c *Controller) { c.state.Speed = s }
}

// WithOnComplete registers a hook called once when the timer finishes the
// last leg. A PatternCompleteMsg is emitted either way.
func WithOnComplete(fn func()) Option {
	return func(c *Controller) { c.onComplete = fn }
}

// WithZones enables clickable buttons using the given zone manager.
func WithZones(z *zone.Manager) Option {
	return func(c *Controller) { c.zones = z }
}

// New constructs a stopped Controller on leg 1.
func New(opts ...Option) Controller {
	c := Controller{
		id:    uuid.NewString(),
		state: NewState(nil, nil),
		keys:  newKeyMap(),
		help:  help.New(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	c.state.Pattern = c.state.Pattern.Reset()

	c.speedInput = textinput.New()
	c.speedInput.Prompt = ""
	c.speedInput.Width = speedInputWidth
	c.speedInput.CharLimit = speedInputLimit

	c.progress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(progressWidth))
	c.legs = newLegList(c.state.Pattern)
	c.keys.sync(c.state, false)

	c.log = logrus.WithFields(logrus.Fields{
		"runner":  c.id,
		"pattern": c.state.Pattern.Key(),
	})
	c.log.Debug("runner created")
	return c
}

// ID identifies this controller instance.
func (c Controller) ID() string { return c.id }

// State returns the current runner state.
func (c Controller) State() State { return c.state }

// Timer returns the live leg timer, if any.
func (c Controller) Timer() (legtimer.Timer, bool) {
	if c.timer == nil {
		return legtimer.Timer{}, false
	}
	return *c.timer, true
}

// EditingSpeed reports whether the speed input has focus.
func (c Controller) EditingSpeed() bool { return c.editingSpeed }

// Init implements tea.Model. A new controller is stopped, so there is nothing
// to schedule.
func (c Controller) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (c Controller) Update(msg tea.Msg) (tea.Model, tea.Cmd) { // nolint:ireturn
	return c.Step(msg)
}

// Step is Update with a concrete return type, for hosts that hold a
// Controller by value.
func (c Controller) Step(msg tea.Msg) (Controller, tea.Cmd) {
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		c.width, c.height = x.Width, x.Height
		c.resizeLegs()
		return c, nil

	case tea.KeyMsg:
		if c.editingSpeed {
			return c.handleSpeedKey(x)
		}
		return c.handleKey(x)

	case tea.MouseMsg:
		return c.handleMouse(x)

	case legtimer.TickMsg:
		if c.timer == nil || x.ID != c.timer.ID() {
			c.log.WithField("timer", x.ID).Debug("ignoring tick from replaced timer")
			return c, nil
		}
		wasRunning := c.timer.Running()
		next, cmd := c.timer.Update(x)
		c.timer = &next
		// Completion is applied on the tick itself so a key already queued
		// behind it sees the next leg.
		if wasRunning && next.Completed() {
			return c.Dispatch(ActionTimerComplete)
		}
		return c, cmd
	}
	return c, nil
}

// Dispatch applies a transition and reconciles the timer, leg list and key
// bindings with the new state.
func (c Controller) Dispatch(a Action) (Controller, tea.Cmd) {
	if !c.state.Allowed(a) {
		c.log.WithFields(logrus.Fields{"action": a.String(), "leg": c.state.Leg()}).Debug("transition rejected")
		return c, nil
	}
	prevLeg := c.state.Leg()
	next, effect := Reduce(c.state, a)
	c.state = next
	c.log.WithFields(logrus.Fields{
		"action":  a.String(),
		"from":    prevLeg,
		"to":      next.Leg(),
		"running": next.Running,
	}).Debug("transition")

	if next.Leg() != prevLeg {
		// The speed widget belongs to a leg; a pending edit does not carry over.
		c.stopEditingSpeed()
	}

	cmds := []tea.Cmd{c.syncTimer()}
	c.legs.SetItems(legItems(c.state.Pattern))
	c.legs.Select(min(c.state.Leg(), c.state.Pattern.LegCount()) - 1)
	c.keys.sync(c.state, c.editingSpeed)

	if effect == EffectPatternComplete {
		c.log.Info("search pattern complete")
		if c.onComplete != nil {
			c.onComplete()
		}
		key := c.state.Pattern.Key()
		cmds = append(cmds, func() tea.Msg { return PatternCompleteMsg{Key: key} })
	}
	return c, tea.Batch(cmds...)
}

// syncTimer keeps exactly one timer alive while a countdown is visible. The
// timer is keyed by leg: a leg change or a fresh Run/Resume builds a new one,
// while a speed change leaves the running countdown alone.
func (c *Controller) syncTimer() tea.Cmd {
	if !c.state.TimerVisible() {
		c.timer = nil
		c.timerLeg = 0
		return nil
	}
	if c.timer != nil && c.timerLeg == c.state.Leg() {
		return nil
	}
	t := legtimer.New(c.state.RunTime(), true)
	c.timer = &t
	c.timerLeg = c.state.Leg()
	c.log.WithFields(logrus.Fields{"timer": t.ID(), "leg": c.timerLeg, "seconds": t.RunTime()}).Debug("leg timer started")
	return t.Init()
}

func (c *Controller) resizeLegs() {
	if c.width <= 0 {
		return
	}
	height := defaultListHeight
	if c.height > 0 {
		height = max(c.height-panelOverheadLines, minListHeight)
	}
	c.legs.SetSize(c.width, height)
	c.progress.Width = min(c.width, progressWidth)
}
