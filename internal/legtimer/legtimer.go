// Package legtimer is a one-second countdown for a single search leg.
//
// A Timer counts down from its run time once per second. The tick that
// reaches zero stops it and sets Completed, so the parent handles completion
// in the same Update as that tick, ahead of any message still queued. It
// never re-arms: the parent builds a new Timer for every leg. Every Timer has its own ID and ignores ticks addressed
// to any other ID, so replacing or dropping a Timer cancels its pending tick.
package legtimer

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

const tickInterval = time.Second

// TickMsg advances the timer with the matching ID.
type TickMsg struct{ ID string }

// Timer is a per-leg countdown.
type Timer struct {
	id        string
	runTime   int
	remaining int
	running   bool
	completed bool
}

// New creates a countdown from runTime seconds. When run is false the timer
// sits idle and never completes.
func New(runTime int, run bool) Timer {
	return Timer{
		id:        uuid.NewString(),
		runTime:   runTime,
		remaining: runTime,
		running:   run,
	}
}

// ID identifies this timer instance.
func (t Timer) ID() string { return t.id }

// RunTime is the countdown the timer started from.
func (t Timer) RunTime() int { return t.runTime }

// Remaining is the raw remaining count. It reaches zero on the completing
// tick, or goes below zero when the timer started at zero.
func (t Timer) Remaining() int { return t.remaining }

// Running reports whether the timer is still counting.
func (t Timer) Running() bool { return t.running }

// Completed reports whether the countdown ran out. An idle timer never
// completes.
func (t Timer) Completed() bool { return t.completed }

// Init schedules the first tick.
func (t Timer) Init() tea.Cmd {
	if !t.running {
		return nil
	}
	return t.tick()
}

func (t Timer) tick() tea.Cmd {
	id := t.id
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return TickMsg{ID: id}
	})
}

// Update handles ticks for this timer. The completing tick marks the timer
// Completed and schedules nothing further.
func (t Timer) Update(msg tea.Msg) (Timer, tea.Cmd) {
	tick, ok := msg.(TickMsg)
	if !ok || tick.ID != t.id || !t.running {
		return t, nil
	}
	if t.remaining <= 1 {
		t.running = false
		t.completed = true
		t.remaining--
		return t, nil
	}
	t.remaining--
	return t, t.tick()
}

// View renders the countdown. The display never goes below zero.
func (t Timer) View() string {
	return fmt.Sprintf("Turn in: %d seconds", max(t.remaining, 0))
}
