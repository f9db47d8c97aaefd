package legtimer

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// elapse feeds n ticks addressed to t and counts the ticks that completed
// it. Tick commands are not executed since they sleep for the tick interval.
func elapse(t *testing.T, timer Timer, n int) (Timer, int) {
	t.Helper()
	completions := 0
	for range n {
		next, c := timer.Update(TickMsg{ID: timer.ID()})
		if timer.Running() && next.Completed() {
			assert.Nil(t, c, "the completing tick schedules nothing")
			completions++
		}
		timer = next
	}
	return timer, completions
}

func TestTimer_CompletesExactlyOnce(t *testing.T) {
	t.Parallel()

	timer := New(5, true)
	require.NotNil(t, timer.Init())

	timer, completions := elapse(t, timer, 4)
	assert.Equal(t, 0, completions)
	assert.Equal(t, 1, timer.Remaining())
	assert.True(t, timer.Running())

	timer, completions = elapse(t, timer, 1)
	assert.Equal(t, 1, completions)
	assert.Equal(t, 0, timer.Remaining())
	assert.False(t, timer.Running())
	assert.True(t, timer.Completed())

	timer, completions = elapse(t, timer, 10)
	assert.Equal(t, 0, completions)
	assert.Equal(t, 0, timer.Remaining())
}

func TestTimer_IdleNeverCompletes(t *testing.T) {
	t.Parallel()

	timer := New(3, false)
	assert.Nil(t, timer.Init())

	timer, completions := elapse(t, timer, 20)
	assert.Equal(t, 0, completions)
	assert.Equal(t, 3, timer.Remaining())
	assert.False(t, timer.Completed())
	assert.Equal(t, "Turn in: 3 seconds", timer.View())
}

func TestTimer_ZeroRunTimeGoesNegativeButDisplaysZero(t *testing.T) {
	t.Parallel()

	timer := New(0, true)
	timer, completions := elapse(t, timer, 1)
	assert.Equal(t, 1, completions)
	assert.Equal(t, -1, timer.Remaining())
	assert.Equal(t, "Turn in: 0 seconds", timer.View())
}

func TestTimer_IgnoresTicksForOtherTimers(t *testing.T) {
	t.Parallel()

	old := New(2, true)
	current := New(2, true)
	require.NotEqual(t, old.ID(), current.ID())

	next, cmd := current.Update(TickMsg{ID: old.ID()})
	assert.Nil(t, cmd)
	assert.Equal(t, 2, next.Remaining())

	next, cmd = current.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, 2, next.Remaining())

	old, _ = elapse(t, old, 2)
	next, _ = current.Update(TickMsg{ID: old.ID()})
	assert.False(t, next.Completed())
}

func TestTimer_ViewCountsDown(t *testing.T) {
	t.Parallel()

	timer := New(10, true)
	assert.Equal(t, "Turn in: 10 seconds", timer.View())
	timer, _ = elapse(t, timer, 3)
	assert.Equal(t, "Turn in: 7 seconds", timer.View())
	assert.Equal(t, 10, timer.RunTime())
}
