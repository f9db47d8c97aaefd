package runner

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ensigniasec/sar-runner/internal/legtimer"
	"github.com/ensigniasec/sar-runner/internal/pattern"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func press(t *testing.T, c Controller, msgs ...tea.Msg) Controller {
	t.Helper()
	for _, msg := range msgs {
		c, _ = c.Step(msg)
	}
	return c
}

// finishLeg ticks the live timer down to zero and returns the result of the
// completing tick.
func finishLeg(t *testing.T, c Controller) (Controller, tea.Cmd) {
	t.Helper()
	timer, ok := c.Timer()
	require.True(t, ok, "expected a live leg timer")
	leg := c.State().Leg()

	var cmd tea.Cmd
	for range max(timer.RunTime(), 1) {
		require.Equal(t, leg, c.State().Leg(), "leg advanced before the countdown ran out")
		c, cmd = c.Step(legtimer.TickMsg{ID: timer.ID()})
	}
	return c, cmd
}

func TestController_InitialView(t *testing.T) {
	t.Parallel()

	c := New()
	assert.Nil(t, c.Init())

	view := c.View()
	assert.Contains(t, view, "[ Run ]")
	assert.Contains(t, view, "[ Skip ]")
	assert.NotContains(t, view, "[ Pause ]")
	assert.NotContains(t, view, "[ Previous ]")
	assert.NotContains(t, view, "[ Reset ]")
	assert.NotContains(t, view, "Turn in:")
	assert.Contains(t, view, "Head 090, Next: 000")
	assert.Contains(t, view, "Creeping Line Ahead")
	assert.Contains(t, view, "Total Length: 5800 m")
	assert.Contains(t, view, "40.0 knots")
}

func TestController_RunStartsTimerForCurrentLeg(t *testing.T) {
	t.Parallel()

	c, cmd := New().Step(keyRune('r'))
	assert.NotNil(t, cmd, "running should schedule the first tick")
	assert.True(t, c.State().Running)

	timer, ok := c.Timer()
	require.True(t, ok)
	assert.Equal(t, 49, timer.RunTime())
	assert.True(t, timer.Running())

	view := c.View()
	assert.Contains(t, view, "Turn in: 49 seconds")
	assert.Contains(t, view, "[ Pause ]")
	assert.NotContains(t, view, "[ Skip ]")
	assert.NotContains(t, view, "[ Run ]")
}

func TestController_TimerCompletionAdvancesLeg(t *testing.T) {
	t.Parallel()

	c := press(t, New(), keyRune('r'))
	first, _ := c.Timer()

	c, _ = finishLeg(t, c)
	assert.Equal(t, 2, c.State().Leg())
	assert.Equal(t, c.State().Pattern.CurrentLeg(), c.State().Leg())
	assert.Contains(t, c.View(), "Head 000, Next: 270")

	second, ok := c.Timer()
	require.True(t, ok, "the run continues onto the next leg")
	assert.NotEqual(t, first.ID(), second.ID())
	assert.Equal(t, 10, second.RunTime())
	assert.Equal(t, 10, second.Remaining())
}

func TestController_PauseQueuedBehindFinalTick(t *testing.T) {
	t.Parallel()

	c := press(t, New(), keyRune('r'))
	timer, _ := c.Timer()
	for range timer.RunTime() - 1 {
		c = press(t, c, legtimer.TickMsg{ID: timer.ID()})
	}
	require.Equal(t, 1, c.State().Leg())

	c = press(t, c, legtimer.TickMsg{ID: timer.ID()}, keyRune('p'))
	assert.Equal(t, 2, c.State().Leg())
	assert.False(t, c.State().Running)
	_, live := c.Timer()
	assert.False(t, live)

	c = press(t, c, legtimer.TickMsg{ID: timer.ID()}, keyRune('r'))
	resumed, ok := c.Timer()
	require.True(t, ok)
	assert.Equal(t, 2, c.State().Leg())
	assert.Equal(t, 10, resumed.RunTime())
}

func TestController_IgnoresCompletionFromReplacedTimer(t *testing.T) {
	t.Parallel()

	c := press(t, New(), keyRune('r'))
	stale, _ := c.Timer()

	c = press(t, c, keyRune('p'), keyRune('r'))
	fresh, ok := c.Timer()
	require.True(t, ok)
	assert.NotEqual(t, stale.ID(), fresh.ID(), "resume builds a new countdown")

	for range stale.RunTime() + 1 {
		c = press(t, c, legtimer.TickMsg{ID: stale.ID()})
	}
	assert.Equal(t, 1, c.State().Leg())
	current, _ := c.Timer()
	assert.Equal(t, fresh.RunTime(), current.Remaining())
}

func TestController_TicksCountDown(t *testing.T) {
	t.Parallel()

	c := press(t, New(), keyRune('r'))
	timer, _ := c.Timer()
	c = press(t, c, legtimer.TickMsg{ID: timer.ID()}, legtimer.TickMsg{ID: timer.ID()})

	timer, _ = c.Timer()
	assert.Equal(t, 47, timer.Remaining())
	assert.Contains(t, c.View(), "Turn in: 47 seconds")
}

func TestController_PauseDropsTimer(t *testing.T) {
	t.Parallel()

	c := press(t, New(), keyRune('r'))
	c, _ = finishLeg(t, c)
	c = press(t, c, keyRune(' '))

	assert.False(t, c.State().Running)
	_, ok := c.Timer()
	assert.False(t, ok)

	view := c.View()
	assert.Contains(t, view, "[ Reset ]")
	assert.Contains(t, view, "[ Previous ]")
	assert.Contains(t, view, "[ Resume ]")
	assert.Contains(t, view, "[ Skip ]")
	assert.NotContains(t, view, "[ Run ]")
}

func TestController_SpeedChangeKeepsCountdown(t *testing.T) {
	t.Parallel()

	c := press(t, New(), keyRune('r'))
	before, _ := c.Timer()
	c = press(t, c, legtimer.TickMsg{ID: before.ID()})

	c = press(t, c, keyRune('e'))
	require.True(t, c.EditingSpeed())
	c.speedInput.SetValue("80")
	c = press(t, c, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, c.EditingSpeed())
	assert.InDelta(t, 80.0, c.State().Speed.Value(), 1e-9)
	assert.Equal(t, 24, c.State().RunTime())

	after, ok := c.Timer()
	require.True(t, ok)
	assert.Equal(t, before.ID(), after.ID())
	assert.Equal(t, 48, after.Remaining())
}

func TestController_RejectsInvalidSpeed(t *testing.T) {
	t.Parallel()

	c := press(t, New(), keyRune('e'))
	c.speedInput.SetValue("fast")
	c = press(t, c, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, c.EditingSpeed())
	assert.Contains(t, c.View(), "speed must be a positive number")
	assert.InDelta(t, 40.0, c.State().Speed.Value(), 1e-9)

	c = press(t, c, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, c.EditingSpeed())
	assert.NotContains(t, c.View(), "speed must be a positive number")
}

func TestController_CycleSpeedUnit(t *testing.T) {
	t.Parallel()

	c := press(t, New(), keyRune('u'))
	assert.Equal(t, "km/h", c.State().Speed.Unit())
	assert.InDelta(t, 74.08, c.State().Speed.Value(), 1e-6)
	assert.Equal(t, 49, c.State().RunTime())
}

func TestController_SkipToCompletion(t *testing.T) {
	t.Parallel()

	c := New()
	for range c.State().Pattern.LegCount() {
		c = press(t, c, keyRune('s'))
	}

	assert.True(t, c.State().Complete())
	view := c.View()
	assert.Contains(t, view, "Complete")
	assert.Contains(t, view, "[ Reset ]")
	for _, hidden := range []string{"[ Run ]", "[ Pause ]", "[ Previous ]", "[ Skip ]", "[ Resume ]"} {
		assert.NotContains(t, view, hidden)
	}

	c = press(t, c, keyRune('x'))
	assert.Equal(t, 1, c.State().Leg())
	assert.Contains(t, c.View(), "[ Run ]")
}

func TestController_CompletionNotifiesOnce(t *testing.T) {
	t.Parallel()

	p, err := pattern.NewExpandingSquare(100, 1, 0)
	require.NoError(t, err)

	calls := 0
	c := New(WithPattern(p), WithOnComplete(func() { calls++ }))
	c = press(t, c, keyRune('r'))
	c, _ = finishLeg(t, c)
	require.Equal(t, 2, c.State().Leg())

	c, cmd := finishLeg(t, c)
	require.NotNil(t, cmd)
	msg, ok := cmd().(PatternCompleteMsg)
	require.True(t, ok)
	assert.Equal(t, p.Key(), msg.Key)
	assert.Equal(t, 1, calls)
	assert.True(t, c.State().Complete())
	_, live := c.Timer()
	assert.False(t, live)

	c = press(t, c, legtimer.TickMsg{ID: "anything"})
	assert.Equal(t, 1, calls)
	assert.True(t, c.State().Complete())
}

func TestController_WithPatternStartsOnFirstLeg(t *testing.T) {
	t.Parallel()

	p, err := pattern.NewSector(200, 1, 1, 0)
	require.NoError(t, err)

	c := New(WithPattern(p.NextLeg().NextLeg()))
	assert.Equal(t, 1, c.State().Leg())
	assert.Contains(t, c.View(), "Head 000, Next: 120")
}

func TestController_MouseWithoutZonesIsIgnored(t *testing.T) {
	t.Parallel()

	c := New()
	c = press(t, c, tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft, X: 1, Y: 1})
	assert.False(t, c.State().Running)
}
