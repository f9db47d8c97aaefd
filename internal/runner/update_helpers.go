package runner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/sar-runner/internal/units"
)

// handleKey maps key bindings to transitions.
func (c Controller) handleKey(msg tea.KeyMsg) (Controller, tea.Cmd) {
	switch {
	case key.Matches(msg, c.keys.Toggle):
		if c.state.Running {
			return c.Dispatch(ActionPause)
		}
		return c.Dispatch(c.startAction())

	case key.Matches(msg, c.keys.Run):
		return c.Dispatch(c.startAction())

	case key.Matches(msg, c.keys.Pause):
		return c.Dispatch(ActionPause)

	case key.Matches(msg, c.keys.Previous):
		return c.Dispatch(ActionPrevious)

	case key.Matches(msg, c.keys.Skip):
		return c.Dispatch(ActionSkip)

	case key.Matches(msg, c.keys.Reset):
		return c.Dispatch(ActionReset)

	case key.Matches(msg, c.keys.EditSpeed):
		return c.startEditingSpeed()

	case key.Matches(msg, c.keys.CycleUnit):
		c.cycleSpeedUnit()
		return c, nil
	}
	return c, nil
}

// startAction is Run on the first leg and Resume afterwards.
func (c Controller) startAction() Action {
	if c.state.Leg() > 1 {
		return ActionResume
	}
	return ActionRun
}

// handleSpeedKey routes keys to the speed input while it has focus.
func (c Controller) handleSpeedKey(msg tea.KeyMsg) (Controller, tea.Cmd) {
	switch {
	case key.Matches(msg, c.keys.Confirm):
		if err := c.applySpeedInput(); err != nil {
			c.speedErr = err.Error()
			return c, nil
		}
		c.stopEditingSpeed()
		c.keys.sync(c.state, c.editingSpeed)
		return c, nil

	case key.Matches(msg, c.keys.Cancel):
		c.stopEditingSpeed()
		c.keys.sync(c.state, c.editingSpeed)
		return c, nil
	}
	var cmd tea.Cmd
	c.speedInput, cmd = c.speedInput.Update(msg)
	return c, cmd
}

func (c Controller) startEditingSpeed() (Controller, tea.Cmd) {
	c.editingSpeed = true
	c.speedErr = ""
	c.speedInput.SetValue(strconv.FormatFloat(c.state.Speed.Value(), 'f', -1, 64))
	c.speedInput.CursorEnd()
	c.keys.sync(c.state, c.editingSpeed)
	return c, c.speedInput.Focus()
}

func (c *Controller) stopEditingSpeed() {
	c.editingSpeed = false
	c.speedErr = ""
	c.speedInput.Blur()
}

// applySpeedInput parses the speed field in the current unit. Distance is
// fixed by the leg, so only speed is editable and time is derived.
func (c *Controller) applySpeedInput() error {
	raw := strings.TrimSpace(c.speedInput.Value())
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("speed must be a positive number, got %q", raw)
	}
	speed, err := units.NewSpeed(v, c.state.Speed.Unit())
	if err != nil {
		return err
	}
	c.setSpeed(speed)
	return nil
}

// cycleSpeedUnit re-expresses the speed in the next display unit.
func (c *Controller) cycleSpeedUnit() {
	all := units.SpeedUnits()
	_, idx, found := lo.FindIndexOf(all, func(u string) bool { return u == c.state.Speed.Unit() })
	next := all[0]
	if found {
		next = all[(idx+1)%len(all)]
	}
	converted, err := c.state.Speed.Convert(next)
	if err != nil {
		c.log.WithError(err).Warn("speed unit conversion failed")
		return
	}
	c.setSpeed(converted)
}

// setSpeed changes speed without touching the leg, the run state or an
// in-flight countdown.
func (c *Controller) setSpeed(s units.Speed) {
	c.state = c.state.WithSpeed(s)
	c.log.WithFields(logrus.Fields{"speed": s.String(), "leg_seconds": c.state.RunTime()}).Debug("speed changed")
}

// handleMouse dispatches clicks on the control buttons.
func (c Controller) handleMouse(msg tea.MouseMsg) (Controller, tea.Cmd) {
	if c.zones == nil || msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return c, nil
	}
	for _, a := range c.state.Buttons() {
		if z := c.zones.Get(c.buttonZone(a)); z != nil && z.InBounds(msg) {
			return c.Dispatch(a)
		}
	}
	return c, nil
}

func (c Controller) buttonZone(a Action) string {
	return c.id + "-" + strings.ToLower(a.String())
}
