package runner

import (
	"fmt"
	"math"

	"github.com/ensigniasec/sar-runner/internal/pattern"
	"github.com/ensigniasec/sar-runner/internal/units"
)

// Default pattern used when the controller is created without one.
const (
	defaultSweepWidth     = 200
	defaultLegLength      = 1000
	defaultLegs           = 5
	defaultStartDirection = 0
	defaultSpeedKnots     = 40
)

// Action is a transition of the runner.
type Action int

const (
	ActionRun Action = iota
	ActionResume
	ActionPause
	ActionPrevious
	ActionSkip
	ActionReset
	ActionTimerComplete
)

func (a Action) String() string {
	switch a {
	case ActionRun:
		return "Run"
	case ActionResume:
		return "Resume"
	case ActionPause:
		return "Pause"
	case ActionPrevious:
		return "Previous"
	case ActionSkip:
		return "Skip"
	case ActionReset:
		return "Reset"
	case ActionTimerComplete:
		return "TimerComplete"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Effect is a side effect the caller must carry out after a transition.
type Effect int

const (
	EffectNone Effect = iota
	// EffectPatternComplete is raised when the timer finished the last leg.
	EffectPatternComplete
)

// State is the runner's progress through one pattern. The pattern's cursor
// is the leg index; there is no separate copy of it.
type State struct {
	Pattern pattern.Pattern
	Running bool
	Speed   units.Speed
}

// DefaultPattern is the creeping-line-ahead search used when none is given.
func DefaultPattern() pattern.Pattern {
	p, err := pattern.NewCreepingLineAhead(defaultSweepWidth, defaultLegLength, defaultLegs, defaultStartDirection)
	if err != nil {
		panic(fmt.Sprintf("runner: default pattern is invalid: %v", err))
	}
	return p
}

// NewState creates a stopped runner. A nil pattern or speed selects the
// defaults: DefaultPattern at 40 knots.
func NewState(p *pattern.Pattern, speed *units.Speed) State {
	s := State{Speed: units.Knots(defaultSpeedKnots)}
	if p != nil {
		s.Pattern = *p
	} else {
		s.Pattern = DefaultPattern()
	}
	if speed != nil {
		s.Speed = *speed
	}
	return s
}

// Leg is the 1-based index of the current leg.
func (s State) Leg() int { return s.Pattern.CurrentLeg() }

// Complete reports whether the pattern has been fully flown.
func (s State) Complete() bool { return s.Pattern.Complete() }

// Distance is the sweep width once complete, otherwise the current leg's length.
func (s State) Distance() units.Distance {
	if leg, ok := s.Pattern.Leg(); ok && !s.Complete() {
		return units.Metres(leg.Distance)
	}
	return units.Metres(s.Pattern.SweepWidth())
}

// LegTime is how long Distance takes at Speed.
func (s State) LegTime() units.Time {
	return units.TimeToCover(s.Distance(), s.Speed)
}

// RunTime is LegTime rounded to the nearest whole second.
func (s State) RunTime() int {
	return int(math.Round(s.LegTime().Seconds()))
}

// Allowed reports whether a transition's guard holds in this state.
func (s State) Allowed(a Action) bool {
	complete := s.Complete()
	leg := s.Leg()
	switch a {
	case ActionRun:
		return !complete && leg == 1 && !s.Running
	case ActionResume:
		return !complete && leg > 1 && !s.Running
	case ActionPause:
		return s.Running
	case ActionPrevious:
		return !s.Running && leg > 1
	case ActionSkip:
		return !s.Running && !complete
	case ActionReset:
		return complete || leg > 1
	case ActionTimerComplete:
		return s.Running && !complete
	default:
		return false
	}
}

// Reduce applies a transition. Transitions whose guard does not hold leave
// the state untouched.
func Reduce(s State, a Action) (State, Effect) {
	if !s.Allowed(a) {
		return s, EffectNone
	}
	switch a {
	case ActionRun, ActionResume:
		s.Running = true
	case ActionPause:
		s.Running = false
	case ActionPrevious:
		s.Pattern = s.Pattern.PreviousLeg()
	case ActionSkip:
		s.Pattern = s.Pattern.NextLeg()
	case ActionReset:
		s.Pattern = s.Pattern.Reset()
		s.Running = false
	case ActionTimerComplete:
		s.Pattern = s.Pattern.NextLeg()
		if s.Pattern.Complete() {
			s.Running = false
			return s, EffectPatternComplete
		}
	}
	return s, EffectNone
}

// WithSpeed changes the travel speed. It never touches the leg or run state.
func (s State) WithSpeed(speed units.Speed) State {
	s.Speed = speed
	return s
}

// Buttons lists the controls shown in this state, in display order.
func (s State) Buttons() []Action {
	var buttons []Action
	if s.Complete() || s.Leg() > 1 {
		buttons = append(buttons, ActionReset)
	}
	if s.Complete() {
		return buttons
	}
	if s.Running {
		return append(buttons, ActionPause)
	}
	if s.Leg() > 1 {
		buttons = append(buttons, ActionPrevious, ActionResume)
	} else {
		buttons = append(buttons, ActionRun)
	}
	return append(buttons, ActionSkip)
}

// TimerVisible reports whether a leg countdown should be running.
func (s State) TimerVisible() bool {
	return !s.Complete() && s.Running
}

// Instruction is the heading to fly, or "Complete".
func (s State) Instruction() string {
	leg, ok := s.Pattern.Leg()
	if s.Complete() || !ok {
		return "Complete"
	}
	text := "Head " + HumanBearing(leg.Bearing)
	if next, ok := s.Pattern.Next(); ok {
		text += ", Next: " + HumanBearing(next.Bearing)
	}
	return text
}

// HumanBearing zero-pads a bearing to three digits.
func HumanBearing(bearing int) string {
	return fmt.Sprintf("%03d", bearing)
}
