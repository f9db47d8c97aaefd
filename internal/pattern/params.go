package pattern

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ensigniasec/sar-runner/internal/validate"
)

// ErrInvalidParams is returned when a pattern cannot be built from its parameters.
var ErrInvalidParams = errors.New("invalid pattern parameters")

// Kind names a search pattern variant.
type Kind string

const (
	CreepingLineAhead Kind = "creeping-line-ahead"
	Sector            Kind = "sector"
	ExpandingSquare   Kind = "expanding-square"
)

// Kinds lists the supported variants in display order.
func Kinds() []Kind {
	return []Kind{CreepingLineAhead, Sector, ExpandingSquare}
}

// ParseKind accepts a kind name in any case, plus the short aliases cla, vs and ss.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(CreepingLineAhead), "cla":
		return CreepingLineAhead, nil
	case string(Sector), "vs":
		return Sector, nil
	case string(ExpandingSquare), "ss":
		return ExpandingSquare, nil
	}
	return "", fmt.Errorf("%w: unknown pattern kind %q", ErrInvalidParams, s)
}

// Title is the human name of the kind.
func (k Kind) Title() string {
	switch k {
	case CreepingLineAhead:
		return "Creeping Line Ahead"
	case Sector:
		return "Sector Search"
	case ExpandingSquare:
		return "Expanding Square"
	default:
		return string(k)
	}
}

// Params are the defining parameters of a pattern. Distances are metres and
// StartDirection is a whole-degree bearing. Only the fields relevant to Kind
// take part in the pattern's identity.
type Params struct {
	Kind           Kind    `json:"kind" yaml:"kind" toml:"kind" validate:"pattern_kind"`
	SweepWidth     float64 `json:"sweep_width" yaml:"sweep_width" toml:"sweep_width" validate:"gt=0"`
	LegLength      float64 `json:"leg_length,omitempty" yaml:"leg_length,omitempty" toml:"leg_length,omitempty" validate:"gte=0"`
	Legs           int     `json:"legs,omitempty" yaml:"legs,omitempty" toml:"legs,omitempty" validate:"gte=0"`
	Multiplier     float64 `json:"multiplier,omitempty" yaml:"multiplier,omitempty" toml:"multiplier,omitempty" validate:"gte=0"`
	Iterations     int     `json:"iterations,omitempty" yaml:"iterations,omitempty" toml:"iterations,omitempty" validate:"gte=0"`
	StartDirection int     `json:"start_direction" yaml:"start_direction" toml:"start_direction" validate:"bearing"`
}

type fieldCheck struct {
	field string
	value any
	tag   string
}

// Validate checks the shared constraints and then the ones specific to Kind.
func (p Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	var checks []fieldCheck
	switch p.Kind {
	case CreepingLineAhead:
		checks = []fieldCheck{{"leg_length", p.LegLength, "gt=0"}, {"legs", p.Legs, "gte=1"}}
	case Sector:
		checks = []fieldCheck{{"multiplier", p.Multiplier, "gt=0"}, {"iterations", p.Iterations, "gte=1"}}
	case ExpandingSquare:
		checks = []fieldCheck{{"iterations", p.Iterations, "gte=1"}}
	}
	for _, c := range checks {
		if err := validate.Var(c.value, c.tag); err != nil {
			return fmt.Errorf("%w: %s for %s: %w", ErrInvalidParams, c.field, p.Kind, err)
		}
	}
	return nil
}

// Key is the identity of the parameters: the kind plus every parameter that
// defines its legs. Two Params with the same Key produce the same legs.
func (p Params) Key() string {
	switch p.Kind {
	case CreepingLineAhead:
		return fmt.Sprintf("%s(sweep=%g,leg=%g,legs=%d,start=%d)", p.Kind, p.SweepWidth, p.LegLength, p.Legs, p.StartDirection)
	case Sector:
		return fmt.Sprintf("%s(sweep=%g,multiplier=%g,iterations=%d,start=%d)", p.Kind, p.SweepWidth, p.Multiplier, p.Iterations, p.StartDirection)
	case ExpandingSquare:
		return fmt.Sprintf("%s(sweep=%g,iterations=%d,start=%d)", p.Kind, p.SweepWidth, p.Iterations, p.StartDirection)
	default:
		return fmt.Sprintf("%s(sweep=%g,start=%d)", p.Kind, p.SweepWidth, p.StartDirection)
	}
}
