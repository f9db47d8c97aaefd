// Package pattern generates search-and-rescue search patterns and tracks
// progress through their legs.
//
// A Pattern is an immutable value. Moving the leg cursor returns a new
// Pattern, so whoever holds a Pattern owns its progress outright and no
// second copy of the cursor has to be kept in sync.
package pattern

import (
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const fullCircle = 360

// Leg is one straight segment of a pattern.
type Leg struct {
	Bearing  int     `json:"bearing"`
	Distance float64 `json:"distance"` // metres
}

// Pattern is a search pattern plus a 1-based cursor on its current leg.
// The cursor ranges over [1, len(legs)+1]; one past the last leg means the
// pattern is complete.
type Pattern struct {
	params  Params
	legs    []Leg
	current int
}

// New validates params and builds the legs for its kind.
func New(params Params) (Pattern, error) {
	if err := params.Validate(); err != nil {
		return Pattern{}, err
	}
	var legs []Leg
	switch params.Kind {
	case CreepingLineAhead:
		legs = creepingLineAheadLegs(params)
	case Sector:
		legs = sectorLegs(params)
	case ExpandingSquare:
		legs = expandingSquareLegs(params)
	}
	return Pattern{params: params, legs: legs, current: 1}, nil
}

// NewCreepingLineAhead builds a creeping-line-ahead pattern of legs cross legs.
func NewCreepingLineAhead(sweepWidth, legLength float64, legs, startDirection int) (Pattern, error) {
	return New(Params{
		Kind:           CreepingLineAhead,
		SweepWidth:     sweepWidth,
		LegLength:      legLength,
		Legs:           legs,
		StartDirection: startDirection,
	})
}

// NewSector builds a sector search with radius sweepWidth*multiplier.
func NewSector(sweepWidth, multiplier float64, iterations, startDirection int) (Pattern, error) {
	return New(Params{
		Kind:           Sector,
		SweepWidth:     sweepWidth,
		Multiplier:     multiplier,
		Iterations:     iterations,
		StartDirection: startDirection,
	})
}

// NewExpandingSquare builds an expanding square of 2*iterations legs.
func NewExpandingSquare(sweepWidth float64, iterations, startDirection int) (Pattern, error) {
	return New(Params{
		Kind:           ExpandingSquare,
		SweepWidth:     sweepWidth,
		Iterations:     iterations,
		StartDirection: startDirection,
	})
}

// cross legs alternate either side of the progression direction, joined by
// progression legs one sweep width long.
func creepingLineAheadLegs(p Params) []Leg {
	legs := make([]Leg, 0, 2*p.Legs-1)
	for i := range p.Legs {
		side := 90
		if i%2 == 1 {
			side = 270
		}
		legs = append(legs, Leg{Bearing: normalise(p.StartDirection + side), Distance: p.LegLength})
		if i < p.Legs-1 {
			legs = append(legs, Leg{Bearing: normalise(p.StartDirection), Distance: p.SweepWidth})
		}
	}
	return legs
}

// each iteration flies three equilateral triangles from the datum, turning
// right 120 degrees; later iterations are rotated 30 degrees.
func sectorLegs(p Params) []Leg {
	radius := p.SweepWidth * p.Multiplier
	legs := make([]Leg, 0, 9*p.Iterations)
	for it := range p.Iterations {
		heading := p.StartDirection + 30*it
		for range 3 {
			legs = append(legs,
				Leg{Bearing: normalise(heading), Distance: radius},
				Leg{Bearing: normalise(heading + 120), Distance: radius},
				Leg{Bearing: normalise(heading + 240), Distance: radius},
			)
			heading += 240
		}
	}
	return legs
}

func expandingSquareLegs(p Params) []Leg {
	n := 2 * p.Iterations
	legs := make([]Leg, 0, n)
	for i := range n {
		legs = append(legs, Leg{
			Bearing:  normalise(p.StartDirection + 90*i),
			Distance: p.SweepWidth * float64(i/2+1),
		})
	}
	return legs
}

func normalise(bearing int) int {
	return ((bearing % fullCircle) + fullCircle) % fullCircle
}

// Kind is the pattern variant.
func (p Pattern) Kind() Kind { return p.params.Kind }

// Params returns the defining parameters.
func (p Pattern) Params() Params { return p.params }

// Legs returns a copy of the leg list.
func (p Pattern) Legs() []Leg {
	out := make([]Leg, len(p.legs))
	copy(out, p.legs)
	return out
}

// LegCount is the number of legs.
func (p Pattern) LegCount() int { return len(p.legs) }

// CurrentLeg is the 1-based index of the leg being flown.
func (p Pattern) CurrentLeg() int { return p.current }

// Complete reports whether every leg has been flown.
func (p Pattern) Complete() bool { return p.current > len(p.legs) }

// SweepWidth is the lateral spacing of the pattern, in metres.
func (p Pattern) SweepWidth() float64 { return p.params.SweepWidth }

// Length is the total distance of all legs, in metres.
func (p Pattern) Length() float64 {
	return lo.SumBy(p.legs, func(l Leg) float64 { return l.Distance })
}

// LegAt returns the leg at a 1-based index.
func (p Pattern) LegAt(n int) (Leg, bool) {
	if n < 1 || n > len(p.legs) {
		return Leg{}, false
	}
	return p.legs[n-1], true
}

// Leg returns the current leg; false once the pattern is complete.
func (p Pattern) Leg() (Leg, bool) { return p.LegAt(p.current) }

// Next returns the leg after the current one, if any.
func (p Pattern) Next() (Leg, bool) { return p.LegAt(p.current + 1) }

// WithCurrentLeg moves the cursor to n, saturating into [1, LegCount()+1].
func (p Pattern) WithCurrentLeg(n int) Pattern {
	p.current = max(1, min(n, len(p.legs)+1))
	return p
}

// NextLeg advances the cursor by one leg.
func (p Pattern) NextLeg() Pattern { return p.WithCurrentLeg(p.current + 1) }

// PreviousLeg moves the cursor back by one leg.
func (p Pattern) PreviousLeg() Pattern { return p.WithCurrentLeg(p.current - 1) }

// Reset moves the cursor back to the first leg.
func (p Pattern) Reset() Pattern { return p.WithCurrentLeg(1) }

// Key identifies the pattern by kind and defining parameters. The cursor is
// not part of the key.
func (p Pattern) Key() string { return p.params.Key() }

//nolint:gochecknoglobals // Fixed namespace for pattern identities.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/ensigniasec/sar-runner/pattern"))

// ID is a stable UUID derived from Key.
func (p Pattern) ID() uuid.UUID {
	return uuid.NewSHA1(idNamespace, []byte(p.Key()))
}
