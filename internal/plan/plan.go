// Package plan tabulates a search pattern for printing: every leg with its
// heading, length and the time it takes at a given speed.
package plan

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/ensigniasec/sar-runner/internal/pattern"
	"github.com/ensigniasec/sar-runner/internal/runner"
	"github.com/ensigniasec/sar-runner/internal/units"
)

const reportWidth = 60

// LegPlan is one row of the table.
type LegPlan struct {
	Leg       int     `json:"leg"`
	Bearing   string  `json:"bearing"`
	DistanceM float64 `json:"distance_m"`
	Seconds   int     `json:"seconds"`
}

// Plan is a whole pattern flown at one speed.
type Plan struct {
	ID           string         `json:"id"`
	Key          string         `json:"key"`
	Kind         pattern.Kind   `json:"kind"`
	Params       pattern.Params `json:"params"`
	Speed        string         `json:"speed"`
	SweepWidthM  float64        `json:"sweep_width_m"`
	TotalLengthM float64        `json:"total_length_m"`
	TotalSeconds int            `json:"total_seconds"`
	Legs         []LegPlan      `json:"legs"`

	// DistanceUnit picks the unit of the text table. JSON distances are
	// always metres.
	DistanceUnit string `json:"distance_unit,omitempty"`
}

// Build computes the per-leg times using the same rounding as the runner's
// countdown, so the table matches what the runner will show. distanceUnit
// may be empty.
func Build(p pattern.Pattern, speed units.Speed, distanceUnit string) Plan {
	state := runner.NewState(&p, &speed)
	legs := make([]LegPlan, 0, p.LegCount())
	for i, leg := range p.Legs() {
		state.Pattern = p.WithCurrentLeg(i + 1)
		legs = append(legs, LegPlan{
			Leg:       i + 1,
			Bearing:   runner.HumanBearing(leg.Bearing),
			DistanceM: leg.Distance,
			Seconds:   state.RunTime(),
		})
	}
	return Plan{
		ID:           p.ID().String(),
		Key:          p.Key(),
		Kind:         p.Kind(),
		Params:       p.Params(),
		Speed:        speed.String(),
		SweepWidthM:  p.SweepWidth(),
		TotalLengthM: p.Length(),
		TotalSeconds: lo.SumBy(legs, func(l LegPlan) int { return l.Seconds }),
		Legs:         legs,
		DistanceUnit: distanceUnit,
	}
}

// Print writes the plan as indented JSON or as a text table.
func Print(w io.Writer, p Plan, jsonOutput bool) error {
	if jsonOutput {
		output, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return fmt.Errorf("encode plan: %w", err)
		}
		_, err = fmt.Fprintln(w, string(output))
		return err
	}

	sweep, err := units.Metres(p.SweepWidthM).Format(p.DistanceUnit)
	if err != nil {
		return fmt.Errorf("format plan: %w", err)
	}
	total, _ := units.Metres(p.TotalLengthM).Format(p.DistanceUnit)

	var b strings.Builder
	fmt.Fprintln(&b, strings.Repeat("=", reportWidth))
	fmt.Fprintf(&b, "%s\n", strings.ToUpper(p.Kind.Title()))
	fmt.Fprintln(&b, strings.Repeat("=", reportWidth))
	fmt.Fprintf(&b, "Pattern: %s\n", p.Key)
	fmt.Fprintf(&b, "Speed:   %s\n", p.Speed)
	fmt.Fprintf(&b, "Sweep:   %s\n\n", sweep)

	fmt.Fprintf(&b, "%4s  %-7s  %10s  %8s\n", "LEG", "HEADING", "DISTANCE", "TIME")
	fmt.Fprintln(&b, strings.Repeat("-", reportWidth))
	for _, l := range p.Legs {
		dist, _ := units.Metres(l.DistanceM).Format(p.DistanceUnit)
		fmt.Fprintf(&b, "%4d  %-7s  %10s  %8s\n", l.Leg, l.Bearing, dist, humanSeconds(l.Seconds))
	}
	fmt.Fprintln(&b, strings.Repeat("-", reportWidth))
	fmt.Fprintf(&b, "Total: %d legs, %s, %s\n", len(p.Legs), total, humanSeconds(p.TotalSeconds))

	_, err = io.WriteString(w, b.String())
	return err
}

func humanSeconds(s int) string {
	return (time.Duration(s) * time.Second).String()
}
