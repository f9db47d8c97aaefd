// Package units provides the distance, speed and time values used to turn
// leg geometry into a countdown. Magnitudes are held as martinlindhe/unit
// quantities; this package adds the unit names the config file, flags and
// speed widget accept, and remembers which unit a speed was entered in.
package units

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/martinlindhe/unit"
)

// ErrUnknownUnit is returned when a unit string is not recognised.
var ErrUnknownUnit = errors.New("unknown unit")

//nolint:gochecknoglobals // Static lookup tables over the unit constants.
var (
	distanceUnits = map[string]unit.Length{
		"m":  unit.Meter,
		"km": unit.Kilometer,
		"nm": unit.NauticalMile,
		"mi": unit.Mile,
		"ft": unit.Foot,
	}
	speedUnits = map[string]unit.Speed{
		"m/s":   unit.MetersPerSecond,
		"km/h":  unit.KilometersPerHour,
		"knots": unit.Knot,
		"kn":    unit.Knot,
		"mph":   unit.MilesPerHour,
	}
)

// SpeedUnits lists the speed units in the order the UI cycles through them.
func SpeedUnits() []string {
	return []string{"knots", "km/h", "mph", "m/s"}
}

// DistanceUnits lists the distance units a display can be switched to.
func DistanceUnits() []string {
	return []string{"m", "km", "nm", "mi", "ft"}
}

func normalise(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func lookup[T any](table map[string]T, name string) (T, error) {
	v, ok := table[normalise(name)]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %q", ErrUnknownUnit, name)
	}
	return v, nil
}

// Distance is a length.
type Distance struct {
	length unit.Length
}

// Metres builds a Distance from a magnitude in metres.
func Metres(value float64) Distance {
	return Distance{length: unit.Length(value) * unit.Meter}
}

// In returns the magnitude in the named unit.
func (d Distance) In(name string) (float64, error) {
	u, err := lookup(distanceUnits, name)
	if err != nil {
		return 0, err
	}
	return float64(d.length / u), nil
}

// Metres returns the magnitude in metres.
func (d Distance) Metres() float64 { return float64(d.length / unit.Meter) }

// Format renders the distance in the named unit. An empty name picks metres
// or kilometres by size, as String does.
func (d Distance) Format(name string) (string, error) {
	if normalise(name) == "" {
		return d.String(), nil
	}
	v, err := d.In(name)
	if err != nil {
		return "", err
	}
	switch normalise(name) {
	case "m", "ft":
		return fmt.Sprintf("%.0f %s", v, normalise(name)), nil
	default:
		return fmt.Sprintf("%.2f %s", v, normalise(name)), nil
	}
}

// String renders metres below 10 km and kilometres above.
func (d Distance) String() string {
	if d.length >= 10*unit.Kilometer {
		return fmt.Sprintf("%.1f km", float64(d.length/unit.Kilometer))
	}
	return fmt.Sprintf("%.0f m", d.Metres())
}

// Speed is a rate. It remembers the unit it was entered in so the UI can
// echo it back.
type Speed struct {
	rate unit.Speed
	unit string
}

// NewSpeed builds a Speed from a magnitude in the named unit.
func NewSpeed(value float64, name string) (Speed, error) {
	u, err := lookup(speedUnits, name)
	if err != nil {
		return Speed{}, err
	}
	return Speed{rate: unit.Speed(value) * u, unit: normalise(name)}, nil
}

// Knots is shorthand for NewSpeed(value, "knots"), which cannot fail.
func Knots(value float64) Speed {
	return Speed{rate: unit.Speed(value) * unit.Knot, unit: "knots"}
}

// In returns the magnitude in the named unit.
func (s Speed) In(name string) (float64, error) {
	u, err := lookup(speedUnits, name)
	if err != nil {
		return 0, err
	}
	return float64(s.rate / u), nil
}

// MetresPerSecond returns the magnitude in m/s.
func (s Speed) MetresPerSecond() float64 { return float64(s.rate / unit.MetersPerSecond) }

// Unit is the unit the speed was entered in.
func (s Speed) Unit() string {
	if s.unit == "" {
		return "m/s"
	}
	return s.unit
}

// Value is the magnitude in the entered unit.
func (s Speed) Value() float64 {
	v, _ := s.In(s.Unit())
	return v
}

// Convert re-expresses the speed in another unit without changing its magnitude.
func (s Speed) Convert(name string) (Speed, error) {
	if _, err := lookup(speedUnits, name); err != nil {
		return Speed{}, err
	}
	return Speed{rate: s.rate, unit: normalise(name)}, nil
}

func (s Speed) String() string {
	return fmt.Sprintf("%.1f %s", s.Value(), s.Unit())
}

// Time is a duration.
type Time struct {
	span unit.Duration
}

// TimeToCover returns how long it takes to cover d at s. A non-positive speed
// never arrives, which is reported as zero so callers do not divide by zero.
func TimeToCover(d Distance, s Speed) Time {
	mps := s.MetresPerSecond()
	if mps <= 0 {
		return Time{}
	}
	return Time{span: unit.Duration(d.Metres()/mps) * unit.Second}
}

// Seconds returns the magnitude in seconds.
func (t Time) Seconds() float64 { return float64(t.span / unit.Second) }

// Human renders the time rounded to the second, e.g. "1m49s".
func (t Time) Human() string {
	return (time.Duration(t.Seconds() * float64(time.Second))).Round(time.Second).String()
}
