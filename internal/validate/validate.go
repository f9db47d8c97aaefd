package validate

// This package adds struct and field validation as a thin wrapper around the go-playground/validator package.
//
// e.g. internal/pattern/params.go
//   type Params struct {
//       SweepWidth     float64 `validate:"gt=0"`
//       StartDirection int     `validate:"bearing"`
//   }
//
// Domain tags registered here: bearing, pattern_kind, distance_unit, speed_unit.

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

const maxBearing = 360

// validatorInstance is a shared validator for the application.
// It is initialized once and reused to avoid repeated allocations.
//
//nolint:gochecknoglobals // Shared validator singleton.
var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

//nolint:gochecknoglobals // Static lookup tables for unit tags.
var (
	patternKinds  = []string{"creeping-line-ahead", "sector", "expanding-square"}
	distanceUnits = []string{"m", "km", "nm", "mi", "ft"}
	speedUnits    = []string{"m/s", "km/h", "knots", "kn", "mph"}
)

// get returns a process-wide singleton of the validator.
func get() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New(validator.WithRequiredStructEnabled())
		_ = validatorInst.RegisterValidation("bearing", isBearing)
		_ = validatorInst.RegisterValidation("pattern_kind", oneOfFold(patternKinds))
		_ = validatorInst.RegisterValidation("distance_unit", oneOfFold(distanceUnits))
		_ = validatorInst.RegisterValidation("speed_unit", oneOfFold(speedUnits))
	})
	return validatorInst
}

// isBearing accepts whole-degree compass bearings in [0, 360).
func isBearing(fl validator.FieldLevel) bool {
	v := fl.Field().Int()
	return v >= 0 && v < maxBearing
}

func oneOfFold(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		v := strings.TrimSpace(fl.Field().String())
		for _, a := range allowed {
			if strings.EqualFold(v, a) {
				return true
			}
		}
		return false
	}
}

// Struct validates a struct using the shared validator instance.
func Struct(v any) error {
	return get().Struct(v)
}

// Var validates a single variable against the provided tag constraints.
func Var(field any, tag string) error {
	return get().Var(field, tag)
}
