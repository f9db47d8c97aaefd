package tui

// Package-level constants to avoid magic numbers and improve readability.
const (
	// formWidth is the fixed width of the configuration column.
	formWidth        = 36
	columnGap        = 2
	rightViewportMax = 90

	fieldInputWidth = 10
	fieldCharLimit  = 10

	// Values the form falls back to for parameters the starting pattern does
	// not define, so switching kind yields a usable pattern straight away.
	fallbackSweepWidth = 200
	fallbackLegLength  = 1000
	fallbackLegs       = 5
	fallbackMultiplier = 1
	fallbackIterations = 1
)
