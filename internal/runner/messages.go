package runner

// Message types for the runner's Bubble Tea update loop.

// PatternCompleteMsg is emitted once when the leg timer finishes the last leg.
type PatternCompleteMsg struct {
	Key string
}
