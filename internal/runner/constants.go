package runner

// Layout constants for the runner panel.
const (
	defaultListWidth  = 48
	defaultListHeight = 12
	minListHeight     = 4
	// panelOverheadLines is the panel height above and below the leg list:
	// title, speed line, buttons, timer, instruction, progress, total, help and spacers.
	panelOverheadLines = 14
	speedInputWidth    = 8
	speedInputLimit    = 8
	progressWidth      = 40
)
