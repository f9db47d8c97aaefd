package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/sar-runner/internal/pattern"
	"github.com/ensigniasec/sar-runner/internal/units"
)

// Options configures Run.
type Options struct {
	// Params describes the pattern the form starts with.
	Params pattern.Params
	// Speed is the travel speed every mounted runner starts at.
	Speed units.Speed
	// LogOutput receives logrus output while the TUI owns the terminal.
	// Nil discards it.
	LogOutput io.Writer
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, opts Options) error {
	zones := zone.New()
	defer zones.Close()

	model, err := NewModel(opts.Params, opts.Speed, zones)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	// Keep log lines from corrupting the view.
	out := opts.LogOutput
	if out == nil {
		out = io.Discard
	}
	prevOut := logrus.StandardLogger().Out
	logrus.SetOutput(out)
	defer logrus.SetOutput(prevOut)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
