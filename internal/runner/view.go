package runner

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ensigniasec/sar-runner/internal/units"
)

//nolint:gochecknoglobals // Shared render styles.
var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	lockedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	buttonStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	timerStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	instructionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	completeStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
)

// View implements tea.Model.
func (c Controller) View() string {
	var b strings.Builder
	b.WriteString(c.renderTitle())
	b.WriteString("\n\n")
	b.WriteString(c.renderSpeedTimeDistance())
	b.WriteString("\n\n")
	b.WriteString(c.renderButtons())
	b.WriteString("\n")
	if t, ok := c.Timer(); ok {
		b.WriteString("\n")
		b.WriteString(timerStyle.Render(t.View()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(c.renderInstruction())
	b.WriteString("\n\n")
	b.WriteString(c.renderProgress())
	b.WriteString("\n\n")
	b.WriteString(c.legs.View())
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Total Length:"))
	b.WriteString(" ")
	b.WriteString(lockedStyle.Render(units.Metres(c.state.Pattern.Length()).String()))
	b.WriteString("\n\n")
	b.WriteString(c.help.View(c.keys))
	return b.String()
}

func (c Controller) renderTitle() string {
	p := c.state.Pattern
	leg := fmt.Sprintf("leg %d/%d", min(c.state.Leg(), p.LegCount()), p.LegCount())
	if c.state.Complete() {
		leg = "complete"
	}
	return titleStyle.Render(p.Kind().Title()) + labelStyle.Render(" • "+leg)
}

// renderSpeedTimeDistance shows the speed (editable), the leg distance
// (locked) and the time it takes (calculated).
func (c Controller) renderSpeedTimeDistance() string {
	speed := c.state.Speed.String()
	if c.editingSpeed {
		speed = c.speedInput.View() + " " + c.state.Speed.Unit()
	}
	line := labelStyle.Render("Speed:") + " " + speed + "   " +
		labelStyle.Render("Distance:") + " " + lockedStyle.Render(c.state.Distance().String()+" (locked)") + "   " +
		labelStyle.Render("Time:") + " " + c.state.LegTime().Human()
	if c.speedErr != "" {
		line += "\n" + errorStyle.Render(c.speedErr)
	}
	return line
}

func (c Controller) renderButtons() string {
	buttons := c.state.Buttons()
	rendered := make([]string, 0, len(buttons))
	for _, a := range buttons {
		btn := buttonStyle.Render("[ " + a.String() + " ]")
		if c.zones != nil {
			btn = c.zones.Mark(c.buttonZone(a), btn)
		}
		rendered = append(rendered, btn)
	}
	return strings.Join(rendered, " ")
}

func (c Controller) renderInstruction() string {
	text := c.state.Instruction()
	if c.state.Complete() {
		return completeStyle.Render(text)
	}
	return instructionStyle.Render(text)
}

// renderProgress shows the share of legs already flown.
func (c Controller) renderProgress() string {
	total := c.state.Pattern.LegCount()
	if total == 0 {
		return c.progress.ViewAs(0)
	}
	done := min(c.state.Leg()-1, total)
	return c.progress.ViewAs(float64(done) / float64(total))
}
