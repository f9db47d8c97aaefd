package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ensigniasec/sar-runner/internal/units"
)

//nolint:gochecknoglobals // Shared render styles.
var (
	bannerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).BorderForeground(lipgloss.Color("240"))
	focusedPanel  = panelStyle.BorderForeground(lipgloss.Color("69"))
	rowStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeRow     = lipgloss.NewStyle().Foreground(lipgloss.Color("69")).Bold(true)
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	doneStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46")).Padding(0, 1)
)

func (m Model) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	left := m.renderForm()
	right := m.runner.View()
	if m.completed != "" {
		right = doneStyle.Render("✅ Search pattern complete") + "\n\n" + right
	}

	var body string
	if m.width > lipgloss.Width(left)+columnGap {
		right = lipgloss.NewStyle().MarginLeft(columnGap).Width(m.runnerWidth()).Render(right)
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	} else {
		// Fallback to vertical stacking if we don't yet know the window or it's too small.
		body = left + "\n" + right
	}

	var b strings.Builder
	b.WriteString(renderHeader())
	b.WriteString("\n\n")
	if m.helpVisible {
		b.WriteString(m.renderHelp())
		b.WriteString("\n\n")
	}
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	if m.zones != nil {
		return m.zones.Scan(b.String())
	}
	return b.String()
}

func renderHeader() string {
	return bannerStyle.Render("SAR RUNNER") + "  " + subtitleStyle.Render("Search pattern leg runner")
}

// renderForm draws the configuration column: the kind selector, the inputs
// for that kind, and whether they currently describe a pattern.
func (m Model) renderForm() string {
	f := m.form
	var b strings.Builder
	b.WriteString(bannerStyle.Render("Pattern"))
	b.WriteString("\n\n")

	b.WriteString(formRow(f.active && f.row == 0, "Kind", "‹ "+f.Kind().Title()+" ›"))
	for i, field := range f.fields() {
		b.WriteString("\n")
		b.WriteString(formRow(f.active && f.row == i+1, fieldLabels[field], f.inputs[field].View()))
	}
	b.WriteString("\n\n")

	if f.err != "" {
		b.WriteString(errStyle.Width(formWidth - 4).Render("undefined: " + f.err))
	} else {
		p := m.pattern
		b.WriteString(okStyle.Render(fmt.Sprintf("%d legs • %s", p.LegCount(), units.Metres(p.Length()))))
	}

	style := panelStyle
	if m.focus == focusForm {
		style = focusedPanel
	}
	return style.Width(formWidth).Render(b.String())
}

func formRow(active bool, label, value string) string {
	prefix := "  "
	style := rowStyle
	if active {
		prefix = "> "
		style = activeRow
	}
	return style.Render(prefix+label+":") + " " + value
}

func (m Model) renderHelp() string {
	border := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).Foreground(lipgloss.Color("69"))
	content := []string{
		"Help",
		"",
		"tab: switch between the pattern form and the runner",
		"form: ↑/↓ move between fields, ←/→ change pattern kind",
		"runner: r run • p pause • space run/pause • b previous • s skip • x reset",
		"runner: e edit speed • u cycle speed unit • click the buttons",
		"?: toggle this help",
		"q/ctrl+c: quit",
	}
	return border.Render(strings.Join(content, "\n"))
}
