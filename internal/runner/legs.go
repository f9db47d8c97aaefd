package runner

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/ensigniasec/sar-runner/internal/pattern"
	"github.com/ensigniasec/sar-runner/internal/units"
)

// legStatus is where a leg sits relative to the cursor.
type legStatus int

const (
	legPending legStatus = iota
	legCurrent
	legDone
)

// legItem is the list item backing one leg row.
type legItem struct {
	Index  int
	Leg    pattern.Leg
	Status legStatus
}

// List item interface methods.
func (it legItem) Title() string       { return fmt.Sprintf("Leg %d", it.Index) }
func (it legItem) Description() string { return "" }
func (it legItem) FilterValue() string { return HumanBearing(it.Leg.Bearing) }

func legItems(p pattern.Pattern) []list.Item {
	return lo.Map(p.Legs(), func(l pattern.Leg, i int) list.Item {
		status := legPending
		switch {
		case i+1 < p.CurrentLeg():
			status = legDone
		case i+1 == p.CurrentLeg():
			status = legCurrent
		}
		return legItem{Index: i + 1, Leg: l, Status: status}
	})
}

// legsDelegate renders legItem rows with the distance right-justified.
type legsDelegate struct{}

func (d legsDelegate) Height() int                             { return 1 }
func (d legsDelegate) Spacing() int                            { return 0 }
func (d legsDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d legsDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	it, ok := listItem.(legItem)
	if !ok {
		return
	}
	leftPrefix := "  "
	lineStyle := lipgloss.NewStyle()
	switch it.Status {
	case legCurrent:
		leftPrefix = "> "
		lineStyle = lineStyle.Foreground(lipgloss.Color("69")).Bold(true)
	case legDone:
		lineStyle = lineStyle.Foreground(lipgloss.Color("240"))
	}

	left := fmt.Sprintf("%s%02d. Head %s", leftPrefix, it.Index, HumanBearing(it.Leg.Bearing))
	right := units.Metres(it.Leg.Distance).String()
	if icon := legIcon(it.Status); icon != "" {
		right += " " + icon
	}

	padding := m.Width() - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	_, _ = fmt.Fprint(w, lineStyle.Render(left+spaces(padding)+right))
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Width(n).Render("")
}

func legIcon(s legStatus) string {
	switch s {
	case legDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render("✓")
	case legCurrent:
		return "…"
	default:
		return ""
	}
}

func newLegList(p pattern.Pattern) list.Model {
	lst := list.New(legItems(p), legsDelegate{}, defaultListWidth, defaultListHeight)
	lst.Title = "Legs"
	lst.SetShowStatusBar(false)
	lst.SetFilteringEnabled(false)
	lst.SetShowHelp(false)
	lst.SetShowPagination(true)
	lst.DisableQuitKeybindings()
	return lst
}
