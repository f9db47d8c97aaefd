package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"github.com/ensigniasec/sar-runner/internal/pattern"
)

// paramField names one numeric input of the configuration form.
type paramField string

const (
	fieldSweepWidth paramField = "sweep_width"
	fieldLegLength  paramField = "leg_length"
	fieldLegs       paramField = "legs"
	fieldMultiplier paramField = "multiplier"
	fieldIterations paramField = "iterations"
	fieldStart      paramField = "start_direction"
)

//nolint:gochecknoglobals // Static field labels.
var fieldLabels = map[paramField]string{
	fieldSweepWidth: "Sweep width (m)",
	fieldLegLength:  "Leg length (m)",
	fieldLegs:       "Legs",
	fieldMultiplier: "Multiplier",
	fieldIterations: "Iterations",
	fieldStart:      "Start direction",
}

// fieldsFor lists the inputs that define a pattern of kind k, in display order.
func fieldsFor(k pattern.Kind) []paramField {
	switch k {
	case pattern.CreepingLineAhead:
		return []paramField{fieldSweepWidth, fieldLegLength, fieldLegs, fieldStart}
	case pattern.Sector:
		return []paramField{fieldSweepWidth, fieldMultiplier, fieldIterations, fieldStart}
	case pattern.ExpandingSquare:
		return []paramField{fieldSweepWidth, fieldIterations, fieldStart}
	default:
		return []paramField{fieldSweepWidth, fieldStart}
	}
}

// form is the pattern configuration form: a kind selector on row 0 followed
// by the numeric inputs for that kind. Input values are kept per field, so
// switching kind and back restores what was typed.
type form struct {
	keys   keyMap
	kinds  []pattern.Kind
	kind   int
	inputs map[paramField]textinput.Model
	row    int
	active bool
	err    string
}

func newForm(p pattern.Params) form {
	f := form{
		keys:   newKeyMap(),
		kinds:  pattern.Kinds(),
		inputs: make(map[paramField]textinput.Model, len(fieldLabels)),
	}
	if _, idx, ok := lo.FindIndexOf(f.kinds, func(k pattern.Kind) bool { return k == p.Kind }); ok {
		f.kind = idx
	}

	values := map[paramField]string{
		fieldSweepWidth: formatFloat(p.SweepWidth, fallbackSweepWidth),
		fieldLegLength:  formatFloat(p.LegLength, fallbackLegLength),
		fieldLegs:       formatInt(p.Legs, fallbackLegs),
		fieldMultiplier: formatFloat(p.Multiplier, fallbackMultiplier),
		fieldIterations: formatInt(p.Iterations, fallbackIterations),
		fieldStart:      strconv.Itoa(p.StartDirection),
	}
	for field, v := range values {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = fieldInputWidth
		ti.CharLimit = fieldCharLimit
		ti.SetValue(v)
		ti.CursorEnd()
		f.inputs[field] = ti
	}
	return f
}

func formatFloat(v, fallback float64) string {
	if v <= 0 {
		v = fallback
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatInt(v, fallback int) string {
	if v <= 0 {
		v = fallback
	}
	return strconv.Itoa(v)
}

// Kind is the selected pattern kind.
func (f form) Kind() pattern.Kind {
	return f.kinds[f.kind]
}

func (f form) fields() []paramField {
	return fieldsFor(f.Kind())
}

// focusedField returns the input on the current row, if the row is not the
// kind selector.
func (f form) focusedField() (paramField, bool) {
	if f.row == 0 {
		return "", false
	}
	return f.fields()[f.row-1], true
}

// Params parses the visible inputs and validates the result.
func (f form) Params() (pattern.Params, error) {
	p := pattern.Params{Kind: f.Kind()}
	for _, field := range f.fields() {
		raw := strings.TrimSpace(f.inputs[field].Value())
		var err error
		switch field {
		case fieldSweepWidth:
			p.SweepWidth, err = strconv.ParseFloat(raw, 64)
		case fieldLegLength:
			p.LegLength, err = strconv.ParseFloat(raw, 64)
		case fieldMultiplier:
			p.Multiplier, err = strconv.ParseFloat(raw, 64)
		case fieldLegs:
			p.Legs, err = strconv.Atoi(raw)
		case fieldIterations:
			p.Iterations, err = strconv.Atoi(raw)
		case fieldStart:
			p.StartDirection, err = strconv.Atoi(raw)
		}
		if err != nil {
			return pattern.Params{}, fmt.Errorf("%s: %q is not a number", strings.ToLower(fieldLabels[field]), raw)
		}
	}
	if err := p.Validate(); err != nil {
		return pattern.Params{}, err
	}
	return p, nil
}

// Pattern builds the configured pattern, or nil while the form does not
// describe a valid one.
func (f *form) Pattern() *pattern.Pattern {
	params, err := f.Params()
	if err != nil {
		f.err = err.Error()
		return nil
	}
	p, err := pattern.New(params)
	if err != nil {
		f.err = err.Error()
		return nil
	}
	f.err = ""
	return &p
}

// Focus gives the form keyboard focus.
func (f *form) Focus() tea.Cmd {
	f.active = true
	return f.focusRow()
}

// Blur removes keyboard focus from the form.
func (f *form) Blur() {
	f.active = false
	f.blurInputs()
}

func (f *form) blurInputs() {
	for field, ti := range f.inputs {
		ti.Blur()
		f.inputs[field] = ti
	}
}

func (f *form) focusRow() tea.Cmd {
	f.blurInputs()
	field, ok := f.focusedField()
	if !f.active || !ok {
		return nil
	}
	ti := f.inputs[field]
	cmd := ti.Focus()
	ti.CursorEnd()
	f.inputs[field] = ti
	return cmd
}

func (f *form) moveRow(delta int) tea.Cmd {
	rows := len(f.fields()) + 1
	f.row = (f.row + delta + rows) % rows
	return f.focusRow()
}

func (f *form) cycleKind(delta int) {
	f.kind = (f.kind + delta + len(f.kinds)) % len(f.kinds)
	f.row = min(f.row, len(f.fields()))
}

// Update handles a key while the form has focus. changed reports whether the
// configuration may now describe a different pattern.
func (f form) Update(msg tea.KeyMsg) (form, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, f.keys.Up):
		return f, f.moveRow(-1), false
	case key.Matches(msg, f.keys.Down):
		return f, f.moveRow(1), false
	}

	field, ok := f.focusedField()
	if !ok {
		switch {
		case key.Matches(msg, f.keys.PrevKind):
			f.cycleKind(-1)
			return f, nil, true
		case key.Matches(msg, f.keys.NextKind):
			f.cycleKind(1)
			return f, nil, true
		}
		return f, nil, false
	}

	ti := f.inputs[field]
	before := ti.Value()
	var cmd tea.Cmd
	ti, cmd = ti.Update(msg)
	f.inputs[field] = ti
	return f, cmd, ti.Value() != before
}
