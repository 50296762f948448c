package ui

import (
	"image"
	"math"
	"slices"
	"strconv"

	"backdrop/internal/core"
)

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	controlsTop    = panelPadding + headerBaseline + 14
)

// Panel holds the state of a settings panel: one row per adjustable control
// with a minus and a plus button. It is independent of any graphics backend.
type Panel struct {
	source   core.ParameterProvider
	width    int
	title    string
	controls []controlState

	floatSetter  core.FloatParameterSetter
	boolSetter   core.BoolParameterSetter
	choiceSetter core.ChoiceParameterSetter
}

type controlState struct {
	control core.ParameterControl
	value   string

	hasValue   bool
	floatValue float64
	boolValue  bool
	choice     int

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// NewPanel builds a panel of the given pixel width for source. Controls and
// setters are discovered through the core parameter interfaces.
func NewPanel(title string, source core.ParameterProvider, width int) *Panel {
	if width < 0 {
		width = 0
	}
	p := &Panel{source: source, width: width, title: title}
	if p.title == "" {
		p.title = "Controls"
	}
	if provider, ok := source.(core.ParameterControlsProvider); ok {
		controls := provider.ParameterControls()
		p.controls = make([]controlState, len(controls))
		for i, ctrl := range controls {
			p.controls[i] = controlState{control: ctrl, value: "--"}
		}
		p.layoutControls()
	}
	if setter, ok := source.(core.FloatParameterSetter); ok {
		p.floatSetter = setter
	}
	if setter, ok := source.(core.BoolParameterSetter); ok {
		p.boolSetter = setter
	}
	if setter, ok := source.(core.ChoiceParameterSetter); ok {
		p.choiceSetter = setter
	}
	p.Refresh()
	return p
}

// Width is the panel width in pixels.
func (p *Panel) Width() int { return p.width }

// Len reports the number of controls.
func (p *Panel) Len() int { return len(p.controls) }

// Value returns the formatted value of control i.
func (p *Panel) Value(i int) string { return p.controls[i].value }

// Refresh reloads every control value from the source.
func (p *Panel) Refresh() {
	if p.source == nil || len(p.controls) == 0 {
		return
	}
	snapshot := p.source.Parameters()
	for i := range p.controls {
		state := &p.controls[i]
		param, ok := snapshot.Lookup(state.control.Key)
		state.hasValue = false
		state.value = "--"
		if !ok {
			continue
		}
		switch state.control.Type {
		case core.ParamTypeFloat:
			parsed, err := strconv.ParseFloat(param.Value, 64)
			if err != nil {
				continue
			}
			state.floatValue = parsed
			state.value = formatFloat(state.control, parsed)
		case core.ParamTypeBool:
			parsed, err := strconv.ParseBool(param.Value)
			if err != nil {
				continue
			}
			state.boolValue = parsed
			state.value = "off"
			if parsed {
				state.value = "on"
			}
		case core.ParamTypeChoice:
			idx := slices.Index(state.control.Options, param.Value)
			if idx < 0 {
				continue
			}
			state.choice = idx
			state.value = param.Value
		default:
			continue
		}
		state.hasValue = true
	}
}

// Click applies a press at panel-local coordinates and reports whether it
// hit an enabled button.
func (p *Panel) Click(x, y int) bool {
	for i := range p.controls {
		state := &p.controls[i]
		if !state.hasValue {
			continue
		}
		if pointInRect(x, y, state.minusRect) {
			return p.Adjust(i, -1)
		}
		if pointInRect(x, y, state.plusRect) {
			return p.Adjust(i, 1)
		}
	}
	return false
}

// Adjust steps control i in direction (-1 or +1). Choices wrap around and
// booleans toggle.
func (p *Panel) Adjust(i, direction int) bool {
	if i < 0 || i >= len(p.controls) || direction == 0 || !p.CanAdjust(i, direction) {
		return false
	}
	state := &p.controls[i]
	ok := false
	switch state.control.Type {
	case core.ParamTypeFloat:
		target, _ := p.floatTarget(state, direction)
		ok = p.floatSetter.SetFloatParameter(state.control.Key, target)
	case core.ParamTypeBool:
		ok = p.boolSetter.SetBoolParameter(state.control.Key, !state.boolValue)
	case core.ParamTypeChoice:
		n := len(state.control.Options)
		next := ((state.choice+direction)%n + n) % n
		ok = p.choiceSetter.SetChoiceParameter(state.control.Key, state.control.Options[next])
	}
	if ok {
		p.Refresh()
	}
	return ok
}

// CanAdjust reports whether control i accepts a step in direction.
func (p *Panel) CanAdjust(i, direction int) bool {
	if i < 0 || i >= len(p.controls) || direction == 0 {
		return false
	}
	state := &p.controls[i]
	if !state.hasValue {
		return false
	}
	switch state.control.Type {
	case core.ParamTypeFloat:
		if p.floatSetter == nil {
			return false
		}
		_, ok := p.floatTarget(state, direction)
		return ok
	case core.ParamTypeBool:
		return p.boolSetter != nil
	case core.ParamTypeChoice:
		return p.choiceSetter != nil && len(state.control.Options) > 1
	default:
		return false
	}
}

func (p *Panel) floatTarget(state *controlState, direction int) (float64, bool) {
	step := state.control.Step
	if step <= 0 {
		step = 0.05
	}
	target := math.Round((state.floatValue+float64(direction)*step)/step) * step
	if state.control.HasMin && target < state.control.Min {
		target = state.control.Min
	}
	if state.control.HasMax && target > state.control.Max {
		target = state.control.Max
	}
	return target, math.Abs(target-state.floatValue) >= 1e-9
}

func (p *Panel) layoutControls() {
	if len(p.controls) == 0 || p.width <= 0 {
		return
	}
	for i := range p.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(p.width-panelPadding-buttonSize, buttonY, p.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		p.controls[i].top = top
		p.controls[i].minusRect = minusRect
		p.controls[i].plusRect = plusRect
	}
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}
