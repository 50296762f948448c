package settings

import (
	"math"
	"strconv"

	"backdrop/internal/core"
)

const (
	keyTier      = "tier"
	keyIntensity = "intensity"
	keyParticles = "enable_particles"
	keyMotion    = "enable_motion"
	keyScheme    = "color_scheme"
)

// Parameters exposes the current settings for a settings panel.
func (s *Store) Parameters() core.ParameterSnapshot {
	cur := s.Snapshot()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Quality",
			Params: []core.Parameter{
				choiceParam(keyTier, "Tier", string(cur.Tier)),
				floatParam(keyIntensity, "Intensity", cur.Intensity),
			},
		},
		{
			Name: "Layers",
			Params: []core.Parameter{
				boolParam(keyParticles, "Particles", cur.EnableParticles),
				boolParam(keyMotion, "Motion", cur.EnableMotion),
				choiceParam(keyScheme, "Colors", string(cur.ColorScheme)),
			},
		},
	}}
}

// ParameterControls lists the adjustable controls.
func (s *Store) ParameterControls() []core.ParameterControl {
	tiers := make([]string, len(Tiers))
	for i, t := range Tiers {
		tiers[i] = string(t)
	}
	schemes := make([]string, len(Schemes))
	for i, cs := range Schemes {
		schemes[i] = string(cs)
	}
	return []core.ParameterControl{
		{Key: keyTier, Label: "Tier", Type: core.ParamTypeChoice, Options: tiers},
		{Key: keyIntensity, Label: "Intensity", Type: core.ParamTypeFloat, Step: 0.1, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: keyParticles, Label: "Particles", Type: core.ParamTypeBool},
		{Key: keyMotion, Label: "Motion", Type: core.ParamTypeBool},
		{Key: keyScheme, Label: "Colors", Type: core.ParamTypeChoice, Options: schemes},
	}
}

// SetFloatParameter implements core.FloatParameterSetter.
func (s *Store) SetFloatParameter(key string, value float64) bool {
	if key != keyIntensity {
		return false
	}
	value = math.Max(0, math.Min(1, value))
	return s.SetIntensity(value) == nil
}

// SetBoolParameter implements core.BoolParameterSetter.
func (s *Store) SetBoolParameter(key string, value bool) bool {
	switch key {
	case keyParticles:
		s.SetEnableParticles(value)
	case keyMotion:
		s.SetEnableMotion(value)
	default:
		return false
	}
	return true
}

// SetChoiceParameter implements core.ChoiceParameterSetter.
func (s *Store) SetChoiceParameter(key string, value string) bool {
	switch key {
	case keyTier:
		return s.SetTier(Tier(value)) == nil
	case keyScheme:
		return s.SetColorScheme(ColorScheme(value)) == nil
	default:
		return false
	}
}

func choiceParam(key, label, value string) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeChoice, Value: value}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeBool, Value: strconv.FormatBool(value)}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeFloat, Value: strconv.FormatFloat(value, 'f', -1, 64)}
}
