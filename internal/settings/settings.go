// Package settings holds the background configuration that the render engine
// reads and that settings surfaces (HUD, HTTP API, prompts) write.
package settings

import (
	"errors"
	"fmt"
)

// Tier is a discrete quality preset controlling how many layers and
// particles render.
type Tier string

const (
	TierMinimal  Tier = "minimal"
	TierStandard Tier = "standard"
	TierMax      Tier = "max"
)

// Tiers lists every tier from cheapest to richest.
var Tiers = []Tier{TierMinimal, TierStandard, TierMax}

// ParticleBudget returns the fixed particle pool size for the tier.
func (t Tier) ParticleBudget() int {
	switch t {
	case TierMinimal:
		return 30
	case TierMax:
		return 100
	default:
		return 60
	}
}

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	return t == TierMinimal || t == TierStandard || t == TierMax
}

// ColorScheme selects the palette used by the particle and accent layers.
type ColorScheme string

const (
	SchemeNeon ColorScheme = "neon"
	SchemeWarm ColorScheme = "warm"
	SchemeCool ColorScheme = "cool"
)

// Schemes lists the supported color schemes.
var Schemes = []ColorScheme{SchemeNeon, SchemeWarm, SchemeCool}

// Valid reports whether s is a known scheme.
func (s ColorScheme) Valid() bool {
	return s == SchemeNeon || s == SchemeWarm || s == SchemeCool
}

var (
	ErrInvalidTier    = errors.New("invalid tier")
	ErrInvalidScheme  = errors.New("invalid color scheme")
	ErrIntensityRange = errors.New("intensity out of range")
)

// Settings is the immutable configuration handed to the render engine.
type Settings struct {
	Tier            Tier        `yaml:"tier" koanf:"tier" json:"tier"`
	Intensity       float64     `yaml:"intensity" koanf:"intensity" json:"intensity"`
	EnableParticles bool        `yaml:"enable_particles" koanf:"enable_particles" json:"enableParticles"`
	EnableMotion    bool        `yaml:"enable_motion" koanf:"enable_motion" json:"enableMotion"`
	ColorScheme     ColorScheme `yaml:"color_scheme" koanf:"color_scheme" json:"colorScheme"`
}

// Defaults returns the desktop defaults used when no device signals are
// available.
func Defaults() Settings {
	return Settings{
		Tier:            TierStandard,
		Intensity:       0.7,
		EnableParticles: true,
		EnableMotion:    true,
		ColorScheme:     SchemeNeon,
	}
}

// Validate checks every field.
func (s Settings) Validate() error {
	if !s.Tier.Valid() {
		return fmt.Errorf("%w %q: must be one of minimal, standard, max", ErrInvalidTier, s.Tier)
	}
	if s.Intensity < 0 || s.Intensity > 1 {
		return fmt.Errorf("%w: %g not in [0,1]", ErrIntensityRange, s.Intensity)
	}
	if s.ColorScheme != "" && !s.ColorScheme.Valid() {
		return fmt.Errorf("%w %q: must be one of neon, warm, cool", ErrInvalidScheme, s.ColorScheme)
	}
	return nil
}

// Normalized returns a copy with intensity clamped, an empty scheme replaced
// by neon and an unknown tier replaced by standard.
func (s Settings) Normalized() Settings {
	if s.Intensity < 0 {
		s.Intensity = 0
	}
	if s.Intensity > 1 {
		s.Intensity = 1
	}
	if !s.ColorScheme.Valid() {
		s.ColorScheme = SchemeNeon
	}
	if !s.Tier.Valid() {
		s.Tier = TierStandard
	}
	return s
}

// ShowGrid reports whether the grid overlay renders.
func (s Settings) ShowGrid() bool { return s.Tier != TierMinimal }

// ShowParticles reports whether the particle field renders.
func (s Settings) ShowParticles() bool { return s.Tier != TierMinimal && s.EnableParticles }

// ShowShapes reports whether the accent shapes render.
func (s Settings) ShowShapes() bool { return s.Tier == TierMax }

// ShowConnections reports whether connection lines between nearby particles
// render.
func (s Settings) ShowConnections() bool { return s.Tier == TierMax && s.ShowParticles() }
