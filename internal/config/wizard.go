package config

import (
	"fmt"
	"strconv"

	"backdrop/internal/settings"

	"github.com/manifoldco/promptui"
)

// RunWizard asks for the background settings interactively, starting from
// base, and saves the result to path.
func RunWizard(path string, base *Config) (*Config, error) {
	cfg := *base

	tierIdx, _, err := (&promptui.Select{
		Label:     "Quality tier",
		Items:     tierItems(),
		CursorPos: indexOf(settings.Tiers, cfg.Background.Tier),
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("tier selection: %w", err)
	}
	cfg.Background.Tier = settings.Tiers[tierIdx]

	intensity, err := (&promptui.Prompt{
		Label:    "Intensity (0-1)",
		Default:  strconv.FormatFloat(cfg.Background.Intensity, 'f', -1, 64),
		Validate: validateIntensity,
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("intensity: %w", err)
	}
	cfg.Background.Intensity, _ = strconv.ParseFloat(intensity, 64)

	schemeIdx, _, err := (&promptui.Select{
		Label:     "Color scheme",
		Items:     settings.Schemes,
		CursorPos: indexOf(settings.Schemes, cfg.Background.ColorScheme),
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("scheme selection: %w", err)
	}
	cfg.Background.ColorScheme = settings.Schemes[schemeIdx]

	if cfg.Background.EnableParticles, err = confirm("Render particles", cfg.Background.EnableParticles); err != nil {
		return nil, fmt.Errorf("particles: %w", err)
	}
	if cfg.Background.EnableMotion, err = confirm("Animate the background", cfg.Background.EnableMotion); err != nil {
		return nil, fmt.Errorf("motion: %w", err)
	}
	cfg.Detect = false

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}
	return &cfg, nil
}

var tierLayers = map[settings.Tier]string{
	settings.TierMinimal:  "static gradient",
	settings.TierStandard: "gradient, grid and particles",
	settings.TierMax:      "every layer plus connections",
}

func tierItems() []string {
	items := make([]string, len(settings.Tiers))
	for i, t := range settings.Tiers {
		items[i] = fmt.Sprintf("%-8s  %s", t, tierLayers[t])
	}
	return items
}

func confirm(label string, def bool) (bool, error) {
	pos := 1
	if def {
		pos = 0
	}
	idx, _, err := (&promptui.Select{Label: label, Items: []string{"yes", "no"}, CursorPos: pos}).Run()
	if err != nil {
		return def, err
	}
	return idx == 0, nil
}

func validateIntensity(input string) error {
	v, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if v < 0 || v > 1 {
		return settings.ErrIntensityRange
	}
	return nil
}

func indexOf[T comparable](items []T, v T) int {
	for i, it := range items {
		if it == v {
			return i
		}
	}
	return 0
}
