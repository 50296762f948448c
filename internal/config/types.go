package config

import (
	"time"

	"backdrop/internal/core"
	"backdrop/internal/nav"
	"backdrop/internal/settings"
)

// Config is the full configuration of every backdrop host.
type Config struct {
	// Detect derives the background settings from Signals instead of using
	// Background as written.
	Detect     bool              `yaml:"detect" koanf:"detect"`
	Background settings.Settings `yaml:"background" koanf:"background"`
	Signals    settings.Signals  `yaml:"signals" koanf:"signals"`
	Viewport   ViewportConfig    `yaml:"viewport" koanf:"viewport"`
	Nav        NavConfig         `yaml:"nav" koanf:"nav"`
	Render     RenderConfig      `yaml:"render" koanf:"render"`
	Server     ServerConfig      `yaml:"server" koanf:"server"`
}

// ViewportConfig is the CSS size and pixel ratio of the drawing surface.
type ViewportConfig struct {
	Width  float64 `yaml:"width" koanf:"width"`
	Height float64 `yaml:"height" koanf:"height"`
	DPR    float64 `yaml:"dpr" koanf:"dpr"`
}

// NavConfig configures the section tracker and the page layout used by the
// offline hosts.
type NavConfig struct {
	Sections          []nav.Section `yaml:"sections" koanf:"sections"`
	Lookahead         float64       `yaml:"lookahead" koanf:"lookahead"`
	ScrolledThreshold float64       `yaml:"scrolled_threshold" koanf:"scrolled_threshold"`
	Debounce          time.Duration `yaml:"debounce" koanf:"debounce"`
}

// RenderConfig configures headless frame output.
type RenderConfig struct {
	Frames int    `yaml:"frames" koanf:"frames"`
	OutDir string `yaml:"out_dir" koanf:"out_dir"`
	Seed   int64  `yaml:"seed" koanf:"seed"`
	FPS    int    `yaml:"fps" koanf:"fps"`
	// Backdrop is the hex color painted under the gradient.
	Backdrop string `yaml:"backdrop" koanf:"backdrop"`
}

// ServerConfig configures the preview HTTP server.
type ServerConfig struct {
	Addr           string   `yaml:"addr" koanf:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins" koanf:"allowed_origins"`
}

// Viewport converts the viewport section into a core.Viewport.
func (v ViewportConfig) Viewport() core.Viewport {
	return core.Viewport{Width: v.Width, Height: v.Height, DPR: v.DPR}
}

// SectionIDs lists the configured section ids in order.
func (n NavConfig) SectionIDs() []string {
	ids := make([]string, len(n.Sections))
	for i, s := range n.Sections {
		ids[i] = s.ID
	}
	return ids
}

// Layout builds a stacked page layout from the configured sections.
func (n NavConfig) Layout() *nav.Layout {
	return nav.NewLayout(0, n.Sections...)
}

// Settings returns the background settings to start with.
func (c *Config) Settings() settings.Settings {
	if c.Detect {
		return settings.Initial(c.Signals)
	}
	return c.Background.Normalized()
}
