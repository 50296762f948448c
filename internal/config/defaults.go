package config

import (
	"backdrop/internal/nav"
	"backdrop/internal/settings"
)

// DefaultPath is the config file read when --config is not given.
const DefaultPath = "backdrop.yml"

// DefaultConfig returns a Config populated with desktop defaults.
func DefaultConfig() *Config {
	sections := make([]nav.Section, len(nav.DefaultSections))
	for i, id := range nav.DefaultSections {
		sections[i] = nav.Section{ID: id, Height: 900}
	}
	return &Config{
		Background: settings.Defaults(),
		Viewport:   ViewportConfig{Width: 1280, Height: 720, DPR: 1},
		Nav: NavConfig{
			Sections:          sections,
			Lookahead:         nav.DefaultLookahead,
			ScrolledThreshold: nav.DefaultScrolledThreshold,
			Debounce:          nav.DefaultResizeDelay,
		},
		Render: RenderConfig{
			Frames:   120,
			OutDir:   "frames",
			Seed:     42,
			FPS:      60,
			Backdrop: "#05060a",
		},
		Server: ServerConfig{
			Addr:           "127.0.0.1:8080",
			AllowedOrigins: []string{"*"},
		},
	}
}
