package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/pflag"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides: BACKDROP_BACKGROUND_TIER sets
// background.tier.
const EnvPrefix = "BACKDROP_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

// envKey maps BACKDROP_NAV_SCROLLED_THRESHOLD to nav.scrolled_threshold.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if err := c.Background.Validate(); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %gx%g", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Viewport.DPR <= 0 {
		return fmt.Errorf("viewport dpr must be positive, got %g", c.Viewport.DPR)
	}

	if len(c.Nav.Sections) == 0 {
		return errors.New("nav.sections must not be empty")
	}
	seen := make(map[string]bool, len(c.Nav.Sections))
	for _, s := range c.Nav.Sections {
		if s.ID == "" {
			return errors.New("nav section id is required")
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate nav section %q", s.ID)
		}
		seen[s.ID] = true
		if s.Height < 0 {
			return fmt.Errorf("nav section %q has negative height", s.ID)
		}
	}
	if c.Nav.Lookahead < 0 || c.Nav.ScrolledThreshold < 0 {
		return errors.New("nav lookahead and scrolled_threshold must be non-negative")
	}
	if c.Nav.Debounce < 0 {
		return errors.New("nav debounce must be non-negative")
	}

	if c.Render.Frames < 0 {
		return errors.New("render.frames must be non-negative")
	}
	if c.Render.FPS <= 0 {
		return fmt.Errorf("render.fps must be positive, got %d", c.Render.FPS)
	}
	if _, err := c.BackdropColor(); err != nil {
		return err
	}

	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	return nil
}

// BackdropColor parses Render.Backdrop.
func (c *Config) BackdropColor() (colorful.Color, error) {
	col, err := colorful.Hex(c.Render.Backdrop)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid render.backdrop %q: %w", c.Render.Backdrop, err)
	}
	return col, nil
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.StringVar((*string)(&c.Background.Tier), "tier", string(c.Background.Tier), "quality tier: minimal, standard or max")
	fs.Float64Var(&c.Background.Intensity, "intensity", c.Background.Intensity, "effect intensity in [0,1]")
	fs.BoolVar(&c.Background.EnableParticles, "particles", c.Background.EnableParticles, "render the particle layer")
	fs.BoolVar(&c.Background.EnableMotion, "motion", c.Background.EnableMotion, "animate the background")
	fs.StringVar((*string)(&c.Background.ColorScheme), "scheme", string(c.Background.ColorScheme), "color scheme: neon, warm or cool")
	fs.BoolVar(&c.Detect, "detect", c.Detect, "derive settings from device signals")
	fs.StringVar(&c.Signals.UserAgent, "user-agent", c.Signals.UserAgent, "user agent used by --detect")
	fs.Float64Var(&c.Signals.DeviceMemoryGB, "device-memory", c.Signals.DeviceMemoryGB, "device memory in GB used by --detect")
	fs.BoolVar(&c.Signals.PrefersReducedMotion, "reduced-motion", c.Signals.PrefersReducedMotion, "prefer reduced motion")
	fs.Float64Var(&c.Viewport.Width, "width", c.Viewport.Width, "viewport width in CSS pixels")
	fs.Float64Var(&c.Viewport.Height, "height", c.Viewport.Height, "viewport height in CSS pixels")
	fs.Float64Var(&c.Viewport.DPR, "dpr", c.Viewport.DPR, "device pixel ratio")
	fs.Int64Var(&c.Render.Seed, "seed", c.Render.Seed, "seed for particle generation")
	fs.IntVar(&c.Render.FPS, "fps", c.Render.FPS, "frames per second")
}

// Apply copies every flag that was set on fs onto c. fs must have been bound
// with Bind on some Config.
func (c *Config) Apply(fs *pflag.FlagSet) error {
	target := pflag.NewFlagSet("apply", pflag.ContinueOnError)
	c.Bind(target)
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil || target.Lookup(f.Name) == nil {
			return
		}
		if setErr := target.Set(f.Name, f.Value.String()); setErr != nil {
			err = fmt.Errorf("flag --%s: %w", f.Name, setErr)
		}
	})
	return err
}
