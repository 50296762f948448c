package main

import (
	"image/color"
	"log/slog"
	"os"

	"backdrop/internal/config"
	"backdrop/internal/settings"

	"github.com/gogpu/gg"
	"github.com/spf13/cobra"
)

// cli carries the persistent flags shared by every subcommand.
type cli struct {
	cfgFile string
	verbose bool
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: slog.New(slog.DiscardHandler)}
	root := &cobra.Command{
		Use:   "backdrop",
		Short: "Animated portfolio backdrop and scroll-driven section tracking",
		Long: `backdrop renders the layered portfolio background (gradient, grid,
particles, accent shapes) headlessly, in a terminal, in a window or over
HTTP, and tracks the active page section from scroll positions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if c.verbose {
				level = slog.LevelDebug
			}
			c.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			gg.SetLogger(c.logger)
		},
	}
	root.PersistentFlags().StringVar(&c.cfgFile, "config", config.DefaultPath, "config file path")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newRenderCmd(c),
		newTermCmd(c),
		newWindowCmd(c),
		newServeCmd(c),
		newScrollCmd(c),
		newInitCmd(c),
	)
	return root
}

// bindConfigFlags registers the configuration flags on cmd. Only flags the
// user sets override the loaded file.
func bindConfigFlags(cmd *cobra.Command) {
	config.DefaultConfig().Bind(cmd.Flags())
}

// load reads the config file, applies environment and flag overrides and
// validates the result.
func (c *cli) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(c.cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(cmd.Flags()); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c.logger.Debug("config loaded", "path", c.cfgFile, "tier", cfg.Settings().Tier, "detect", cfg.Detect)
	return cfg, nil
}

func backdropColor(cfg *config.Config) color.Color {
	col, err := cfg.BackdropColor()
	if err != nil {
		return color.Black
	}
	return col
}

func newStore(cfg *config.Config) *settings.Store {
	return settings.NewStore(cfg.Settings())
}

func (c *cli) logFile(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), func() { f.Close() }, nil
}
