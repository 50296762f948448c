package main

import (
	"backdrop/internal/app"

	"github.com/spf13/cobra"
)

func newWindowCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "window",
		Short: "Open the backdrop in a desktop window",
		Long: `Opens a window with the live backdrop, a settings panel and a navigation
overlay. The mouse wheel scrolls a virtual page built from the configured
sections. Keys: h panel, r reduced motion, Home/End, q quit. Requires a
binary built with the ebiten tag.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.load(cmd)
			if err != nil {
				return err
			}
			return app.RunWindow(newStore(cfg), app.WindowOptions{
				Title:     "backdrop",
				Width:     int(cfg.Viewport.Width),
				Height:    int(cfg.Viewport.Height),
				Seed:      cfg.Render.Seed,
				FPS:       cfg.Render.FPS,
				Backdrop:  backdropColor(cfg),
				Layout:    cfg.Nav.Layout(),
				Lookahead: cfg.Nav.Lookahead,
				Threshold: cfg.Nav.ScrolledThreshold,
				Debounce:  cfg.Nav.Debounce,
				Reduced:   cfg.Signals.PrefersReducedMotion,
				Logger:    c.logger,
			})
		},
	}
	bindConfigFlags(cmd)
	return cmd
}
