package main

import (
	"os"
	"os/signal"
	"syscall"

	"backdrop/internal/server"

	"github.com/spf13/cobra"
)

func newServeCmd(c *cli) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the settings API, frame previews and the navigation websocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(server.Config{
				Addr:           cfg.Server.Addr,
				AllowedOrigins: cfg.Server.AllowedOrigins,
				Viewport:       cfg.Viewport.Viewport(),
				Backdrop:       backdropColor(cfg),
				Seed:           cfg.Render.Seed,
				FPS:            cfg.Render.FPS,
				Sections:       cfg.Nav.Sections,
				Lookahead:      cfg.Nav.Lookahead,
				Threshold:      cfg.Nav.ScrolledThreshold,
				Debounce:       cfg.Nav.Debounce,
				ReducedMotion:  cfg.Signals.PrefersReducedMotion,
				Logger:         c.logger,
			}, newStore(cfg))
			return srv.Run(ctx)
		},
	}
	bindConfigFlags(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
