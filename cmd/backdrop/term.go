package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"backdrop/internal/app"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
)

func newTermCmd(c *cli) *cobra.Command {
	var logPath string
	cmd := &cobra.Command{
		Use:   "term",
		Short: "Animate the backdrop in the terminal",
		Long: `Draws the backdrop with half-block cells. Keys: t tier, c scheme,
p particles, m motion, r reduced motion, +/- intensity, h status line, q quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.load(cmd)
			if err != nil {
				return err
			}
			logger, closeLog, err := c.logFile(logPath)
			if err != nil {
				return fmt.Errorf("opening log file: %w", err)
			}
			defer closeLog()

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("creating screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("initializing screen: %w", err)
			}
			defer screen.Fini()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			host := app.NewTerminal(screen, newStore(cfg), app.TerminalOptions{
				Seed:          cfg.Render.Seed,
				FPS:           cfg.Render.FPS,
				Backdrop:      backdropColor(cfg),
				Logger:        logger,
				ReducedMotion: cfg.Signals.PrefersReducedMotion,
			})
			return host.Run(ctx)
		},
	}
	bindConfigFlags(cmd)
	cmd.Flags().StringVar(&logPath, "log-file", "", "write logs to this file while the terminal is in use")
	return cmd
}
