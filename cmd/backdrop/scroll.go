package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"backdrop/internal/config"
	"backdrop/internal/nav"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newScrollCmd(c *cli) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "scroll POSITION...",
		Short: "Replay scroll offsets against the configured layout",
		Long: `Scrolls a tracker over the configured section layout, one frame per
position, and prints the active section and scrolled flag after each.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.load(cmd)
			if err != nil {
				return err
			}
			positions := make([]float64, len(args))
			for i, a := range args {
				if positions[i], err = strconv.ParseFloat(a, 64); err != nil {
					return fmt.Errorf("position %q: %w", a, err)
				}
			}
			return writeSteps(cmd.OutOrStdout(), format, replay(cfg, positions))
		},
	}
	bindConfigFlags(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")
	return cmd
}

func replay(cfg *config.Config, positions []float64) []nav.Step {
	return nav.Replay(cfg.Nav.Layout(), positions,
		nav.WithSections(cfg.Nav.SectionIDs()...),
		nav.WithLookahead(cfg.Nav.Lookahead),
		nav.WithScrolledThreshold(cfg.Nav.ScrolledThreshold))
}

func writeSteps(w io.Writer, format string, steps []nav.Step) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(steps)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(steps)
	case "text":
		for _, s := range steps {
			if _, err := fmt.Fprintf(w, "%8.0f  %-10s scrolled=%t\n", s.ScrollY, s.State.Active, s.State.Scrolled); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
