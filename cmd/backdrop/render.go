package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"backdrop/internal/background"
	"backdrop/internal/config"
	"backdrop/internal/core"
	"backdrop/internal/render"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var errNoSurface = errors.New("surface could not be acquired")

func newRenderCmd(c *cli) *cobra.Command {
	var (
		frames int
		outDir string
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render backdrop frames to PNG files",
		Long: `Runs the render engine headlessly for a number of animation frames and
writes each one as a PNG. With --dry-run nothing is written; the primitives of
the last frame are summarized per layer instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("frames") {
				cfg.Render.Frames = frames
			}
			if cmd.Flags().Changed("out") {
				cfg.Render.OutDir = outDir
			}
			if cfg.Render.Frames <= 0 {
				return fmt.Errorf("frames must be positive, got %d", cfg.Render.Frames)
			}
			if dryRun {
				return c.renderDry(cfg, cmd.OutOrStdout())
			}
			return c.renderPNG(cfg, cmd.ErrOrStderr())
		},
	}
	bindConfigFlags(cmd)
	cmd.Flags().IntVarP(&frames, "frames", "n", 0, "number of frames to render (default from config)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default from config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "record primitives instead of writing PNGs")
	return cmd
}

// renderSequence drives a fresh engine for n frames on a private loop and
// calls emit after each one. Frames without motion are redrawn statically.
func (c *cli) renderSequence(cfg *config.Config, factory background.SurfaceFactory, n int, emit func(i int) error) (*background.Engine, error) {
	loop := core.NewLoop()
	engine := background.NewEngine(loop, factory, cfg.Settings(), cfg.Viewport.Viewport(),
		background.WithSeed(cfg.Render.Seed), background.WithLogger(c.logger))
	engine.SetReducedMotion(cfg.Signals.PrefersReducedMotion)
	engine.Start()
	defer engine.Stop()
	for i := range n {
		// Start already painted the first static frame.
		if loop.RunFrame() == 0 && (i > 0 || engine.Draws() == 0) {
			engine.Render()
		}
		if err := emit(i); err != nil {
			return engine, err
		}
	}
	return engine, nil
}

func (c *cli) renderPNG(cfg *config.Config, progressOut io.Writer) error {
	if err := os.MkdirAll(cfg.Render.OutDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	var surface *render.GG
	factory := render.GGFactory(backdropColor(cfg), func(g *render.GG) { surface = g })

	bar := progressbar.NewOptions(cfg.Render.Frames,
		progressbar.OptionSetWriter(progressOut),
		progressbar.OptionSetDescription("Rendering frames"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	_, err := c.renderSequence(cfg, factory, cfg.Render.Frames, func(i int) error {
		if surface == nil {
			return errNoSurface
		}
		path := filepath.Join(cfg.Render.OutDir, fmt.Sprintf("frame_%04d.png", i))
		if err := surface.SavePNG(path); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		return bar.Add(1)
	})
	if surface != nil {
		surface.Close()
	}
	if err != nil {
		return err
	}
	_ = bar.Finish()
	c.logger.Info("frames written", "count", cfg.Render.Frames, "dir", cfg.Render.OutDir)
	return nil
}

func (c *cli) renderDry(cfg *config.Config, out io.Writer) error {
	rec := background.NewRecorder()
	engine, err := c.renderSequence(cfg, background.RecorderFactory(rec), cfg.Render.Frames, func(int) error { return nil })
	if err != nil {
		return err
	}
	s := engine.Settings()
	b := engine.Backing()
	fmt.Fprintf(out, "tier %s, scheme %s, intensity %.2f, motion %t, reduced motion %t\n",
		s.Tier, s.ColorScheme, s.Intensity, s.EnableMotion, cfg.Signals.PrefersReducedMotion)
	fmt.Fprintf(out, "backing %dx%d, frames drawn %d, ticks %d, particles %d\n", b.W, b.H, rec.Frames, engine.Ticks(), engine.Particles())

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LAYER\tGRADIENT\tLINE\tCIRCLE\tPOLYGON")
	for _, l := range rec.Layers() {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", l,
			rec.Count(l, background.OpGradient), rec.Count(l, background.OpLine),
			rec.Count(l, background.OpCircle), rec.Count(l, background.OpPolygon))
	}
	return tw.Flush()
}
