package app

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"backdrop/internal/background"
	"backdrop/internal/core"
	"backdrop/internal/render"
	"backdrop/internal/settings"

	"github.com/gdamore/tcell/v2"
)

// Terminal cells are treated as 8×16 CSS pixels; each cell shows two
// vertically stacked backing-store pixels.
const (
	cellWidth     = 8.0
	cellHeight    = 16.0
	intensityStep = 0.05
)

// TerminalOptions configures a Terminal host.
type TerminalOptions struct {
	Seed     int64
	FPS      int
	Backdrop color.Color
	Logger   *slog.Logger
	Clock    core.Clock

	// ReducedMotion is the initial reduced-motion preference.
	ReducedMotion bool
}

// Terminal renders the backdrop into a tcell screen using half-block cells.
// Focus changes drive visibility and terminal resizes drive the viewport.
type Terminal struct {
	screen  tcell.Screen
	surface *render.GG
	store   *settings.Store
	loop    *core.Loop
	engine  *background.Engine
	log     *slog.Logger
	fps     int

	cols, rows int
	presented  uint64
	dirty      bool
	quit       bool
	status     bool
	reduced    bool
}

// NewTerminal builds a terminal host sized to screen. The screen must
// already be initialized.
func NewTerminal(screen tcell.Screen, store *settings.Store, opts TerminalOptions) *Terminal {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.Backdrop == nil {
		opts.Backdrop = color.Black
	}
	t := &Terminal{
		screen:  screen,
		store:   store,
		loop:    core.NewLoop(),
		log:     opts.Logger,
		fps:     opts.FPS,
		status:  true,
		reduced: opts.ReducedMotion,
	}
	t.cols, t.rows = screen.Size()
	factory := render.GGFactory(opts.Backdrop, func(g *render.GG) {
		if t.surface != nil {
			t.surface.Close()
		}
		t.surface = g
	})
	t.engine = background.NewEngine(t.loop, factory, store.Snapshot(), t.viewport(),
		background.WithLogger(opts.Logger), background.WithSeed(opts.Seed), background.WithClock(opts.Clock))
	t.engine.SetReducedMotion(t.reduced)
	return t
}

// Engine exposes the render engine.
func (t *Terminal) Engine() *background.Engine { return t.engine }

// Loop exposes the event loop the host runs on.
func (t *Terminal) Loop() *core.Loop { return t.loop }

// Run drives the host until ctx is done or the user quits.
func (t *Terminal) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	t.screen.EnableFocus()
	defer t.screen.DisableFocus()

	unsubscribe := t.store.Subscribe(func(s settings.Settings) {
		t.loop.Post(func() { t.engine.Configure(s) })
	})
	defer unsubscribe()

	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			t.loop.Post(func() {
				if t.Handle(ev) {
					cancel()
				}
			})
		}
	}()

	t.Start()
	err := t.loop.Run(ctx, time.Second/time.Duration(t.fps))
	t.engine.Stop()
	if t.surface != nil {
		t.surface.Close()
		t.surface = nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// Start mounts the engine and begins presenting frames.
func (t *Terminal) Start() {
	t.engine.Start()
	t.dirty = true
	t.loop.RequestFrame(t.presentFrame)
}

func (t *Terminal) presentFrame() {
	t.Present()
	if !t.quit {
		t.loop.RequestFrame(t.presentFrame)
	}
}

// Handle applies one terminal event and reports whether the host should
// exit.
func (t *Terminal) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventFocus:
		t.engine.SetVisible(ev.Focused)
		t.log.Debug("terminal focus", "focused", ev.Focused)
	case *tcell.EventResize:
		t.cols, t.rows = ev.Size()
		t.screen.Sync()
		t.engine.Resize(t.viewport())
		t.dirty = true
	case *tcell.EventKey:
		return t.handleKey(ev)
	}
	return false
}

func (t *Terminal) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.quit = true
		return true
	case tcell.KeyRune:
	default:
		return false
	}
	cur := t.store.Snapshot()
	var err error
	switch ev.Rune() {
	case 'q':
		t.quit = true
		return true
	case 't':
		err = t.store.SetTier(settings.NextTier(cur.Tier))
	case 'c':
		err = t.store.SetColorScheme(settings.NextScheme(cur.ColorScheme))
	case 'p':
		t.store.SetEnableParticles(!cur.EnableParticles)
	case 'm':
		t.store.SetEnableMotion(!cur.EnableMotion)
	case 'r':
		t.reduced = !t.reduced
		t.engine.SetReducedMotion(t.reduced)
	case '+', '=':
		err = t.store.SetIntensity(min(1, cur.Intensity+intensityStep))
	case '-':
		err = t.store.SetIntensity(max(0, cur.Intensity-intensityStep))
	case 'h':
		t.status = !t.status
	}
	if err != nil {
		t.log.Warn("settings change rejected", "err", err)
	}
	t.dirty = true
	return false
}

// Present copies the latest engine frame onto the screen when it changed.
func (t *Terminal) Present() {
	if !t.dirty && t.engine.Draws() == t.presented {
		return
	}
	surface, ok := t.engine.Surface().(*render.GG)
	if !ok || surface == nil {
		return
	}
	render.HalfBlocks(surface.Image(), t.cols, t.rows, func(col, row int, top, bottom color.RGBA) {
		style := tcell.StyleDefault.
			Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
			Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
		t.screen.SetContent(col, row, '▀', nil, style)
	})
	if t.status {
		t.drawStatus()
	}
	t.screen.Show()
	t.presented = t.engine.Draws()
	t.dirty = false
}

func (t *Terminal) drawStatus() {
	s := t.engine.Settings()
	line := fmt.Sprintf(" %s  %.2f  %s  particles:%d  motion:%v  [t]ier [c]olor [p]articles [m]otion [+/-] [q]uit ",
		s.Tier, s.Intensity, s.ColorScheme, t.engine.Particles(), s.EnableMotion && !t.reduced)
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	row := t.rows - 1
	for i, r := range []rune(line) {
		if i >= t.cols {
			break
		}
		t.screen.SetContent(i, row, r, nil, style)
	}
}

func (t *Terminal) viewport() core.Viewport {
	return core.Viewport{
		Width:  float64(t.cols) * cellWidth,
		Height: float64(t.rows) * cellHeight,
		DPR:    1 / cellWidth,
	}
}
