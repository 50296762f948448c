//go:build ebiten

package app

import (
	"errors"
	"image/color"
	"log/slog"
	"time"

	"backdrop/internal/background"
	"backdrop/internal/core"
	"backdrop/internal/nav"
	"backdrop/internal/render"
	"backdrop/internal/settings"
	"backdrop/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	panelWidth = 220
	wheelStep  = 60.0
)

// WindowOptions configures the desktop host. Lookahead, Threshold and
// Debounce are used as given. Reduced is the initial reduced-motion
// preference.
type WindowOptions struct {
	Title     string
	Width     int
	Height    int
	Seed      int64
	FPS       int
	Backdrop  color.Color
	Layout    *nav.Layout
	Lookahead float64
	Threshold float64
	Debounce  time.Duration
	Reduced   bool
	Logger    *slog.Logger
}

// Game adapts the background engine and navigation tracker to the
// ebiten.Game interface. The mouse wheel scrolls a virtual page built from
// the configured layout.
type Game struct {
	store   *settings.Store
	loop    *core.Loop
	engine  *background.Engine
	surface *render.Ebiten
	tracker *nav.Tracker
	layout  *nav.Layout
	hud     *ui.HUD
	overlay *ui.Overlay
	step    *core.FixedStep
	log     *slog.Logger

	width, height int
	scrollY       float64
	reduced       bool
	focused       bool
	unsubscribe   func()
}

// New constructs a Game for the provided settings store.
func New(store *settings.Store, opts WindowOptions) *Game {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Backdrop == nil {
		opts.Backdrop = color.Black
	}
	if opts.Layout == nil {
		opts.Layout = nav.UniformLayout(nav.DefaultSections, 900)
	}
	g := &Game{
		store:   store,
		loop:    core.NewLoop(),
		layout:  opts.Layout,
		step:    core.NewFixedStep(opts.FPS),
		log:     opts.Logger,
		width:   opts.Width,
		height:  opts.Height,
		reduced: opts.Reduced,
		focused: true,
	}
	g.tracker = windowTracker(g.loop, opts,
		nav.OnChange(func(s nav.State) {
			g.log.Debug("active section", "id", s.Active, "scrolled", s.Scrolled)
		}))
	factory := render.EbitenFactory(opts.Backdrop, func(s *render.Ebiten) {
		if g.surface != nil {
			g.surface.Dispose()
		}
		g.surface = s
	})
	g.engine = background.NewEngine(g.loop, factory, store.Snapshot(), g.viewport(),
		background.WithLogger(opts.Logger), background.WithSeed(opts.Seed))
	g.engine.SetReducedMotion(g.reduced)
	g.hud = ui.NewHUD(ui.NewPanel("Background", store, panelWidth))
	g.overlay = ui.NewOverlay(g.tracker, g.layout.Height(), opts.Lookahead)

	g.unsubscribe = store.Subscribe(func(s settings.Settings) {
		g.loop.Post(func() { g.engine.Configure(s) })
	})
	g.tracker.Mount(0)
	g.engine.Start()
	return g
}

// Close stops the engine and releases the store subscription.
func (g *Game) Close() {
	g.engine.Stop()
	g.tracker.Unmount()
	if g.unsubscribe != nil {
		g.unsubscribe()
	}
	if g.surface != nil {
		g.surface.Dispose()
		g.surface = nil
	}
}

// Update handles input, then runs posted tasks and, at the configured rate,
// one animation frame.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hud.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reduced = !g.reduced
		g.engine.SetReducedMotion(g.reduced)
	}
	if focused := ebiten.IsFocused(); focused != g.focused {
		g.focused = focused
		g.engine.SetVisible(focused)
	}

	overPanel := g.hud.Update(g.width)
	if _, dy := ebiten.Wheel(); dy != 0 && !overPanel {
		g.scroll(g.scrollY - dy*wheelStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		g.scroll(0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		g.scroll(g.layout.Height())
	}

	g.loop.Drain()
	if g.step.ShouldStep() {
		g.loop.RunFrame()
	}
	return nil
}

func (g *Game) scroll(y float64) {
	maxY := g.layout.Height() - float64(g.height)
	y = max(0, min(y, maxY))
	if y == g.scrollY {
		return
	}
	g.scrollY = y
	g.tracker.Scroll(y)
}

// Draw renders the backdrop, the navigation overlay and the settings HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.surface != nil {
		screen.DrawImage(g.surface.Image(), nil)
	}
	g.overlay.Draw(screen)
	g.hud.Draw(screen)
}

// Layout tracks the window size; a change is a debounced engine resize.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.engine.Resize(g.viewport())
		g.tracker.Resize()
	}
	return g.width, g.height
}

func (g *Game) viewport() core.Viewport {
	return core.Viewport{Width: float64(g.width), Height: float64(g.height), DPR: 1}
}

// RunWindow opens a window and blocks until it is closed.
func RunWindow(store *settings.Store, opts WindowOptions) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1280, 720
	}
	if opts.Title == "" {
		opts.Title = "backdrop"
	}
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetTPS(max(ebiten.DefaultTPS, opts.FPS))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := New(store, opts)
	defer g.Close()
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
