// Package background renders the decorative animated backdrop: a base
// gradient, a grid overlay, a particle field and accent shapes, layered
// according to the quality tier.
package background

import (
	"log/slog"
	"time"

	"backdrop/internal/core"
	"backdrop/internal/settings"
)

// ResizeDelay is the default quiet period before a resize is applied.
const ResizeDelay = 100 * time.Millisecond

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithClock sets the clock used to debounce resizes.
func WithClock(c core.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithSeed makes particle and shape generation deterministic.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithResizeDelay overrides ResizeDelay.
func WithResizeDelay(d time.Duration) Option {
	return func(e *Engine) { e.resizeDelay = d }
}

// Engine owns the particle arena and draws frames into a Surface. Every
// method must be called on the goroutine running the engine's Loop.
type Engine struct {
	loop        *core.Loop
	clock       core.Clock
	factory     SurfaceFactory
	surface     Surface
	log         *slog.Logger
	seed        int64
	rng         *core.RNG
	resizeDelay time.Duration
	resize      *core.Debouncer

	cfg     settings.Settings
	pal     Palette
	reduced bool

	viewport core.Viewport
	pendingV core.Viewport
	backing  core.Size

	pool   *Pool
	shapes []Shape

	mounted bool
	visible bool
	frameID core.FrameID
	ticks   uint64
	frames  uint64
	draws   uint64
}

// NewEngine builds an engine for the given settings and viewport. The surface
// is acquired immediately; if factory is nil or fails the engine draws
// nothing.
func NewEngine(loop *core.Loop, factory SurfaceFactory, cfg settings.Settings, vp core.Viewport, opts ...Option) *Engine {
	e := &Engine{
		loop:        loop,
		factory:     factory,
		log:         slog.New(slog.DiscardHandler),
		seed:        1,
		resizeDelay: ResizeDelay,
		visible:     true,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.rng = core.NewRNG(e.seed)
	e.resize = core.NewDebouncer(loop, e.clock, e.resizeDelay, func() { e.applyViewport(e.pendingV) })
	e.cfg = cfg.Normalized()
	e.pal = PaletteFor(e.cfg.ColorScheme)
	e.setViewport(vp)
	e.rebuild()
	return e
}

// Start mounts the engine: it draws the first frame and, when motion is
// allowed, starts the animation loop.
func (e *Engine) Start() {
	e.mounted = true
	e.refresh()
}

// Stop cancels the animation loop and any pending resize.
func (e *Engine) Stop() {
	e.mounted = false
	e.cancelFrame()
	e.resize.Cancel()
}

// Configure installs new settings. The particle arena and accent shapes are
// rebuilt from scratch.
func (e *Engine) Configure(cfg settings.Settings) {
	e.cfg = cfg.Normalized()
	e.pal = PaletteFor(e.cfg.ColorScheme)
	e.rebuild()
	e.cancelFrame()
	e.refresh()
	e.log.Debug("background configured",
		"tier", e.cfg.Tier, "intensity", e.cfg.Intensity,
		"particles", e.Particles(), "motion", e.cfg.EnableMotion)
}

// SetVisible reports page visibility. Hidden pages schedule no frames.
func (e *Engine) SetVisible(visible bool) {
	if e.visible == visible {
		return
	}
	e.visible = visible
	if !visible {
		e.cancelFrame()
		e.log.Debug("background suspended", "frames", e.frames)
		return
	}
	e.refresh()
}

// SetReducedMotion reports the reduced-motion preference. While set, the
// animation loop does not run regardless of the motion setting.
func (e *Engine) SetReducedMotion(reduced bool) {
	if e.reduced == reduced {
		return
	}
	e.reduced = reduced
	e.cancelFrame()
	e.refresh()
}

// Resize schedules a viewport change. It is applied once resizes have been
// quiet for the debounce delay.
func (e *Engine) Resize(vp core.Viewport) {
	e.pendingV = vp
	e.resize.Trigger()
}

// Render draws the current state once without advancing the simulation.
func (e *Engine) Render() {
	e.draw()
}

// Settings returns the active settings.
func (e *Engine) Settings() settings.Settings { return e.cfg }

// Viewport returns the applied viewport.
func (e *Engine) Viewport() core.Viewport { return e.viewport }

// Backing returns the backing-store size of the surface.
func (e *Engine) Backing() core.Size { return e.backing }

// Surface returns the acquired surface, or nil when none is available.
func (e *Engine) Surface() Surface { return e.surface }

// Frames reports how many animation frames have been drawn. Static redraws
// are not counted.
func (e *Engine) Frames() uint64 { return e.frames }

// Draws reports how many times the surface has been painted, static redraws
// included.
func (e *Engine) Draws() uint64 { return e.draws }

// Ticks reports how many simulation ticks have run.
func (e *Engine) Ticks() uint64 { return e.ticks }

// Animating reports whether a frame is scheduled.
func (e *Engine) Animating() bool { return e.frameID != 0 }

// Particles reports the live particle count.
func (e *Engine) Particles() int {
	if e.pool == nil {
		return 0
	}
	return e.pool.Len()
}

// ParticleSlots exposes the particle arena; nil when the layer is off.
func (e *Engine) ParticleSlots() []Particle {
	if e.pool == nil {
		return nil
	}
	return e.pool.Particles()
}

// Shapes exposes the accent shapes; nil outside the max tier.
func (e *Engine) Shapes() []Shape { return e.shapes }

func (e *Engine) motion() bool {
	return e.cfg.EnableMotion && !e.reduced
}

func (e *Engine) rebuild() {
	e.pool = nil
	e.shapes = nil
	if e.cfg.ShowParticles() {
		e.pool = NewPool(e.cfg.Tier.ParticleBudget(), e.rng, e.pal.Particles, e.cfg.Intensity, e.viewport.Width, e.viewport.Height)
	}
	if e.cfg.ShowShapes() {
		e.shapes = NewShapes(e.rng, e.pal, e.cfg.Intensity)
	}
}

func (e *Engine) setViewport(vp core.Viewport) {
	e.viewport = vp
	size := vp.Backing()
	if size == e.backing && e.surface != nil {
		return
	}
	e.backing = size
	e.surface = nil
	if e.factory == nil || size.Empty() {
		return
	}
	s, err := e.factory(size)
	if err != nil {
		e.log.Debug("background surface unavailable", "w", size.W, "h", size.H, "err", err)
		return
	}
	e.surface = s
}

func (e *Engine) applyViewport(vp core.Viewport) {
	e.setViewport(vp)
	if e.pool != nil {
		e.pool.Resize(vp.Width, vp.Height)
	}
	e.log.Debug("background resized", "css_w", vp.Width, "css_h", vp.Height, "backing_w", e.backing.W, "backing_h", e.backing.H)
	if e.frameID == 0 {
		e.refresh()
	}
}

// refresh schedules the animation loop when allowed and otherwise draws a
// single static frame.
func (e *Engine) refresh() {
	if !e.mounted || !e.visible {
		return
	}
	e.schedule()
	if e.frameID == 0 {
		e.draw()
	}
}

func (e *Engine) schedule() {
	if e.frameID != 0 || !e.mounted || !e.visible || !e.motion() {
		return
	}
	e.frameID = e.loop.RequestFrame(e.frame)
}

func (e *Engine) cancelFrame() {
	if e.frameID == 0 {
		return
	}
	e.loop.CancelFrame(e.frameID)
	e.frameID = 0
}

func (e *Engine) frame() {
	e.frameID = 0
	if !e.mounted || !e.visible || !e.motion() {
		return
	}
	if e.pool != nil {
		e.pool.Step()
	}
	e.ticks++
	if e.draw() {
		e.frames++
	}
	e.schedule()
}

func (e *Engine) draw() bool {
	if e.surface == nil || !e.visible {
		return false
	}
	sc := scene{
		cfg:    e.cfg,
		pal:    e.pal,
		w:      e.viewport.Width,
		h:      e.viewport.Height,
		t:      float64(e.ticks) / ticksPerSecond,
		motion: e.motion(),
	}
	e.surface.Begin(Frame{
		Width:     e.backing.W,
		Height:    e.backing.H,
		Scale:     e.viewport.Scale(),
		CSSWidth:  sc.w,
		CSSHeight: sc.h,
	})
	drawGradient(e.surface, sc)
	if e.cfg.ShowGrid() {
		drawGrid(e.surface, sc)
	}
	if e.pool != nil {
		drawParticles(e.surface, e.pool.Particles())
		if e.cfg.ShowConnections() {
			drawConnections(e.surface, e.pool.Particles(), e.cfg.Intensity, e.pal.Link)
		}
	}
	if e.shapes != nil {
		drawShapes(e.surface, e.shapes, sc)
	}
	if err := e.surface.End(); err != nil {
		e.log.Debug("background frame failed", "err", err)
	}
	e.draws++
	return true
}
