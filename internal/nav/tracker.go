package nav

import (
	"log/slog"
	"slices"
	"time"

	"backdrop/internal/core"
)

const (
	// DefaultLookahead biases the scroll position so a section becomes active
	// slightly before its top reaches the viewport edge.
	DefaultLookahead = 200.0
	// DefaultScrolledThreshold is how far the page must scroll before the
	// chrome switches to its scrolled style.
	DefaultScrolledThreshold = 50.0
	// DefaultResizeDelay is the quiet period before boundaries are
	// remeasured after a resize.
	DefaultResizeDelay = 100 * time.Millisecond
)

// State is the UI state the tracker derives.
type State struct {
	Active   string `json:"active"`
	Scrolled bool   `json:"scrolled"`
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithSections overrides DefaultSections.
func WithSections(ids ...string) Option {
	return func(t *Tracker) { t.ids = slices.Clone(ids) }
}

// WithLookahead overrides DefaultLookahead.
func WithLookahead(px float64) Option {
	return func(t *Tracker) { t.lookahead = px }
}

// WithScrolledThreshold overrides DefaultScrolledThreshold.
func WithScrolledThreshold(px float64) Option {
	return func(t *Tracker) { t.threshold = px }
}

// WithResizeDelay overrides DefaultResizeDelay.
func WithResizeDelay(d time.Duration) Option {
	return func(t *Tracker) { t.delay = d }
}

// WithClock sets the clock used for resize debouncing.
func WithClock(c core.Clock) Option {
	return func(t *Tracker) { t.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.log = l
		}
	}
}

// OnChange registers a callback invoked on the loop whenever State changes.
func OnChange(fn func(State)) Option {
	return func(t *Tracker) { t.onChange = fn }
}

// Tracker maps scroll offsets to the active navigation section. All methods
// must be called on the loop goroutine.
type Tracker struct {
	loop      *core.Loop
	doc       Document
	ids       []string
	lookahead float64
	threshold float64
	delay     time.Duration
	clock     core.Clock
	log       *slog.Logger
	onChange  func(State)

	resize  *core.Debouncer
	bounds  []Boundary
	scrollY float64
	state   State
	mounted bool
	ticking bool
	frameID core.FrameID
	evals   int
}

// NewTracker returns an unmounted tracker reading layout from doc.
func NewTracker(loop *core.Loop, doc Document, opts ...Option) *Tracker {
	t := &Tracker{
		loop:      loop,
		doc:       doc,
		ids:       slices.Clone(DefaultSections),
		lookahead: DefaultLookahead,
		threshold: DefaultScrolledThreshold,
		delay:     DefaultResizeDelay,
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}
	if len(t.ids) > 0 {
		t.state.Active = t.ids[0]
	}
	t.resize = core.NewDebouncer(loop, t.clock, t.delay, t.remeasure)
	return t
}

// Mount measures the document and evaluates the initial scroll offset.
func (t *Tracker) Mount(scrollY float64) {
	t.mounted = true
	t.scrollY = scrollY
	t.bounds = Measure(t.doc, t.ids)
	t.log.Debug("nav mounted", "sections", len(t.bounds))
	t.evaluate()
}

// Unmount detaches the tracker; pending scroll and resize work is dropped.
func (t *Tracker) Unmount() {
	t.mounted = false
	t.resize.Cancel()
	if t.frameID != 0 {
		t.loop.CancelFrame(t.frameID)
		t.frameID = 0
	}
	t.ticking = false
}

// Scroll records a new scroll offset. At most one evaluation runs per frame;
// it uses the latest offset seen before the frame.
func (t *Tracker) Scroll(scrollY float64) {
	if !t.mounted {
		return
	}
	t.scrollY = scrollY
	if t.ticking {
		return
	}
	t.ticking = true
	t.frameID = t.loop.RequestFrame(func() {
		t.frameID = 0
		t.ticking = false
		t.evaluate()
	})
}

// Resize schedules a debounced remeasure of section boundaries.
func (t *Tracker) Resize() {
	if !t.mounted {
		return
	}
	t.resize.Trigger()
}

// State returns the current state.
func (t *Tracker) State() State { return t.state }

// Active returns the active section id.
func (t *Tracker) Active() string { return t.state.Active }

// Scrolled reports whether the page is past the scrolled threshold.
func (t *Tracker) Scrolled() bool { return t.state.Scrolled }

// ScrollY returns the last recorded scroll offset.
func (t *Tracker) ScrollY() float64 { return t.scrollY }

// Boundaries returns a copy of the measured boundaries.
func (t *Tracker) Boundaries() []Boundary { return slices.Clone(t.bounds) }

// Evaluations reports how many scroll evaluations have run.
func (t *Tracker) Evaluations() int { return t.evals }

func (t *Tracker) remeasure() {
	if !t.mounted {
		return
	}
	t.bounds = Measure(t.doc, t.ids)
	t.log.Debug("nav remeasured", "sections", len(t.bounds))
	t.evaluate()
}

func (t *Tracker) evaluate() {
	if !t.mounted {
		return
	}
	t.evals++
	next := t.state
	next.Scrolled = t.scrollY > t.threshold
	if id, ok := Locate(t.bounds, t.scrollY+t.lookahead); ok {
		next.Active = id
	}
	if next == t.state {
		return
	}
	t.state = next
	t.log.Debug("nav state", "active", next.Active, "scrolled", next.Scrolled, "scroll_y", t.scrollY)
	if t.onChange != nil {
		t.onChange(next)
	}
}
