package nav

import (
	"slices"
	"testing"
	"time"

	"backdrop/internal/core"
)

func TestLocateBoundaryEdges(t *testing.T) {
	bounds := []Boundary{{ID: "hero", Top: 0, Bottom: 800}, {ID: "about", Top: 800, Bottom: 1600}}
	cases := []struct {
		pos  float64
		want string
		ok   bool
	}{
		{0, "hero", true},
		{799, "hero", true},
		{800, "about", true},
		{1599, "about", true},
		{1600, "", false},
		{-1, "", false},
	}
	for _, tc := range cases {
		got, ok := Locate(bounds, tc.pos)
		if got != tc.want || ok != tc.ok {
			t.Errorf("Locate(%v) = %q, %v; want %q, %v", tc.pos, got, ok, tc.want, tc.ok)
		}
	}
}

func TestLocateFirstMatchWins(t *testing.T) {
	bounds := []Boundary{{ID: "a", Top: 0, Bottom: 500}, {ID: "b", Top: 400, Bottom: 900}}
	if got, _ := Locate(bounds, 450); got != "a" {
		t.Fatalf("overlap resolved to %q, want a", got)
	}
}

func TestMeasureSkipsMissingSections(t *testing.T) {
	layout := NewLayout(0, Section{ID: "hero", Height: 800}, Section{ID: "skills", Height: 600})
	got := Measure(layout, DefaultSections)
	want := []Boundary{{ID: "hero", Top: 0, Bottom: 800}, {ID: "skills", Top: 800, Bottom: 1400}}
	if !slices.Equal(got, want) {
		t.Fatalf("Measure = %v, want %v", got, want)
	}
}

func TestUniformLayoutBoundariesAreContiguous(t *testing.T) {
	layout := UniformLayout(DefaultSections, 700)
	bounds := Measure(layout, DefaultSections)
	if len(bounds) != len(DefaultSections) {
		t.Fatalf("boundaries = %d", len(bounds))
	}
	for i := 1; i < len(bounds); i++ {
		if bounds[i].Top != bounds[i-1].Bottom {
			t.Fatalf("gap between %s and %s", bounds[i-1].ID, bounds[i].ID)
		}
	}
	for pos := 0.0; pos < layout.Height(); pos += 13 {
		n := 0
		for _, b := range bounds {
			if b.Contains(pos) {
				n++
			}
		}
		if n != 1 {
			t.Fatalf("position %v is in %d sections", pos, n)
		}
	}
}

func newTracker(t *testing.T, doc Document, opts ...Option) (*Tracker, *core.Loop, *core.ManualClock, *[]State) {
	t.Helper()
	loop := core.NewLoop()
	clock := core.NewManualClock(time.Unix(0, 0))
	var changes []State
	opts = append([]Option{WithClock(clock), OnChange(func(s State) { changes = append(changes, s) })}, opts...)
	return NewTracker(loop, doc, opts...), loop, clock, &changes
}

func TestTrackerAppliesLookahead(t *testing.T) {
	layout := NewLayout(0, Section{ID: "hero", Height: 800}, Section{ID: "about", Height: 800})
	tr, loop, _, _ := newTracker(t, layout, WithSections("hero", "about"))
	tr.Mount(0)

	tr.Scroll(599)
	loop.RunFrame()
	if tr.Active() != "hero" {
		t.Fatalf("active at 599 = %q, want hero", tr.Active())
	}
	tr.Scroll(600)
	loop.RunFrame()
	if tr.Active() != "about" {
		t.Fatalf("active at 600 = %q, want about", tr.Active())
	}
}

func TestTrackerThrottlesToOneEvaluationPerFrame(t *testing.T) {
	tr, loop, _, _ := newTracker(t, UniformLayout(DefaultSections, 800))
	tr.Mount(0)
	base := tr.Evaluations()

	for y := 0.0; y <= 1500; y += 100 {
		tr.Scroll(y)
	}
	if loop.PendingFrames() != 1 {
		t.Fatalf("pending frames = %d, want 1", loop.PendingFrames())
	}
	loop.RunFrame()
	if got := tr.Evaluations() - base; got != 1 {
		t.Fatalf("evaluations = %d, want 1", got)
	}
	if tr.Active() != "skills" {
		t.Fatalf("active = %q, want skills (latest offset 1500)", tr.Active())
	}

	tr.Scroll(10)
	if loop.PendingFrames() != 1 {
		t.Fatalf("scroll after frame did not schedule a new evaluation")
	}
}

func TestTrackerScrolledFlag(t *testing.T) {
	tr, loop, _, changes := newTracker(t, UniformLayout(DefaultSections, 800))
	tr.Mount(0)
	if tr.Scrolled() {
		t.Fatalf("scrolled at 0")
	}
	tr.Scroll(50)
	loop.RunFrame()
	if tr.Scrolled() {
		t.Fatalf("scrolled at exactly the threshold")
	}
	tr.Scroll(51)
	loop.RunFrame()
	if !tr.Scrolled() {
		t.Fatalf("not scrolled at 51")
	}
	want := []State{{Active: "hero", Scrolled: true}}
	if !slices.Equal(*changes, want) {
		t.Fatalf("changes = %v, want %v", *changes, want)
	}
}

func TestTrackerKeepsPreviousWhenNothingMatches(t *testing.T) {
	tr, loop, _, _ := newTracker(t, UniformLayout(DefaultSections, 500))
	tr.Mount(2700)
	if tr.Active() != "contact" {
		t.Fatalf("active = %q, want contact", tr.Active())
	}
	tr.Scroll(10000)
	loop.RunFrame()
	if tr.Active() != "contact" {
		t.Fatalf("active past the document = %q, want contact", tr.Active())
	}
}

func TestTrackerRemeasuresAfterDebouncedResize(t *testing.T) {
	layout := UniformLayout(DefaultSections, 800)
	tr, loop, clock, _ := newTracker(t, layout)
	tr.Mount(700)
	if tr.Active() != "about" {
		t.Fatalf("active = %q, want about", tr.Active())
	}

	layout.Set("hero", 1200)
	for i := 0; i < 5; i++ {
		tr.Resize()
		clock.Advance(40 * time.Millisecond)
		loop.Drain()
	}
	if tr.Active() != "about" {
		t.Fatalf("remeasured before the quiet period")
	}
	clock.Advance(DefaultResizeDelay)
	loop.Drain()
	if tr.Active() != "hero" {
		t.Fatalf("active = %q after remeasure, want hero", tr.Active())
	}
	if b := tr.Boundaries()[1]; b.Top != 1200 {
		t.Fatalf("about top = %v, want 1200", b.Top)
	}
}

func TestTrackerSkipsRemovedSection(t *testing.T) {
	layout := UniformLayout(DefaultSections, 800)
	tr, loop, clock, _ := newTracker(t, layout)
	tr.Mount(0)

	layout.Remove("about")
	tr.Resize()
	clock.Advance(DefaultResizeDelay)
	loop.Drain()

	for _, b := range tr.Boundaries() {
		if b.ID == "about" {
			t.Fatalf("removed section still measured")
		}
	}
	tr.Scroll(700)
	loop.RunFrame()
	if tr.Active() != "skills" {
		t.Fatalf("active = %q, want skills", tr.Active())
	}
}

func TestTrackerUnmountDropsPendingWork(t *testing.T) {
	tr, loop, clock, changes := newTracker(t, UniformLayout(DefaultSections, 800))
	tr.Mount(0)
	tr.Scroll(3000)
	tr.Resize()
	tr.Unmount()

	loop.RunFrame()
	clock.Advance(time.Second)
	loop.Drain()
	if len(*changes) != 0 || tr.Active() != "hero" {
		t.Fatalf("unmounted tracker changed state: %v", *changes)
	}
	tr.Scroll(100)
	if loop.PendingFrames() != 0 {
		t.Fatalf("unmounted tracker scheduled a frame")
	}
}
