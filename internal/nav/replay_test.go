package nav

import "testing"

func TestReplay(t *testing.T) {
	layout := UniformLayout(DefaultSections, 1000)
	steps := Replay(layout, []float64{0, 40, 51, 850, 2900, 5700, 9000},
		WithSections(DefaultSections...))

	want := []State{
		{Active: "hero"},
		{Active: "hero"},
		{Active: "hero", Scrolled: true},
		{Active: "about", Scrolled: true},
		{Active: "projects", Scrolled: true},
		{Active: "contact", Scrolled: true},
		{Active: "contact", Scrolled: true},
	}
	if len(steps) != len(want) {
		t.Fatalf("replay returned %d steps, want %d", len(steps), len(want))
	}
	for i, s := range steps {
		if s.State != want[i] {
			t.Errorf("step %d at %v: state = %+v, want %+v", i, s.ScrollY, s.State, want[i])
		}
	}
}

func TestReplayEmpty(t *testing.T) {
	if steps := Replay(UniformLayout(DefaultSections, 1000), nil); len(steps) != 0 {
		t.Fatalf("empty script produced %d steps", len(steps))
	}
}
