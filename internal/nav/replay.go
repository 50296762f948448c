package nav

import "backdrop/internal/core"

// Step is one position of a replayed scroll script.
type Step struct {
	ScrollY float64 `json:"scrollY" yaml:"scroll_y"`
	State   State   `json:"state" yaml:"state"`
}

// Replay runs a tracker over doc on a private loop, scrolling to each
// position in turn and delivering one frame per position.
func Replay(doc Document, positions []float64, opts ...Option) []Step {
	loop := core.NewLoop()
	t := NewTracker(loop, doc, opts...)
	start := 0.0
	if len(positions) > 0 {
		start = positions[0]
	}
	t.Mount(start)
	defer t.Unmount()

	steps := make([]Step, 0, len(positions))
	for i, y := range positions {
		if i > 0 {
			t.Scroll(y)
			loop.RunFrame()
		}
		steps = append(steps, Step{ScrollY: y, State: t.State()})
	}
	return steps
}
