package app

import (
	"backdrop/internal/core"
	"backdrop/internal/nav"
)

// windowTracker builds the tracker the window host scrolls over
// opts.Layout. The configured values are used as given.
func windowTracker(loop *core.Loop, opts WindowOptions, extra ...nav.Option) *nav.Tracker {
	ids := make([]string, len(opts.Layout.Sections))
	for i, s := range opts.Layout.Sections {
		ids[i] = s.ID
	}
	options := []nav.Option{
		nav.WithSections(ids...),
		nav.WithLookahead(opts.Lookahead),
		nav.WithScrolledThreshold(opts.Threshold),
		nav.WithResizeDelay(opts.Debounce),
		nav.WithLogger(opts.Logger),
	}
	return nav.NewTracker(loop, opts.Layout, append(options, extra...)...)
}
