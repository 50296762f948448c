//go:build !ebiten

package app

import (
	"errors"
	"image/color"
	"log/slog"
	"time"

	"backdrop/internal/nav"
	"backdrop/internal/settings"
)

// ErrNoWindow reports that the binary was built without the ebiten tag.
var ErrNoWindow = errors.New("window host requires building with the 'ebiten' tag")

// WindowOptions mirrors the GUI build's options.
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

// RunWindow always fails in headless builds.
func RunWindow(*settings.Store, WindowOptions) error { return ErrNoWindow }
