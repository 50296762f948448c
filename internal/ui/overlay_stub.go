//go:build !ebiten

package ui

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(NavSource, float64, float64) *Overlay { return &Overlay{} }

// SetPageHeight is a no-op in headless builds.
func (o *Overlay) SetPageHeight(float64) {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}
