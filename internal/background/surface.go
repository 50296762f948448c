package background

import (
	"image/color"

	"backdrop/internal/core"
)

// Layer identifies which backdrop layer subsequent drawing belongs to.
type Layer int

const (
	LayerGradient Layer = iota
	LayerGrid
	LayerParticles
	LayerConnections
	LayerShapes
)

func (l Layer) String() string {
	switch l {
	case LayerGradient:
		return "gradient"
	case LayerGrid:
		return "grid"
	case LayerParticles:
		return "particles"
	case LayerConnections:
		return "connections"
	case LayerShapes:
		return "shapes"
	default:
		return "unknown"
	}
}

// Additive reports whether the layer composites with an additive blend.
func (l Layer) Additive() bool {
	return l == LayerParticles || l == LayerConnections
}

// Paint describes how a primitive is colored. Alpha multiplies the color's
// own alpha; Glow is a blur radius in CSS pixels.
type Paint struct {
	Color color.NRGBA
	Alpha float64
	Glow  float64
}

// Spot is one elliptical radial gradient of the base layer, fading from
// Color at the center to transparent at the radii.
type Spot struct {
	Center core.Point
	RX, RY float64
	Color  color.NRGBA
	Alpha  float64
}

// Frame describes the frame about to be drawn. Primitives are given in CSS
// pixels; surfaces scale them by Scale into the Width×Height backing store.
type Frame struct {
	Width, Height int
	Scale         float64
	CSSWidth      float64
	CSSHeight     float64
}

// Surface is a 2D drawing context the engine renders into.
type Surface interface {
	// Begin clears the backing store and starts a frame.
	Begin(f Frame)
	// Layer marks the layer the following primitives belong to.
	Layer(l Layer)
	Gradient(spots []Spot)
	Line(a, b core.Point, width float64, p Paint)
	Circle(c core.Point, r float64, p Paint)
	// Polygon fills pts, or strokes the closed outline when stroke > 0.
	Polygon(pts []core.Point, p Paint, stroke float64)
	// End finishes the frame.
	End() error
}

// SurfaceFactory acquires a surface for a backing store of the given size.
type SurfaceFactory func(size core.Size) (Surface, error)
