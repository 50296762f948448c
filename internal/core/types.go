package core

import "math"

// Size describes integer pixel dimensions.
type Size struct {
	W int
	H int
}

// Empty reports whether either dimension is non-positive.
func (s Size) Empty() bool { return s.W <= 0 || s.H <= 0 }

// Point is a position in CSS pixel space.
type Point struct {
	X, Y float64
}

// Viewport describes the on-screen size of a drawing element in CSS pixels
// together with the device pixel ratio used for its backing store.
type Viewport struct {
	Width  float64
	Height float64
	DPR    float64
}

// Backing returns the backing-store dimensions for the viewport.
func (v Viewport) Backing() Size {
	dpr := v.DPR
	if dpr <= 0 {
		dpr = 1
	}
	return Size{
		W: int(math.Round(v.Width * dpr)),
		H: int(math.Round(v.Height * dpr)),
	}
}

// Scale reports the CSS-to-backing scale factor.
func (v Viewport) Scale() float64 {
	if v.DPR <= 0 {
		return 1
	}
	return v.DPR
}
