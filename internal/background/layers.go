package background

import (
	"image/color"
	"math"

	"backdrop/internal/core"
	"backdrop/internal/settings"
)

const (
	// ConnectionDistance is the maximum distance in CSS pixels at which two
	// particles are linked in the max tier.
	ConnectionDistance = 100.0

	connectionAlpha = 0.3
	connectionWidth = 0.5

	gridSpacing     = 60.0
	gridAlpha       = 0.08
	glowAlpha       = 0.15
	glowLines       = 3
	gridDriftPeriod = 25.0
	spinPeriod      = 120.0
	pulsePeriod     = 8.0

	shapeCount = 10
	dotCount   = 5
	shapeTint  = 0.25

	ticksPerSecond = 60.0
)

// scene carries everything the layer painters need for one frame.
type scene struct {
	cfg    settings.Settings
	pal    Palette
	w, h   float64
	t      float64
	motion bool
}

func drawGradient(s Surface, sc scene) {
	s.Layer(LayerGradient)
	s.Gradient(gradientSpots(sc))
}

func gradientSpots(sc scene) []Spot {
	w, h, i := sc.w, sc.h, sc.cfg.Intensity
	hues := sc.pal.Hues
	angle := 2 * math.Pi * sc.t / spinPeriod
	sin, cos := math.Sincos(angle)
	cx, cy := w/2, h/2
	spin := func(x, y float64) core.Point {
		dx, dy := x-cx, y-cy
		return core.Point{X: cx + dx*cos - dy*sin, Y: cy + dx*sin + dy*cos}
	}
	pulse := 1 + 0.05*math.Sin(2*math.Pi*sc.t/pulsePeriod)
	return []Spot{
		{Center: spin(0.2*w, 0.2*h), RX: 0.68 * w, RY: 0.68 * h, Color: hsl(hues[0], 1, 0.15), Alpha: i * 0.4},
		{Center: spin(0.8*w, 0.8*h), RX: 0.68 * w, RY: 0.68 * h, Color: hsl(hues[1], 0.85, 0.15), Alpha: i * 0.4},
		{Center: core.Point{X: 0.5 * w, Y: 0.5 * h}, RX: 0.5 * w, RY: 0.5 * h, Color: hsl(hues[2], 1, 0.10), Alpha: i * 0.2},
		{Center: core.Point{X: 0.3 * w, Y: 0.7 * h}, RX: 0.45 * w * pulse, RY: 0.45 * h * pulse, Color: hsl(hues[3], 1, 0.20), Alpha: i * 0.15},
	}
}

func drawGrid(s Surface, sc scene) {
	if sc.w <= 0 || sc.h <= 0 {
		return
	}
	s.Layer(LayerGrid)
	base := sc.cfg.Intensity * gridAlpha
	offset := math.Mod(sc.t/gridDriftPeriod*gridSpacing, gridSpacing)

	for x := offset; x <= sc.w; x += gridSpacing {
		s.Line(core.Point{X: x, Y: 0}, core.Point{X: x, Y: sc.h}, 1,
			Paint{Color: sc.pal.Grid, Alpha: base * vignette(x-sc.w/2, sc.w/2)})
	}
	for y := offset; y <= sc.h; y += gridSpacing {
		s.Line(core.Point{X: 0, Y: y}, core.Point{X: sc.w, Y: y}, 1,
			Paint{Color: sc.pal.Grid, Alpha: base * vignette(y-sc.h/2, sc.h/2)})
	}

	for i := 0; i < glowLines; i++ {
		pulse := 1.0
		if sc.motion {
			period := 4 + float64(i)
			pulse = 0.3 + 0.5*(0.5-0.5*math.Cos(2*math.Pi*sc.t/period))
		}
		top := core.Point{X: (0.1 + 0.3*float64(i)) * sc.w, Y: 0}
		bottom := core.Point{X: (0.2 + 0.3*float64(i)) * sc.w, Y: sc.h}
		s.Line(top, bottom, 1, Paint{Color: sc.pal.Glow, Alpha: sc.cfg.Intensity * glowAlpha * pulse, Glow: 3})
	}
}

// vignette fades grid lines from full strength at the center to 20% at the
// edges.
func vignette(d, half float64) float64 {
	if half <= 0 {
		return 1
	}
	f := math.Abs(d) / half
	if f > 1 {
		f = 1
	}
	return 1 - 0.8*f
}

func drawParticles(s Surface, ps []Particle) {
	s.Layer(LayerParticles)
	for i := range ps {
		p := &ps[i]
		if p.Opacity <= 0 {
			continue
		}
		c := core.Point{X: p.X, Y: p.Y}
		s.Circle(c, p.Radius, Paint{Color: p.Color, Alpha: p.Opacity, Glow: p.Radius * 4})
		if p.Radius > 2 {
			s.Circle(c, p.Radius*2, Paint{Color: p.Color, Alpha: p.Opacity * 0.3, Glow: p.Radius * 8})
		}
	}
}

// drawConnections links every pair of particles closer than
// ConnectionDistance and returns the number of lines drawn.
func drawConnections(s Surface, ps []Particle, intensity float64, link color.NRGBA) int {
	s.Layer(LayerConnections)
	n := 0
	Connections(ps, ConnectionDistance, func(a, b *Particle, d float64) {
		alpha := (1 - d/ConnectionDistance) * intensity * connectionAlpha
		s.Line(core.Point{X: a.X, Y: a.Y}, core.Point{X: b.X, Y: b.Y}, connectionWidth, Paint{Color: link, Alpha: alpha})
		n++
	})
	return n
}

// ShapeKind enumerates accent shape outlines.
type ShapeKind int

const (
	ShapeTriangle ShapeKind = iota
	ShapeHexagon
	ShapeCircle
	ShapeSquare
)

// Shape is one floating accent shape. X and Y are fractions of the viewport.
type Shape struct {
	Kind     ShapeKind
	X, Y     float64
	Size     float64
	Rotation float64
	Color    color.NRGBA
	Opacity  float64
	Delay    float64
}

// NewShapes generates the accent shapes for a configuration.
func NewShapes(rng *core.RNG, pal Palette, intensity float64) []Shape {
	colors := pal.Particles
	if len(colors) > 4 {
		colors = colors[:4]
	}
	shapes := make([]Shape, shapeCount)
	for i := range shapes {
		shapes[i] = Shape{
			Kind:     ShapeKind(rng.IntN(4)),
			X:        rng.Float64(),
			Y:        rng.Float64(),
			Size:     rng.Range(40, 100),
			Rotation: rng.Range(0, 2*math.Pi),
			Color:    colors[rng.IntN(len(colors))],
			Opacity:  rng.Range(0.1, 0.4) * intensity,
			Delay:    rng.Range(0, 10),
		}
	}
	return shapes
}

// Center returns the shape's center at animation time t.
func (sh Shape) Center(w, h, t float64, motion bool) core.Point {
	dy, _ := sh.float(t, motion)
	return core.Point{X: sh.X*w + sh.Size/2, Y: sh.Y*h + sh.Size/2 + dy}
}

// Outline returns the polygon of a non-circular shape at animation time t.
func (sh Shape) Outline(w, h, t float64, motion bool) []core.Point {
	c := sh.Center(w, h, t, motion)
	_, dr := sh.float(t, motion)
	half := sh.Size / 2
	var local []core.Point
	switch sh.Kind {
	case ShapeTriangle:
		local = []core.Point{{X: 0, Y: -half}, {X: half, Y: half}, {X: -half, Y: half}}
	case ShapeHexagon:
		local = []core.Point{
			{X: 0, Y: -half}, {X: half, Y: -half / 2}, {X: half, Y: half / 2},
			{X: 0, Y: half}, {X: -half, Y: half / 2}, {X: -half, Y: -half / 2},
		}
	default:
		local = []core.Point{{X: -half, Y: -half}, {X: half, Y: -half}, {X: half, Y: half}, {X: -half, Y: half}}
	}
	sin, cos := math.Sincos(sh.Rotation + dr)
	out := make([]core.Point, len(local))
	for i, p := range local {
		out[i] = core.Point{X: c.X + p.X*cos - p.Y*sin, Y: c.Y + p.X*sin + p.Y*cos}
	}
	return out
}

func (sh Shape) float(t float64, motion bool) (dy, drot float64) {
	if !motion {
		return 0, 0
	}
	period := 8 + sh.Delay
	phase := 2 * math.Pi * (t + sh.Delay) / period
	return -20 * math.Sin(phase), 0.17 * math.Sin(phase)
}

func drawShapes(s Surface, shapes []Shape, sc scene) {
	s.Layer(LayerShapes)
	for _, sh := range shapes {
		paint := Paint{Color: sh.Color, Alpha: sh.Opacity * shapeTint, Glow: math.Max(0, 2-sc.cfg.Intensity)}
		if sh.Kind == ShapeCircle {
			s.Circle(sh.Center(sc.w, sc.h, sc.t, sc.motion), sh.Size/2, paint)
			continue
		}
		outline := sh.Outline(sc.w, sc.h, sc.t, sc.motion)
		s.Polygon(outline, paint, 0)
		if sh.Kind == ShapeSquare {
			s.Polygon(outline, Paint{Color: sh.Color, Alpha: sh.Opacity}, 1)
		}
	}

	for i := 0; i < dotCount; i++ {
		fi := float64(i)
		bob := 0.0
		if sc.motion {
			bob = -10 * math.Sin(2*math.Pi*(sc.t+0.5*fi)/(6+fi))
		}
		c := core.Point{X: (0.1 + 0.2*fi) * sc.w, Y: (0.2+0.15*fi)*sc.h + bob}
		s.Circle(c, 1, Paint{Color: sc.pal.Link, Alpha: 0.6 * sc.cfg.Intensity * 0.8, Glow: 10})
	}
}
