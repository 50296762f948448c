package background

import "backdrop/internal/core"

// OpKind enumerates recorded primitive kinds.
type OpKind int

const (
	OpGradient OpKind = iota
	OpLine
	OpCircle
	OpPolygon
)

func (k OpKind) String() string {
	switch k {
	case OpGradient:
		return "gradient"
	case OpLine:
		return "line"
	case OpCircle:
		return "circle"
	case OpPolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// Op is one recorded primitive.
type Op struct {
	Layer  Layer
	Kind   OpKind
	Paint  Paint
	Points []core.Point
	Radius float64
	Width  float64
	Spots  []Spot
}

// Recorder is a Surface that keeps the primitives of the most recent frame
// instead of drawing them.
type Recorder struct {
	Frames int
	Last   Frame
	Ops    []Op

	layer Layer
	open  bool
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder { return &Recorder{} }

// RecorderFactory returns a SurfaceFactory that always hands out r.
func RecorderFactory(r *Recorder) SurfaceFactory {
	return func(core.Size) (Surface, error) { return r, nil }
}

func (r *Recorder) Begin(f Frame) {
	r.Last = f
	r.Ops = r.Ops[:0]
	r.layer = LayerGradient
	r.open = true
}

func (r *Recorder) Layer(l Layer) { r.layer = l }

func (r *Recorder) Gradient(spots []Spot) {
	r.Ops = append(r.Ops, Op{Layer: r.layer, Kind: OpGradient, Spots: append([]Spot(nil), spots...)})
}

func (r *Recorder) Line(a, b core.Point, width float64, p Paint) {
	r.Ops = append(r.Ops, Op{Layer: r.layer, Kind: OpLine, Paint: p, Points: []core.Point{a, b}, Width: width})
}

func (r *Recorder) Circle(c core.Point, radius float64, p Paint) {
	r.Ops = append(r.Ops, Op{Layer: r.layer, Kind: OpCircle, Paint: p, Points: []core.Point{c}, Radius: radius})
}

func (r *Recorder) Polygon(pts []core.Point, p Paint, stroke float64) {
	r.Ops = append(r.Ops, Op{Layer: r.layer, Kind: OpPolygon, Paint: p, Points: append([]core.Point(nil), pts...), Width: stroke})
}

func (r *Recorder) End() error {
	if r.open {
		r.Frames++
		r.open = false
	}
	return nil
}

// Count reports how many primitives of kind were drawn on layer in the last
// frame.
func (r *Recorder) Count(layer Layer, kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Layer == layer && op.Kind == kind {
			n++
		}
	}
	return n
}

// LayerOps reports how many primitives of any kind were drawn on layer.
func (r *Recorder) LayerOps(layer Layer) int {
	n := 0
	for _, op := range r.Ops {
		if op.Layer == layer {
			n++
		}
	}
	return n
}

// Layers lists the distinct layers drawn in the last frame, in draw order.
func (r *Recorder) Layers() []Layer {
	var out []Layer
	seen := map[Layer]bool{}
	for _, op := range r.Ops {
		if !seen[op.Layer] {
			seen[op.Layer] = true
			out = append(out, op.Layer)
		}
	}
	return out
}
