package render

import (
	"errors"
	"image"
	"image/color"
	"io"
	"math"

	"backdrop/internal/background"
	"backdrop/internal/core"

	"github.com/gogpu/gg"
)

// glowFalloff is the alpha of the outer edge of a glow halo relative to its
// core.
const glowFalloff = 0.35

// GG is a background.Surface that rasterizes with gogpu/gg. Additive layers
// are drawn into a separate layer composited with a screen blend.
type GG struct {
	dc       *gg.Context
	backdrop gg.RGBA
	scale    float64
	layered  bool
	err      error
}

// NewGG allocates a surface with the given backing store size, cleared to
// backdrop on every frame.
func NewGG(size core.Size, backdrop color.Color) (*GG, error) {
	if size.Empty() {
		return nil, errors.New("render: empty surface size")
	}
	if backdrop == nil {
		backdrop = color.Black
	}
	return &GG{
		dc:       gg.NewContext(size.W, size.H),
		backdrop: gg.FromColor(backdrop),
		scale:    1,
	}, nil
}

// GGFactory returns a SurfaceFactory that allocates gg surfaces. When
// acquired is non-nil it receives each new surface.
func GGFactory(backdrop color.Color, acquired func(*GG)) background.SurfaceFactory {
	return func(size core.Size) (background.Surface, error) {
		s, err := NewGG(size, backdrop)
		if err != nil {
			return nil, err
		}
		if acquired != nil {
			acquired(s)
		}
		return s, nil
	}
}

// Size reports the backing store size.
func (s *GG) Size() core.Size {
	return core.Size{W: s.dc.Width(), H: s.dc.Height()}
}

// Image returns the last rendered frame.
func (s *GG) Image() image.Image { return s.dc.Image() }

// EncodePNG writes the last rendered frame as PNG.
func (s *GG) EncodePNG(w io.Writer) error { return s.dc.EncodePNG(w) }

// SavePNG writes the last rendered frame to path.
func (s *GG) SavePNG(path string) error { return s.dc.SavePNG(path) }

// Close releases the drawing context.
func (s *GG) Close() error { return s.dc.Close() }

func (s *GG) Begin(f background.Frame) {
	s.err = nil
	s.layered = false
	if f.Width > 0 && f.Height > 0 && (f.Width != s.dc.Width() || f.Height != s.dc.Height()) {
		s.fail(s.dc.Resize(f.Width, f.Height))
	}
	s.scale = f.Scale
	if s.scale <= 0 {
		s.scale = 1
	}
	s.dc.ClearWithColor(s.backdrop)
}

func (s *GG) Layer(l background.Layer) {
	switch {
	case s.layered && !l.Additive():
		s.dc.PopLayer()
		s.layered = false
	case !s.layered && l.Additive():
		s.dc.PushLayer(gg.BlendScreen, 1)
		s.layered = true
	}
}

func (s *GG) Gradient(spots []background.Spot) {
	w, h := float64(s.dc.Width()), float64(s.dc.Height())
	for _, sp := range spots {
		r := math.Max(sp.RX, sp.RY) * s.scale
		if r <= 0 || sp.Alpha <= 0 {
			continue
		}
		cx, cy := sp.Center.X*s.scale, sp.Center.Y*s.scale
		brush := gg.NewRadialGradientBrush(cx, cy, 0, r).
			AddColorStop(0, rgba(sp.Color, sp.Alpha)).
			AddColorStop(1, rgba(sp.Color, 0))
		s.dc.SetFillBrush(brush)
		s.dc.DrawRectangle(0, 0, w, h)
		s.fail(s.dc.Fill())
	}
}

func (s *GG) Line(a, b core.Point, width float64, p background.Paint) {
	if p.Alpha <= 0 {
		return
	}
	if p.Glow > 0 {
		s.stroke(a, b, (width+p.Glow)*s.scale, rgba(p.Color, p.Alpha*glowFalloff))
	}
	s.stroke(a, b, width*s.scale, rgba(p.Color, p.Alpha))
}

func (s *GG) stroke(a, b core.Point, width float64, c gg.RGBA) {
	s.dc.SetFillBrush(gg.Solid(c))
	s.dc.SetLineWidth(math.Max(width, 0.5))
	s.dc.DrawLine(a.X*s.scale, a.Y*s.scale, b.X*s.scale, b.Y*s.scale)
	s.fail(s.dc.Stroke())
}

func (s *GG) Circle(c core.Point, r float64, p background.Paint) {
	if p.Alpha <= 0 || r <= 0 {
		return
	}
	cx, cy, rr := c.X*s.scale, c.Y*s.scale, r*s.scale
	if p.Glow > 0 {
		outer := rr + p.Glow*s.scale
		brush := gg.NewRadialGradientBrush(cx, cy, rr, outer).
			AddColorStop(0, rgba(p.Color, p.Alpha*glowFalloff)).
			AddColorStop(1, rgba(p.Color, 0))
		s.dc.SetFillBrush(brush)
		s.dc.DrawCircle(cx, cy, outer)
		s.fail(s.dc.Fill())
	}
	s.dc.SetFillBrush(gg.Solid(rgba(p.Color, p.Alpha)))
	s.dc.DrawCircle(cx, cy, math.Max(rr, 0.5))
	s.fail(s.dc.Fill())
}

func (s *GG) Polygon(pts []core.Point, p background.Paint, stroke float64) {
	if len(pts) < 3 || p.Alpha <= 0 {
		return
	}
	s.dc.SetFillBrush(gg.Solid(rgba(p.Color, p.Alpha)))
	s.dc.MoveTo(pts[0].X*s.scale, pts[0].Y*s.scale)
	for _, pt := range pts[1:] {
		s.dc.LineTo(pt.X*s.scale, pt.Y*s.scale)
	}
	s.dc.ClosePath()
	if stroke > 0 {
		s.dc.SetLineWidth(stroke * s.scale)
		s.fail(s.dc.Stroke())
		return
	}
	s.fail(s.dc.Fill())
}

func (s *GG) End() error {
	if s.layered {
		s.dc.PopLayer()
		s.layered = false
	}
	return s.err
}

func (s *GG) fail(err error) {
	if err != nil && s.err == nil {
		s.err = err
	}
}

func rgba(c color.NRGBA, alpha float64) gg.RGBA {
	a := float64(c.A) / 255 * alpha
	return gg.RGBA2(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, math.Max(0, math.Min(1, a)))
}
