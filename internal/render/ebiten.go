//go:build ebiten

package render

import (
	"errors"
	"image/color"
	"math"

	"backdrop/internal/background"
	"backdrop/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const spriteSize = 64

// Ebiten is a background.Surface backed by an offscreen ebiten image.
// Additive layers are drawn into a scratch image composited with a lighter
// blend.
type Ebiten struct {
	target   *ebiten.Image
	scratch  *ebiten.Image
	dst      *ebiten.Image
	pixel    *ebiten.Image
	sprite   *ebiten.Image
	backdrop color.Color
	scale    float64
	layered  bool
}

// NewEbiten allocates an offscreen surface of the given size.
func NewEbiten(size core.Size, backdrop color.Color) (*Ebiten, error) {
	if size.Empty() {
		return nil, errors.New("render: empty surface size")
	}
	if backdrop == nil {
		backdrop = color.Black
	}
	s := &Ebiten{
		target:   ebiten.NewImage(size.W, size.H),
		scratch:  ebiten.NewImage(size.W, size.H),
		pixel:    ebiten.NewImage(1, 1),
		sprite:   ebiten.NewImage(spriteSize, spriteSize),
		backdrop: backdrop,
		scale:    1,
	}
	s.pixel.Fill(color.White)
	buf := make([]byte, spriteSize*spriteSize*4)
	fillFalloffRGBA(buf, spriteSize)
	s.sprite.WritePixels(buf)
	s.dst = s.target
	return s, nil
}

// EbitenFactory returns a SurfaceFactory that allocates ebiten surfaces.
func EbitenFactory(backdrop color.Color, acquired func(*Ebiten)) background.SurfaceFactory {
	return func(size core.Size) (background.Surface, error) {
		s, err := NewEbiten(size, backdrop)
		if err != nil {
			return nil, err
		}
		if acquired != nil {
			acquired(s)
		}
		return s, nil
	}
}

// Image returns the rendered backing store.
func (s *Ebiten) Image() *ebiten.Image { return s.target }

// Dispose releases the GPU images.
func (s *Ebiten) Dispose() {
	s.target.Deallocate()
	s.scratch.Deallocate()
	s.sprite.Deallocate()
	s.pixel.Deallocate()
}

func (s *Ebiten) Begin(f background.Frame) {
	s.scale = f.Scale
	if s.scale <= 0 {
		s.scale = 1
	}
	s.layered = false
	s.dst = s.target
	s.target.Fill(s.backdrop)
}

func (s *Ebiten) Layer(l background.Layer) {
	switch {
	case s.layered && !l.Additive():
		s.flushScratch()
	case !s.layered && l.Additive():
		s.scratch.Clear()
		s.dst = s.scratch
		s.layered = true
	}
}

func (s *Ebiten) flushScratch() {
	op := &ebiten.DrawImageOptions{}
	op.Blend = ebiten.BlendLighter
	s.target.DrawImage(s.scratch, op)
	s.dst = s.target
	s.layered = false
}

func (s *Ebiten) Gradient(spots []background.Spot) {
	for _, sp := range spots {
		if sp.RX <= 0 || sp.RY <= 0 || sp.Alpha <= 0 {
			continue
		}
		s.drawSprite(sp.Center, sp.RX, sp.RY, sp.Color, sp.Alpha)
	}
}

func (s *Ebiten) Line(a, b core.Point, width float64, p background.Paint) {
	if p.Alpha <= 0 {
		return
	}
	if p.Glow > 0 {
		s.drawLine(a, b, width+p.Glow, p.Color, p.Alpha*glowFalloff)
	}
	s.drawLine(a, b, width, p.Color, p.Alpha)
}

func (s *Ebiten) Circle(c core.Point, r float64, p background.Paint) {
	if p.Alpha <= 0 || r <= 0 {
		return
	}
	if p.Glow > 0 {
		s.drawSprite(c, r+p.Glow, r+p.Glow, p.Color, p.Alpha*glowFalloff)
	}
	vector.DrawFilledCircle(s.dst, float32(c.X*s.scale), float32(c.Y*s.scale), float32(math.Max(r*s.scale, 0.5)), tint(p.Color, p.Alpha), true)
}

func (s *Ebiten) Polygon(pts []core.Point, p background.Paint, stroke float64) {
	if len(pts) < 3 || p.Alpha <= 0 {
		return
	}
	if stroke > 0 {
		for i := range pts {
			s.drawLine(pts[i], pts[(i+1)%len(pts)], stroke, p.Color, p.Alpha)
		}
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].X*s.scale), float32(pts[0].Y*s.scale))
	for _, pt := range pts[1:] {
		path.LineTo(float32(pt.X*s.scale), float32(pt.Y*s.scale))
	}
	path.Close()
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	c := tint(p.Color, p.Alpha)
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 0.5, 0.5
		vs[i].ColorR = float32(c.R) / 255
		vs[i].ColorG = float32(c.G) / 255
		vs[i].ColorB = float32(c.B) / 255
		vs[i].ColorA = float32(c.A) / 255
	}
	s.dst.DrawTriangles(vs, is, s.pixel, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (s *Ebiten) End() error {
	if s.layered {
		s.flushScratch()
	}
	return nil
}

func (s *Ebiten) drawLine(a, b core.Point, thickness float64, c color.NRGBA, alpha float64) {
	x1, y1 := a.X*s.scale, a.Y*s.scale
	dx, dy := (b.X-a.X)*s.scale, (b.Y-a.Y)*s.scale
	length := math.Hypot(dx, dy)
	thickness *= s.scale
	if length <= 1e-4 || thickness <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	scaleColor(&op.ColorM, c, alpha)
	s.dst.DrawImage(s.pixel, op)
}

func (s *Ebiten) drawSprite(center core.Point, rx, ry float64, c color.NRGBA, alpha float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(2*rx*s.scale/spriteSize, 2*ry*s.scale/spriteSize)
	op.GeoM.Translate((center.X-rx)*s.scale, (center.Y-ry)*s.scale)
	op.Filter = ebiten.FilterLinear
	scaleColor(&op.ColorM, c, alpha)
	s.dst.DrawImage(s.sprite, op)
}

func scaleColor(m *ebiten.ColorM, c color.NRGBA, alpha float64) {
	m.Scale(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, float64(c.A)/255.0*clamp01(alpha))
}

func tint(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(math.Round(float64(c.A) * clamp01(alpha)))
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
