//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	trackMargin = 16
	trackWidth  = 4
	labelIndent = 14
)

// Overlay draws the navigation state over the backdrop: the section list
// with the active entry highlighted and a scroll track with section markers.
type Overlay struct {
	nav      NavSource
	pageH    float64
	lookahead float64
	pixel    *ebiten.Image
}

// NewOverlay constructs an overlay for a page of pageH CSS pixels.
func NewOverlay(src NavSource, pageH, lookahead float64) *Overlay {
	o := &Overlay{nav: src, pageH: pageH, lookahead: lookahead}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// SetPageHeight updates the document height used for the scroll track.
func (o *Overlay) SetPageHeight(h float64) { o.pageH = h }

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if w <= 0 || h <= 0 || o.nav == nil {
		return
	}
	state := o.nav.State()
	face := basicfont.Face7x13

	headerBg := color.RGBA{R: 10, G: 10, B: 16, A: 120}
	if state.Scrolled {
		headerBg = color.RGBA{R: 10, G: 10, B: 16, A: 220}
	}
	o.drawRect(screen, 0, 0, float64(w), 28, headerBg)

	x := labelIndent
	for _, b := range o.nav.Boundaries() {
		col := color.RGBA{R: 160, G: 160, B: 175, A: 255}
		if b.ID == state.Active {
			col = color.RGBA{R: 0, G: 225, B: 255, A: 255}
			bounds := text.BoundString(face, b.ID)
			o.drawLine(screen, float64(x), 24, float64(x+bounds.Dx()), 24, 2, col)
		}
		text.Draw(screen, b.ID, face, x, 18, col)
		x += text.BoundString(face, b.ID).Dx() + labelIndent
	}

	trackX := float64(trackMargin)
	trackTop := 40.0
	trackH := float64(h) - trackTop - trackMargin
	if trackH <= 0 {
		return
	}
	o.drawRect(screen, trackX, trackTop, trackWidth, trackH, color.RGBA{R: 60, G: 60, B: 70, A: 160})
	for _, b := range o.nav.Boundaries() {
		y := trackTop + trackY(b.Top, o.pageH, trackH)
		o.drawPoint(screen, trackX+trackWidth/2, y, 6, color.RGBA{R: 200, G: 200, B: 210, A: 200})
	}
	scroll := o.nav.ScrollY()
	top, th := scrollThumb(scroll, o.pageH, float64(h), trackH)
	o.drawRect(screen, trackX-1, trackTop+top, trackWidth+2, th, color.RGBA{R: 0, G: 225, B: 255, A: 200})

	ly := trackTop + trackY(scroll+o.lookahead, o.pageH, trackH)
	o.drawLine(screen, trackX-6, ly, trackX+trackWidth+6, ly, 1, color.RGBA{R: 255, G: 0, B: 122, A: 220})
}

func (o *Overlay) drawRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if size <= 0 {
		return
	}
	o.drawRect(screen, x-size*0.5, y-size*0.5, size, size, col)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}
