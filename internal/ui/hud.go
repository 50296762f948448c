//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders a Panel as a translucent column over the right edge of the
// window.
type HUD struct {
	panel      *Panel
	image      *ebiten.Image
	lastHeight int
	offsetX    int
	hidden     bool

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for the provided panel.
func NewHUD(panel *Panel) *HUD {
	h := &HUD{panel: panel}
	if panel.Width() > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	return h
}

// Toggle shows or hides the panel.
func (h *HUD) Toggle() { h.hidden = !h.hidden }

// Hidden reports whether the panel is hidden.
func (h *HUD) Hidden() bool { return h.hidden }

// Update refreshes the panel values and handles clicks. It reports whether
// the cursor is over the panel so the caller can ignore it.
func (h *HUD) Update(screenWidth int) bool {
	if h == nil || h.hidden {
		return false
	}
	h.offsetX = screenWidth - h.panel.Width()
	h.panel.Refresh()
	mx, my := ebiten.CursorPosition()
	over := mx >= h.offsetX
	if over && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		h.panel.Click(mx-h.offsetX, my)
	}
	return over
}

// Draw paints the panel anchored to the right edge of screen.
func (h *HUD) Draw(screen *ebiten.Image) {
	if h == nil || h.hidden || h.panel.Width() <= 0 {
		return
	}
	height := screen.Bounds().Dy()
	if height <= 0 {
		return
	}
	if h.image == nil || h.lastHeight != height {
		h.image = ebiten.NewImage(h.panel.Width(), height)
		h.lastHeight = height
	}
	h.image.Fill(color.RGBA{R: 12, G: 12, B: 18, A: 200})
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(screen.Bounds().Dx()-h.panel.Width()), 0)
	screen.DrawImage(h.image, op)
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	p := h.panel
	headerY := panelPadding + headerBaseline
	text.Draw(h.image, p.title, face, panelPadding, headerY, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	if len(p.controls) == 0 {
		text.Draw(h.image, "No adjustable settings", face, panelPadding, headerY+infoSpacing, color.RGBA{R: 160, G: 160, B: 170, A: 255})
		return
	}
	for i := range p.controls {
		state := &p.controls[i]
		labelY := state.top + labelBaseline
		text.Draw(h.image, state.control.Label, face, panelPadding, labelY, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		valueColor := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		if !state.hasValue {
			valueColor = color.RGBA{R: 160, G: 160, B: 170, A: 255}
		}
		bounds := text.BoundString(face, state.value)
		valueX := state.minusRect.Min.X - buttonGap - bounds.Dx()
		text.Draw(h.image, state.value, face, valueX, labelY, valueColor)

		h.drawButton(state.minusRect, "-", p.CanAdjust(i, -1))
		h.drawButton(state.plusRect, "+", p.CanAdjust(i, 1))
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorM.Scale(float64(bg.R)/255.0, float64(bg.G)/255.0, float64(bg.B)/255.0, float64(bg.A)/255.0)
	h.image.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.image, label, face, x, y, fg)
}
