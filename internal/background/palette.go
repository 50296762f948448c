package background

import (
	"image/color"

	"backdrop/internal/settings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette is the set of colors a scheme draws with.
type Palette struct {
	// Particles is the pool particle colors are picked from.
	Particles []color.NRGBA
	// Link is the connection-line color.
	Link color.NRGBA
	// Grid and Glow color the grid overlay and its glowing diagonals.
	Grid color.NRGBA
	Glow color.NRGBA
	// Hues drive the base gradient spots, in degrees.
	Hues [4]float64
}

var palettes = map[settings.ColorScheme]Palette{
	settings.SchemeNeon: {
		Particles: []color.NRGBA{
			{R: 0, G: 225, B: 255, A: 255},
			{R: 179, G: 101, B: 247, A: 255},
			{R: 0, G: 255, B: 148, A: 255},
			{R: 255, G: 0, B: 122, A: 255},
			{R: 255, G: 221, B: 0, A: 255},
		},
		Link: color.NRGBA{R: 0, G: 225, B: 255, A: 255},
		Grid: color.NRGBA{R: 0, G: 225, B: 255, A: 255},
		Glow: color.NRGBA{R: 0, G: 255, B: 148, A: 255},
		Hues: [4]float64{195, 280, 145, 320},
	},
	settings.SchemeWarm: {
		Particles: []color.NRGBA{
			{R: 255, G: 140, B: 0, A: 255},
			{R: 255, G: 70, B: 70, A: 255},
			{R: 255, G: 200, B: 60, A: 255},
			{R: 240, G: 90, B: 160, A: 255},
		},
		Link: color.NRGBA{R: 255, G: 170, B: 60, A: 255},
		Grid: color.NRGBA{R: 255, G: 140, B: 0, A: 255},
		Glow: color.NRGBA{R: 255, G: 200, B: 60, A: 255},
		Hues: [4]float64{20, 340, 45, 0},
	},
	settings.SchemeCool: {
		Particles: []color.NRGBA{
			{R: 80, G: 170, B: 255, A: 255},
			{R: 120, G: 120, B: 255, A: 255},
			{R: 0, G: 220, B: 210, A: 255},
			{R: 190, G: 230, B: 255, A: 255},
		},
		Link: color.NRGBA{R: 120, G: 200, B: 255, A: 255},
		Grid: color.NRGBA{R: 80, G: 170, B: 255, A: 255},
		Glow: color.NRGBA{R: 0, G: 220, B: 210, A: 255},
		Hues: [4]float64{205, 240, 175, 260},
	},
}

// PaletteFor returns the palette of a scheme, falling back to neon.
func PaletteFor(cs settings.ColorScheme) Palette {
	if p, ok := palettes[cs]; ok {
		return p
	}
	return palettes[settings.SchemeNeon]
}

// hsl converts hue (degrees), saturation and lightness into an opaque color.
func hsl(h, s, l float64) color.NRGBA {
	r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
