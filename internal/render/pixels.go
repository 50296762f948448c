package render

import (
	"image"
	"image/color"
	"math"
)

// fillFalloffRGBA writes a size×size premultiplied white disc into buf whose
// alpha falls linearly from 1 at the center to 0 at the rim. Tinting the
// sprite yields soft glows and gradient spots.
func fillFalloffRGBA(buf []byte, size int) {
	half := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			base := (y*size + x) * 4
			d := math.Hypot(float64(x)+0.5-half, float64(y)+0.5-half) / half
			a := uint8(0)
			if d < 1 {
				a = uint8(math.Round(255 * (1 - d)))
			}
			buf[base+0] = a
			buf[base+1] = a
			buf[base+2] = a
			buf[base+3] = a
		}
	}
}

// HalfBlocks averages img into cols×rows terminal cells, each holding an
// upper and a lower half-block color, and calls fn for every cell.
func HalfBlocks(img image.Image, cols, rows int, fn func(col, row int, top, bottom color.RGBA)) {
	if cols <= 0 || rows <= 0 {
		return
	}
	b := img.Bounds()
	if b.Empty() {
		return
	}
	src, _ := img.(*image.RGBA)
	halfRows := rows * 2
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x0 := b.Min.X + col*b.Dx()/cols
			x1 := b.Min.X + (col+1)*b.Dx()/cols
			ty0 := b.Min.Y + (2*row)*b.Dy()/halfRows
			ty1 := b.Min.Y + (2*row+1)*b.Dy()/halfRows
			by1 := b.Min.Y + (2*row+2)*b.Dy()/halfRows
			top := averageRGBA(img, src, x0, ty0, x1, ty1)
			bottom := averageRGBA(img, src, x0, ty1, x1, by1)
			fn(col, row, top, bottom)
		}
	}
}

// averageRGBA returns the mean color of [x0,x1)×[y0,y1). Empty rectangles
// sample the single pixel at (x0, y0).
func averageRGBA(img image.Image, src *image.RGBA, x0, y0, x1, y1 int) color.RGBA {
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	var r, g, b, a, n uint32
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if src != nil {
				if !(image.Point{X: x, Y: y}.In(src.Rect)) {
					continue
				}
				base := src.PixOffset(x, y)
				r += uint32(src.Pix[base+0])
				g += uint32(src.Pix[base+1])
				b += uint32(src.Pix[base+2])
				a += uint32(src.Pix[base+3])
			} else {
				c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
				r += uint32(c.R)
				g += uint32(c.G)
				b += uint32(c.B)
				a += uint32(c.A)
			}
			n++
		}
	}
	if n == 0 {
		return color.RGBA{}
	}
	return color.RGBA{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n), A: uint8(a / n)}
}
