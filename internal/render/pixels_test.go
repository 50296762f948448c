package render

import (
	"image"
	"image/color"
	"testing"
)

func TestFillFalloffRGBA(t *testing.T) {
	const size = 8
	buf := make([]byte, size*size*4)
	fillFalloffRGBA(buf, size)

	corner := buf[3]
	if corner != 0 {
		t.Fatalf("corner alpha = %d, want 0", corner)
	}
	center := buf[((size/2)*size+size/2)*4+3]
	if center < 200 {
		t.Fatalf("center alpha = %d, want near 255", center)
	}
	for i := 0; i < len(buf); i += 4 {
		if buf[i] != buf[i+3] {
			t.Fatalf("pixel %d not premultiplied white: %v", i/4, buf[i:i+4])
		}
	}
}

func TestHalfBlocksAveragesHalves(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 4))
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 2; x++ {
			if y < 2 {
				img.SetRGBA(x, y, red)
			} else {
				img.SetRGBA(x, y, blue)
			}
		}
	}

	type cell struct{ top, bottom color.RGBA }
	got := map[[2]int]cell{}
	HalfBlocks(img, 1, 1, func(col, row int, top, bottom color.RGBA) {
		got[[2]int{col, row}] = cell{top, bottom}
	})
	c, ok := got[[2]int{0, 0}]
	if !ok || len(got) != 1 {
		t.Fatalf("cells = %v", got)
	}
	if c.top != red || c.bottom != blue {
		t.Fatalf("cell = %+v, want red over blue", c)
	}
}

func TestHalfBlocksGenericImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	n := 0
	HalfBlocks(img, 2, 2, func(col, row int, top, bottom color.RGBA) {
		n++
		if top.A != 255 || bottom.R != 255 {
			t.Fatalf("cell %d,%d = %v/%v", col, row, top, bottom)
		}
	})
	if n != 4 {
		t.Fatalf("visited %d cells, want 4", n)
	}
}
