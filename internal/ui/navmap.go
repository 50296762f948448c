package ui

import "backdrop/internal/nav"

// NavSource is what the navigation overlay reads each frame.
type NavSource interface {
	State() nav.State
	Boundaries() []nav.Boundary
	ScrollY() float64
}

// scrollThumb maps a scroll offset onto a track of trackH pixels for a page
// of pageH viewed through viewH. It returns the thumb top and height.
func scrollThumb(scrollY, pageH, viewH, trackH float64) (top, height float64) {
	if pageH <= 0 || trackH <= 0 {
		return 0, 0
	}
	if viewH >= pageH {
		return 0, trackH
	}
	height = trackH * viewH / pageH
	if height < 8 {
		height = 8
	}
	maxScroll := pageH - viewH
	f := clamp01(scrollY / maxScroll)
	return f * (trackH - height), height
}

// trackY maps a document offset onto the track.
func trackY(docY, pageH, trackH float64) float64 {
	if pageH <= 0 {
		return 0
	}
	return clamp01(docY/pageH) * trackH
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
