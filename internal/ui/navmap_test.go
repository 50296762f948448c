package ui

import "testing"

func TestScrollThumb(t *testing.T) {
	cases := []struct {
		name                   string
		scroll, page, view, tr float64
		top, height            float64
	}{
		{"top", 0, 4000, 1000, 400, 0, 100},
		{"bottom", 3000, 4000, 1000, 400, 300, 100},
		{"past bottom", 5000, 4000, 1000, 400, 300, 100},
		{"short page", 0, 800, 1000, 400, 0, 400},
		{"tiny thumb", 0, 1e6, 100, 400, 0, 8},
	}
	for _, tc := range cases {
		top, h := scrollThumb(tc.scroll, tc.page, tc.view, tc.tr)
		if top != tc.top || h != tc.height {
			t.Errorf("%s: thumb = (%v, %v), want (%v, %v)", tc.name, top, h, tc.top, tc.height)
		}
	}
}

func TestTrackY(t *testing.T) {
	if got := trackY(2000, 4000, 400); got != 200 {
		t.Fatalf("trackY = %v, want 200", got)
	}
	if got := trackY(9000, 4000, 400); got != 400 {
		t.Fatalf("trackY past the end = %v, want 400", got)
	}
}
