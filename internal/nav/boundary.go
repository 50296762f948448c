// Package nav tracks which page section the reader is looking at as the
// document scrolls.
package nav

// DefaultSections is the navigation order of the portfolio page.
var DefaultSections = []string{"hero", "about", "skills", "projects", "resume", "contact"}

// Boundary is the [Top, Bottom) document interval in which a section is
// active.
type Boundary struct {
	ID     string  `json:"id"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Contains reports whether pos falls inside the boundary.
func (b Boundary) Contains(pos float64) bool {
	return pos >= b.Top && pos < b.Bottom
}

// Document answers layout queries for section elements.
type Document interface {
	// Measure returns the top offset and height of the section, or ok=false
	// when the section is not in the document.
	Measure(id string) (top, height float64, ok bool)
}

// Measure builds the boundary list for ids in order. Sections the document
// does not know about are left out.
func Measure(doc Document, ids []string) []Boundary {
	out := make([]Boundary, 0, len(ids))
	for _, id := range ids {
		top, height, ok := doc.Measure(id)
		if !ok {
			continue
		}
		out = append(out, Boundary{ID: id, Top: top, Bottom: top + height})
	}
	return out
}

// Locate returns the first boundary containing pos.
func Locate(bounds []Boundary, pos float64) (string, bool) {
	for _, b := range bounds {
		if b.Contains(pos) {
			return b.ID, true
		}
	}
	return "", false
}
