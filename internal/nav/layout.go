package nav

import "slices"

// Section is one block of a Layout.
type Section struct {
	ID     string  `json:"id" yaml:"id" koanf:"id"`
	Height float64 `json:"height" yaml:"height" koanf:"height"`
}

// Layout is a Document made of sections stacked top to bottom, starting at
// Offset. It is not safe for concurrent use.
type Layout struct {
	Offset   float64
	Sections []Section
}

// NewLayout stacks sections in order.
func NewLayout(offset float64, sections ...Section) *Layout {
	return &Layout{Offset: offset, Sections: slices.Clone(sections)}
}

// UniformLayout gives every id the same height.
func UniformLayout(ids []string, height float64) *Layout {
	l := &Layout{Sections: make([]Section, len(ids))}
	for i, id := range ids {
		l.Sections[i] = Section{ID: id, Height: height}
	}
	return l
}

// Measure implements Document.
func (l *Layout) Measure(id string) (top, height float64, ok bool) {
	top = l.Offset
	for _, s := range l.Sections {
		if s.ID == id {
			return top, s.Height, true
		}
		top += s.Height
	}
	return 0, 0, false
}

// Height is the total document height.
func (l *Layout) Height() float64 {
	h := l.Offset
	for _, s := range l.Sections {
		h += s.Height
	}
	return h
}

// Set changes the height of id, appending the section when missing.
func (l *Layout) Set(id string, height float64) {
	for i := range l.Sections {
		if l.Sections[i].ID == id {
			l.Sections[i].Height = height
			return
		}
	}
	l.Sections = append(l.Sections, Section{ID: id, Height: height})
}

// Remove drops id from the layout.
func (l *Layout) Remove(id string) {
	l.Sections = slices.DeleteFunc(l.Sections, func(s Section) bool { return s.ID == id })
}
