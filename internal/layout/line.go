package layout

import (
	"math"
	"strings"
)

// ReferenceCharWidth is the nominal width in page units of one character
// column. It converts horizontal distances into indentation and spacing.
const ReferenceCharWidth = 5.0

// TextLine is a sequence of elements that read as one line.
type TextLine struct {
	Elements []TextElement
}

// Text joins the elements, inserting spaces in proportion to the gap
// between consecutive elements.
func (l TextLine) Text() string {
	var b strings.Builder
	fontSize := l.FontSize()
	ratio := fontSize / ReferenceCharWidth

	for i, cur := range l.Elements {
		b.WriteString(cur.Text)
		if i+1 == len(l.Elements) {
			break
		}
		if fontSize <= 0 {
			b.WriteByte(' ')
			continue
		}
		dist := l.Elements[i+1].Bounds.X1 - cur.Bounds.X2
		if n := int(math.Round(dist / fontSize * ratio)); n > 0 {
			b.WriteString(strings.Repeat(" ", n))
		}
	}
	return b.String()
}

// Bounds covers every element of the line.
func (l TextLine) Bounds() Rect {
	rects := make([]Rect, len(l.Elements))
	for i, e := range l.Elements {
		rects[i] = e.Bounds
	}
	return Union(rects...)
}

// FontSize is the most common element font size.
func (l TextLine) FontSize() float64 {
	sizes := make([]float64, len(l.Elements))
	for i, e := range l.Elements {
		sizes[i] = e.FontSize
	}
	return mode(sizes)
}

// Indent is the left edge of the line in character columns.
func (l TextLine) Indent() int {
	head := l.Bounds().X1
	if head <= 0 {
		return 0
	}
	return int(math.Round(head / ReferenceCharWidth))
}
