package layout

import "strings"

// GroupKind is the semantic role of a block of lines.
type GroupKind int

// Group kinds.
const (
	KindNone GroupKind = iota
	KindHeading
	KindBulletList
	KindReferenceList
	KindParagraph
	KindTable
	KindPageNumber
)

func (k GroupKind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindBulletList:
		return "bullet_list"
	case KindReferenceList:
		return "reference_list"
	case KindParagraph:
		return "paragraph"
	case KindTable:
		return "table"
	case KindPageNumber:
		return "page_number"
	default:
		return "none"
	}
}

// TextElementGroup is a block of consecutive lines.
type TextElementGroup struct {
	Kind  GroupKind
	Lines []TextLine
}

// Text joins the lines with newlines.
func (g TextElementGroup) Text() string {
	texts := make([]string, len(g.Lines))
	for i, l := range g.Lines {
		texts[i] = l.Text()
	}
	return strings.Join(texts, "\n")
}

// Bounds covers every line of the group.
func (g TextElementGroup) Bounds() Rect {
	rects := make([]Rect, len(g.Lines))
	for i, l := range g.Lines {
		rects[i] = l.Bounds()
	}
	return Union(rects...)
}

// FontSize is the most common line font size.
func (g TextElementGroup) FontSize() float64 {
	sizes := make([]float64, len(g.Lines))
	for i, l := range g.Lines {
		sizes[i] = l.FontSize()
	}
	return mode(sizes)
}

// LineCount counts the lines of the rendered text.
func (g TextElementGroup) LineCount() int {
	return strings.Count(g.Text(), "\n") + 1
}

// ElementCount counts the elements across all lines.
func (g TextElementGroup) ElementCount() int {
	n := 0
	for _, l := range g.Lines {
		n += len(l.Elements)
	}
	return n
}

// LineDistanceMean is the summed gap between each line's bottom and the
// next line's top, divided by the line count.
func (g TextElementGroup) LineDistanceMean() float64 {
	sum := 0.0
	for i := 0; i+1 < len(g.Lines); i++ {
		sum += g.Lines[i].Bounds().Y2 - g.Lines[i+1].Bounds().Y1
	}
	return sum / float64(g.LineCount())
}
