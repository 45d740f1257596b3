package layout

import "math"

// blockGap is the vertical distance between lines that starts a new group.
const blockGap = 5.0

// GroupElements merges each element into its predecessor when both share
// a style and the element starts where the predecessor ends. The pass is
// greedy and order-dependent. Elements left with empty text are dropped.
func GroupElements(elements []TextElement) []TextElement {
	var merged []TextElement
	for _, el := range elements {
		if n := len(merged); n > 0 && merged[n-1].SameStyle(el) && merged[n-1].SameLine(el) {
			merged[n-1].Merge(el)
			continue
		}
		merged = append(merged, el)
	}

	out := merged[:0]
	for _, el := range merged {
		if el.Text != "" {
			out = append(out, el)
		}
	}
	return out
}

// detectionBounds spans from the element's right edge to the page's right
// margin at the element's height.
func detectionBounds(e TextElement) Rect {
	return Rect{X1: e.Bounds.X2, Y1: e.Bounds.Y1, X2: e.Page.Width, Y2: e.Bounds.Y2}
}

// GroupLines groups elements into lines. A detection rectangle grows with
// each element of the current line; the line ends when the next element
// no longer overlaps it.
func GroupLines(elements []TextElement) []TextLine {
	elements = GroupElements(elements)
	if len(elements) == 0 {
		return nil
	}

	var lines []TextLine
	var buf []TextElement
	detect := detectionBounds(elements[0])

	for i, cur := range elements {
		detect = Union(detect, cur.Bounds)
		overlap := i+1 < len(elements) && detect.Overlaps(elements[i+1].Bounds)

		buf = append(buf, cur)
		if overlap {
			continue
		}

		lines = append(lines, TextLine{Elements: buf})
		buf = nil
		if i+1 < len(elements) {
			detect = detectionBounds(elements[i+1])
		}
	}
	return lines
}

// GroupBlocks groups lines into blocks, closing a block when the gap to
// the next line is at least blockGap. The trailing block is always kept.
func GroupBlocks(lines []TextLine) []TextElementGroup {
	var groups []TextElementGroup
	var buf []TextLine

	for i, cur := range lines {
		buf = append(buf, cur)

		distance := 0.0
		if i+1 < len(lines) {
			distance = math.Abs(cur.Bounds().Y2 - lines[i+1].Bounds().Y1)
		}
		if distance >= blockGap {
			groups = append(groups, TextElementGroup{Kind: KindNone, Lines: buf})
			buf = nil
		}
	}
	if len(buf) > 0 {
		groups = append(groups, TextElementGroup{Kind: KindNone, Lines: buf})
	}
	return groups
}
