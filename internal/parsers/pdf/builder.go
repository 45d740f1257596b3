package pdf

import (
	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/layout"
)

// builder turns classified groups into document nodes. The cursor is the
// position of the last emitted text node; every new node starts at the
// cursor's end, so positions never move backwards.
type builder struct {
	cursor domain.Position
	nodes  []domain.Node
}

// Build converts classified groups into the node sequence of a document.
// Headings have depth 0 since the layout carries no reliable level.
// Consecutive list items are wrapped into lists.
func Build(groups []layout.TextElementGroup) []domain.Node {
	b := &builder{cursor: domain.NewCursor()}
	for _, g := range groups {
		switch g.Kind {
		case layout.KindHeading:
			children := b.lineRuns(g.Lines)
			b.nodes = append(b.nodes, &domain.Heading{Children: children, Position: spanOf(children, b.cursor), Depth: 0})
			b.cursor.AddLine()
		case layout.KindBulletList, layout.KindReferenceList:
			for _, line := range g.Lines {
				children := b.lineRuns([]layout.TextLine{line})
				b.nodes = append(b.nodes, &domain.ListItem{Children: children, Position: spanOf(children, b.cursor)})
				b.cursor.AddLine()
			}
		case layout.KindParagraph:
			children := b.lineRuns(g.Lines)
			b.nodes = append(b.nodes, &domain.Paragraph{Children: children, Position: spanOf(children, b.cursor)})
			b.cursor.AddLine()
		default:
			for _, line := range g.Lines {
				b.nodes = append(b.nodes, b.textGroup(line))
			}
		}
	}
	return domain.CoalesceListItems(b.nodes)
}

// lineRuns emits one text node per element, moving the cursor to each
// line's indent first.
func (b *builder) lineRuns(lines []layout.TextLine) domain.Nodes {
	var children domain.Nodes
	for _, line := range lines {
		b.cursor.SetEndColumn(line.Indent())
		for _, e := range line.Elements {
			children = append(children, b.text(e.Text))
		}
	}
	return children
}

// textGroup emits one text node per element on successive lines, carrying
// the horizontal gap to the next element as extra columns.
func (b *builder) textGroup(line layout.TextLine) *domain.TextGroup {
	b.cursor.SetEndColumn(line.Indent())

	var children domain.Nodes
	for i, cur := range line.Elements {
		children = append(children, b.text(cur.Text))

		spaces := 0
		if i+1 < len(line.Elements) {
			spaces = gapColumns(cur, line.Elements[i+1])
		}
		b.cursor.SetEndColumn(b.cursor.End.Column + spaces)
		b.cursor.AddLine()
	}
	return &domain.TextGroup{Children: children, Position: spanOf(children, b.cursor)}
}

// text emits a text node starting at the cursor's end.
func (b *builder) text(value string) *domain.Text {
	start := b.cursor.End
	end := domain.Point{
		Line:   start.Line,
		Column: start.Column + len(value),
		Offset: start.Offset + len(value),
	}
	b.cursor = domain.Position{Start: start, End: end}
	return &domain.Text{Value: value, Position: b.cursor.Ptr()}
}

// gapColumns is the horizontal gap between two elements in units of the
// first element's font size, truncated.
func gapColumns(cur, next layout.TextElement) int {
	if cur.FontSize <= 0 {
		return 1
	}
	n := int((next.Bounds.X1 - cur.Bounds.X2) / cur.FontSize)
	if n < 0 {
		return 0
	}
	return n
}

// spanOf runs from the first child's start to the last child's end.
func spanOf(children domain.Nodes, fallback domain.Position) *domain.Position {
	var first, last *domain.Position
	for _, c := range children {
		if p := c.Pos(); p != nil {
			if first == nil {
				first = p
			}
			last = p
		}
	}
	if first == nil {
		return fallback.Ptr()
	}
	return &domain.Position{Start: first.Start, End: last.End}
}
