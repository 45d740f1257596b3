package domain

import "fmt"

// Point is a place in the rendered text of a document.
// Line and Column are 1-indexed, Offset is 0-indexed.
type Point struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

// String renders the point as line:column (offset).
func (p Point) String() string {
	return fmt.Sprintf("%d:%d (%d)", p.Line, p.Column, p.Offset)
}

// Position is the half-open span [Start, End) covered by a node.
type Position struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// NewCursor returns the position builders start from: line 1, column 0, offset 0.
func NewCursor() Position {
	origin := Point{Line: 1}
	return Position{Start: origin, End: origin}
}

// ResetColumn moves the end column back to zero, keeping line and offset.
func (p *Position) ResetColumn() {
	p.End.Column = 0
}

// AddLine advances both ends by one line.
func (p *Position) AddLine() {
	p.Start.Line++
	p.End.Line++
}

// SetEndColumn sets the end column.
func (p *Position) SetEndColumn(column int) {
	p.End.Column = column
}

// Ptr returns a pointer to a copy of p, for storing on a node.
func (p Position) Ptr() *Position {
	return &p
}

// String renders the span as start-end (offsets).
func (p Position) String() string {
	return fmt.Sprintf("%d:%d-%d:%d (%d-%d)",
		p.Start.Line, p.Start.Column, p.End.Line, p.End.Column, p.Start.Offset, p.End.Offset)
}
