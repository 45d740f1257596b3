package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NodeKind is the serialized tag of a document node variant.
type NodeKind string

// Node kinds.
const (
	KindText       NodeKind = "text"
	KindInlineCode NodeKind = "inline_code"
	KindInlineMath NodeKind = "inline_math"
	KindCode       NodeKind = "code"
	KindMath       NodeKind = "math"
	KindImage      NodeKind = "image"
	KindLineBreak  NodeKind = "line_break"
	KindParagraph  NodeKind = "paragraph"
	KindHeading    NodeKind = "heading"
	KindBlockQuote NodeKind = "block_quote"
	KindList       NodeKind = "list"
	KindListItem   NodeKind = "list_item"
	KindTable      NodeKind = "table"
	KindTableRow   NodeKind = "table_row"
	KindTableCell  NodeKind = "table_cell"
	KindTextGroup  NodeKind = "text_group"
)

// Node is a document tree node. The set of variants is closed:
// only types in this package implement it.
type Node interface {
	Kind() NodeKind
	// Pos returns the node's span, or nil when it has none.
	Pos() *Position
	node()
}

// Nodes is an ordered list of nodes that decodes from tagged JSON.
type Nodes []Node

// Text is a run of literal text.
type Text struct {
	Value    string    `json:"value"`
	Position *Position `json:"position,omitempty"`
}

// InlineCode is code inside a line of text.
type InlineCode struct {
	Value    string    `json:"value"`
	Position *Position `json:"position,omitempty"`
}

// InlineMath is math inside a line of text.
type InlineMath struct {
	Value    string    `json:"value"`
	Position *Position `json:"position,omitempty"`
}

// Code is a block of code.
type Code struct {
	Value    string    `json:"value"`
	Position *Position `json:"position,omitempty"`
	Lang     *string   `json:"lang"`
	Meta     *string   `json:"meta"`
}

// Math is a block of math.
type Math struct {
	Value    string    `json:"value"`
	Position *Position `json:"position,omitempty"`
	Meta     *string   `json:"meta"`
}

// Image references an embedded or linked picture.
type Image struct {
	Position *Position `json:"position,omitempty"`
	Alt      string    `json:"alt"`
	URL      string    `json:"url"`
	Title    *string   `json:"title"`
}

// LineBreak separates blocks. It is the only variant without a position.
type LineBreak struct{}

// Paragraph is a block of running text.
type Paragraph struct {
	Children Nodes     `json:"children"`
	Position *Position `json:"position,omitempty"`
}

// Heading is a section title. Depth is 1..6, or 0 when the level is unknown.
type Heading struct {
	Children Nodes     `json:"children"`
	Position *Position `json:"position,omitempty"`
	Depth    uint8     `json:"depth"`
}

// BlockQuote is quoted content.
type BlockQuote struct {
	Children Nodes     `json:"children"`
	Position *Position `json:"position,omitempty"`
}

// List holds ListItem children only.
type List struct {
	Children Nodes     `json:"children"`
	Position *Position `json:"position,omitempty"`
	Ordered  bool      `json:"ordered"`
	Start    *uint32   `json:"start"`
	Spread   bool      `json:"spread"`
}

// ListItem is one entry of a list.
type ListItem struct {
	Children Nodes     `json:"children"`
	Position *Position `json:"position,omitempty"`
	Spread   bool      `json:"spread"`
	Checked  *bool     `json:"checked"`
}

// Table holds TableRow children only.
type Table struct {
	Children Nodes     `json:"children"`
	Position *Position `json:"position,omitempty"`
}

// TableRow holds TableCell children only.
type TableRow struct {
	Children Nodes     `json:"children"`
	Position *Position `json:"position,omitempty"`
}

// TableCell is one cell of a row.
type TableCell struct {
	Children Nodes     `json:"children"`
	Position *Position `json:"position,omitempty"`
}

// TextGroup is a block of text runs whose horizontal spacing comes from
// the runs' positions.
type TextGroup struct {
	Children Nodes     `json:"children"`
	Position *Position `json:"position,omitempty"`
}

func (*Text) node()       {}
func (*InlineCode) node() {}
func (*InlineMath) node() {}
func (*Code) node()       {}
func (*Math) node()       {}
func (*Image) node()      {}
func (*LineBreak) node()  {}
func (*Paragraph) node()  {}
func (*Heading) node()    {}
func (*BlockQuote) node() {}
func (*List) node()       {}
func (*ListItem) node()   {}
func (*Table) node()      {}
func (*TableRow) node()   {}
func (*TableCell) node()  {}
func (*TextGroup) node()  {}

func (*Text) Kind() NodeKind       { return KindText }
func (*InlineCode) Kind() NodeKind { return KindInlineCode }
func (*InlineMath) Kind() NodeKind { return KindInlineMath }
func (*Code) Kind() NodeKind       { return KindCode }
func (*Math) Kind() NodeKind       { return KindMath }
func (*Image) Kind() NodeKind      { return KindImage }
func (*LineBreak) Kind() NodeKind  { return KindLineBreak }
func (*Paragraph) Kind() NodeKind  { return KindParagraph }
func (*Heading) Kind() NodeKind    { return KindHeading }
func (*BlockQuote) Kind() NodeKind { return KindBlockQuote }
func (*List) Kind() NodeKind       { return KindList }
func (*ListItem) Kind() NodeKind   { return KindListItem }
func (*Table) Kind() NodeKind      { return KindTable }
func (*TableRow) Kind() NodeKind   { return KindTableRow }
func (*TableCell) Kind() NodeKind  { return KindTableCell }
func (*TextGroup) Kind() NodeKind  { return KindTextGroup }

func (n *Text) Pos() *Position       { return n.Position }
func (n *InlineCode) Pos() *Position { return n.Position }
func (n *InlineMath) Pos() *Position { return n.Position }
func (n *Code) Pos() *Position       { return n.Position }
func (n *Math) Pos() *Position       { return n.Position }
func (n *Image) Pos() *Position      { return n.Position }
func (*LineBreak) Pos() *Position    { return nil }
func (n *Paragraph) Pos() *Position  { return n.Position }
func (n *Heading) Pos() *Position    { return n.Position }
func (n *BlockQuote) Pos() *Position { return n.Position }
func (n *List) Pos() *Position       { return n.Position }
func (n *ListItem) Pos() *Position   { return n.Position }
func (n *Table) Pos() *Position      { return n.Position }
func (n *TableRow) Pos() *Position   { return n.Position }
func (n *TableCell) Pos() *Position  { return n.Position }
func (n *TextGroup) Pos() *Position  { return n.Position }

// ChildrenOf returns the children of a parent node, or nil for leaves.
func ChildrenOf(n Node) []Node {
	switch v := n.(type) {
	case *Paragraph:
		return v.Children
	case *Heading:
		return v.Children
	case *BlockQuote:
		return v.Children
	case *List:
		return v.Children
	case *ListItem:
		return v.Children
	case *Table:
		return v.Children
	case *TableRow:
		return v.Children
	case *TableCell:
		return v.Children
	case *TextGroup:
		return v.Children
	default:
		return nil
	}
}

// CoalesceListItems wraps every maximal run of consecutive ListItem nodes
// in an unordered List followed by a LineBreak. Other nodes pass through.
// Applying it twice gives the same result as applying it once.
func CoalesceListItems(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	var items Nodes

	flush := func() {
		if len(items) == 0 {
			return
		}
		out = append(out, &List{Children: items, Spread: true}, &LineBreak{})
		items = nil
	}

	for _, n := range nodes {
		if item, ok := n.(*ListItem); ok {
			items = append(items, item)
			continue
		}
		flush()
		out = append(out, n)
	}
	flush()
	return out
}

// ==================== JSON ====================

func (n Text) MarshalJSON() ([]byte, error) {
	type alias Text
	return marshalTagged(KindText, alias(n))
}

func (n InlineCode) MarshalJSON() ([]byte, error) {
	type alias InlineCode
	return marshalTagged(KindInlineCode, alias(n))
}

func (n InlineMath) MarshalJSON() ([]byte, error) {
	type alias InlineMath
	return marshalTagged(KindInlineMath, alias(n))
}

func (n Code) MarshalJSON() ([]byte, error) {
	type alias Code
	return marshalTagged(KindCode, alias(n))
}

func (n Math) MarshalJSON() ([]byte, error) {
	type alias Math
	return marshalTagged(KindMath, alias(n))
}

func (n Image) MarshalJSON() ([]byte, error) {
	type alias Image
	return marshalTagged(KindImage, alias(n))
}

func (LineBreak) MarshalJSON() ([]byte, error) {
	return marshalTagged(KindLineBreak, struct{}{})
}

func (n Paragraph) MarshalJSON() ([]byte, error) {
	type alias Paragraph
	return marshalTagged(KindParagraph, alias(n))
}

func (n Heading) MarshalJSON() ([]byte, error) {
	type alias Heading
	return marshalTagged(KindHeading, alias(n))
}

func (n BlockQuote) MarshalJSON() ([]byte, error) {
	type alias BlockQuote
	return marshalTagged(KindBlockQuote, alias(n))
}

func (n List) MarshalJSON() ([]byte, error) {
	type alias List
	return marshalTagged(KindList, alias(n))
}

func (n ListItem) MarshalJSON() ([]byte, error) {
	type alias ListItem
	return marshalTagged(KindListItem, alias(n))
}

func (n Table) MarshalJSON() ([]byte, error) {
	type alias Table
	return marshalTagged(KindTable, alias(n))
}

func (n TableRow) MarshalJSON() ([]byte, error) {
	type alias TableRow
	return marshalTagged(KindTableRow, alias(n))
}

func (n TableCell) MarshalJSON() ([]byte, error) {
	type alias TableCell
	return marshalTagged(KindTableCell, alias(n))
}

func (n TextGroup) MarshalJSON() ([]byte, error) {
	type alias TextGroup
	return marshalTagged(KindTextGroup, alias(n))
}

// marshalTagged encodes v as an object with "type" as its first field.
func marshalTagged(kind NodeKind, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(`{"type":"`)
	buf.WriteString(string(kind))
	buf.WriteByte('"')
	if inner := bytes.TrimSpace(body[1 : len(body)-1]); len(inner) > 0 {
		buf.WriteByte(',')
		buf.Write(inner)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON encodes a nil list as an empty array.
func (ns Nodes) MarshalJSON() ([]byte, error) {
	if ns == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Node(ns))
}

// UnmarshalJSON decodes a list of tagged nodes.
func (ns *Nodes) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Nodes, 0, len(raw))
	for _, r := range raw {
		n, err := UnmarshalNode(r)
		if err != nil {
			return err
		}
		out = append(out, n)
	}
	*ns = out
	return nil
}

// UnmarshalNode decodes a single tagged node.
func UnmarshalNode(data []byte) (Node, error) {
	var tag struct {
		Type NodeKind `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, err
	}

	var n Node
	switch tag.Type {
	case KindText:
		n = &Text{}
	case KindInlineCode:
		n = &InlineCode{}
	case KindInlineMath:
		n = &InlineMath{}
	case KindCode:
		n = &Code{}
	case KindMath:
		n = &Math{}
	case KindImage:
		n = &Image{}
	case KindLineBreak:
		return &LineBreak{}, nil
	case KindParagraph:
		n = &Paragraph{}
	case KindHeading:
		n = &Heading{}
	case KindBlockQuote:
		n = &BlockQuote{}
	case KindList:
		n = &List{}
	case KindListItem:
		n = &ListItem{}
	case KindTable:
		n = &Table{}
	case KindTableRow:
		n = &TableRow{}
	case KindTableCell:
		n = &TableCell{}
	case KindTextGroup:
		n = &TextGroup{}
	default:
		return nil, fmt.Errorf("unknown node type %q", tag.Type)
	}
	if err := json.Unmarshal(data, n); err != nil {
		return nil, err
	}
	return n, nil
}
