package domain

import "strings"

// DocumentMeta describes where a document came from.
// Dates are milliseconds since the Unix epoch and nil when the source has none.
type DocumentMeta struct {
	Title            string  `json:"title"`
	Language         *string `json:"language"`
	Author           *string `json:"author"`
	Creator          *string `json:"creator"`
	Producer         *string `json:"producer"`
	Subject          *string `json:"subject"`
	Description      *string `json:"description"`
	Keywords         *string `json:"keywords"`
	CreationDate     *int64  `json:"creation_date"`
	ModificationDate *int64  `json:"modification_date"`
}

// Document is a parsed file: metadata plus an ordered node tree.
// A Document is not modified after it is built.
type Document struct {
	Meta  DocumentMeta `json:"meta"`
	Nodes Nodes        `json:"nodes"`
}

// Texts renders each top-level node to plain text.
func (d *Document) Texts() []string {
	texts := make([]string, len(d.Nodes))
	for i, n := range d.Nodes {
		texts[i] = NodeText(n)
	}
	return texts
}

// Text renders the whole document to plain text, synthesising indentation
// from node columns.
func (d *Document) Text() string {
	return strings.Join(d.Texts(), "")
}

// Lines splits the text of every top-level node on newlines.
func (d *Document) Lines() []string {
	var lines []string
	for _, t := range d.Texts() {
		lines = append(lines, strings.Split(t, "\n")...)
	}
	return lines
}

// NodeText renders a single node and its children to plain text.
func NodeText(n Node) string {
	switch v := n.(type) {
	case *Text:
		return v.Value
	case *TextGroup:
		var b strings.Builder
		lastEnd := 0
		for _, child := range v.Children {
			if p := child.Pos(); p != nil {
				if p.Start.Column > lastEnd {
					b.WriteString(strings.Repeat(" ", p.Start.Column-lastEnd))
				}
				lastEnd = p.End.Column
			}
			b.WriteString(NodeText(child))
		}
		return b.String()
	case *Paragraph:
		return indent(v.Position) + joinText(v.Children, "")
	case *Heading:
		return indent(v.Position) + joinText(v.Children, "")
	case *List:
		return indent(v.Position) + joinText(v.Children, "\n")
	case *ListItem:
		return joinText(v.Children, " ")
	case *Table:
		return indent(v.Position) + joinText(v.Children, "")
	case *TableRow:
		sep := 1
		if v.Position != nil {
			sep = v.Position.Start.Column
		}
		return joinText(v.Children, strings.Repeat(" ", sep)) + "\n"
	case *TableCell:
		return joinText(v.Children, " ")
	case *LineBreak:
		return "\n"
	default:
		return ""
	}
}

func indent(p *Position) string {
	if p == nil {
		return ""
	}
	return strings.Repeat(" ", p.Start.Column)
}

func joinText(nodes []Node, sep string) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = NodeText(n)
	}
	return strings.Join(parts, sep)
}
