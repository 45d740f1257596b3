package docx

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// build folds the body blocks into nodes. Each top-level paragraph or
// table starts on the line after the previous one ended.
func build(blocks blockList) ([]domain.Node, error) {
	var last domain.Position
	var nodes []domain.Node

	for _, b := range blocks {
		switch {
		case b.Paragraph != nil:
			last.ResetColumn()
			last = paragraphPosition(last, b.Paragraph)
			children := runNodes(b.Paragraph)
			if b.Paragraph.Numbered() {
				nodes = append(nodes, &domain.ListItem{Children: children, Position: last.Ptr()})
			} else {
				nodes = append(nodes, &domain.Paragraph{Children: children, Position: last.Ptr()})
			}
		case b.Table != nil:
			last.ResetColumn()
			last = tablePosition(last, b.Table)
			rows, err := tableRows(b.Table)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, &domain.Table{Children: rows, Position: last.Ptr()})
		}
	}
	return domain.CoalesceListItems(nodes), nil
}

// paragraphPosition spans the paragraph's text, starting at its indent.
// Leading whitespace does not count towards the width.
func paragraphPosition(last domain.Position, p *paragraph) domain.Position {
	text := p.Text()
	chars := utf8.RuneCountInString(strings.TrimLeftFunc(text, unicode.IsSpace))
	start := domain.Point{
		Line:   last.End.Line + 1,
		Column: p.IndentColumns(),
		Offset: last.End.Offset,
	}
	return domain.Position{
		Start: start,
		End: domain.Point{
			Line:   start.Line + strings.Count(text, "\n"),
			Column: start.Column + chars,
			Offset: start.Offset + chars,
		},
	}
}

// tablePosition covers one line per row and no text offset.
func tablePosition(last domain.Position, t *table) domain.Position {
	start := domain.Point{Line: last.End.Line + 1, Offset: last.End.Offset}
	end := start
	end.Line += len(t.Rows)
	return domain.Position{Start: start, End: end}
}

// runNodes emits one text node per run.
func runNodes(p *paragraph) domain.Nodes {
	children := make(domain.Nodes, 0, len(p.Runs))
	for _, r := range p.Runs {
		children = append(children, &domain.Text{Value: r.Text})
	}
	return children
}

func tableRows(t *table) (domain.Nodes, error) {
	rows := make(domain.Nodes, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells := make(domain.Nodes, 0, len(row.Cells))
		for _, cell := range row.Cells {
			content, err := cellContent(cell.Content)
			if err != nil {
				return nil, err
			}
			cells = append(cells, &domain.TableCell{Children: content})
		}
		rows = append(rows, &domain.TableRow{Children: cells})
	}
	return rows, nil
}

// cellContent flattens un-numbered paragraphs into the cell and keeps
// numbered ones as list items.
func cellContent(blocks blockList) (domain.Nodes, error) {
	var nodes []domain.Node
	for _, b := range blocks {
		switch {
		case b.Paragraph != nil:
			children := runNodes(b.Paragraph)
			if b.Paragraph.Numbered() {
				nodes = append(nodes, &domain.ListItem{Children: children})
			} else {
				nodes = append(nodes, children...)
			}
		case b.Table != nil:
			rows, err := tableRows(b.Table)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, &domain.Table{Children: rows})
		case b.SDT:
			return nil, fmt.Errorf("docx: structured data tag in table cell: %w", domain.ErrParseFailure)
		}
	}
	return domain.CoalesceListItems(nodes), nil
}
