package docx

import (
	"context"
	"fmt"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/logger"
)

// MIMEType is the content type handled by the parser.
const MIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Ensure Parser implements the interface.
var _ driven.DocumentParser = (*Parser)(nil)

// Parser handles DOCX documents.
type Parser struct{}

// New creates a new DOCX parser.
func New() *Parser {
	return &Parser{}
}

// SupportedMIMETypes returns the MIME types this parser handles.
func (p *Parser) SupportedMIMETypes() []string {
	return []string{MIMEType}
}

// SupportedExtensions returns the file extensions this parser handles.
func (p *Parser) SupportedExtensions() []string {
	return []string{".docx"}
}

// Parse converts a DOCX package into a document. Structured data tags at
// the top level are skipped; inside a table cell they fail the parse.
func (p *Parser) Parse(ctx context.Context, data []byte) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	documentContent, coreContent, err := openArchive(data)
	if err != nil {
		return nil, err
	}

	body, err := decodeDocument(documentContent)
	if err != nil {
		return nil, err
	}
	if !hasText(body.Body) {
		return nil, fmt.Errorf("docx: %w", domain.ErrEmptyDocument)
	}

	nodes, err := build(body.Body)
	if err != nil {
		return nil, err
	}
	logger.Debug("docx: %d blocks, %d nodes", len(body.Body), len(nodes))

	return &domain.Document{Meta: extractMeta(coreContent), Nodes: nodes}, nil
}

// hasText reports whether any paragraph, including those in tables, has text.
func hasText(blocks blockList) bool {
	for _, b := range blocks {
		switch {
		case b.Paragraph != nil:
			if b.Paragraph.Text() != "" {
				return true
			}
		case b.Table != nil:
			for _, row := range b.Table.Rows {
				for _, cell := range row.Cells {
					if hasText(cell.Content) {
						return true
					}
				}
			}
		}
	}
	return false
}
