package driven

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// DocumentParser turns file bytes into a Document.
// Each parser handles specific MIME types (e.g., PDF, DOCX).
type DocumentParser interface {
	// SupportedMIMETypes returns the MIME types this parser handles.
	SupportedMIMETypes() []string

	// SupportedExtensions returns lower-case file extensions including the dot.
	SupportedExtensions() []string

	// Parse builds the document tree. Malformed input fails with
	// domain.ErrParseFailure, input without text with domain.ErrEmptyDocument.
	Parse(ctx context.Context, data []byte) (*domain.Document, error)
}

// PDFEngine decodes a PDF container into positioned text runs per page.
type PDFEngine interface {
	// Extract returns the document's pages in order along with its metadata.
	Extract(ctx context.Context, data []byte) (*domain.PDFContent, error)
}
