package driven

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// ParserRegistry selects the appropriate parser for a file.
type ParserRegistry interface {
	// Parse builds a document using the parser registered for the MIME type,
	// falling back to the file extension of name.
	// Unknown types fail with domain.ErrUnsupportedType.
	Parse(ctx context.Context, name, mimeType string, data []byte) (*domain.Document, error)

	// Register adds a parser to the registry.
	Register(parser DocumentParser)

	// DetectMIMEType returns the MIME type for a file name, or "" when unknown.
	DetectMIMEType(name string) string

	// SupportedMIMETypes returns all MIME types that can be parsed.
	SupportedMIMETypes() []string
}
