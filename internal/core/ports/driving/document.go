package driving

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// IngestRequest describes a file to ingest.
type IngestRequest struct {
	// ID re-ingests an existing document in place. Empty allocates a new ID.
	ID string

	// Name is the file name; its extension selects the parser when
	// MimeType is empty.
	Name string

	// MimeType overrides detection from Name.
	MimeType string

	// Data is the file content.
	Data []byte

	// Title overrides the title found in the document metadata.
	Title string

	// ExternalLink is recorded as the graph's reference link.
	ExternalLink string
}

// DocumentService parses, chunks, indexes and manages documents.
type DocumentService interface {
	// Parse builds the document tree without persisting anything.
	Parse(ctx context.Context, name string, data []byte) (*domain.Document, error)

	// Chunk parses a file and splits it into overlapping chunks.
	// maxTokens <= 0 uses the configured budget.
	Chunk(ctx context.Context, name string, data []byte, maxTokens int) ([]string, error)

	// Ingest parses, chunks and indexes a file, persisting the document,
	// its retrieval graph and a catalog record.
	Ingest(ctx context.Context, req IngestRequest) (*domain.DocumentRecord, error)

	// List returns all catalog records.
	List(ctx context.Context) ([]domain.DocumentRecord, error)

	// Get retrieves a catalog record by ID.
	Get(ctx context.Context, id string) (*domain.DocumentRecord, error)

	// GetDocument loads the stored document tree.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetContent returns the stored document's plain text.
	GetContent(ctx context.Context, id string) (string, error)

	// Delete removes the record and its artifacts.
	Delete(ctx context.Context, id string) error
}
