package driven

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// DocumentCatalog persists document records and their index state.
// Backed by SQLite.
type DocumentCatalog interface {
	// SaveDocument stores or updates a record.
	SaveDocument(ctx context.Context, rec *domain.DocumentRecord) error

	// GetDocument retrieves a record by ID.
	GetDocument(ctx context.Context, id string) (*domain.DocumentRecord, error)

	// UpdateIndexState sets the state of a record. errMsg is kept for failed records.
	UpdateIndexState(ctx context.Context, id string, state domain.IndexState, errMsg string) error

	// DeleteDocument removes a record.
	DeleteDocument(ctx context.Context, id string) error

	// ListDocuments returns all records, newest first.
	ListDocuments(ctx context.Context) ([]domain.DocumentRecord, error)

	// ListByState returns records in the given state, newest first.
	ListByState(ctx context.Context, state domain.IndexState) ([]domain.DocumentRecord, error)
}

// ArtifactStore persists parsed documents and retrieval graphs as JSON,
// one directory per document ID.
type ArtifactStore interface {
	// SaveDocument writes {id}/data.json.
	SaveDocument(ctx context.Context, id string, doc *domain.Document) error

	// LoadDocument reads {id}/data.json. Missing files fail with domain.ErrNotFound.
	LoadDocument(ctx context.Context, id string) (*domain.Document, error)

	// SaveGraph writes {id}/embedding.json.
	SaveGraph(ctx context.Context, id string, graph *domain.RetrievalGraph) error

	// LoadGraph reads {id}/embedding.json. Missing files fail with domain.ErrNotFound,
	// undecodable files with domain.ErrSerializationFailure.
	LoadGraph(ctx context.Context, id string) (*domain.RetrievalGraph, error)

	// Delete removes every artifact of a document.
	Delete(ctx context.Context, id string) error
}
