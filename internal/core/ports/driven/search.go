package driven

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// GraphIndexer embeds the chunks of one document into a retrieval graph.
type GraphIndexer interface {
	// Index embeds every chunk. Any embedding failure fails the whole call.
	Index(ctx context.Context, chunks []string, meta domain.IndexingMeta) (*domain.RetrievalGraph, error)
}

// ContextRetriever ranks the passages of retrieval graphs against a query.
type ContextRetriever interface {
	// Search returns the best contexts, highest score first, within maxTokens.
	Search(ctx context.Context, graphs []*domain.RetrievalGraph, query string, maxTokens int) ([]domain.Context, error)

	// SearchAll returns every scored context, highest score first.
	SearchAll(ctx context.Context, graphs []*domain.RetrievalGraph, query string) ([]domain.Context, error)
}
