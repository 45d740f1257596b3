package driving

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// SearchService provides context retrieval to external actors.
type SearchService interface {
	// Search returns the best-scoring contexts across the selected documents,
	// highest score first, trimmed to the token budget.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.Context, error)

	// SearchAll returns every scored context without budget trimming.
	SearchAll(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.Context, error)
}
