package retrieval

import "github.com/custodia-labs/folio/internal/core/domain"

// Budget keeps contexts in order while their summed cost stays within
// maxTokens. It stops at the first context that would exceed the budget,
// even if later contexts are cheaper.
func Budget(contexts []domain.Context, maxTokens int) []domain.Context {
	kept := make([]domain.Context, 0, len(contexts))
	total := 0
	for _, c := range contexts {
		total += c.Tokens()
		if total > maxTokens {
			break
		}
		kept = append(kept, c)
	}
	return kept
}
