package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
	"github.com/custodia-labs/folio/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService retrieves budgeted contexts from stored retrieval graphs.
type SearchService struct {
	retriever driven.ContextRetriever
	artifacts driven.ArtifactStore
	catalog   driven.DocumentCatalog
	maxTokens int
}

// NewSearchService creates a new search service.
// The retriever is optional (can be nil) when no embedding provider is configured;
// searches then fail with domain.ErrEmbeddingUnavailable.
// maxTokens is the budget used when a search does not set one.
func NewSearchService(
	retriever driven.ContextRetriever,
	artifacts driven.ArtifactStore,
	catalog driven.DocumentCatalog,
	maxTokens int,
) *SearchService {
	if maxTokens <= 0 {
		maxTokens = domain.DefaultSearchMaxTokens
	}
	return &SearchService{
		retriever: retriever,
		artifacts: artifacts,
		catalog:   catalog,
		maxTokens: maxTokens,
	}
}

// Search returns the best contexts across the selected documents within the token budget.
func (s *SearchService) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.Context, error) {
	logger.Section("Search Execution")

	graphs, ok, err := s.prepare(ctx, query, opts)
	if err != nil || !ok {
		return []domain.Context{}, err
	}

	budget := opts.MaxTokens
	if budget <= 0 {
		budget = s.maxTokens
	}
	logger.Debug("Budget: %d tokens over %d graphs", budget, len(graphs))

	results, err := s.retriever.Search(ctx, graphs, query, budget)
	if err != nil {
		logger.Warn("Search failed: %v", err)
		return nil, fmt.Errorf("search: %w", err)
	}
	logger.Debug("Returned %d contexts", len(results))
	return results, nil
}

// SearchAll returns every scored context without budget trimming.
func (s *SearchService) SearchAll(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.Context, error) {
	logger.Section("Search Execution (unbudgeted)")

	graphs, ok, err := s.prepare(ctx, query, opts)
	if err != nil || !ok {
		return []domain.Context{}, err
	}

	results, err := s.retriever.SearchAll(ctx, graphs, query)
	if err != nil {
		logger.Warn("Search failed: %v", err)
		return nil, fmt.Errorf("search: %w", err)
	}
	return results, nil
}

// prepare validates the query and loads the graphs to search. ok is false
// when there is nothing to search.
func (s *SearchService) prepare(ctx context.Context, query string, opts domain.SearchOptions) ([]*domain.RetrievalGraph, bool, error) {
	logger.Debug("Query: %q", query)
	if strings.TrimSpace(query) == "" {
		logger.Debug("Empty query, returning no results")
		return nil, false, nil
	}
	if s.retriever == nil {
		return nil, false, domain.ErrEmbeddingUnavailable
	}

	ids, err := s.documentIDs(ctx, opts.DocumentIDs)
	if err != nil {
		return nil, false, err
	}

	graphs, err := s.loadGraphs(ctx, ids)
	if err != nil {
		return nil, false, err
	}
	if len(graphs) == 0 {
		logger.Debug("No graphs to search")
		return nil, false, nil
	}
	return graphs, true, nil
}

// documentIDs returns the requested IDs, or every ready document when none are given.
func (s *SearchService) documentIDs(ctx context.Context, requested []string) ([]string, error) {
	if len(requested) > 0 {
		logger.Debug("Document filter: %v", requested)
		return requested, nil
	}
	recs, err := s.catalog.ListByState(ctx, domain.IndexStateReady)
	if err != nil {
		return nil, fmt.Errorf("list ready documents: %w", err)
	}
	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.ID
	}
	return ids, nil
}

// loadGraphs fetches each graph. A graph that cannot be fetched is skipped;
// one that exists but cannot be decoded aborts the search.
func (s *SearchService) loadGraphs(ctx context.Context, ids []string) ([]*domain.RetrievalGraph, error) {
	graphs := make([]*domain.RetrievalGraph, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		g, err := s.artifacts.LoadGraph(ctx, id)
		switch {
		case errors.Is(err, domain.ErrSerializationFailure):
			return nil, fmt.Errorf("load graph %s: %w", id, err)
		case err != nil:
			logger.Warn("Skipping document %s: %v", id, err)
			continue
		}
		graphs = append(graphs, g)
	}
	return graphs, nil
}
