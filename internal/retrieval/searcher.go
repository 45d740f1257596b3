package retrieval

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/logger"
	"github.com/custodia-labs/folio/internal/postprocessors/chunker"
)

// Ensure Searcher implements the interface.
var _ driven.ContextRetriever = (*Searcher)(nil)

// Searcher runs two-phase retrieval over retrieval graphs.
type Searcher struct {
	embedder    driven.EmbeddingService
	fine        driven.Chunker
	topNodes    int
	concurrency int
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithTopNodes sets how many coarse matches per graph are refined.
func WithTopNodes(n int) Option {
	return func(s *Searcher) {
		if n > 0 {
			s.topNodes = n
		}
	}
}

// WithFineChunker sets the chunker used to re-split coarse matches.
func WithFineChunker(c driven.Chunker) Option {
	return func(s *Searcher) {
		if c != nil {
			s.fine = c
		}
	}
}

// WithConcurrency bounds the number of embedding calls in flight.
func WithConcurrency(n int) Option {
	return func(s *Searcher) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewSearcher creates a searcher that embeds queries and fine chunks with
// embedder.
func NewSearcher(embedder driven.EmbeddingService, opts ...Option) *Searcher {
	s := &Searcher{
		embedder:    embedder,
		fine:        chunker.New(chunker.WithMaxTokens(domain.DefaultFineChunkMaxTokens)),
		topNodes:    domain.DefaultSearchTopNodes,
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search returns the best contexts across graphs within maxTokens.
func (s *Searcher) Search(ctx context.Context, graphs []*domain.RetrievalGraph, query string, maxTokens int) ([]domain.Context, error) {
	all, err := s.SearchAll(ctx, graphs, query)
	if err != nil {
		return nil, err
	}
	kept := Budget(all, maxTokens)
	logger.Debug("retrieval: kept %d of %d contexts within %d tokens", len(kept), len(all), maxTokens)
	return kept, nil
}

// SearchAll returns every refined context across graphs, best first.
func (s *Searcher) SearchAll(ctx context.Context, graphs []*domain.RetrievalGraph, query string) ([]domain.Context, error) {
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w: %w", domain.ErrEmbeddingFailure, err)
	}

	var results []domain.Context
	for _, graph := range graphs {
		contexts, err := s.searchGraph(ctx, graph, queryVec)
		if err != nil {
			return nil, err
		}
		results = append(results, contexts...)
	}

	sortContexts(results)
	return results, nil
}

// searchGraph runs both phases over one graph.
func (s *Searcher) searchGraph(ctx context.Context, graph *domain.RetrievalGraph, queryVec []float32) ([]domain.Context, error) {
	if err := s.checkGraph(graph, len(queryVec)); err != nil {
		return nil, err
	}
	top := TopNodes(graph, queryVec, s.topNodes)

	var lines []string
	for _, n := range top {
		lines = append(lines, strings.Split(n.Data, "\n")...)
	}
	chunks := s.fine.ChunkLines(lines)
	logger.Debug("retrieval: %q: %d nodes, top %d, %d fine chunks", graph.Title, graph.NodeCount(), len(top), len(chunks))

	contexts := make([]domain.Context, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, chunk := range chunks {
		g.Go(func() error {
			vec, err := s.embedder.Embed(gctx, chunk)
			if err != nil {
				return fmt.Errorf("embed fine chunk of %q: %w: %w", graph.Title, domain.ErrEmbeddingFailure, err)
			}
			if len(vec) != len(queryVec) {
				return fmt.Errorf("fine chunk of %q has %d dimensions, query has %d: %w",
					graph.Title, len(vec), len(queryVec), domain.ErrEmbeddingFailure)
			}
			contexts[i] = domain.Context{
				Score:     CosineSimilarity(queryVec, vec),
				RawData:   chunk,
				Data:      fmt.Sprintf("From document %s:\n%s", graph.Title, chunk),
				Reference: graph.Reference,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return contexts, nil
}

// checkGraph rejects a graph built by another model or with vectors that
// cannot be compared with a query of dims dimensions.
func (s *Searcher) checkGraph(graph *domain.RetrievalGraph, dims int) error {
	if model := s.embedder.ModelID(); graph.IndexModel != "" && model != "" && graph.IndexModel != model {
		return fmt.Errorf("graph %q was indexed with %s, query model is %s: %w",
			graph.Title, graph.IndexModel, model, domain.ErrEmbeddingFailure)
	}
	for id, node := range graph.NodeMap {
		if len(node.Embeddings) != dims {
			return fmt.Errorf("node %s of %q has %d dimensions, query has %d: %w",
				id, graph.Title, len(node.Embeddings), dims, domain.ErrEmbeddingFailure)
		}
	}
	return nil
}

// TopNodes scores every node against queryVec and returns the n best,
// highest first. Ties are broken by rank ID for a stable order.
func TopNodes(graph *domain.RetrievalGraph, queryVec []float32, n int) []domain.IndexNode {
	type scored struct {
		node  domain.IndexNode
		score float64
	}
	all := make([]scored, 0, graph.NodeCount())
	for _, node := range graph.NodeMap {
		all = append(all, scored{node: node, score: CosineSimilarity(queryVec, node.Embeddings)})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].score != all[j].score {
			return all[i].score > all[j].score
		}
		return all[i].node.RankID < all[j].node.RankID
	})

	if len(all) > n {
		all = all[:n]
	}
	nodes := make([]domain.IndexNode, len(all))
	for i, sc := range all {
		nodes[i] = sc.node
	}
	return nodes
}

// sortContexts orders by score, highest first, keeping arrival order for ties.
func sortContexts(contexts []domain.Context) {
	sort.SliceStable(contexts, func(i, j int) bool {
		return contexts[i].Score > contexts[j].Score
	})
}
