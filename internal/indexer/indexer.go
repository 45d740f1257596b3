package indexer

import (
	"context"
	"fmt"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/logger"
)

// Ensure Indexer implements the interface.
var _ driven.GraphIndexer = (*Indexer)(nil)

// Indexer turns chunks into a retrieval graph.
type Indexer struct {
	embedder    driven.EmbeddingService
	concurrency int
}

// Option configures an Indexer.
type Option func(*Indexer)

// WithConcurrency bounds the number of embedding calls in flight.
func WithConcurrency(n int) Option {
	return func(ix *Indexer) {
		if n > 0 {
			ix.concurrency = n
		}
	}
}

// New creates an indexer that embeds with embedder.
func New(embedder driven.EmbeddingService, opts ...Option) *Indexer {
	ix := &Indexer{
		embedder:    embedder,
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// Index embeds every chunk and assembles the graph. Chunks with identical
// text share a node; the later chunk's rank wins. Any embedding error or
// dimension mismatch fails the whole call and no graph is returned.
func (ix *Indexer) Index(ctx context.Context, chunks []string, meta domain.IndexingMeta) (*domain.RetrievalGraph, error) {
	if ix.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	logger.Debug("indexer: embedding %d chunks for %s with %s", len(chunks), meta.ID, ix.embedder.ModelID())

	nodes := make([]domain.IndexNode, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ix.concurrency)

	for i, chunk := range chunks {
		g.Go(func() error {
			vec, err := ix.embedder.Embed(gctx, chunk)
			if err != nil {
				return fmt.Errorf("embed chunk %d: %w: %w", i, domain.ErrEmbeddingFailure, err)
			}
			nodes[i] = newNode(chunk, i, meta.ID, vec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := checkDimensions(nodes, ix.embedder.Dimensions()); err != nil {
		return nil, err
	}

	hash, err := GraphHash(nodes)
	if err != nil {
		return nil, err
	}

	nodeMap := make(map[string]domain.IndexNode, len(nodes))
	for _, n := range nodes {
		nodeMap[n.ID] = n
	}

	graph := &domain.RetrievalGraph{
		ID:            uuid.NewString(),
		Title:         meta.Title,
		NodeMap:       nodeMap,
		IndexModel:    ix.embedder.ModelID(),
		Reference:     domain.StringPtr(meta.ID),
		ReferenceLink: domain.StringPtr(meta.ExternalLink),
		Hash:          &hash,
	}
	logger.Debug("indexer: graph %s has %d nodes from %d chunks", graph.ID, graph.NodeCount(), len(chunks))
	return graph, nil
}

func newNode(text string, ordinal int, reference string, vec []float32) domain.IndexNode {
	return domain.IndexNode{
		ID:         NodeID(text),
		Data:       text,
		RankID:     RankID(reference, ordinal),
		Hash:       ContentHash(text),
		Embeddings: vec,
		Reference:  domain.StringPtr(reference),
	}
}

// checkDimensions requires every vector to be non-empty and the same
// length, matching want when want is known.
func checkDimensions(nodes []domain.IndexNode, want int) error {
	for _, n := range nodes {
		got := len(n.Embeddings)
		if want == 0 {
			want = got
		}
		if got == 0 || got != want {
			return fmt.Errorf("chunk %s: got %d dimensions, want %d: %w", n.RankID, got, want, domain.ErrEmbeddingFailure)
		}
	}
	return nil
}
