package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
)

// Ensure ArtifactStore implements the interface.
var _ driven.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore is an in-memory implementation of driven.ArtifactStore.
// Values are kept JSON-encoded so loads return independent copies.
type ArtifactStore struct {
	mu        sync.RWMutex
	documents map[string][]byte
	graphs    map[string][]byte
}

// NewArtifactStore creates a new in-memory artifact store.
func NewArtifactStore() *ArtifactStore {
	return &ArtifactStore{
		documents: make(map[string][]byte),
		graphs:    make(map[string][]byte),
	}
}

// SaveDocument stores a parsed document.
func (s *ArtifactStore) SaveDocument(_ context.Context, id string, doc *domain.Document) error {
	return s.put(s.documents, id, doc)
}

// LoadDocument returns a stored document.
func (s *ArtifactStore) LoadDocument(_ context.Context, id string) (*domain.Document, error) {
	var doc domain.Document
	if err := s.get(s.documents, id, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// SaveGraph stores a retrieval graph.
func (s *ArtifactStore) SaveGraph(_ context.Context, id string, graph *domain.RetrievalGraph) error {
	return s.put(s.graphs, id, graph)
}

// LoadGraph returns a stored retrieval graph.
func (s *ArtifactStore) LoadGraph(_ context.Context, id string) (*domain.RetrievalGraph, error) {
	var graph domain.RetrievalGraph
	if err := s.get(s.graphs, id, &graph); err != nil {
		return nil, err
	}
	return &graph, nil
}

// PutRawGraph stores graph bytes as-is.
func (s *ArtifactStore) PutRawGraph(id string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graphs[id] = data
}

// Delete removes every artifact of a document.
func (s *ArtifactStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.documents, id)
	delete(s.graphs, id)
	return nil
}

func (s *ArtifactStore) put(m map[string][]byte, id string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSerializationFailure, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m[id] = data
	return nil
}

func (s *ArtifactStore) get(m map[string][]byte, id string, v any) error {
	s.mu.RLock()
	data, ok := m[id]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: artifact %s", domain.ErrNotFound, id)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSerializationFailure, err)
	}
	return nil
}
