package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
)

// Ensure DocumentCatalog implements the interface.
var _ driven.DocumentCatalog = (*DocumentCatalog)(nil)

// DocumentCatalog is an in-memory implementation of driven.DocumentCatalog.
type DocumentCatalog struct {
	mu      sync.RWMutex
	records map[string]domain.DocumentRecord
}

// NewDocumentCatalog creates a new in-memory document catalog.
func NewDocumentCatalog() *DocumentCatalog {
	return &DocumentCatalog{
		records: make(map[string]domain.DocumentRecord),
	}
}

// SaveDocument stores or updates a record. CreatedAt is kept on update.
func (c *DocumentCatalog) SaveDocument(_ context.Context, rec *domain.DocumentRecord) error {
	if rec == nil || rec.ID == "" {
		return fmt.Errorf("%w: document record needs an id", domain.ErrInvalidInput)
	}
	if !rec.IndexState.IsValid() {
		return fmt.Errorf("%w: index state %q", domain.ErrInvalidInput, rec.IndexState)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := c.records[rec.ID]; ok {
		rec.CreatedAt = existing.CreatedAt
	} else if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	c.records[rec.ID] = *rec
	return nil
}

// GetDocument retrieves a record by ID.
func (c *DocumentCatalog) GetDocument(_ context.Context, id string) (*domain.DocumentRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

// UpdateIndexState sets the state of a record.
func (c *DocumentCatalog) UpdateIndexState(_ context.Context, id string, state domain.IndexState, errMsg string) error {
	if !state.IsValid() {
		return fmt.Errorf("%w: index state %q", domain.ErrInvalidInput, state)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.records[id]
	if !ok {
		return domain.ErrNotFound
	}
	if state != domain.IndexStateFailed {
		errMsg = ""
	}
	rec.IndexState = state
	rec.Error = errMsg
	rec.UpdatedAt = time.Now().UTC()
	c.records[id] = rec
	return nil
}

// DeleteDocument removes a record.
func (c *DocumentCatalog) DeleteDocument(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.records, id)
	return nil
}

// ListDocuments returns all records, newest first.
func (c *DocumentCatalog) ListDocuments(_ context.Context) ([]domain.DocumentRecord, error) {
	return c.list(func(domain.DocumentRecord) bool { return true }), nil
}

// ListByState returns records in the given state, newest first.
func (c *DocumentCatalog) ListByState(_ context.Context, state domain.IndexState) ([]domain.DocumentRecord, error) {
	return c.list(func(r domain.DocumentRecord) bool { return r.IndexState == state }), nil
}

func (c *DocumentCatalog) list(keep func(domain.DocumentRecord) bool) []domain.DocumentRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var result []domain.DocumentRecord
	for _, rec := range c.records {
		if keep(rec) {
			result = append(result, rec)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result
}
