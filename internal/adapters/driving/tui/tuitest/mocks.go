// Package tuitest provides service doubles for TUI tests.
package tuitest

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

// DocumentService implements driving.DocumentService with optional funcs.
// Unset funcs return zero values.
type DocumentService struct {
	ListFunc        func(ctx context.Context) ([]domain.DocumentRecord, error)
	GetFunc         func(ctx context.Context, id string) (*domain.DocumentRecord, error)
	GetDocumentFunc func(ctx context.Context, id string) (*domain.Document, error)
	GetContentFunc  func(ctx context.Context, id string) (string, error)
	DeleteFunc      func(ctx context.Context, id string) error
	IngestFunc      func(ctx context.Context, req driving.IngestRequest) (*domain.DocumentRecord, error)
}

var _ driving.DocumentService = (*DocumentService)(nil)

func (m *DocumentService) Parse(context.Context, string, []byte) (*domain.Document, error) {
	return &domain.Document{}, nil
}

func (m *DocumentService) Chunk(context.Context, string, []byte, int) ([]string, error) {
	return nil, nil
}

func (m *DocumentService) Ingest(ctx context.Context, req driving.IngestRequest) (*domain.DocumentRecord, error) {
	if m.IngestFunc != nil {
		return m.IngestFunc(ctx, req)
	}
	return &domain.DocumentRecord{ID: req.ID}, nil
}

func (m *DocumentService) List(ctx context.Context) ([]domain.DocumentRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []domain.DocumentRecord{}, nil
}

func (m *DocumentService) Get(ctx context.Context, id string) (*domain.DocumentRecord, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *DocumentService) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	if m.GetDocumentFunc != nil {
		return m.GetDocumentFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *DocumentService) GetContent(ctx context.Context, id string) (string, error) {
	if m.GetContentFunc != nil {
		return m.GetContentFunc(ctx, id)
	}
	return "", nil
}

func (m *DocumentService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// SearchService implements driving.SearchService with optional funcs.
type SearchService struct {
	SearchFunc func(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.Context, error)
}

var _ driving.SearchService = (*SearchService)(nil)

func (m *SearchService) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.Context, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, opts)
	}
	return []domain.Context{}, nil
}

func (m *SearchService) SearchAll(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.Context, error) {
	return m.Search(ctx, query, opts)
}
