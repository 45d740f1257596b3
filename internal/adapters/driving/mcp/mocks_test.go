package mcp

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []domain.Context
	err     error
	gotOpts domain.SearchOptions
}

func (m *mockSearchService) Search(_ context.Context, _ string, opts domain.SearchOptions) ([]domain.Context, error) {
	m.gotOpts = opts
	return m.results, m.err
}

func (m *mockSearchService) SearchAll(_ context.Context, _ string, opts domain.SearchOptions) ([]domain.Context, error) {
	m.gotOpts = opts
	return m.results, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	records  []domain.DocumentRecord
	document *domain.Document
	content  string
	err      error
}

func (m *mockDocumentService) Parse(context.Context, string, []byte) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) Chunk(context.Context, string, []byte, int) ([]string, error) {
	return nil, m.err
}

func (m *mockDocumentService) Ingest(context.Context, driving.IngestRequest) (*domain.DocumentRecord, error) {
	return nil, m.err
}

func (m *mockDocumentService) List(context.Context) ([]domain.DocumentRecord, error) {
	return m.records, m.err
}

func (m *mockDocumentService) Get(context.Context, string) (*domain.DocumentRecord, error) {
	if len(m.records) == 0 {
		return nil, domain.ErrNotFound
	}
	return &m.records[0], m.err
}

func (m *mockDocumentService) GetDocument(context.Context, string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) GetContent(context.Context, string) (string, error) {
	return m.content, m.err
}

func (m *mockDocumentService) Delete(context.Context, string) error {
	return m.err
}
