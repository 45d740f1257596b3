package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

// mockDocumentService records calls and serves a fixed catalog.
type mockDocumentService struct {
	records  map[string]*domain.DocumentRecord
	content  map[string]string
	ingested []driving.IngestRequest
	deleted  []string
	chunkMax int

	ingestErr error
	parseErr  error
}

var _ driving.DocumentService = (*mockDocumentService)(nil)

func newMockDocumentService() *mockDocumentService {
	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	return &mockDocumentService{
		records: map[string]*domain.DocumentRecord{
			"doc-1": {
				ID:           "doc-1",
				Title:        "Annual Report",
				Filename:     "report.pdf",
				MimeType:     "application/pdf",
				ExternalLink: "https://example.com/report.pdf",
				IndexState:   domain.IndexStateReady,
				ContentHash:  "abc123",
				NodeCount:    12,
				CreatedAt:    created,
				UpdatedAt:    created,
			},
		},
		content: map[string]string{"doc-1": "Revenue grew in every region."},
	}
}

func (m *mockDocumentService) Parse(_ context.Context, _ string, _ []byte) (*domain.Document, error) {
	if m.parseErr != nil {
		return nil, m.parseErr
	}
	return &domain.Document{
		Meta: domain.DocumentMeta{Title: "Report"},
		Nodes: domain.Nodes{
			&domain.Paragraph{Children: domain.Nodes{&domain.Text{Value: "Hello folio"}}},
		},
	}, nil
}

func (m *mockDocumentService) Chunk(_ context.Context, _ string, _ []byte, maxTokens int) ([]string, error) {
	if m.parseErr != nil {
		return nil, m.parseErr
	}
	m.chunkMax = maxTokens
	return []string{"first chunk", "second chunk"}, nil
}

func (m *mockDocumentService) Ingest(_ context.Context, req driving.IngestRequest) (*domain.DocumentRecord, error) {
	m.ingested = append(m.ingested, req)
	if m.ingestErr != nil {
		return nil, m.ingestErr
	}
	return &domain.DocumentRecord{ID: "doc-new", Title: req.Title, NodeCount: 3, IndexState: domain.IndexStateReady}, nil
}

func (m *mockDocumentService) List(context.Context) ([]domain.DocumentRecord, error) {
	out := make([]domain.DocumentRecord, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, *r)
	}
	return out, nil
}

func (m *mockDocumentService) Get(_ context.Context, id string) (*domain.DocumentRecord, error) {
	r, ok := m.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (m *mockDocumentService) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	if _, err := m.Get(ctx, id); err != nil {
		return nil, err
	}
	return m.Parse(ctx, id, nil)
}

func (m *mockDocumentService) GetContent(_ context.Context, id string) (string, error) {
	c, ok := m.content[id]
	if !ok {
		return "", domain.ErrNotFound
	}
	return c, nil
}

func (m *mockDocumentService) Delete(_ context.Context, id string) error {
	if _, ok := m.records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.records, id)
	m.deleted = append(m.deleted, id)
	return nil
}

// mockSearchService returns canned contexts and remembers the last call.
type mockSearchService struct {
	results []domain.Context
	err     error

	lastQuery string
	lastOpts  domain.SearchOptions
	calledAll bool
}

var _ driving.SearchService = (*mockSearchService)(nil)

func (m *mockSearchService) Search(_ context.Context, query string, opts domain.SearchOptions) ([]domain.Context, error) {
	m.lastQuery = query
	m.lastOpts = opts
	return m.results, m.err
}

func (m *mockSearchService) SearchAll(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.Context, error) {
	m.calledAll = true
	return m.Search(ctx, query, opts)
}

// mockSettingsService keeps settings in memory.
type mockSettingsService struct {
	settings    domain.AppSettings
	validateErr error
	pingErr     error
}

var _ driving.SettingsService = (*mockSettingsService)(nil)

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{settings: domain.DefaultAppSettings()}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.settings = *settings
	return nil
}

func (m *mockSettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	m.settings.Embedding.Provider = provider
	m.settings.Embedding.Model = model
	m.settings.Embedding.APIKey = apiKey
	return nil
}

func (m *mockSettingsService) SetChunking(maxTokens int, tokenizer domain.TokenizerKind) error {
	m.settings.Chunking.MaxTokens = maxTokens
	m.settings.Chunking.Tokenizer = tokenizer
	return nil
}

func (m *mockSettingsService) SetSearch(maxTokens, topNodes int) error {
	m.settings.Search.MaxTokens = maxTokens
	m.settings.Search.TopNodes = topNodes
	return nil
}

func (m *mockSettingsService) Validate() error { return m.validateErr }

func (m *mockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

func (m *mockSettingsService) ValidateEmbeddingConfig() error { return m.pingErr }

type testServices struct {
	docs     *mockDocumentService
	search   *mockSearchService
	settings *mockSettingsService
}

// setupTestServices installs fresh mocks and restores globals when the test ends.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()
	ts := &testServices{
		docs:     newMockDocumentService(),
		search:   &mockSearchService{},
		settings: newMockSettingsService(),
	}
	SetServices(Services{Document: ts.docs, Search: ts.search, Settings: ts.settings})
	t.Cleanup(func() {
		SetServices(Services{})
		resetFlags()
	})
	return ts
}

// clearServices runs a test without any configured service.
func clearServices(t *testing.T) {
	t.Helper()
	SetServices(Services{})
	t.Cleanup(resetFlags)
}

// resetFlags restores flag variables, which outlive a single Execute.
func resetFlags() {
	ingestTitle, ingestLink, ingestKeepGoing = "", "", false
	searchDocuments, searchMaxTokens, searchAll, searchJSON = nil, 0, false, false
	parseJSON, parseYAML, parseText = false, false, false
	chunkMaxTokens = 0
	chunkingMaxTokens, chunkingTokenizer = 0, ""
	searchBudget, searchTopNodes = 0, 0
	tuiDocumentIDs, tuiMaxTokens = nil, 0
	watchExisting = false
	settingsInput = os.Stdin
}

// execute runs rootCmd with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// writeTempFile writes data under a test directory and returns its path.
func writeTempFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}
