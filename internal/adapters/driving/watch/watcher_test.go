package watch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

// mockDocumentService records ingests and deletes.
type mockDocumentService struct {
	mu       sync.Mutex
	records  []domain.DocumentRecord
	ingested []driving.IngestRequest
	deleted  []string
	failOn   string
	next     int
}

func (m *mockDocumentService) Parse(context.Context, string, []byte) (*domain.Document, error) {
	return nil, nil
}

func (m *mockDocumentService) Chunk(context.Context, string, []byte, int) ([]string, error) {
	return nil, nil
}

func (m *mockDocumentService) Ingest(_ context.Context, req driving.IngestRequest) (*domain.DocumentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ingested = append(m.ingested, req)
	id := req.ID
	if id == "" {
		m.next++
		id = "doc-" + string(rune('0'+m.next))
	}
	rec := &domain.DocumentRecord{ID: id, Filename: filepath.Base(req.Name), IndexState: domain.IndexStateReady}
	if filepath.Base(req.Name) == m.failOn {
		rec.IndexState = domain.IndexStateFailed
		return rec, domain.ErrParseFailure
	}
	return rec, nil
}

func (m *mockDocumentService) List(context.Context) ([]domain.DocumentRecord, error) {
	return m.records, nil
}

func (m *mockDocumentService) Get(context.Context, string) (*domain.DocumentRecord, error) {
	return nil, domain.ErrNotFound
}

func (m *mockDocumentService) GetDocument(context.Context, string) (*domain.Document, error) {
	return nil, domain.ErrNotFound
}

func (m *mockDocumentService) GetContent(context.Context, string) (string, error) {
	return "", domain.ErrNotFound
}

func (m *mockDocumentService) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockDocumentService) ingestedNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, len(m.ingested))
	for i, r := range m.ingested {
		names[i] = filepath.Base(r.Name)
	}
	sort.Strings(names)
	return names
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))
}

func TestIsHidden(t *testing.T) {
	assert.True(t, isHidden(".report.pdf"))
	assert.True(t, isHidden("~$report.docx"))
	assert.False(t, isHidden("report.pdf"))
}

func TestWatcher_Classify(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "a.pdf")
	writeFile(t, pdf)
	hidden := filepath.Join(dir, ".a.pdf")
	writeFile(t, hidden)
	txt := filepath.Join(dir, "a.txt")
	writeFile(t, txt)
	sub := filepath.Join(dir, "folder.pdf")
	require.NoError(t, os.Mkdir(sub, 0o755))

	w := New(&mockDocumentService{}, dir)

	tests := []struct {
		name string
		path string
		op   fsnotify.Op
		want action
	}{
		{"create pdf", pdf, fsnotify.Create, actionIngest},
		{"write pdf", pdf, fsnotify.Write, actionIngest},
		{"write and chmod", pdf, fsnotify.Write | fsnotify.Chmod, actionIngest},
		{"chmod only", pdf, fsnotify.Chmod, actionNone},
		{"remove pdf", filepath.Join(dir, "gone.pdf"), fsnotify.Remove, actionDelete},
		{"rename pdf", filepath.Join(dir, "old.PDF"), fsnotify.Rename, actionDelete},
		{"create vanished file", filepath.Join(dir, "tmp.pdf"), fsnotify.Create, actionNone},
		{"hidden file", hidden, fsnotify.Create, actionNone},
		{"unsupported extension", txt, fsnotify.Write, actionNone},
		{"directory", sub, fsnotify.Create, actionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.classify(fsnotify.Event{Name: tt.path, Op: tt.op}))
		})
	}
}

func TestWatcher_IngestExisting(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.pdf"))
	writeFile(t, filepath.Join(dir, "b.docx"))
	writeFile(t, filepath.Join(dir, "broken.pdf"))
	writeFile(t, filepath.Join(dir, ".hidden.pdf"))
	writeFile(t, filepath.Join(dir, "notes.txt"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.pdf"), 0o755))

	svc := &mockDocumentService{failOn: "broken.pdf"}
	var events []Event
	w := New(svc, dir, WithReporter(func(e Event) { events = append(events, e) }))

	require.NoError(t, w.IngestExisting(context.Background()))
	assert.Equal(t, []string{"a.pdf", "b.docx", "broken.pdf"}, svc.ingestedNames())

	kinds := map[string]EventKind{}
	for _, e := range events {
		kinds[filepath.Base(e.Path)] = e.Kind
	}
	assert.Equal(t, map[string]EventKind{
		"a.pdf":      EventIngested,
		"b.docx":     EventIngested,
		"broken.pdf": EventFailed,
	}, kinds)
}

func TestWatcher_SeedReusesCatalogIDs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.pdf"))

	svc := &mockDocumentService{records: []domain.DocumentRecord{
		{ID: "newest", Filename: "a.pdf"},
		{ID: "older", Filename: "a.pdf"},
		{ID: "elsewhere", Filename: "missing.pdf"},
	}}
	w := New(svc, dir)

	require.NoError(t, w.IngestExisting(context.Background()))
	require.Len(t, svc.ingested, 1)
	assert.Equal(t, "newest", svc.ingested[0].ID)
}

func TestWatcher_Remove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.pdf")
	svc := &mockDocumentService{}
	var events []Event
	w := New(svc, dir, WithReporter(func(e Event) { events = append(events, e) }))

	w.remove(context.Background(), path)
	assert.Empty(t, svc.deleted, "unknown files are not deleted")

	w.ids[path] = "doc-9"
	w.remove(context.Background(), path)
	assert.Equal(t, []string{"doc-9"}, svc.deleted)
	require.Len(t, events, 1)
	assert.Equal(t, EventDeleted, events[0].Kind)
	assert.NotContains(t, w.ids, path)
}

func TestWatcher_Run(t *testing.T) {
	dir := t.TempDir()
	svc := &mockDocumentService{}
	events := make(chan Event, 8)
	w := New(svc, dir,
		WithSettleDelay(20*time.Millisecond),
		WithReporter(func(e Event) { events <- e }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(dir, "inbox.pdf")
	writeFile(t, path)

	select {
	case e := <-events:
		assert.Equal(t, EventIngested, e.Kind)
		assert.Equal(t, path, e.Path)
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for ingest")
	}

	require.NoError(t, os.Remove(path))
	select {
	case e := <-events:
		assert.Equal(t, EventDeleted, e.Kind)
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for delete")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_Run_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a.pdf")
	writeFile(t, file)

	err := New(&mockDocumentService{}, file).Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
