package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/tuitest"
	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

// stubSettings implements driving.SettingsService; only Validate matters here.
type stubSettings struct {
	driving.SettingsService
	err error
}

func (s *stubSettings) Validate() error { return s.err }

func testRecords() []domain.DocumentRecord {
	return []domain.DocumentRecord{
		{ID: "doc-1", Title: "Annual Report", IndexState: domain.IndexStateReady, NodeCount: 10},
		{ID: "doc-2", Title: "Handbook", IndexState: domain.IndexStateReady, NodeCount: 4},
	}
}

func newTestApp(t *testing.T) (*App, *tuitest.SearchService, *tuitest.DocumentService) {
	t.Helper()
	search := &tuitest.SearchService{}
	docs := &tuitest.DocumentService{
		ListFunc: func(context.Context) ([]domain.DocumentRecord, error) { return testRecords(), nil },
		GetFunc: func(_ context.Context, id string) (*domain.DocumentRecord, error) {
			for _, r := range testRecords() {
				if r.ID == id {
					return &r, nil
				}
			}
			return nil, domain.ErrNotFound
		},
		GetContentFunc: func(_ context.Context, id string) (string, error) { return "content of " + id, nil },
	}

	app, err := NewApp(NewPorts(search, docs))
	require.NoError(t, err)
	app.SetDimensions(100, 40)
	return app, search, docs
}

// send applies msg and feeds back the app's own follow-up messages, so a
// key press that triggers a load ends with the loaded state applied.
// Bubbletea runtime messages such as cursor blinks are dropped.
func send(app *App, msg tea.Msg) {
	pending := []tea.Msg{msg}
	for i := 0; i < 8 && len(pending) > 0; i++ {
		next := pending[0]
		pending = pending[1:]
		_, cmd := app.Update(next)
		if cmd == nil {
			continue
		}
		switch out := cmd().(type) {
		case messages.ViewChanged, messages.SearchCompleted, messages.DocumentsLoaded,
			messages.DocumentSelected, messages.DocumentContentLoaded,
			messages.DocumentDetailsLoaded, messages.DocumentDeleted,
			messages.ErrorOccurred, settingsChecked:
			pending = append(pending, out)
		}
	}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewApp(t *testing.T) {
	_, err := NewApp(&Ports{})
	assert.ErrorIs(t, err, ErrMissingSearchService)

	app, _, _ := newTestApp(t)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.True(t, app.Ready())
	assert.NotNil(t, app.Init())
}

func TestApp_NotReadyView(t *testing.T) {
	app, err := NewApp(NewPorts(&tuitest.SearchService{}, &tuitest.DocumentService{}))
	require.NoError(t, err)

	assert.Equal(t, "Initialising...", app.View())

	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Contains(t, app.View(), "Folio")
}

func TestApp_CtrlCQuits(t *testing.T) {
	app, _, _ := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_SearchFlow(t *testing.T) {
	app, search, _ := newTestApp(t)
	search.SearchFunc = func(_ context.Context, query string, opts domain.SearchOptions) ([]domain.Context, error) {
		assert.Equal(t, "revenue", query)
		assert.Equal(t, 256, opts.MaxTokens)
		return []domain.Context{{
			Score:     0.8,
			RawData:   "Revenue grew.",
			Data:      "From document Annual Report:\nRevenue grew.",
			Reference: domain.StringPtr("doc-1"),
		}}, nil
	}
	app.WithSearchOptions(domain.SearchOptions{MaxTokens: 256})

	send(app, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, messages.ViewSearch, app.CurrentView())

	for _, r := range "revenue" {
		app.Update(keyRune(r))
	}
	send(app, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, app.View(), "Revenue grew.")

	send(app, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, messages.ViewDocContent, app.CurrentView())
	assert.Contains(t, app.View(), "content of doc-1")

	send(app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewSearch, app.CurrentView())
}

func TestApp_SearchError(t *testing.T) {
	app, search, _ := newTestApp(t)
	search.SearchFunc = func(context.Context, string, domain.SearchOptions) ([]domain.Context, error) {
		return nil, domain.ErrEmbeddingUnavailable
	}

	send(app, messages.ViewChanged{View: messages.ViewSearch})
	app.Update(keyRune('x'))
	send(app, tea.KeyMsg{Type: tea.KeyEnter})

	assert.ErrorIs(t, app.Err(), domain.ErrEmbeddingUnavailable)
}

func TestApp_DocumentsFlow(t *testing.T) {
	app, _, _ := newTestApp(t)

	send(app, messages.ViewChanged{View: messages.ViewDocuments})
	require.Equal(t, messages.ViewDocuments, app.CurrentView())
	assert.Contains(t, app.View(), "Annual Report")
	assert.Contains(t, app.View(), "Handbook")

	send(app, keyRune('j'))
	send(app, keyRune('i'))
	require.Equal(t, messages.ViewDocDetails, app.CurrentView())
	assert.Contains(t, app.View(), "doc-2")

	send(app, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, messages.ViewDocContent, app.CurrentView())
	assert.Contains(t, app.View(), "content of doc-2")

	// Content opened from details returns to the catalog.
	send(app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewDocuments, app.CurrentView())

	send(app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_DetailsError(t *testing.T) {
	app, _, _ := newTestApp(t)

	app.Update(messages.DocumentDetailsLoaded{DocumentID: "gone", Err: domain.ErrNotFound})

	assert.Equal(t, messages.ViewDocDetails, app.CurrentView())
	assert.ErrorIs(t, app.Err(), domain.ErrNotFound)
	assert.Contains(t, app.View(), "Error: not found")
}

func TestApp_HelpView(t *testing.T) {
	app, _, _ := newTestApp(t)

	send(app, keyRune('?'))
	require.Equal(t, messages.ViewHelp, app.CurrentView())
	view := app.View()
	assert.Contains(t, view, "Help")
	assert.Contains(t, view, "x: delete")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_SettingsNotice(t *testing.T) {
	search := &tuitest.SearchService{}
	docs := &tuitest.DocumentService{}
	ports := NewPorts(search, docs)
	ports.Settings = &stubSettings{err: errors.New("embedding provider is not configured")}

	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(100, 40)

	send(app, app.checkSettings()())

	assert.Contains(t, app.View(), "embedding provider is not configured")
}

func TestApp_NoSettingsCheckWithoutService(t *testing.T) {
	app, _, _ := newTestApp(t)

	assert.Nil(t, app.checkSettings())
}

func TestApp_ErrorOccurred(t *testing.T) {
	app, _, _ := newTestApp(t)
	send(app, messages.ViewChanged{View: messages.ViewDocuments})

	app.Update(messages.ErrorOccurred{Err: errors.New("disk full")})

	assert.EqualError(t, app.Err(), "disk full")
	assert.Contains(t, app.View(), "disk full")
}
