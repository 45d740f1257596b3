package search

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/folio/internal/core/domain"
)

type mockSearchService struct {
	results  []domain.Context
	err      error
	gotQuery string
	gotOpts  domain.SearchOptions
}

func (m *mockSearchService) Search(_ context.Context, query string, opts domain.SearchOptions) ([]domain.Context, error) {
	m.gotQuery = query
	m.gotOpts = opts
	return m.results, m.err
}

func (m *mockSearchService) SearchAll(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.Context, error) {
	return m.Search(ctx, query, opts)
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func typeQuery(v *View, s string) *View {
	for _, r := range s {
		v, _ = v.Update(keyRune(r))
	}
	return v
}

func testPassages() []domain.Context {
	return []domain.Context{
		{Score: 0.9, RawData: "Revenue grew.", Data: "From document Report:\nRevenue grew.", Reference: domain.StringPtr("doc-1")},
		{Score: 0.7, RawData: "Costs fell.", Data: "From document Report:\nCosts fell.", Reference: domain.StringPtr("doc-1")},
	}
}

func newSizedView(svc *mockSearchService) *View {
	v := NewView(nil, nil, svc)
	v.SetDimensions(100, 40)
	return v
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, nil)

	require.NotNil(t, v)
	assert.True(t, v.InputFocused())
	assert.False(t, v.Ready())
	assert.Equal(t, "Initialising...", v.View())
	assert.NotNil(t, v.Init())
}

func TestView_TypingGoesToInput(t *testing.T) {
	v := newSizedView(&mockSearchService{})

	v = typeQuery(v, "jk net")

	assert.Equal(t, "jk net", v.Query())
	assert.True(t, v.InputFocused())
}

func TestView_SubmitRunsSearch(t *testing.T) {
	svc := &mockSearchService{results: testPassages()}
	v := newSizedView(svc)
	v.WithOptions(domain.SearchOptions{MaxTokens: 300})

	v = typeQuery(v, "  revenue ")
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, v.InputFocused())

	msg := cmd()
	completed, ok := msg.(messages.SearchCompleted)
	require.True(t, ok)
	assert.Equal(t, "revenue", svc.gotQuery)
	assert.Equal(t, 300, svc.gotOpts.MaxTokens)

	v, _ = v.Update(completed)
	assert.Len(t, v.Results(), 2)
	assert.NoError(t, v.Err())

	view := v.View()
	assert.Contains(t, view, "Passages (2")
	assert.Contains(t, view, "2 passages")
	assert.Contains(t, view, "Revenue grew.")
}

func TestView_BlankQueryIgnored(t *testing.T) {
	v := newSizedView(&mockSearchService{})

	v = typeQuery(v, "   ")
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.True(t, v.InputFocused())
}

func TestView_SearchError(t *testing.T) {
	v := newSizedView(&mockSearchService{})

	v, _ = v.Update(messages.SearchCompleted{Err: domain.ErrEmbeddingUnavailable})

	require.Error(t, v.Err())
	assert.Contains(t, v.View(), "embedding")
}

func TestView_NoSearchService(t *testing.T) {
	v := NewView(nil, nil, nil)
	v.SetDimensions(100, 40)

	v = typeQuery(v, "q")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.ErrorOccurred)
	require.True(t, ok)
	assert.ErrorIs(t, msg.Err, ErrNoSearchService)
}

func TestView_ResultsNavigationAndOpen(t *testing.T) {
	v := newSizedView(&mockSearchService{})
	v, _ = v.Update(messages.SearchCompleted{Results: testPassages()})

	v, _ = v.Update(keyRune('j'))
	assert.Equal(t, 1, v.SelectedIndex())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.DocumentSelected{ID: "doc-1", Title: "Report"}, cmd())
}

func TestView_OpenWithoutReference(t *testing.T) {
	v := newSizedView(&mockSearchService{})
	v, _ = v.Update(messages.SearchCompleted{Results: []domain.Context{{RawData: "x"}}})

	_, cmd := v.Update(keyRune('o'))

	assert.Nil(t, cmd)
}

func TestView_NewSearch(t *testing.T) {
	v := newSizedView(&mockSearchService{})
	v.SetQuery("old")
	v, _ = v.Update(messages.SearchCompleted{Results: testPassages()})
	require.False(t, v.InputFocused())

	v, _ = v.Update(keyRune('n'))

	assert.True(t, v.InputFocused())
	assert.Empty(t, v.Query())
}

func TestView_EscGoesToMenu(t *testing.T) {
	v := newSizedView(&mockSearchService{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_Reset(t *testing.T) {
	v := newSizedView(&mockSearchService{})
	v, _ = v.Update(messages.SearchCompleted{Results: testPassages()})
	v, _ = v.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	v.Reset()

	assert.True(t, v.InputFocused())
	assert.Empty(t, v.Results())
	assert.NoError(t, v.Err())
}
