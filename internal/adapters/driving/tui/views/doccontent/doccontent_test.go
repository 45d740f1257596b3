package doccontent

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/tuitest"
	"github.com/custodia-labs/folio/internal/core/domain"
)

func longText(lines int) string {
	parts := make([]string, lines)
	for i := range parts {
		parts[i] = fmt.Sprintf("line %d", i+1)
	}
	return strings.Join(parts, "\n")
}

func openView(t *testing.T, svc *tuitest.DocumentService, sel messages.DocumentSelected) *View {
	t.Helper()
	v := NewView(nil, svc)
	v.SetDimensions(80, 20)
	cmd := v.Open(sel, messages.ViewSearch)
	require.NotNil(t, cmd)
	v, _ = v.Update(cmd())
	return v
}

func TestView_OpenLoadsContent(t *testing.T) {
	svc := &tuitest.DocumentService{
		GetContentFunc: func(_ context.Context, id string) (string, error) {
			assert.Equal(t, "doc-1", id)
			return "Revenue grew by twelve percent.", nil
		},
	}

	v := openView(t, svc, messages.DocumentSelected{ID: "doc-1", Title: "Annual Report"})

	require.NoError(t, v.Err())
	assert.Equal(t, "doc-1", v.DocumentID())
	view := v.View()
	assert.Contains(t, view, "Annual Report")
	assert.Contains(t, view, "Revenue grew by twelve percent.")
}

func TestView_LoadingState(t *testing.T) {
	v := NewView(nil, &tuitest.DocumentService{})
	v.SetDimensions(80, 20)

	v.Open(messages.DocumentSelected{ID: "doc-1"}, messages.ViewDocuments)

	assert.Contains(t, v.View(), "Loading content...")
	assert.Contains(t, v.View(), "doc-1")
}

func TestView_Errors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc := &tuitest.DocumentService{
			GetContentFunc: func(context.Context, string) (string, error) { return "", domain.ErrNotFound },
		}
		v := openView(t, svc, messages.DocumentSelected{ID: "gone"})

		assert.ErrorIs(t, v.Err(), domain.ErrNotFound)
		assert.Contains(t, v.View(), "Error: not found")
	})

	t.Run("no service", func(t *testing.T) {
		v := NewView(nil, nil)
		v, _ = v.Update(v.Open(messages.DocumentSelected{ID: "x"}, messages.ViewDocuments)())

		assert.ErrorIs(t, v.Err(), ErrNoDocumentService)
	})
}

func TestView_EmptyContent(t *testing.T) {
	v := openView(t, &tuitest.DocumentService{}, messages.DocumentSelected{ID: "doc-1"})

	assert.Contains(t, v.View(), "(No content)")
}

func TestView_StaleLoadIgnored(t *testing.T) {
	v := openView(t, &tuitest.DocumentService{
		GetContentFunc: func(_ context.Context, id string) (string, error) { return "text of " + id, nil },
	}, messages.DocumentSelected{ID: "doc-2"})

	v, _ = v.Update(messages.DocumentContentLoaded{DocumentID: "doc-1", Content: "old"})

	assert.Equal(t, "text of doc-2", v.Content())
}

func TestView_Scrolling(t *testing.T) {
	svc := &tuitest.DocumentService{
		GetContentFunc: func(context.Context, string) (string, error) { return longText(100), nil },
	}
	v := openView(t, svc, messages.DocumentSelected{ID: "doc-1"})
	require.True(t, v.AtTop())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.False(t, v.AtTop())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	assert.Contains(t, v.View(), "line 100")

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	assert.True(t, v.AtTop())
	assert.NotContains(t, v.View(), "line 100")
}

func TestView_EscReturnsToCaller(t *testing.T) {
	v := openView(t, &tuitest.DocumentService{}, messages.DocumentSelected{ID: "doc-1"})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewSearch}, cmd())
}
