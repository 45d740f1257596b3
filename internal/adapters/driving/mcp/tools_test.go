package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/core/domain"
)

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns contexts", func(t *testing.T) {
		ref := "doc-1"
		mockSearch := &mockSearchService{
			results: []domain.Context{{
				Score:     0.95,
				RawData:   "This is the content",
				Data:      "From document Test Doc:\nThis is the content",
				Reference: &ref,
			}},
		}
		server, err := NewServer(&Ports{Search: mockSearch})
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{
			Query:       "test",
			DocumentIDs: []string{"doc-1"},
			MaxTokens:   300,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Contexts, 1)
		assert.Equal(t, "doc-1", output.Contexts[0].DocumentID)
		assert.Equal(t, 0.95, output.Contexts[0].Score)
		assert.Equal(t, "This is the content", output.Contexts[0].Text)
		assert.Equal(t, len("From document Test Doc:\nThis is the content")/4, output.Tokens)
		assert.Equal(t, domain.SearchOptions{DocumentIDs: []string{"doc-1"}, MaxTokens: 300}, mockSearch.gotOpts)
	})

	t.Run("empty results", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}})
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "test"})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
		assert.NotNil(t, output.Contexts)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{err: errors.New("search failed")}})
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "test"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "search failed")
	})
}
