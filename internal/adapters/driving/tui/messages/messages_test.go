package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view ViewType
		want string
	}{
		{ViewMenu, "menu"},
		{ViewSearch, "search"},
		{ViewHelp, "help"},
		{ViewDocuments, "documents"},
		{ViewDocContent, "doc_content"},
		{ViewDocDetails, "doc_details"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.String())
		})
	}
}

func TestViewType_Distinct(t *testing.T) {
	seen := map[ViewType]bool{}
	for _, v := range []ViewType{ViewMenu, ViewSearch, ViewHelp, ViewDocuments, ViewDocContent, ViewDocDetails} {
		require.False(t, seen[v], "duplicate view %s", v)
		seen[v] = true
	}
}

func TestSearchRequested(t *testing.T) {
	opts := domain.SearchOptions{DocumentIDs: []string{"doc-1"}, MaxTokens: 500}
	msg := SearchRequested{Query: "revenue", Options: opts}

	assert.Equal(t, "revenue", msg.Query)
	assert.Equal(t, []string{"doc-1"}, msg.Options.DocumentIDs)
	assert.Equal(t, 500, msg.Options.MaxTokens)
}

func TestSearchCompleted(t *testing.T) {
	t.Run("with results", func(t *testing.T) {
		ref := "doc-1"
		msg := SearchCompleted{Results: []domain.Context{{Score: 0.8, RawData: "text", Reference: &ref}}}

		require.Len(t, msg.Results, 1)
		assert.Equal(t, "doc-1", domain.Deref(msg.Results[0].Reference))
		assert.NoError(t, msg.Err)
	})

	t.Run("with error", func(t *testing.T) {
		msg := SearchCompleted{Err: errors.New("failed")}

		assert.Nil(t, msg.Results)
		assert.EqualError(t, msg.Err, "failed")
	})
}

func TestDocumentDetailsLoaded(t *testing.T) {
	rec := &domain.DocumentRecord{ID: "doc-1", IndexState: domain.IndexStateReady}
	msg := DocumentDetailsLoaded{DocumentID: "doc-1", Record: rec}

	assert.Equal(t, "doc-1", msg.DocumentID)
	assert.Same(t, rec, msg.Record)
}
