package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/core/domain"
)

func sampleContexts() []domain.Context {
	return []domain.Context{
		{
			Score:     0.91,
			RawData:   "Revenue grew 12%.\nMargins held.",
			Data:      "From document Annual Report:\nRevenue grew 12%.\nMargins held.",
			Reference: domain.StringPtr("doc-1"),
		},
		{
			Score:     0.42,
			RawData:   "Headcount was flat.",
			Data:      "From document Annual Report:\nHeadcount was flat.",
			Reference: domain.StringPtr("doc-1"),
		},
	}
}

func TestSearchCmd_RequiresQuery(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "search")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_NotConfigured(t *testing.T) {
	clearServices(t)

	_, err := execute(t, "search", "revenue")

	assert.EqualError(t, err, "search service not configured")
}

func TestSearchCmd_Table(t *testing.T) {
	ts := setupTestServices(t)
	ts.search.results = sampleContexts()

	out, err := execute(t, "search", "revenue")

	require.NoError(t, err)
	assert.Equal(t, "revenue", ts.search.lastQuery)
	assert.False(t, ts.search.calledAll)
	assert.Contains(t, out, "Results:")
	assert.Contains(t, out, "[1] doc-1")
	assert.Contains(t, out, "(0.910)")
	assert.Contains(t, out, "      Revenue grew 12%.\n      Margins held.")
	assert.Contains(t, out, "2 passages, ~")
}

func TestSearchCmd_PassesOptions(t *testing.T) {
	ts := setupTestServices(t)

	_, err := execute(t, "search", "-d", "doc-1,doc-2", "--max-tokens", "300", "revenue")

	require.NoError(t, err)
	assert.Equal(t, domain.SearchOptions{DocumentIDs: []string{"doc-1", "doc-2"}, MaxTokens: 300}, ts.search.lastOpts)
}

func TestSearchCmd_All(t *testing.T) {
	ts := setupTestServices(t)
	ts.search.results = sampleContexts()

	_, err := execute(t, "search", "--all", "revenue")

	require.NoError(t, err)
	assert.True(t, ts.search.calledAll)
}

func TestSearchCmd_NoResults(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "search", "nothing")

	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestSearchCmd_JSON(t *testing.T) {
	ts := setupTestServices(t)
	ts.search.results = sampleContexts()

	out, err := execute(t, "search", "--json", "revenue")

	require.NoError(t, err)
	var got []domain.Context
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "doc-1", domain.Deref(got[0].Reference))
	assert.Contains(t, out, `"raw_data"`)
}

func TestSearchCmd_Error(t *testing.T) {
	ts := setupTestServices(t)
	ts.search.err = domain.ErrEmbeddingUnavailable

	_, err := execute(t, "search", "revenue")

	require.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	assert.True(t, strings.HasPrefix(err.Error(), "search failed"))
}

func TestIndentLines(t *testing.T) {
	assert.Equal(t, "  a\n  b", indentLines("a\nb\n", "  "))
	assert.Equal(t, "> one", indentLines("one", "> "))
}
