package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query       string   `json:"query" jsonschema:"the question or text to find passages for"`
	DocumentIDs []string `json:"document_ids,omitempty" jsonschema:"limit the search to these documents (default: all ready documents)"`
	MaxTokens   int      `json:"max_tokens,omitempty" jsonschema:"token budget of the returned passages (default: configured budget)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Contexts []ContextOutput `json:"contexts"`
	Count    int             `json:"count"`
	Tokens   int             `json:"tokens"`
}

// ContextOutput is one retrieved passage.
type ContextOutput struct {
	DocumentID string  `json:"document_id"`
	Score      float64 `json:"score"`
	Text       string  `json:"text"`
	// Data is the passage prefixed with its document title, ready for a prompt.
	Data string `json:"data"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Retrieve the passages of ingested documents that best match a query, within a token budget",
	}, s.handleSearch)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := domain.SearchOptions{
		DocumentIDs: input.DocumentIDs,
		MaxTokens:   input.MaxTokens,
	}
	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Contexts: make([]ContextOutput, len(results)),
		Count:    len(results),
	}
	for i := range results {
		output.Contexts[i] = ContextOutput{
			DocumentID: domain.Deref(results[i].Reference),
			Score:      results[i].Score,
			Text:       results[i].RawData,
			Data:       results[i].Data,
		}
		output.Tokens += results[i].Tokens()
	}

	return nil, output, nil
}
