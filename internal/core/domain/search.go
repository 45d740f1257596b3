package domain

// Context is a passage selected by search for prompt composition.
type Context struct {
	// Score is the cosine similarity between the query and the passage.
	Score float64 `json:"score"`

	// RawData is the passage text.
	RawData string `json:"raw_data"`

	// Data is the passage prefixed with its document title.
	Data string `json:"data"`

	// Reference is the ID of the source document.
	Reference *string `json:"reference"`
}

// Tokens approximates the prompt cost of the context as len(Data)/4.
func (c Context) Tokens() int {
	return len(c.Data) / 4
}

// SearchOptions configures a context search.
type SearchOptions struct {
	// DocumentIDs limits the search to these documents.
	// Empty means every ready document.
	DocumentIDs []string

	// MaxTokens bounds the summed cost of returned contexts.
	// Zero uses the configured default.
	MaxTokens int
}
