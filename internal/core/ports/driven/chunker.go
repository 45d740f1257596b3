package driven

import "github.com/custodia-labs/folio/internal/core/domain"

// Tokenizer counts the LLM token cost of text.
// Counts must be deterministic and grow when text is appended.
type Tokenizer interface {
	// Name identifies the encoding.
	Name() string

	// Count returns the number of tokens in text.
	Count(text string) int
}

// Chunker splits a document into overlapping token-bounded chunks.
type Chunker interface {
	// Name returns the chunker name for logging.
	Name() string

	// Chunk splits the document's lines.
	Chunk(doc *domain.Document) []string

	// ChunkLines splits arbitrary lines.
	ChunkLines(lines []string) []string
}

// ChunkerBuilder creates a chunker for a token budget.
// maxTokens <= 0 selects the configured budget.
type ChunkerBuilder func(maxTokens int) (Chunker, error)
