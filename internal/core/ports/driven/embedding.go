package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// Indexing and search are disabled when it is nil.
//
// Implementations may include:
//   - OpenAI (text-embedding-ada-002, text-embedding-3-small)
//   - Ollama (all-minilm, nomic-embed-text)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 1536).
	// Zero means unknown; the first vector decides.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// ModelID returns the identifier recorded in retrieval graphs,
	// e.g. "MiniLM::all-MiniLM-L6-v2".
	ModelID() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
