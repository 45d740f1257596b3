package domain

const unknownDescription = "Unknown"

// AIProvider identifies an embedding service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	default:
		return unknownDescription
	}
}

// TokenizerKind selects how chunk sizes are measured.
type TokenizerKind string

// Available tokenizers.
const (
	// TokenizerApprox estimates tokens from word and punctuation counts.
	TokenizerApprox TokenizerKind = "approx"

	// TokenizerP50kBase counts tokens with the p50k_base BPE encoding.
	TokenizerP50kBase TokenizerKind = "p50k_base"
)

// IsValid returns true if the tokenizer is recognised.
func (k TokenizerKind) IsValid() bool {
	return k == TokenizerApprox || k == TokenizerP50kBase
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint.
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string

	// RequestsPerSecond limits calls to remote providers. Zero disables limiting.
	RequestsPerSecond float64
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// ChunkingSettings controls how documents are split before indexing.
type ChunkingSettings struct {
	// MaxTokens is the budget of one chunk. Half-chunks hold MaxTokens/2.
	MaxTokens int

	// Tokenizer measures chunk sizes.
	Tokenizer TokenizerKind
}

// SearchSettings controls context retrieval.
type SearchSettings struct {
	// MaxTokens bounds the summed cost of returned contexts.
	MaxTokens int

	// TopNodes is how many nodes per document survive the coarse pass.
	TopNodes int

	// FineMaxTokens is the chunk budget of the fine pass.
	FineMaxTokens int
}

// StorageSettings locates persisted state.
type StorageSettings struct {
	// ArtifactsURL is where document and graph JSON files are written.
	// Any URL the storage layer understands, or a local path.
	ArtifactsURL string

	// DataDir holds the document catalog database.
	DataDir string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Embedding EmbeddingSettings
	Chunking  ChunkingSettings
	Search    SearchSettings
	Storage   StorageSettings
}

// Default sizes.
const (
	DefaultChunkMaxTokens     = 500
	DefaultSearchMaxTokens    = 2000
	DefaultSearchTopNodes     = 10
	DefaultFineChunkMaxTokens = 100
)

// DefaultAppSettings returns settings with sensible defaults.
// Embedding is left unconfigured; users set it up via the settings command.
// Empty storage locations select the ~/.folio defaults of the storage adapters.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Embedding: EmbeddingSettings{},
		Chunking: ChunkingSettings{
			MaxTokens: DefaultChunkMaxTokens,
			Tokenizer: TokenizerApprox,
		},
		Search: SearchSettings{
			MaxTokens:     DefaultSearchMaxTokens,
			TopNodes:      DefaultSearchTopNodes,
			FineMaxTokens: DefaultFineChunkMaxTokens,
		},
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "all-minilm:22m",
		AIProviderOpenAI: "text-embedding-ada-002",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"all-minilm":        384,
		"all-minilm:22m":    384,
		"all-minilm:33m":    384,
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}
