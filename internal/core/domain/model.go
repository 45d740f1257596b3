package domain

import "strings"

// Well-known embedding model identifiers recorded in retrieval graphs.
const (
	ModelMiniLML6V2  = "MiniLM::all-MiniLM-L6-v2"
	ModelMiniLML12V2 = "MiniLM::all-MiniLM-L12-v2"
	ModelOpenAIAda2  = "openai::text-embedding-ada-002"
)

// miniLMModels maps the Ollama tags that serve the MiniLM sentence models.
var miniLMModels = map[string]string{
	"all-minilm":     ModelMiniLML6V2,
	"all-minilm:22m": ModelMiniLML6V2,
	"all-minilm:l6":  ModelMiniLML6V2,
	"all-minilm:33m": ModelMiniLML12V2,
	"all-minilm:l12": ModelMiniLML12V2,
}

// EmbeddingModelID returns the "{family}::{model}" identifier for a provider model.
// Graphs embedded with different identifiers are not comparable.
func EmbeddingModelID(provider AIProvider, model string) string {
	if provider == AIProviderOllama {
		if id, ok := miniLMModels[strings.ToLower(model)]; ok {
			return id
		}
	}
	return string(provider) + "::" + model
}
