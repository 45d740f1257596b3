package postprocessors

import (
	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/postprocessors/chunker"
	"github.com/custodia-labs/folio/internal/tokenizer"
)

// ChunkerName is the registry name of the overlapping chunker.
const ChunkerName = "chunker"

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register(ChunkerName, buildChunker)
}

// NewDefaultRegistry creates a registry with the built-in processors.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

// ChunkerConfig converts chunking settings into builder config.
// A positive maxTokens overrides the configured budget.
func ChunkerConfig(s domain.ChunkingSettings, maxTokens int) map[string]any {
	if maxTokens <= 0 {
		maxTokens = s.MaxTokens
	}
	return map[string]any{
		"max_tokens": maxTokens,
		"tokenizer":  string(s.Tokenizer),
	}
}

// buildChunker creates a chunker processor from generic config.
// Supported config keys:
//   - max_tokens (int): Token budget per chunk (default: 500)
//   - tokenizer (string): "approx" or "p50k_base" (default: approx)
func buildChunker(cfg map[string]any) (driven.Chunker, error) {
	var opts []chunker.Option

	if cfg != nil {
		if size := getIntFromConfig(cfg, "max_tokens"); size > 0 {
			opts = append(opts, chunker.WithMaxTokens(size))
		}
		name, _ := cfg["tokenizer"].(string)
		tok, err := tokenizer.New(domain.TokenizerKind(name))
		if err != nil {
			return nil, err
		}
		opts = append(opts, chunker.WithTokenizer(tok))
	}

	return chunker.New(opts...), nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
