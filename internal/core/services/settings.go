package services

import (
	"fmt"
	"os"
	"slices"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyEmbedProvider     = "embedding.provider"
	keyEmbedModel        = "embedding.model"
	keyEmbedBaseURL      = "embedding.base_url"
	keyEmbedAPIKey       = "embedding.api_key"
	keyEmbedRPS          = "embedding.requests_per_second"
	keyChunkMaxTokens    = "chunking.max_tokens"
	keyChunkTokenizer    = "chunking.tokenizer"
	keySearchMaxTokens   = "search.max_tokens"
	keySearchTopNodes    = "search.top_nodes"
	keySearchFineTokens  = "search.fine_max_tokens"
	keyStorageArtifacts  = "storage.artifacts_url"
	keyStorageDataDir    = "storage.data_dir"
	envOpenAIAPIKey      = "OPENAI_API_KEY"
	defaultOllamaBaseURL = "http://localhost:11434"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
		getenv:      os.Getenv,
	}
}

// Get retrieves current application settings. An OpenAI provider without a
// stored key picks up OPENAI_API_KEY from the environment.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Embedding: domain.EmbeddingSettings{
			Provider:          s.getProvider(keyEmbedProvider, defaults.Embedding.Provider),
			Model:             s.configStore.GetString(keyEmbedModel),
			BaseURL:           s.configStore.GetString(keyEmbedBaseURL), // No default - empty is valid for cloud providers
			APIKey:            s.configStore.GetString(keyEmbedAPIKey),
			RequestsPerSecond: s.configStore.GetFloat(keyEmbedRPS),
		},
		Chunking: domain.ChunkingSettings{
			MaxTokens: s.getInt(keyChunkMaxTokens, defaults.Chunking.MaxTokens),
			Tokenizer: s.getTokenizer(defaults.Chunking.Tokenizer),
		},
		Search: domain.SearchSettings{
			MaxTokens:     s.getInt(keySearchMaxTokens, defaults.Search.MaxTokens),
			TopNodes:      s.getInt(keySearchTopNodes, defaults.Search.TopNodes),
			FineMaxTokens: s.getInt(keySearchFineTokens, defaults.Search.FineMaxTokens),
		},
		Storage: domain.StorageSettings{
			ArtifactsURL: s.configStore.GetString(keyStorageArtifacts),
			DataDir:      s.configStore.GetString(keyStorageDataDir),
		},
	}

	if settings.Embedding.Model == "" {
		settings.Embedding.Model = domain.DefaultEmbeddingModels()[settings.Embedding.Provider]
	}
	if settings.Embedding.Provider == domain.AIProviderOpenAI && settings.Embedding.APIKey == "" {
		settings.Embedding.APIKey = s.getenv(envOpenAIAPIKey)
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyEmbedProvider, settings.Embedding.Provider.String()},
		{keyEmbedModel, settings.Embedding.Model},
		{keyEmbedBaseURL, settings.Embedding.BaseURL},
		{keyEmbedRPS, settings.Embedding.RequestsPerSecond},
		{keyChunkMaxTokens, settings.Chunking.MaxTokens},
		{keyChunkTokenizer, string(settings.Chunking.Tokenizer)},
		{keySearchMaxTokens, settings.Search.MaxTokens},
		{keySearchTopNodes, settings.Search.TopNodes},
		{keySearchFineTokens, settings.Search.FineMaxTokens},
		{keyStorageArtifacts, settings.Storage.ArtifactsURL},
		{keyStorageDataDir, settings.Storage.DataDir},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// An environment key is not written back to the config file.
	if key := settings.Embedding.APIKey; key != "" && key != s.getenv(envOpenAIAPIKey) {
		if err := s.configStore.Set(keyEmbedAPIKey, key); err != nil {
			return fmt.Errorf("save %s: %w", keyEmbedAPIKey, err)
		}
	}

	return nil
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !slices.Contains(domain.AllEmbeddingProviders(), provider) {
		return fmt.Errorf("%w: embedding provider %q", domain.ErrInvalidInput, provider)
	}

	if provider.RequiresAPIKey() && apiKey == "" {
		apiKey = s.getenv(envOpenAIAPIKey)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("%w: API key required for %s", domain.ErrInvalidInput, provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Embedding.Provider = provider

	if model != "" {
		settings.Embedding.Model = model
	} else {
		settings.Embedding.Model = domain.DefaultEmbeddingModels()[provider]
	}

	if provider.IsLocal() {
		if settings.Embedding.BaseURL == "" {
			settings.Embedding.BaseURL = defaultOllamaBaseURL
		}
	} else {
		// Cloud providers don't need a custom base URL
		settings.Embedding.BaseURL = ""
	}

	settings.Embedding.APIKey = apiKey

	return s.Save(settings)
}

// SetChunking updates the chunk budget and tokenizer.
func (s *SettingsService) SetChunking(maxTokens int, tokenizer domain.TokenizerKind) error {
	if maxTokens < 2 {
		return fmt.Errorf("%w: chunk max tokens must be at least 2, got %d", domain.ErrInvalidInput, maxTokens)
	}
	if !tokenizer.IsValid() {
		return fmt.Errorf("%w: tokenizer %q", domain.ErrInvalidInput, tokenizer)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Chunking.MaxTokens = maxTokens
	settings.Chunking.Tokenizer = tokenizer
	return s.Save(settings)
}

// SetSearch updates the search token budget and coarse-pass width.
func (s *SettingsService) SetSearch(maxTokens, topNodes int) error {
	if maxTokens <= 0 || topNodes <= 0 {
		return fmt.Errorf("%w: search max tokens and top nodes must be positive", domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Search.MaxTokens = maxTokens
	settings.Search.TopNodes = topNodes
	return s.Save(settings)
}

// Validate checks that current settings are usable for ingestion and search.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Embedding.IsConfigured() {
		return fmt.Errorf("%w: embedding provider is not configured, run 'folio settings embedding'",
			domain.ErrEmbeddingUnavailable)
	}
	if !settings.Chunking.Tokenizer.IsValid() {
		return fmt.Errorf("%w: tokenizer %q", domain.ErrInvalidInput, settings.Chunking.Tokenizer)
	}
	if settings.Chunking.MaxTokens < 2 {
		return fmt.Errorf("%w: chunk max tokens must be at least 2", domain.ErrInvalidInput)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateEmbeddingConfig validates the current embedding configuration by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getTokenizer(defaultVal domain.TokenizerKind) domain.TokenizerKind {
	kind := domain.TokenizerKind(s.configStore.GetString(keyChunkTokenizer))
	if !kind.IsValid() {
		return defaultVal
	}
	return kind
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
