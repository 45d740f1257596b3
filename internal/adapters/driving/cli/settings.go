package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/folio/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the embedding provider, chunking and search budgets.

Settings are stored in ~/.folio/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure embedding provider",
	Long:  `Interactively select the embedding provider used to index and search documents.`,
	RunE:  runSettingsEmbedding,
}

var settingsChunkingCmd = &cobra.Command{
	Use:   "chunking",
	Short: "Set the chunk budget and tokenizer",
	Long: `Set how documents are split before indexing.

Tokenizers:
  approx     - word and punctuation estimate (default)
  p50k_base  - exact BPE token counts`,
	Args: cobra.NoArgs,
	RunE: runSettingsChunking,
}

var settingsSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Set the search budget",
	Args:  cobra.NoArgs,
	RunE:  runSettingsSearch,
}

var (
	chunkingMaxTokens int
	chunkingTokenizer string

	searchBudget   int
	searchTopNodes int
)

// settingsInput is where the interactive prompts read from.
var settingsInput io.Reader = os.Stdin

func init() {
	settingsChunkingCmd.Flags().IntVar(&chunkingMaxTokens, "max-tokens", 0, "chunk budget in tokens (0 = keep)")
	settingsChunkingCmd.Flags().StringVar(&chunkingTokenizer, "tokenizer", "", "approx or p50k_base (empty = keep)")

	settingsSearchCmd.Flags().IntVar(&searchBudget, "max-tokens", 0, "default result budget in tokens (0 = keep)")
	settingsSearchCmd.Flags().IntVar(&searchTopNodes, "top-nodes", 0, "nodes per document kept by the coarse pass (0 = keep)")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	settingsCmd.AddCommand(settingsChunkingCmd)
	settingsCmd.AddCommand(settingsSearchCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", settings.Embedding.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.Embedding.Model)
	if settings.Embedding.Provider.IsLocal() {
		cmd.Printf("  Base URL: %s\n", settings.Embedding.BaseURL)
	}
	if settings.Embedding.Provider.RequiresAPIKey() {
		if settings.Embedding.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.Embedding.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	if settings.Embedding.RequestsPerSecond > 0 {
		cmd.Printf("  Requests/s: %g\n", settings.Embedding.RequestsPerSecond)
	}
	status := "configured"
	if !settings.Embedding.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Chunking]")
	cmd.Printf("  Max tokens: %d\n", settings.Chunking.MaxTokens)
	cmd.Printf("  Tokenizer: %s\n", settings.Chunking.Tokenizer)
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Max tokens: %d\n", settings.Search.MaxTokens)
	cmd.Printf("  Top nodes: %d\n", settings.Search.TopNodes)
	cmd.Printf("  Fine chunk tokens: %d\n", settings.Search.FineMaxTokens)
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Artifacts: %s\n", orDefault(settings.Storage.ArtifactsURL, "~/.folio/artifacts"))
	cmd.Printf("  Data dir: %s\n", orDefault(settings.Storage.DataDir, "~/.folio/data"))

	if err := settingsService.Validate(); err != nil {
		cmd.Println()
		cmd.Printf("Warning: %v\n", err)
	}
	return nil
}

func runSettingsEmbedding(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(settingsInput)
	return configureEmbeddingProvider(cmd, reader)
}

func configureEmbeddingProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select Embedding Provider")
	providers := domain.AllEmbeddingProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	selectedProvider := providers[idx-1]

	defaults := domain.DefaultEmbeddingModels()
	defaultModel := defaults[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if selectedProvider.RequiresAPIKey() {
		cmd.Print("Enter API key (empty = $OPENAI_API_KEY): ")
		apiKey = readPassword(reader)
		cmd.Println()
	}

	if err := settingsService.SetEmbeddingProvider(selectedProvider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure embedding provider: %w", err)
	}

	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateEmbeddingConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("embedding configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("Embedding provider configured: %s (%s)\n\n", selectedProvider.Description(), model)
	return nil
}

func runSettingsChunking(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	maxTokens := settings.Chunking.MaxTokens
	if chunkingMaxTokens != 0 {
		maxTokens = chunkingMaxTokens
	}
	tokenizer := settings.Chunking.Tokenizer
	if chunkingTokenizer != "" {
		tokenizer = domain.TokenizerKind(chunkingTokenizer)
	}

	if err := settingsService.SetChunking(maxTokens, tokenizer); err != nil {
		return fmt.Errorf("failed to set chunking: %w", err)
	}
	cmd.Printf("Chunking: %d tokens, %s tokenizer\n", maxTokens, tokenizer)
	return nil
}

func runSettingsSearch(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	maxTokens := settings.Search.MaxTokens
	if searchBudget != 0 {
		maxTokens = searchBudget
	}
	topNodes := settings.Search.TopNodes
	if searchTopNodes != 0 {
		topNodes = searchTopNodes
	}

	if err := settingsService.SetSearch(maxTokens, topNodes); err != nil {
		return fmt.Errorf("failed to set search: %w", err)
	}
	cmd.Printf("Search: %d tokens, %d nodes per document\n", maxTokens, topNodes)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo from a terminal and falls back to a plain line.
func readPassword(reader *bufio.Reader) string {
	if f, ok := settingsInput.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
