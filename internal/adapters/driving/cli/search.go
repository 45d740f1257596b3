package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/folio/internal/core/domain"
)

var (
	searchDocuments []string
	searchMaxTokens int
	searchAll       bool
	searchJSON      bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed documents",
	Long: `Retrieves the passages that best match the query.

Every ready document is searched unless --document is given. The top
nodes of each document are re-chunked and re-scored, and the best
passages are returned until the token budget is spent.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringSliceVarP(&searchDocuments, "document", "d", nil, "limit the search to these document IDs")
	searchCmd.Flags().IntVarP(&searchMaxTokens, "max-tokens", "m", 0, "token budget of the results (0 = configured)")
	searchCmd.Flags().BoolVar(&searchAll, "all", false, "return every scored passage, ignoring the budget")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	opts := domain.SearchOptions{
		DocumentIDs: searchDocuments,
		MaxTokens:   searchMaxTokens,
	}

	var results []domain.Context
	var err error
	if searchAll {
		results, err = searchService.SearchAll(cmd.Context(), query, opts)
	} else {
		results, err = searchService.Search(cmd.Context(), query, opts)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.Context) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.Context) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	s := styles.DefaultStyles()
	tokens := 0
	cmd.Println(s.Title.Render("Results:"))
	cmd.Println()
	for i := range results {
		tokens += results[i].Tokens()
		header := fmt.Sprintf("[%d] %s", i+1, domain.Deref(results[i].Reference))
		cmd.Printf("  %s %s\n", s.Subtitle.Render(header), s.Score.Render(fmt.Sprintf("(%.3f)", results[i].Score)))
		cmd.Printf("%s\n\n", indentLines(results[i].RawData, "      "))
	}
	cmd.Println(s.Muted.Render(fmt.Sprintf("%d passages, ~%d tokens", len(results), tokens)))
	return nil
}

func indentLines(text, prefix string) string {
	return prefix + strings.ReplaceAll(strings.TrimRight(text, "\n"), "\n", "\n"+prefix)
}
