package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio/internal/adapters/driving/tui"
	"github.com/custodia-labs/folio/internal/core/domain"
)

var (
	tuiDocumentIDs []string
	tuiMaxTokens   int
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Folio.

Search ready documents, read the passages behind each hit, and browse or
delete entries in the document catalog.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Search / Open
  i        - Document details
  x        - Delete document
  Esc      - Back
  ?        - Help
  q        - Quit (from the menu)`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringSliceVarP(&tuiDocumentIDs, "document", "d", nil, "limit searches to these document IDs")
	tuiCmd.Flags().IntVarP(&tuiMaxTokens, "max-tokens", "m", 0, "token budget per search (0 = configured default)")
	rootCmd.AddCommand(tuiCmd)
}

// newTUIApp builds the app from the configured services.
func newTUIApp(cmd *cobra.Command) (*tui.App, error) {
	if searchService == nil {
		return nil, errors.New("search service not configured")
	}
	if documentService == nil {
		return nil, errors.New("document service not configured")
	}

	ports := tui.NewPorts(searchService, documentService)
	ports.Settings = settingsService

	app, err := tui.NewApp(ports)
	if err != nil {
		return nil, fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context()).WithSearchOptions(domain.SearchOptions{
		DocumentIDs: tuiDocumentIDs,
		MaxTokens:   tuiMaxTokens,
	})
	return app, nil
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("panic in TUI: %v", r)
		}
	}()

	app, err := newTUIApp(cmd)
	if err != nil {
		return err
	}

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
