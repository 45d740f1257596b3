// Package cli implements the folio command line using cobra.
// Commands only talk to driving ports; cmd/folio builds the adapters
// and hands the services over with SetServices.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio/internal/core/ports/driving"
	"github.com/custodia-labs/folio/internal/logger"
)

// version is set at build time.
var version = "dev"

var (
	documentService driving.DocumentService
	searchService   driving.SearchService
	settingsService driving.SettingsService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Parse, index and search PDF and DOCX documents",
	Long: `Folio turns PDF and DOCX files into structured documents, splits them
into overlapping token-bounded chunks, embeds them and retrieves the
passages that best match a query within a token budget.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
}

// Services holds the driving ports the commands use.
type Services struct {
	Document driving.DocumentService
	Search   driving.SearchService
	Settings driving.SettingsService
}

// SetServices installs the services used by every command.
func SetServices(s Services) {
	documentService = s.Document
	searchService = s.Search
	settingsService = s.Settings
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
