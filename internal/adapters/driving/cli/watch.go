package cli

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio/internal/adapters/driving/watch"
)

var watchExisting bool

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Ingest documents dropped into a directory",
	Long: `Watches a directory and ingests PDF and DOCX files as they are created
or updated. Removing a file deletes its document. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchExisting, "existing", false, "ingest files already in the directory first")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := watch.New(documentService, args[0], watch.WithReporter(func(e watch.Event) {
		switch e.Kind {
		case watch.EventFailed:
			cmd.PrintErrf("failed  %s: %v\n", e.Path, e.Err)
		case watch.EventIngested:
			cmd.Printf("ingested %s as %s (%d nodes)\n", e.Path, e.Record.ID, e.Record.NodeCount)
		default:
			cmd.Printf("%s %s\n", e.Kind, e.Path)
		}
	}))

	if watchExisting {
		if err := w.IngestExisting(ctx); err != nil {
			return err
		}
	}

	cmd.Printf("Watching %s (Ctrl-C to stop)\n", args[0])
	return w.Run(ctx)
}
