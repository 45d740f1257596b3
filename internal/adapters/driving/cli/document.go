package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

const timeLayout = "2006-01-02 15:04:05"

var (
	ingestTitle     string
	ingestLink      string
	ingestKeepGoing bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Parse, chunk and index documents",
	Long: `Parses each file, splits it into chunks, embeds the chunks and stores
the document and its retrieval graph. Requires an embedding provider
(see 'folio settings embedding').

--title and --link apply to every file given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage indexed documents",
	Long:  `List, view, or delete ingested documents.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ingested documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentShowCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentShow,
}

var documentTextCmd = &cobra.Command{
	Use:   "text [doc-id]",
	Short: "Print document text",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentText,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document and its artifacts",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestTitle, "title", "t", "", "document title (default: file metadata or name)")
	ingestCmd.Flags().StringVarP(&ingestLink, "link", "l", "", "external link to the original document")
	ingestCmd.Flags().BoolVarP(&ingestKeepGoing, "keep-going", "k", false, "continue with the next file after a failure")
	rootCmd.AddCommand(ingestCmd)

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentShowCmd)
	documentCmd.AddCommand(documentTextCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	failed := 0
	for _, path := range args {
		rec, err := ingestFile(cmd, path)
		if err != nil {
			failed++
			if !ingestKeepGoing {
				return err
			}
			cmd.PrintErrf("  %s: %v\n", path, err)
			continue
		}
		cmd.Printf("Ingested %s as %s (%d nodes)\n", path, rec.ID, rec.NodeCount)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

func ingestFile(cmd *cobra.Command, path string) (*domain.DocumentRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	rec, err := documentService.Ingest(cmd.Context(), driving.IngestRequest{
		Name:         path,
		Data:         data,
		Title:        ingestTitle,
		ExternalLink: ingestLink,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to ingest %s: %w", path, err)
	}
	return rec, nil
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	recs, err := documentService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(recs) == 0 {
		cmd.Println("No documents found.")
		return nil
	}

	s := styles.DefaultStyles()
	for i := range recs {
		cmd.Printf("  %s\n", recs[i].ID)
		cmd.Printf("    Title: %s\n", recs[i].Title)
		cmd.Printf("    State: %s\n", s.State(recs[i].IndexState).Render(recs[i].IndexState.String()))
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(recs))
	return nil
}

func runDocumentShow(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	rec, err := documentService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document: %s\n\n", rec.ID)
	cmd.Printf("  Title:    %s\n", rec.Title)
	cmd.Printf("  File:     %s (%s)\n", rec.Filename, rec.MimeType)
	cmd.Printf("  State:    %s\n", styles.DefaultStyles().State(rec.IndexState).Render(rec.IndexState.String()))
	cmd.Printf("  Nodes:    %d\n", rec.NodeCount)
	if rec.ExternalLink != "" {
		cmd.Printf("  Link:     %s\n", rec.ExternalLink)
	}
	cmd.Printf("  SHA-256:  %s\n", rec.ContentHash)
	cmd.Printf("  Created:  %s\n", rec.CreatedAt.Format(timeLayout))
	cmd.Printf("  Updated:  %s\n", rec.UpdatedAt.Format(timeLayout))
	if rec.Error != "" {
		cmd.Printf("\n  Error: %s\n", rec.Error)
	}
	return nil
}

func runDocumentText(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	content, err := documentService.GetContent(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document content: %w", err)
	}

	cmd.Println(content)
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Document %s deleted.\n", args[0])
	return nil
}
