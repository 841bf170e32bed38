package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Inspect the local index records",
	Long: `Shows what has been indexed, from the local bookkeeping database.
The vector store remains the source of truth for retrieval; these
records only exist for reporting.`,
	RunE: runDocsList,
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed pages",
	RunE:  runDocsList,
}

var docsRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List past indexing runs",
	RunE:  runDocsRuns,
}

func init() {
	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsRunsCmd)
	rootCmd.AddCommand(docsCmd)
}

func runDocsList(cmd *cobra.Command, _ []string) error {
	if err := ensureDocStore(); err != nil {
		return err
	}

	pages, err := docStore.ListPages(cmd.Context())
	if err != nil {
		return fmt.Errorf("list pages: %w", err)
	}

	if len(pages) == 0 {
		cmd.Println("No pages indexed yet. Run 'askdocs index <url>' first.")
		return nil
	}

	cmd.Printf("%d indexed pages:\n\n", len(pages))
	for _, page := range pages {
		title := page.Title
		if title == "" {
			title = page.URL
		}
		cmd.Printf("  %s\n", title)
		cmd.Printf("    %s\n", page.URL)
		cmd.Printf("    %d chunks, indexed %s\n\n",
			page.ChunkCount, page.IndexedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func runDocsRuns(cmd *cobra.Command, _ []string) error {
	if err := ensureDocStore(); err != nil {
		return err
	}

	runs, err := docStore.ListRuns(cmd.Context())
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No indexing runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		elapsed := run.FinishedAt.Sub(run.StartedAt).Round(time.Second)
		cmd.Printf("  %s  %s\n", run.StartedAt.Local().Format("2006-01-02 15:04"), run.BaseURL)
		cmd.Printf("    %d pages, %d chunks, %d errors, took %s\n\n",
			run.PagesIndexed, run.ChunksIndexed, run.Errors, elapsed)
	}
	return nil
}
