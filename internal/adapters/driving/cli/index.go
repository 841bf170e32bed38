package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/askdocs-labs/askdocs-cli/internal/core/ports/driving"
)

var indexCmd = &cobra.Command{
	Use:   "index [url]",
	Short: "Crawl and index a documentation site",
	Long: `Discovers the content pages of a documentation site, extracts and
chunks their text, embeds the chunks and stores them in the vector
store.

If no URL is given, the configured target site is indexed
(see 'askdocs settings set crawl.target_site_url').`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if err := ensureIngestService(); err != nil {
		return err
	}

	baseURL := ""
	if len(args) > 0 {
		baseURL = args[0]
	} else {
		settings, err := currentSettings()
		if err != nil {
			return err
		}
		baseURL = settings.Crawl.TargetSiteURL
	}
	if baseURL == "" {
		return errors.New("no site to index: pass a URL or set crawl.target_site_url")
	}

	cmd.Printf("Indexing %s...\n", baseURL)

	report, err := ingestWithProgress(cmd.Context(), cmd, ingestService, baseURL)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	cmd.Printf("Indexed %d of %d pages (%d chunks, %d skipped) in %s.\n",
		report.PagesIndexed, report.URLsDiscovered, report.ChunksIndexed,
		report.PagesSkipped, report.Elapsed.Round(time.Millisecond))
	return nil
}

// ingestWithProgress runs the ingestion while displaying progress updates.
func ingestWithProgress(
	ctx context.Context,
	cmd *cobra.Command,
	ingestor driving.Ingestor,
	baseURL string,
) (*driving.IngestReport, error) {
	type result struct {
		report *driving.IngestReport
		err    error
	}
	resultCh := make(chan result, 1)
	go func() {
		report, err := ingestor.Ingest(ctx, baseURL)
		resultCh <- result{report, err}
	}()

	// Poll status every 500ms
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastCount := 0
	for {
		select {
		case res := <-resultCh:
			if lastCount > 0 {
				cmd.Println()
			}
			return res.report, res.err
		case <-ticker.C:
			// Best effort; a status error just skips the update.
			status, err := ingestor.Status(ctx)
			if err == nil && status != nil && status.PagesProcessed > lastCount {
				cmd.Printf("\rProcessing... %d/%d pages (%d chunks, %d errors)",
					status.PagesProcessed, status.URLsTotal,
					status.ChunksIndexed, status.ErrorCount)
				lastCount = status.PagesProcessed
			}
		}
	}
}
