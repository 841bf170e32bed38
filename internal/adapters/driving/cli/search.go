package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/askdocs-labs/askdocs-cli/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the indexed documentation",
	Long: `Performs the similarity search alone, without answer generation.
Shows the ranked chunks a question would be grounded in, which is
useful for judging what the index actually contains.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.MaxChunksPerQuery,
		"maximum number of chunks")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := ensureAskService(); err != nil {
		return err
	}

	result := askService.Retrieve(cmd.Context(), args[0], searchLimit)

	if searchJSON {
		data, err := json.MarshalIndent(result.Chunks, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(result.Chunks) == 0 {
		cmd.Println("No matching chunks found.")
		return nil
	}

	cmd.Printf("Found %d chunks in %s:\n\n", len(result.Chunks), result.SearchTime.Round(time.Millisecond))
	for i, chunk := range result.Chunks {
		title := chunk.SourceTitle
		if title == "" {
			title = chunk.SourceURL
		}
		cmd.Printf("  [%d] %s (%.3f)\n", i+1, title, chunk.SimilarityScore)
		cmd.Printf("      %s\n", chunk.SourceURL)
		cmd.Printf("      %s\n\n", preview(chunk.Content, previewLength))
	}
	return nil
}

const previewLength = 160

// preview truncates s for single-line display.
func preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
