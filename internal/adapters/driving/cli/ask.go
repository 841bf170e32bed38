package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/askdocs-labs/askdocs-cli/internal/core/domain"
)

var (
	askChunks      int
	askTemperature float64
	askNoSources   bool
	askJSON        bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the indexed documentation",
	Long: `Answers a question using the indexed documentation as grounding
context. The answer cites the pages it was grounded in; when nothing
relevant is indexed, the answer says so instead of guessing.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askChunks, "chunks", "k", domain.NewQuery("").MaxChunks,
		"number of grounding chunks to retrieve (1-10)")
	askCmd.Flags().Float64VarP(&askTemperature, "temperature", "t", domain.NewQuery("").Temperature,
		"generation temperature (0.0-1.0)")
	askCmd.Flags().BoolVar(&askNoSources, "no-sources", false, "omit source citations")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := ensureAskService(); err != nil {
		return err
	}

	query := domain.NewQuery(args[0])
	query.MaxChunks = askChunks
	query.Temperature = askTemperature
	query.IncludeSources = !askNoSources

	answer, err := askService.Ask(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		return outputAnswerJSON(cmd, answer)
	}
	return outputAnswerText(cmd, answer)
}

func outputAnswerJSON(cmd *cobra.Command, answer *domain.Answer) error {
	data, err := json.MarshalIndent(answer, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAnswerText(cmd *cobra.Command, answer *domain.Answer) error {
	cmd.Println(answer.Answer)

	if answer.GroundingFailed {
		cmd.Println()
		cmd.Println("Note: no relevant indexed content was found for this question.")
	}

	if len(answer.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for i, source := range answer.Sources {
			title := source.SourceTitle
			if title == "" {
				title = source.SourceURL
			}
			cmd.Printf("  [%d] %s (%.2f)\n", i+1, title, source.RelevanceScore)
			cmd.Printf("      %s\n", source.SourceURL)
		}
	}

	if verbose {
		cmd.Println()
		cmd.Printf("(%d tokens, %s)\n", answer.TokensUsed,
			answer.ProcessingTime.Round(time.Millisecond))
	}
	return nil
}
