package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/askdocs-labs/askdocs-cli/internal/adapters/driven/ai"
)

// statusPingTimeout bounds each probe so one hung service cannot stall
// the whole report.
const statusPingTimeout = 5 * time.Second

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check connectivity to the backing services",
	Long: `Probes the embedding provider, the LLM provider and the vector
store with one lightweight request each and reports the results.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	settings, err := currentSettings()
	if err != nil {
		return err
	}

	failed := 0

	cmd.Printf("Embedding (%s, %s): ", settings.Embedding.Provider, settings.Embedding.Model)
	if err := ai.ValidateEmbeddingConfig(&settings.Embedding); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		failed++
	} else if !settings.Embedding.IsConfigured() {
		cmd.Println("not configured")
		failed++
	} else {
		cmd.Println("OK")
	}

	cmd.Printf("LLM (%s, %s): ", settings.LLM.Provider, settings.LLM.Model)
	if err := ai.ValidateLLMConfig(&settings.LLM); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		failed++
	} else if !settings.LLM.IsConfigured() {
		cmd.Println("not configured")
		failed++
	} else {
		cmd.Println("OK")
	}

	cmd.Printf("Vector store (%s, collection %q): ", settings.VectorStore.URL, settings.VectorStore.Collection)
	vectors := newVectorStore(settings)
	ctx, cancel := context.WithTimeout(cmd.Context(), statusPingTimeout)
	defer cancel()
	if err := vectors.Ping(ctx); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		failed++
	} else {
		cmd.Println("OK")
	}

	if failed > 0 {
		return errors.New("one or more services are unavailable")
	}
	cmd.Println()
	cmd.Println("All services reachable.")
	return nil
}
