// Package cli implements the askdocs command-line interface.
//
// Commands are thin: they parse flags, call the driving-port services
// and format output. Service construction happens lazily per command,
// so commands that need no AI provider (settings, version, docs) work
// without any API key configured.
package cli

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/askdocs-labs/askdocs-cli/internal/adapters/driven/config/file"
	"github.com/askdocs-labs/askdocs-cli/internal/core/ports/driven"
	"github.com/askdocs-labs/askdocs-cli/internal/core/ports/driving"
	"github.com/askdocs-labs/askdocs-cli/internal/core/services"
	"github.com/askdocs-labs/askdocs-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "0.1.0-dev"

// Persistent flags.
var (
	verbose   bool
	configDir string
)

// Services used by the commands. Wired lazily by the ensure* helpers;
// tests inject mocks directly.
var (
	configStore     driven.ConfigStore
	settingsService driving.SettingsService
	ingestService   driving.Ingestor
	askService      driving.AskService
	docStore        driven.DocumentStore
)

var rootCmd = &cobra.Command{
	Use:   "askdocs",
	Short: "Ask questions about a documentation site",
	Long: `askdocs indexes a documentation website into a vector store and
answers questions about it, grounded in the indexed content with
source citations.

Typical workflow:
  askdocs settings set-key cohere     # store the Cohere API key
  askdocs settings set-key gemini     # store the Gemini API key
  askdocs index https://docs.example.com
  askdocs ask "How do I configure authentication?"`,
	SilenceUsage:      true,
	PersistentPreRunE: initRoot,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.askdocs)")
}

func initRoot(_ *cobra.Command, _ []string) error {
	// A .env file is optional; absence is not an error.
	_ = godotenv.Load() //nolint:errcheck

	logger.SetVerbose(verbose)

	if settingsService == nil {
		store, err := file.NewConfigStore(configDir)
		if err != nil {
			return fmt.Errorf("open config store: %w", err)
		}
		configStore = store
		settingsService = services.NewSettingsService(store)
	}

	return nil
}
