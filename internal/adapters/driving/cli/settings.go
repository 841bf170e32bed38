package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/askdocs-labs/askdocs-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the target site, chunking, retrieval and AI
provider settings. Settings live in a TOML file under the config
directory; API keys can also come from the environment
(COHERE_API_KEY, GEMINI_API_KEY, QDRANT_API_KEY).`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a settings value",
	Long: `Sets one settings key, e.g.:

  askdocs settings set crawl.target_site_url https://docs.example.com
  askdocs settings set chunking.size 800
  askdocs settings set retrieval.min_score 0.35`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsSetKeyCmd = &cobra.Command{
	Use:   "set-key [provider]",
	Short: "Store an API key for a provider",
	Long: `Stores the API key for 'cohere', 'gemini' or 'qdrant'.
The key is read without echo when run from a terminal.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsSetKey,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsSetKeyCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Crawl]")
	site := settings.Crawl.TargetSiteURL
	if site == "" {
		site = "(not set)"
	}
	cmd.Printf("  Target site: %s\n", site)
	cmd.Printf("  Max pages: %d\n", settings.Crawl.MaxPages)
	cmd.Printf("  Requests per second: %g\n", settings.Crawl.RequestsPerSecond)
	cmd.Println()

	cmd.Println("[Chunking]")
	cmd.Printf("  Size: %d\n", settings.Chunking.Size)
	cmd.Printf("  Overlap: %d\n", settings.Chunking.Overlap)
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", settings.Embedding.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.Embedding.Model)
	printAPIKey(cmd, settings.Embedding.APIKey)
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	cmd.Printf("  Max output tokens: %d\n", settings.LLM.MaxOutputTokens)
	printAPIKey(cmd, settings.LLM.APIKey)
	cmd.Println()

	cmd.Println("[Vector Store]")
	cmd.Printf("  URL: %s\n", settings.VectorStore.URL)
	cmd.Printf("  Collection: %s\n", settings.VectorStore.Collection)
	cmd.Println()

	cmd.Println("[Retrieval]")
	cmd.Printf("  Max chunks: %d\n", settings.Retrieval.MaxChunks)
	cmd.Printf("  Min score: %g\n", settings.Retrieval.MinScore)
	cmd.Printf("  Temperature: %g\n", settings.Retrieval.Temperature)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'askdocs settings set-key <provider>' to store missing keys.")
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil || configStore == nil {
		return errors.New("settings service not configured")
	}

	key, raw := args[0], args[1]

	// The target site goes through the service so its validation applies.
	if key == "crawl.target_site_url" {
		if err := settingsService.SetTargetSite(raw); err != nil {
			return err
		}
		cmd.Printf("Set %s = %s\n", key, raw)
		return nil
	}

	if err := configStore.Set(key, parseSettingValue(raw)); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	cmd.Printf("Set %s = %s\n", key, raw)
	return nil
}

func runSettingsSetKey(cmd *cobra.Command, args []string) error {
	if settingsService == nil || configStore == nil {
		return errors.New("settings service not configured")
	}

	provider := strings.ToLower(args[0])

	cmd.Printf("Enter API key for %s: ", provider)
	key := readSecret()
	cmd.Println()
	if key == "" {
		return errors.New("no key entered")
	}

	switch provider {
	case "cohere":
		if err := settingsService.SetEmbeddingProvider(domain.AIProviderCohere, "", key); err != nil {
			return err
		}
	case "gemini":
		if err := settingsService.SetLLMProvider(domain.AIProviderGemini, "", key); err != nil {
			return err
		}
	case "qdrant":
		if err := configStore.Set("vector_store.api_key", key); err != nil {
			return fmt.Errorf("save vector store key: %w", err)
		}
	default:
		return fmt.Errorf("unknown provider %q (expected cohere, gemini or qdrant)", provider)
	}

	cmd.Printf("Stored API key for %s.\n", provider)
	return nil
}

// parseSettingValue converts the raw CLI argument to a typed value, so
// numeric settings round-trip as numbers in the TOML file.
func parseSettingValue(raw string) any {
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseBool(raw); err == nil {
		return v
	}
	return raw
}

// readSecret reads a line without echo when stdin is a terminal.
//
//nolint:errcheck // CLI helper, error ignored for UX
func readSecret() string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func printAPIKey(cmd *cobra.Command, key string) {
	if key == "" {
		cmd.Println("  API Key: (not set)")
		return
	}
	cmd.Printf("  API Key: %s\n", maskAPIKey(key))
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
