package driving

import "github.com/askdocs-labs/askdocs-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings (defaults overlaid
	// with the settings file and environment variables).
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetEmbeddingProvider configures the embedding provider.
	SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error

	// SetLLMProvider configures the LLM provider.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// SetTargetSite updates the default site to index.
	SetTargetSite(url string) error

	// Validate checks current settings for fatal setup errors.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
