package services

import (
	"fmt"
	"os"
	"time"

	"github.com/askdocs-labs/askdocs-cli/internal/core/domain"
	"github.com/askdocs-labs/askdocs-cli/internal/core/ports/driven"
	"github.com/askdocs-labs/askdocs-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyTargetSite       = "crawl.target_site_url"
	keyCrawlMaxPages    = "crawl.max_pages"
	keyCrawlMaxQueue    = "crawl.max_queue"
	keyCrawlSitemapMin  = "crawl.sitemap_threshold"
	keyCrawlRPS         = "crawl.requests_per_second"
	keyCrawlDelayMs     = "crawl.rate_limit_delay_ms"
	keyChunkSize        = "chunking.size"
	keyChunkOverlap     = "chunking.overlap"
	keyEmbedProvider    = "embedding.provider"
	keyEmbedModel       = "embedding.model"
	keyEmbedBaseURL     = "embedding.base_url"
	keyEmbedAPIKey      = "embedding.api_key"
	keyLLMProvider      = "llm.provider"
	keyLLMModel         = "llm.model"
	keyLLMBaseURL       = "llm.base_url"
	keyLLMAPIKey        = "llm.api_key"
	keyLLMMaxTokens     = "llm.max_output_tokens"
	keyVectorURL        = "vector_store.url"
	keyVectorAPIKey     = "vector_store.api_key"
	keyVectorCollection = "vector_store.collection"
	keyRetrievalChunks  = "retrieval.max_chunks"
	keyRetrievalScore   = "retrieval.min_score"
	keyRetrievalTemp    = "retrieval.temperature"
)

// Environment variables that override stored settings. Environment
// wins over the config file so containerised runs need no file at all.
const (
	envCohereKey    = "COHERE_API_KEY"
	envGeminiKey    = "GEMINI_API_KEY"
	envQdrantURL    = "QDRANT_URL"
	envQdrantAPIKey = "QDRANT_API_KEY"
	envTargetSite   = "TARGET_SITE_URL"
)

// SettingsService manages application settings: defaults overlaid with
// the TOML settings file, overlaid with environment variables.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Crawl: domain.CrawlSettings{
			TargetSiteURL:     s.getString(keyTargetSite, defaults.Crawl.TargetSiteURL),
			MaxPages:          s.getInt(keyCrawlMaxPages, defaults.Crawl.MaxPages),
			MaxQueue:          s.getInt(keyCrawlMaxQueue, defaults.Crawl.MaxQueue),
			SitemapThreshold:  s.getInt(keyCrawlSitemapMin, defaults.Crawl.SitemapThreshold),
			RequestsPerSecond: s.getFloat(keyCrawlRPS, defaults.Crawl.RequestsPerSecond),
			FetchTimeout:      defaults.Crawl.FetchTimeout,
			RateLimitDelay:    s.getDurationMs(keyCrawlDelayMs, defaults.Crawl.RateLimitDelay),
		},
		Chunking: domain.ChunkingSettings{
			Size:    s.getInt(keyChunkSize, defaults.Chunking.Size),
			Overlap: s.getInt(keyChunkOverlap, defaults.Chunking.Overlap),
		},
		Embedding: domain.EmbeddingSettings{
			Provider: s.getProvider(keyEmbedProvider, defaults.Embedding.Provider),
			Model:    s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL:  s.configStore.GetString(keyEmbedBaseURL), // No default - empty means provider default
			APIKey:   s.configStore.GetString(keyEmbedAPIKey),
		},
		LLM: domain.LLMSettings{
			Provider:        s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:           s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:         s.configStore.GetString(keyLLMBaseURL), // No default - empty means provider default
			APIKey:          s.configStore.GetString(keyLLMAPIKey),
			MaxOutputTokens: s.getInt(keyLLMMaxTokens, defaults.LLM.MaxOutputTokens),
		},
		VectorStore: domain.VectorStoreSettings{
			URL:        s.getString(keyVectorURL, defaults.VectorStore.URL),
			APIKey:     s.configStore.GetString(keyVectorAPIKey),
			Collection: s.getString(keyVectorCollection, defaults.VectorStore.Collection),
			Timeout:    defaults.VectorStore.Timeout,
		},
		Retrieval: domain.RetrievalSettings{
			MaxChunks:   s.getInt(keyRetrievalChunks, defaults.Retrieval.MaxChunks),
			MinScore:    s.getFloat(keyRetrievalScore, defaults.Retrieval.MinScore),
			Temperature: s.getFloat(keyRetrievalTemp, defaults.Retrieval.Temperature),
		},
	}

	s.applyEnvironment(settings)
	return settings, nil
}

// applyEnvironment overlays environment variables onto settings.
func (s *SettingsService) applyEnvironment(settings *domain.AppSettings) {
	if v := os.Getenv(envCohereKey); v != "" {
		settings.Embedding.APIKey = v
	}
	if v := os.Getenv(envGeminiKey); v != "" {
		settings.LLM.APIKey = v
	}
	if v := os.Getenv(envQdrantURL); v != "" {
		settings.VectorStore.URL = v
	}
	if v := os.Getenv(envQdrantAPIKey); v != "" {
		settings.VectorStore.APIKey = v
	}
	if v := os.Getenv(envTargetSite); v != "" {
		settings.Crawl.TargetSiteURL = v
	}
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := map[string]any{
		keyTargetSite:       settings.Crawl.TargetSiteURL,
		keyCrawlMaxPages:    settings.Crawl.MaxPages,
		keyCrawlMaxQueue:    settings.Crawl.MaxQueue,
		keyCrawlSitemapMin:  settings.Crawl.SitemapThreshold,
		keyCrawlRPS:         settings.Crawl.RequestsPerSecond,
		keyCrawlDelayMs:     int(settings.Crawl.RateLimitDelay / time.Millisecond),
		keyChunkSize:        settings.Chunking.Size,
		keyChunkOverlap:     settings.Chunking.Overlap,
		keyEmbedProvider:    settings.Embedding.Provider.String(),
		keyEmbedModel:       settings.Embedding.Model,
		keyEmbedBaseURL:     settings.Embedding.BaseURL,
		keyLLMProvider:      settings.LLM.Provider.String(),
		keyLLMModel:         settings.LLM.Model,
		keyLLMBaseURL:       settings.LLM.BaseURL,
		keyLLMMaxTokens:     settings.LLM.MaxOutputTokens,
		keyVectorURL:        settings.VectorStore.URL,
		keyVectorCollection: settings.VectorStore.Collection,
		keyRetrievalChunks:  settings.Retrieval.MaxChunks,
		keyRetrievalScore:   settings.Retrieval.MinScore,
		keyRetrievalTemp:    settings.Retrieval.Temperature,
	}

	// API keys are only written when set, so an env-only key never
	// lands in the settings file by accident.
	if settings.Embedding.APIKey != "" && settings.Embedding.APIKey != os.Getenv(envCohereKey) {
		values[keyEmbedAPIKey] = settings.Embedding.APIKey
	}
	if settings.LLM.APIKey != "" && settings.LLM.APIKey != os.Getenv(envGeminiKey) {
		values[keyLLMAPIKey] = settings.LLM.APIKey
	}
	if settings.VectorStore.APIKey != "" && settings.VectorStore.APIKey != os.Getenv(envQdrantAPIKey) {
		values[keyVectorAPIKey] = settings.VectorStore.APIKey
	}

	for key, value := range values {
		if err := s.configStore.Set(key, value); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return nil
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidInput, provider)
	}

	if err := s.configStore.Set(keyEmbedProvider, provider.String()); err != nil {
		return fmt.Errorf("save embedding provider: %w", err)
	}
	if model != "" {
		if err := s.configStore.Set(keyEmbedModel, model); err != nil {
			return fmt.Errorf("save embedding model: %w", err)
		}
	}
	if apiKey != "" {
		if err := s.configStore.Set(keyEmbedAPIKey, apiKey); err != nil {
			return fmt.Errorf("save embedding api_key: %w", err)
		}
	}
	return nil
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidInput, provider)
	}

	if err := s.configStore.Set(keyLLMProvider, provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if model != "" {
		if err := s.configStore.Set(keyLLMModel, model); err != nil {
			return fmt.Errorf("save llm model: %w", err)
		}
	}
	if apiKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, apiKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}
	return nil
}

// SetTargetSite updates the default site to index.
func (s *SettingsService) SetTargetSite(url string) error {
	if url == "" {
		return fmt.Errorf("%w: target site URL is empty", domain.ErrInvalidInput)
	}
	if err := s.configStore.Set(keyTargetSite, url); err != nil {
		return fmt.Errorf("save target site: %w", err)
	}
	return nil
}

// Validate checks current settings for fatal setup errors.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// getString returns the stored string or the default.
func (s *SettingsService) getString(key, fallback string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}

// getInt returns the stored int or the default.
func (s *SettingsService) getInt(key string, fallback int) int {
	if v := s.configStore.GetInt(key); v != 0 {
		return v
	}
	return fallback
}

// getFloat returns the stored float or the default.
func (s *SettingsService) getFloat(key string, fallback float64) float64 {
	if _, ok := s.configStore.Get(key); ok {
		return s.configStore.GetFloat(key)
	}
	return fallback
}

// getDurationMs returns the stored millisecond count or the default.
func (s *SettingsService) getDurationMs(key string, fallback time.Duration) time.Duration {
	if v := s.configStore.GetInt(key); v > 0 {
		return time.Duration(v) * time.Millisecond
	}
	return fallback
}

// getProvider returns the stored provider if valid, else the default.
func (s *SettingsService) getProvider(key string, fallback domain.AIProvider) domain.AIProvider {
	if v := s.configStore.GetString(key); v != "" {
		provider := domain.AIProvider(v)
		if provider.IsValid() {
			return provider
		}
	}
	return fallback
}
