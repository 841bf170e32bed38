package domain

import (
	"fmt"
	"time"
)

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or generation.
type AIProvider string

// Available AI providers.
const (
	// AIProviderCohere is the Cohere cloud API (embeddings).
	AIProviderCohere AIProvider = "cohere"

	// AIProviderGemini is the Google Gemini cloud API (generation).
	AIProviderGemini AIProvider = "gemini"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderCohere, AIProviderGemini:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
// Both supported providers are cloud services.
func (p AIProvider) RequiresAPIKey() bool {
	return p.IsValid()
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderCohere:
		return "Cohere (cloud embeddings)"
	case AIProviderGemini:
		return "Gemini (cloud generation)"
	default:
		return unknownDescription
	}
}

// CrawlSettings holds site discovery configuration.
type CrawlSettings struct {
	// TargetSiteURL is the base URL of the site to index.
	TargetSiteURL string

	// MaxPages caps the visited/discovered URL set during BFS crawling.
	MaxPages int

	// MaxQueue caps the BFS frontier.
	MaxQueue int

	// SitemapThreshold is the minimum sitemap entry count for the
	// sitemap to be used instead of link-following.
	SitemapThreshold int

	// RequestsPerSecond throttles page fetches.
	RequestsPerSecond float64

	// FetchTimeout is the per-request HTTP timeout.
	FetchTimeout time.Duration

	// RateLimitDelay is the fixed pause between processed URLs during
	// ingestion. Not adaptive.
	RateLimitDelay time.Duration
}

// ChunkingSettings holds text splitting configuration.
type ChunkingSettings struct {
	// Size is the target chunk length in characters.
	Size int

	// Overlap is the number of characters consecutive chunks share.
	// Must be smaller than Size; the chunker normalises violations.
	Overlap int
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL overrides the API endpoint.
	BaseURL string

	// APIKey is the provider API key.
	APIKey string
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds language model provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the model name.
	Model string

	// BaseURL overrides the API endpoint.
	BaseURL string

	// APIKey is the provider API key.
	APIKey string

	// MaxOutputTokens is the generation length ceiling.
	MaxOutputTokens int
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// VectorStoreSettings holds vector index service configuration.
type VectorStoreSettings struct {
	// URL is the Qdrant endpoint, e.g. http://localhost:6333.
	URL string

	// APIKey authenticates against hosted instances. Optional.
	APIKey string

	// Collection is the collection name holding the indexed points.
	Collection string

	// Timeout is the per-request timeout.
	Timeout time.Duration
}

// RetrievalSettings holds query-time behaviour configuration.
type RetrievalSettings struct {
	// MaxChunks is the default number of grounding chunks per query.
	MaxChunks int

	// MinScore drops retrieved chunks scoring below this similarity.
	// Zero disables the filter.
	MinScore float64

	// Temperature is the default generation temperature.
	Temperature float64
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Crawl holds site discovery settings.
	Crawl CrawlSettings

	// Chunking holds text splitting settings.
	Chunking ChunkingSettings

	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// LLM holds language model provider settings.
	LLM LLMSettings

	// VectorStore holds vector index settings.
	VectorStore VectorStoreSettings

	// Retrieval holds query-time settings.
	Retrieval RetrievalSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// API keys are left empty; they come from the environment or the
// settings file.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Crawl: CrawlSettings{
			MaxPages:          1000,
			MaxQueue:          500,
			SitemapThreshold:  10,
			RequestsPerSecond: 10,
			FetchTimeout:      10 * time.Second,
			RateLimitDelay:    time.Second,
		},
		Chunking: ChunkingSettings{
			Size:    1000,
			Overlap: 100,
		},
		Embedding: EmbeddingSettings{
			Provider: AIProviderCohere,
			Model:    "embed-english-v3.0",
		},
		LLM: LLMSettings{
			Provider:        AIProviderGemini,
			Model:           "gemini-2.5-flash",
			MaxOutputTokens: 1000,
		},
		VectorStore: VectorStoreSettings{
			URL:        "http://localhost:6333",
			Collection: "book_content",
			Timeout:    15 * time.Second,
		},
		Retrieval: RetrievalSettings{
			MaxChunks:   5,
			MinScore:    0,
			Temperature: 0.1,
		},
	}
}

// Validate reports fatal setup problems: missing credentials and
// incoherent numeric settings. It is called once at startup; failures
// abort rather than retry.
func (s AppSettings) Validate() error {
	if !s.Embedding.IsConfigured() {
		return fmt.Errorf("%w: embedding provider %q needs an API key (set COHERE_API_KEY)",
			ErrMissingCredential, s.Embedding.Provider)
	}
	if !s.LLM.IsConfigured() {
		return fmt.Errorf("%w: LLM provider %q needs an API key (set GEMINI_API_KEY)",
			ErrMissingCredential, s.LLM.Provider)
	}
	if s.VectorStore.URL == "" {
		return fmt.Errorf("%w: vector store URL is empty", ErrInvalidInput)
	}
	if s.VectorStore.Collection == "" {
		return fmt.Errorf("%w: collection name is empty", ErrInvalidInput)
	}
	if s.Chunking.Size <= 0 {
		return fmt.Errorf("%w: chunk size must be positive", ErrInvalidInput)
	}
	if s.Chunking.Overlap < 0 || s.Chunking.Overlap >= s.Chunking.Size {
		return fmt.Errorf("%w: chunk overlap must be in [0, size)", ErrInvalidInput)
	}
	return nil
}
