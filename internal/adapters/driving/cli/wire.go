package cli

import (
	"fmt"

	"github.com/askdocs-labs/askdocs-cli/internal/adapters/driven/ai"
	"github.com/askdocs-labs/askdocs-cli/internal/adapters/driven/config/file"
	"github.com/askdocs-labs/askdocs-cli/internal/adapters/driven/fetch"
	"github.com/askdocs-labs/askdocs-cli/internal/adapters/driven/storage/sqlite"
	"github.com/askdocs-labs/askdocs-cli/internal/adapters/driven/vectorstore/qdrant"
	"github.com/askdocs-labs/askdocs-cli/internal/chunker"
	"github.com/askdocs-labs/askdocs-cli/internal/core/domain"
	"github.com/askdocs-labs/askdocs-cli/internal/core/ports/driven"
	"github.com/askdocs-labs/askdocs-cli/internal/core/services"
	"github.com/askdocs-labs/askdocs-cli/internal/crawler"
	"github.com/askdocs-labs/askdocs-cli/internal/extractor"
	"github.com/askdocs-labs/askdocs-cli/internal/logger"
)

// currentSettings loads the effective settings for service wiring.
func currentSettings() (*domain.AppSettings, error) {
	if settingsService == nil {
		return nil, fmt.Errorf("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

// newVectorStore builds the Qdrant adapter from settings.
func newVectorStore(settings *domain.AppSettings) driven.VectorStore {
	return qdrant.NewVectorStore(qdrant.Config{
		URL:        settings.VectorStore.URL,
		APIKey:     settings.VectorStore.APIKey,
		Collection: settings.VectorStore.Collection,
		Timeout:    settings.VectorStore.Timeout,
	})
}

// newPromptStore builds the prompt store. Failures fall back to the
// embedded default templates rather than aborting the command.
func newPromptStore() driven.PromptStore {
	store, err := file.NewPromptStore("")
	if err != nil {
		logger.Debug("Prompt store unavailable, using built-in prompts: %v", err)
		return nil
	}
	return store
}

// ensureAskService wires the question-answering service.
// Both AI providers are created and pinged; a missing key or an
// unreachable provider fails here, before any query runs.
func ensureAskService() error {
	if askService != nil {
		return nil
	}

	settings, err := currentSettings()
	if err != nil {
		return err
	}

	embedder, err := ai.CreateAndValidateEmbeddingService(&settings.Embedding)
	if err != nil {
		return err
	}

	llm, err := ai.CreateAndValidateLLMService(&settings.LLM)
	if err != nil {
		embedder.Close() //nolint:errcheck,gosec
		return err
	}

	askService = services.NewAskService(
		embedder,
		newVectorStore(settings),
		llm,
		newPromptStore(),
		settings.LLM.MaxOutputTokens,
		settings.Retrieval.MinScore,
	)
	return nil
}

// ensureIngestService wires the full ingestion pipeline.
func ensureIngestService() error {
	if ingestService != nil {
		return nil
	}

	settings, err := currentSettings()
	if err != nil {
		return err
	}

	embedder, err := ai.CreateAndValidateEmbeddingService(&settings.Embedding)
	if err != nil {
		return err
	}

	fetcher := fetch.New(fetch.Config{Timeout: settings.Crawl.FetchTimeout})

	discoverer := crawler.New(fetcher, crawler.Config{
		MaxPages:          settings.Crawl.MaxPages,
		MaxQueue:          settings.Crawl.MaxQueue,
		SitemapThreshold:  settings.Crawl.SitemapThreshold,
		RequestsPerSecond: settings.Crawl.RequestsPerSecond,
	})

	splitter := chunker.New(
		chunker.WithChunkSize(settings.Chunking.Size),
		chunker.WithOverlap(settings.Chunking.Overlap),
	)

	if err := ensureDocStore(); err != nil {
		// The vector store is the source of truth; run without local
		// bookkeeping rather than refusing to index.
		logger.Warn("Document store unavailable: %v", err)
	}

	ingestService = services.NewIngestService(
		discoverer,
		extractor.New(fetcher),
		splitter,
		embedder,
		newVectorStore(settings),
		docStore,
		settings.Crawl.RateLimitDelay,
	)
	return nil
}

// ensureDocStore opens the local SQLite document store.
func ensureDocStore() error {
	if docStore != nil {
		return nil
	}
	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("open document store: %w", err)
	}
	docStore = store
	return nil
}
