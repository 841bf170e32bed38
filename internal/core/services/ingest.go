package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/askdocs-labs/askdocs-cli/internal/core/ports/driven"
	"github.com/askdocs-labs/askdocs-cli/internal/core/ports/driving"
	"github.com/askdocs-labs/askdocs-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// IngestService runs the offline indexing pipeline: discover URLs,
// extract content, chunk, embed and persist to the vector store.
type IngestService struct {
	discoverer driven.URLDiscoverer
	extractor  driven.PageExtractor
	splitter   driven.TextSplitter
	embedder   driven.EmbeddingService
	vectors    driven.VectorStore
	docStore   driven.DocumentStore

	// rateLimitDelay is the fixed pause between processed pages.
	rateLimitDelay time.Duration

	// Status tracking
	mu      sync.RWMutex
	current *driving.IngestStatus
}

// NewIngestService creates a new ingest service. The docStore is
// optional - if nil, ingestion proceeds without local bookkeeping.
func NewIngestService(
	discoverer driven.URLDiscoverer,
	extractor driven.PageExtractor,
	splitter driven.TextSplitter,
	embedder driven.EmbeddingService,
	vectors driven.VectorStore,
	docStore driven.DocumentStore,
	rateLimitDelay time.Duration,
) *IngestService {
	return &IngestService{
		discoverer:     discoverer,
		extractor:      extractor,
		splitter:       splitter,
		embedder:       embedder,
		vectors:        vectors,
		docStore:       docStore,
		rateLimitDelay: rateLimitDelay,
	}
}

// Ingest indexes the site at baseURL. Collection setup failures abort
// before any page is processed; per-page failures are counted, logged
// and skipped so one broken page cannot sink a long crawl.
func (s *IngestService) Ingest(ctx context.Context, baseURL string) (*driving.IngestReport, error) {
	started := time.Now()

	// The collection must exist before any upsert; without it nothing
	// can be persisted, so this failure is fatal.
	if err := s.vectors.EnsureCollection(ctx, s.embedder.Dimensions()); err != nil {
		return nil, fmt.Errorf("ensure collection %q: %w", s.vectors.Collection(), err)
	}

	urls := s.discoverer.Discover(ctx, baseURL)

	status := &driving.IngestStatus{
		Running:   true,
		URLsTotal: len(urls),
	}
	s.setStatus(status)
	defer s.clearStatus()

	report := &driving.IngestReport{
		BaseURL:        baseURL,
		URLsDiscovered: len(urls),
	}

	logger.Section("Indexing")
	logger.Info("Processing %d pages from %s", len(urls), baseURL)

	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		chunks, err := s.indexPage(ctx, url)
		s.updateStatus(func(st *driving.IngestStatus) {
			st.PagesProcessed++
			if err != nil {
				st.ErrorCount++
			} else {
				st.ChunksIndexed += chunks
			}
		})

		if err != nil {
			logger.Warn("Skipping %s: %v", url, err)
			report.PagesSkipped++
		} else {
			report.PagesIndexed++
			report.ChunksIndexed += chunks
		}

		// Pause between pages to stay polite; skip after the last one.
		if s.rateLimitDelay > 0 && i < len(urls)-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.rateLimitDelay):
			}
		}
	}

	report.Elapsed = time.Since(started)
	s.recordRun(ctx, report, started)

	logger.Info("Indexed %d pages (%d chunks, %d skipped) in %s",
		report.PagesIndexed, report.ChunksIndexed, report.PagesSkipped,
		report.Elapsed.Round(time.Millisecond))

	return report, nil
}

// indexPage runs one URL through extract, chunk, embed and upsert.
// Returns the number of chunks persisted.
func (s *IngestService) indexPage(ctx context.Context, url string) (int, error) {
	page := s.extractor.Extract(ctx, url)
	if page.IsEmpty() {
		if reason, ok := page.Metadata["error"]; ok {
			return 0, fmt.Errorf("extract: %v", reason)
		}
		return 0, fmt.Errorf("extract: no content")
	}

	chunks := s.splitter.Split(page.Content)
	if len(chunks) == 0 {
		return 0, fmt.Errorf("chunk: no chunks produced")
	}

	indexedAt := time.Now().UTC().Format(time.RFC3339)
	texts := make([]string, len(chunks))
	for i := range chunks {
		chunks[i].SourceURL = page.URL
		chunks[i].SourceTitle = page.Title
		chunks[i].Metadata = map[string]any{
			"indexed_at": indexedAt,
		}
		for k, v := range page.Metadata {
			chunks[i].Metadata[k] = v
		}
		texts[i] = chunks[i].Content
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts, driven.InputDocument)
	if err != nil {
		return 0, fmt.Errorf("embed: %w", err)
	}
	if len(vectors) != len(chunks) {
		return 0, fmt.Errorf("embed: got %d vectors for %d chunks", len(vectors), len(chunks))
	}

	points := make([]driven.Point, len(chunks))
	for i, chunk := range chunks {
		points[i] = driven.Point{
			ID:     chunk.PointID(),
			Vector: vectors[i],
			Chunk:  chunk,
		}
	}

	if err := s.vectors.Upsert(ctx, points); err != nil {
		return 0, fmt.Errorf("upsert: %w", err)
	}

	if s.docStore != nil {
		err := s.docStore.SavePage(ctx, driven.IndexedPage{
			URL:        page.URL,
			Title:      page.Title,
			ChunkCount: len(chunks),
			IndexedAt:  time.Now().UTC(),
		})
		if err != nil {
			// Bookkeeping only; the chunks are already persisted.
			logger.Debug("Failed to record page %s: %v", page.URL, err)
		}
	}

	logger.Debug("Indexed %s (%d chunks)", page.URL, len(chunks))
	return len(chunks), nil
}

// recordRun saves the run summary to the document store.
func (s *IngestService) recordRun(ctx context.Context, report *driving.IngestReport, started time.Time) {
	if s.docStore == nil {
		return
	}
	err := s.docStore.SaveRun(ctx, driven.IngestRun{
		ID:            uuid.NewString(),
		BaseURL:       report.BaseURL,
		StartedAt:     started.UTC(),
		FinishedAt:    started.Add(report.Elapsed).UTC(),
		PagesIndexed:  report.PagesIndexed,
		ChunksIndexed: report.ChunksIndexed,
		Errors:        report.PagesSkipped,
	})
	if err != nil {
		logger.Debug("Failed to record ingest run: %v", err)
	}
}

// Status returns progress of the running ingestion, or an idle status.
func (s *IngestService) Status(_ context.Context) (*driving.IngestStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current != nil {
		// Return a copy to avoid race conditions
		copied := *s.current
		return &copied, nil
	}
	return &driving.IngestStatus{}, nil
}

// setStatus installs the live status for the running ingestion.
func (s *IngestService) setStatus(status *driving.IngestStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = status
}

// updateStatus mutates the live status under lock.
func (s *IngestService) updateStatus(fn func(*driving.IngestStatus)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		fn(s.current)
	}
}

// clearStatus removes the live status.
func (s *IngestService) clearStatus() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}
