// Package memory provides in-memory implementations of driven port
// interfaces, used in tests and as lightweight fallbacks.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/askdocs-labs/askdocs-cli/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu    sync.RWMutex
	pages map[string]driven.IndexedPage
	runs  map[string]driven.IngestRun
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		pages: make(map[string]driven.IndexedPage),
		runs:  make(map[string]driven.IngestRun),
	}
}

// SavePage stores or updates the record for an indexed page.
func (s *DocumentStore) SavePage(_ context.Context, page driven.IndexedPage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[page.URL] = page
	return nil
}

// ListPages returns all indexed pages, most recent first.
func (s *DocumentStore) ListPages(_ context.Context) ([]driven.IndexedPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pages := make([]driven.IndexedPage, 0, len(s.pages))
	for _, page := range s.pages {
		pages = append(pages, page)
	}
	sort.Slice(pages, func(i, j int) bool {
		if !pages[i].IndexedAt.Equal(pages[j].IndexedAt) {
			return pages[i].IndexedAt.After(pages[j].IndexedAt)
		}
		return pages[i].URL < pages[j].URL
	})
	return pages, nil
}

// SaveRun stores a completed ingest run.
func (s *DocumentStore) SaveRun(_ context.Context, run driven.IngestRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
	return nil
}

// ListRuns returns past ingest runs, most recent first.
func (s *DocumentStore) ListRuns(_ context.Context) ([]driven.IngestRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]driven.IngestRun, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	return runs, nil
}

// Close releases resources.
func (s *DocumentStore) Close() error {
	return nil
}
