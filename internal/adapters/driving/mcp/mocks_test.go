package mcp

import (
	"context"
	"time"

	"github.com/askdocs-labs/askdocs-cli/internal/core/domain"
	"github.com/askdocs-labs/askdocs-cli/internal/core/ports/driven"
)

// mockAskService is a mock implementation of driving.AskService.
type mockAskService struct {
	answer *domain.Answer
	result *domain.RetrievalResult
	err    error

	lastQuery domain.Query
	lastTopK  int
}

func (m *mockAskService) Ask(_ context.Context, query domain.Query) (*domain.Answer, error) {
	m.lastQuery = query
	return m.answer, m.err
}

func (m *mockAskService) Retrieve(_ context.Context, _ string, topK int) *domain.RetrievalResult {
	m.lastTopK = topK
	if m.result != nil {
		return m.result
	}
	return domain.EmptyRetrievalResult(0)
}

// mockDocStore is a mock implementation of driven.DocumentStore.
type mockDocStore struct {
	pages []driven.IndexedPage
	err   error
}

func (m *mockDocStore) SavePage(_ context.Context, _ driven.IndexedPage) error {
	return m.err
}

func (m *mockDocStore) ListPages(_ context.Context) ([]driven.IndexedPage, error) {
	return m.pages, m.err
}

func (m *mockDocStore) SaveRun(_ context.Context, _ driven.IngestRun) error {
	return m.err
}

func (m *mockDocStore) ListRuns(_ context.Context) ([]driven.IngestRun, error) {
	return nil, m.err
}

func (m *mockDocStore) Close() error { return nil }

func indexedPage(url, title string, chunks int) driven.IndexedPage {
	return driven.IndexedPage{
		URL:        url,
		Title:      title,
		ChunkCount: chunks,
		IndexedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}
