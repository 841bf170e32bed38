package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/askdocs-labs/askdocs-cli/internal/core/domain"
	"github.com/askdocs-labs/askdocs-cli/internal/core/ports/driven"
)

// mockEmbedder implements driven.EmbeddingService for tests.
type mockEmbedder struct {
	dimensions int
	embedErr   error
	batchErr   error

	// lastInput records the InputType of the most recent call.
	lastInput driven.InputType

	// batchCalls records each EmbedBatch input.
	batchCalls [][]string

	// shortBatch makes EmbedBatch return one vector fewer than asked.
	shortBatch bool
}

func newMockEmbedder() *mockEmbedder {
	return &mockEmbedder{dimensions: 4}
}

func (m *mockEmbedder) Embed(_ context.Context, text string, input driven.InputType) ([]float32, error) {
	m.lastInput = input
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.vectorFor(text), nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string, input driven.InputType) ([][]float32, error) {
	m.lastInput = input
	m.batchCalls = append(m.batchCalls, texts)
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	n := len(texts)
	if m.shortBatch && n > 0 {
		n--
	}
	vectors := make([][]float32, n)
	for i := 0; i < n; i++ {
		vectors[i] = m.vectorFor(texts[i])
	}
	return vectors, nil
}

func (m *mockEmbedder) vectorFor(text string) []float32 {
	v := make([]float32, m.dimensions)
	v[0] = float32(len(text))
	return v
}

func (m *mockEmbedder) Dimensions() int              { return m.dimensions }
func (m *mockEmbedder) ModelName() string            { return "mock-embed" }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error                 { return nil }

// mockVectorStore implements driven.VectorStore for tests.
type mockVectorStore struct {
	ensureErr  error
	upsertErr  error
	searchErr  error
	searchHits []driven.ScoredPoint

	ensureDims  int
	ensureCalls int
	upserted    []driven.Point
	searchTopK  int
}

func (m *mockVectorStore) EnsureCollection(_ context.Context, dimensions int) error {
	m.ensureCalls++
	m.ensureDims = dimensions
	return m.ensureErr
}

func (m *mockVectorStore) Upsert(_ context.Context, points []driven.Point) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = append(m.upserted, points...)
	return nil
}

func (m *mockVectorStore) Search(_ context.Context, _ []float32, topK int) ([]driven.ScoredPoint, error) {
	m.searchTopK = topK
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.searchHits, nil
}

func (m *mockVectorStore) Collection() string           { return "test_collection" }
func (m *mockVectorStore) Ping(_ context.Context) error { return nil }
func (m *mockVectorStore) Close() error                 { return nil }

// mockLLM implements driven.LLMService for tests.
type mockLLM struct {
	answer      string
	generateErr error

	lastPrompt string
	lastOpts   driven.GenerateOptions
	calls      int
}

func (m *mockLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	m.lastOpts = opts
	if m.generateErr != nil {
		return "", m.generateErr
	}
	return m.answer, nil
}

func (m *mockLLM) ModelName() string            { return "mock-llm" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// fakeDiscoverer returns a fixed URL set.
type fakeDiscoverer struct {
	urls []string
}

func (f *fakeDiscoverer) Discover(_ context.Context, _ string) []string {
	return f.urls
}

// fakeExtractor serves pages from a map. Unknown URLs yield an empty
// page carrying an error in its metadata, matching the extractor's
// failure contract.
type fakeExtractor struct {
	pages map[string]domain.Page
}

func (f *fakeExtractor) Extract(_ context.Context, url string) domain.Page {
	if page, ok := f.pages[url]; ok {
		return page
	}
	return domain.Page{
		URL:      url,
		Metadata: map[string]any{"error": fmt.Sprintf("fetch %s: not found", url)},
	}
}

// fakeSplitter cuts on blank lines, one chunk per paragraph.
type fakeSplitter struct{}

func (fakeSplitter) Split(text string) []domain.Chunk {
	parts := strings.Split(text, "\n\n")
	chunks := make([]domain.Chunk, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		chunks = append(chunks, domain.Chunk{
			Content:  part,
			Position: len(chunks),
		})
	}
	return chunks
}

// mockPromptStore implements driven.PromptStore for tests.
type mockPromptStore struct {
	prompts map[string]string
	loadErr error
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if m.loadErr != nil {
		return "", m.loadErr
	}
	prompt, ok := m.prompts[name]
	if !ok {
		return "", fmt.Errorf("unknown prompt %q", name)
	}
	return prompt, nil
}

func (m *mockPromptStore) Reload()     {}
func (m *mockPromptStore) Dir() string { return "" }

// mockConfigStore implements driven.ConfigStore in memory.
type mockConfigStore struct {
	values map[string]any
	setErr error
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{values: map[string]any{}}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	if v, ok := m.values[key].(string); ok {
		return v
	}
	return ""
}

func (m *mockConfigStore) GetInt(key string) int {
	switch v := m.values[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func (m *mockConfigStore) GetFloat(key string) float64 {
	switch v := m.values[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

func (m *mockConfigStore) GetBool(key string) bool {
	if v, ok := m.values[key].(bool); ok {
		return v
	}
	return false
}

func (m *mockConfigStore) Set(key string, value any) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *mockConfigStore) Save() error { return nil }
func (m *mockConfigStore) Load() error { return nil }
func (m *mockConfigStore) Path() string {
	return "/tmp/test-config.toml"
}
