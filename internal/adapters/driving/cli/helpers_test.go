package cli

import (
	"bytes"
	"context"
	"time"

	"github.com/askdocs-labs/askdocs-cli/internal/core/domain"
	"github.com/askdocs-labs/askdocs-cli/internal/core/ports/driven"
	"github.com/askdocs-labs/askdocs-cli/internal/core/ports/driving"
)

// mockAskService implements driving.AskService.
type mockAskService struct {
	answer    *domain.Answer
	askErr    error
	result    *domain.RetrievalResult
	lastQuery domain.Query
}

func (m *mockAskService) Ask(_ context.Context, query domain.Query) (*domain.Answer, error) {
	m.lastQuery = query
	if m.askErr != nil {
		return nil, m.askErr
	}
	if m.answer != nil {
		return m.answer, nil
	}
	return &domain.Answer{Answer: "mock answer"}, nil
}

func (m *mockAskService) Retrieve(_ context.Context, _ string, _ int) *domain.RetrievalResult {
	if m.result != nil {
		return m.result
	}
	return domain.EmptyRetrievalResult(0)
}

// mockIngestor implements driving.Ingestor.
type mockIngestor struct {
	report *driving.IngestReport
	err    error
}

func (m *mockIngestor) Ingest(_ context.Context, baseURL string) (*driving.IngestReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.report != nil {
		return m.report, nil
	}
	return &driving.IngestReport{
		BaseURL:        baseURL,
		URLsDiscovered: 2,
		PagesIndexed:   2,
		ChunksIndexed:  6,
		Elapsed:        time.Second,
	}, nil
}

func (m *mockIngestor) Status(_ context.Context) (*driving.IngestStatus, error) {
	return &driving.IngestStatus{}, nil
}

// mockSettingsService implements driving.SettingsService.
type mockSettingsService struct {
	settings domain.AppSettings
	saveErr  error
}

func newMockSettingsService() *mockSettingsService {
	settings := domain.DefaultAppSettings()
	settings.Embedding.APIKey = "co-key"
	settings.LLM.APIKey = "ge-key"
	return &mockSettingsService{settings: settings}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	copied := m.settings
	return &copied, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.settings = *settings
	return nil
}

func (m *mockSettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	m.settings.Embedding.Provider = provider
	if model != "" {
		m.settings.Embedding.Model = model
	}
	if apiKey != "" {
		m.settings.Embedding.APIKey = apiKey
	}
	return nil
}

func (m *mockSettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	m.settings.LLM.Provider = provider
	if model != "" {
		m.settings.LLM.Model = model
	}
	if apiKey != "" {
		m.settings.LLM.APIKey = apiKey
	}
	return nil
}

func (m *mockSettingsService) SetTargetSite(url string) error {
	m.settings.Crawl.TargetSiteURL = url
	return nil
}

func (m *mockSettingsService) Validate() error {
	return m.settings.Validate()
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// mockDocStore implements driven.DocumentStore.
type mockDocStore struct {
	pages []driven.IndexedPage
	runs  []driven.IngestRun
	err   error
}

func (m *mockDocStore) SavePage(_ context.Context, _ driven.IndexedPage) error { return m.err }
func (m *mockDocStore) ListPages(_ context.Context) ([]driven.IndexedPage, error) {
	return m.pages, m.err
}
func (m *mockDocStore) SaveRun(_ context.Context, _ driven.IngestRun) error { return m.err }
func (m *mockDocStore) ListRuns(_ context.Context) ([]driven.IngestRun, error) {
	return m.runs, m.err
}
func (m *mockDocStore) Close() error { return nil }

// mockConfigStore implements driven.ConfigStore in memory.
type mockConfigStore struct {
	values map[string]any
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{values: map[string]any{}}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	v, _ := m.values[key].(string)
	return v
}

func (m *mockConfigStore) GetInt(key string) int {
	v, _ := m.values[key].(int)
	return v
}

func (m *mockConfigStore) GetFloat(key string) float64 {
	v, _ := m.values[key].(float64)
	return v
}

func (m *mockConfigStore) GetBool(key string) bool {
	v, _ := m.values[key].(bool)
	return v
}

func (m *mockConfigStore) Set(key string, value any) error {
	m.values[key] = value
	return nil
}

func (m *mockConfigStore) Save() error  { return nil }
func (m *mockConfigStore) Load() error  { return nil }
func (m *mockConfigStore) Path() string { return "/tmp/test-config.toml" }

// setupTestServices installs mock services and returns a cleanup that
// restores the previous wiring.
func setupTestServices() func() {
	oldConfig := configStore
	oldSettings := settingsService
	oldIngest := ingestService
	oldAsk := askService
	oldDocs := docStore

	configStore = newMockConfigStore()
	settingsService = newMockSettingsService()
	ingestService = &mockIngestor{}
	askService = &mockAskService{}
	docStore = &mockDocStore{}

	return func() {
		configStore = oldConfig
		settingsService = oldSettings
		ingestService = oldIngest
		askService = oldAsk
		docStore = oldDocs
	}
}

// executeCommand runs the root command with args and captures output.
func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
