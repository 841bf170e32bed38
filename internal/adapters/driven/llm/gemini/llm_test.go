package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdocs-labs/askdocs-cli/internal/core/ports/driven"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *LLMService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewLLMService(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})
	require.NoError(t, err)
	return svc
}

func TestNewLLMService_RequiresAPIKey(t *testing.T) {
	_, err := NewLLMService(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestGenerate_SendsGenerationConfig(t *testing.T) {
	var got generateRequest
	var gotPath string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{
					"content": map[string]any{
						"role":  "model",
						"parts": []map[string]string{{"text": "Hello "}, {"text": "world."}},
					},
					"finishReason": "STOP",
				},
			},
		})
	})

	answer, err := svc.Generate(context.Background(), "say hello", driven.GenerateOptions{
		MaxTokens:   1000,
		Temperature: 0.1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello world.", answer)

	assert.Equal(t, "/models/gemini-2.5-flash:generateContent", gotPath)
	require.Len(t, got.Contents, 1)
	assert.Equal(t, "user", got.Contents[0].Role)
	assert.Equal(t, "say hello", got.Contents[0].Parts[0].Text)
	require.NotNil(t, got.GenerationConfig)
	assert.Equal(t, 1000, got.GenerationConfig.MaxOutputTokens)
	require.NotNil(t, got.GenerationConfig.Temperature)
	assert.InDelta(t, 0.1, *got.GenerationConfig.Temperature, 1e-9)
}

func TestGenerate_ZeroTemperatureIsSent(t *testing.T) {
	var got generateRequest
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": "ok"}}}},
			},
		})
	})

	_, err := svc.Generate(context.Background(), "p", driven.GenerateOptions{Temperature: 0})
	require.NoError(t, err)

	require.NotNil(t, got.GenerationConfig.Temperature)
	assert.Zero(t, *got.GenerationConfig.Temperature)
}

func TestGenerate_APIError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 400, "message": "API key not valid", "status": "INVALID_ARGUMENT"},
		})
	})

	_, err := svc.Generate(context.Background(), "p", driven.GenerateOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestGenerate_NoCandidates(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	})

	_, err := svc.Generate(context.Background(), "p", driven.GenerateOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}

func TestPing(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/models/gemini-2.5-flash", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"name": "models/gemini-2.5-flash"})
	})

	assert.NoError(t, svc.Ping(context.Background()))
}
