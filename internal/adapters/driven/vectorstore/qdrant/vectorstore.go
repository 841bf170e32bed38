// Package qdrant provides a vector store adapter using the Qdrant
// REST API.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/askdocs-labs/askdocs-cli/internal/core/domain"
	"github.com/askdocs-labs/askdocs-cli/internal/core/ports/driven"
)

// Ensure VectorStore implements the interface.
var _ driven.VectorStore = (*VectorStore)(nil)

// Default configuration values.
const (
	DefaultURL        = "http://localhost:6333"
	DefaultCollection = "book_content"
	DefaultTimeout    = 15 * time.Second
)

// Config holds configuration for the Qdrant vector store.
type Config struct {
	// URL is the Qdrant base URL (default: http://localhost:6333).
	URL string

	// APIKey is sent in the api-key header when set.
	APIKey string

	// Collection is the collection name (default: book_content).
	Collection string

	// Timeout is the request timeout (default: 15s).
	Timeout time.Duration
}

// VectorStore stores and searches chunk embeddings in Qdrant using
// cosine distance.
type VectorStore struct {
	client     *http.Client
	baseURL    string
	apiKey     string
	collection string
}

// createCollectionRequest is the collection creation format.
type createCollectionRequest struct {
	Vectors vectorParams `json:"vectors"`
}

type vectorParams struct {
	Size     int    `json:"size"`
	Distance string `json:"distance"`
}

// upsertRequest is the points upsert format.
type upsertRequest struct {
	Points []pointStruct `json:"points"`
}

type pointStruct struct {
	ID      string         `json:"id"`
	Vector  []float32      `json:"vector"`
	Payload map[string]any `json:"payload"`
}

// searchRequest is the points search format.
type searchRequest struct {
	Vector      []float32 `json:"vector"`
	Limit       int       `json:"limit"`
	WithPayload bool      `json:"with_payload"`
}

// searchResponse is the points search response format.
type searchResponse struct {
	Result []struct {
		ID      string         `json:"id"`
		Score   float64        `json:"score"`
		Payload map[string]any `json:"payload"`
	} `json:"result"`
	Status any `json:"status"`
}

// NewVectorStore creates a new Qdrant vector store.
func NewVectorStore(cfg Config) *VectorStore {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &VectorStore{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:    cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
	}
}

// EnsureCollection creates the collection with cosine distance if it
// does not already exist.
func (s *VectorStore) EnsureCollection(ctx context.Context, dimensions int) error {
	if dimensions <= 0 {
		return fmt.Errorf("%w: invalid dimensions %d", domain.ErrCollectionSetup, dimensions)
	}

	exists, err := s.collectionExists(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCollectionSetup, err)
	}
	if exists {
		return nil
	}

	body := createCollectionRequest{
		Vectors: vectorParams{
			Size:     dimensions,
			Distance: "Cosine",
		},
	}
	url := fmt.Sprintf("%s/collections/%s", s.baseURL, s.collection)
	if err := s.send(ctx, http.MethodPut, url, body, nil); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCollectionSetup, err)
	}
	return nil
}

// collectionExists checks whether the collection is already present.
func (s *VectorStore) collectionExists(ctx context.Context) (bool, error) {
	url := fmt.Sprintf("%s/collections/%s", s.baseURL, s.collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("qdrant returned status %d: %s", resp.StatusCode, string(body))
	}
}

// Upsert writes points with their chunk payloads. Writes wait for
// completion so a subsequent search sees them.
func (s *VectorStore) Upsert(ctx context.Context, points []driven.Point) error {
	if len(points) == 0 {
		return nil
	}

	apiPoints := make([]pointStruct, len(points))
	for i, p := range points {
		apiPoints[i] = pointStruct{
			ID:     p.ID,
			Vector: p.Vector,
			Payload: map[string]any{
				"content":        p.Chunk.Content,
				"source_url":     p.Chunk.SourceURL,
				"source_title":   p.Chunk.SourceTitle,
				"chunk_position": p.Chunk.Position,
				"metadata":       p.Chunk.Metadata,
			},
		}
	}

	url := fmt.Sprintf("%s/collections/%s/points?wait=true", s.baseURL, s.collection)
	if err := s.send(ctx, http.MethodPut, url, upsertRequest{Points: apiPoints}, nil); err != nil {
		return fmt.Errorf("upsert %d points: %w", len(points), err)
	}
	return nil
}

// Search returns the topK most similar chunks for a query vector,
// highest score first.
func (s *VectorStore) Search(ctx context.Context, vector []float32, topK int) ([]driven.ScoredPoint, error) {
	if topK <= 0 {
		topK = domain.MaxChunksPerQuery
	}

	reqBody := searchRequest{
		Vector:      vector,
		Limit:       topK,
		WithPayload: true,
	}

	var resp searchResponse
	url := fmt.Sprintf("%s/collections/%s/points/search", s.baseURL, s.collection)
	if err := s.send(ctx, http.MethodPost, url, reqBody, &resp); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	results := make([]driven.ScoredPoint, 0, len(resp.Result))
	for _, r := range resp.Result {
		results = append(results, driven.ScoredPoint{
			Chunk: chunkFromPayload(r.Payload),
			Score: r.Score,
		})
	}
	return results, nil
}

// chunkFromPayload rebuilds a chunk from a point payload. Missing or
// mistyped fields are left zero.
func chunkFromPayload(payload map[string]any) domain.Chunk {
	var chunk domain.Chunk
	if v, ok := payload["content"].(string); ok {
		chunk.Content = v
	}
	if v, ok := payload["source_url"].(string); ok {
		chunk.SourceURL = v
	}
	if v, ok := payload["source_title"].(string); ok {
		chunk.SourceTitle = v
	}
	if v, ok := payload["chunk_position"].(float64); ok {
		chunk.Position = int(v)
	}
	if v, ok := payload["metadata"].(map[string]any); ok {
		chunk.Metadata = v
	}
	return chunk
}

// Collection returns the collection name.
func (s *VectorStore) Collection() string {
	return s.collection
}

// Ping validates the store is reachable.
func (s *VectorStore) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/collections", http.NoBody)
	if err != nil {
		return fmt.Errorf("qdrant: failed to create ping request: %w", err)
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("qdrant: API returned status %d", resp.StatusCode)
	}
	return nil
}

// Close releases resources.
func (s *VectorStore) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}

// send issues a JSON request and decodes the response into out when
// non-nil.
func (s *VectorStore) send(ctx context.Context, method, url string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("qdrant returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// setHeaders applies the common request headers.
func (s *VectorStore) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
}
