package driven

import (
	"context"

	"github.com/askdocs-labs/askdocs-cli/internal/core/domain"
)

// Point is the persisted unit in the vector store: a stable identifier,
// an embedding vector, and the chunk attributes as payload.
type Point struct {
	// ID is the deterministic identifier (see domain.Chunk.PointID).
	ID string

	// Vector is the embedding of the chunk content.
	Vector []float32

	// Chunk supplies the payload fields.
	Chunk domain.Chunk
}

// ScoredPoint is a search hit: payload reconstructed into a chunk plus
// the cosine similarity reported by the store.
type ScoredPoint struct {
	// Chunk is the payload reconstructed from the stored point.
	Chunk domain.Chunk

	// Score is the cosine similarity to the query vector.
	Score float64
}

// VectorStore wraps an external vector index service.
//
// Implementations return errors; the online retrieval path degrades
// them to empty results, the ingestion path treats collection setup
// failure as fatal and upsert failure as skip-and-continue.
type VectorStore interface {
	// EnsureCollection idempotently verifies or creates the backing
	// collection with the given vector dimensionality and cosine
	// distance. It must not fail when the collection already exists.
	EnsureCollection(ctx context.Context, dimensions int) error

	// Upsert persists a batch of points, overwriting on ID collision.
	Upsert(ctx context.Context, points []Point) error

	// Search returns the topK stored points by descending cosine
	// similarity to the query vector.
	Search(ctx context.Context, vector []float32, topK int) ([]ScoredPoint, error)

	// Collection returns the collection name in use.
	Collection() string

	// Ping validates the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
