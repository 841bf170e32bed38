package driven

import "context"

// InputType distinguishes the embedding role. Some providers produce
// asymmetric vectors: documents are embedded for storage, queries for
// lookup, and the two are not interchangeable.
type InputType string

// Embedding roles.
const (
	// InputDocument marks text being indexed.
	InputDocument InputType = "search_document"

	// InputQuery marks text being searched for.
	InputQuery InputType = "search_query"
)

// EmbeddingService generates vector embeddings from text.
//
// Implementations call an external embedding API with a fixed model
// identifier. Errors are returned, not swallowed: the degrade-vs-skip
// policy belongs to the call sites.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string, input InputType) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in one call.
	// The result is index-aligned with texts.
	EmbedBatch(ctx context.Context, texts []string, input InputType) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g. 1024).
	// This must match the vector store collection configuration.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used by the status command and at setup validation.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
