package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured or unreachable. Without embeddings nothing can be
	// indexed or retrieved.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the language model service is not
	// configured or unreachable. Retrieval still works; answer
	// generation does not.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrVectorStoreUnavailable indicates the vector index service is
	// not configured or unreachable.
	ErrVectorStoreUnavailable = errors.New("vector store unavailable")

	// ErrCollectionSetup indicates the backing collection could not be
	// created or verified. This is fatal for an ingestion run.
	ErrCollectionSetup = errors.New("collection setup failed")

	// ErrMissingCredential indicates a required API key is not set.
	// This is a fatal setup error, not retried.
	ErrMissingCredential = errors.New("missing required credential")

	// ErrGenerationFailed indicates the language model call failed.
	// There is no safe placeholder answer, so this propagates to the
	// request boundary.
	ErrGenerationFailed = errors.New("answer generation failed")
)
