package domain

import "time"

// RetrievedChunk is a chunk returned by a similarity search, together
// with its cosine similarity to the query (range [-1, 1], higher is
// more relevant).
type RetrievedChunk struct {
	Chunk

	// SimilarityScore is the cosine similarity reported by the store.
	SimilarityScore float64
}

// RetrievalResult is the ordered outcome of one similarity search.
// Chunks are sorted by descending SimilarityScore. The result is
// transient; it is constructed per query and never persisted.
type RetrievalResult struct {
	// Chunks are the matches, best first.
	Chunks []RetrievedChunk

	// TotalFound is the number of points the store reported before any
	// client-side clamping or filtering.
	TotalFound int

	// SearchTime is the elapsed wall time of the search, including
	// query embedding.
	SearchTime time.Duration
}

// EmptyRetrievalResult returns a degraded result carrying only the elapsed time.
// The online path returns this instead of an error when the embedding
// call or the store is unavailable.
func EmptyRetrievalResult(elapsed time.Duration) *RetrievalResult {
	return &RetrievalResult{
		Chunks:     []RetrievedChunk{},
		TotalFound: 0,
		SearchTime: elapsed,
	}
}

// Clamp truncates the result to at most n chunks. It is a defensive
// re-clamp applied even when the store honours the requested limit.
func (r *RetrievalResult) Clamp(n int) {
	if n >= 0 && len(r.Chunks) > n {
		r.Chunks = r.Chunks[:n]
	}
}
