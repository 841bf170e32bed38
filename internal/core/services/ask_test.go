package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdocs-labs/askdocs-cli/internal/core/domain"
	"github.com/askdocs-labs/askdocs-cli/internal/core/ports/driven"
)

func scoredPoint(content, url, title string, score float64) driven.ScoredPoint {
	return driven.ScoredPoint{
		Chunk: domain.Chunk{
			Content:     content,
			SourceURL:   url,
			SourceTitle: title,
		},
		Score: score,
	}
}

func newTestAsk(embedder driven.EmbeddingService, vectors driven.VectorStore, llm driven.LLMService) *AskService {
	return NewAskService(embedder, vectors, llm, nil, 1000, 0)
}

func TestAsk_AnswersWithCitations(t *testing.T) {
	vectors := &mockVectorStore{searchHits: []driven.ScoredPoint{
		scoredPoint("Install with pip.", "https://docs.example.com/setup", "Setup", 0.92),
		scoredPoint("Requires Python 3.10.", "https://docs.example.com/setup", "Setup", 0.85),
	}}
	llm := &mockLLM{answer: "Install the package with pip on Python 3.10."}
	embedder := newMockEmbedder()

	svc := newTestAsk(embedder, vectors, llm)
	answer, err := svc.Ask(context.Background(), domain.NewQuery("How do I install it?"))
	require.NoError(t, err)

	assert.Equal(t, "Install the package with pip on Python 3.10.", answer.Answer)
	assert.False(t, answer.GroundingFailed)
	assert.InDelta(t, 0.9, answer.ConfidenceScore, 1e-9)
	assert.Equal(t, 8, answer.TokensUsed)

	require.Len(t, answer.Sources, 2)
	assert.Equal(t, "https://docs.example.com/setup", answer.Sources[0].SourceURL)
	assert.Equal(t, "Setup", answer.Sources[0].SourceTitle)
	assert.InDelta(t, 0.92, answer.Sources[0].RelevanceScore, 1e-9)

	// Queries embed with the query input type.
	assert.Equal(t, driven.InputQuery, embedder.lastInput)
}

func TestAsk_PromptContainsContextAndQuestion(t *testing.T) {
	vectors := &mockVectorStore{searchHits: []driven.ScoredPoint{
		scoredPoint("First fact.", "https://docs.example.com/a", "A", 0.9),
		scoredPoint("Second fact.", "https://docs.example.com/b", "B", 0.8),
	}}
	llm := &mockLLM{answer: "ok"}

	svc := newTestAsk(newMockEmbedder(), vectors, llm)
	_, err := svc.Ask(context.Background(), domain.NewQuery("What are the facts?"))
	require.NoError(t, err)

	assert.Contains(t, llm.lastPrompt, "First fact.\n\nSecond fact.")
	assert.Contains(t, llm.lastPrompt, "What are the facts?")
}

func TestAsk_GenerationOptionsFromQuery(t *testing.T) {
	llm := &mockLLM{answer: "ok"}

	svc := newTestAsk(newMockEmbedder(), &mockVectorStore{}, llm)
	query := domain.NewQuery("question")
	query.Temperature = 0.7
	_, err := svc.Ask(context.Background(), query)
	require.NoError(t, err)

	assert.Equal(t, 1000, llm.lastOpts.MaxTokens)
	assert.InDelta(t, 0.7, llm.lastOpts.Temperature, 1e-9)
}

func TestAsk_ValidationRejectsBeforeAnyCall(t *testing.T) {
	llm := &mockLLM{answer: "ok"}
	embedder := newMockEmbedder()

	svc := newTestAsk(embedder, &mockVectorStore{}, llm)

	tests := []struct {
		name  string
		query domain.Query
		code  string
	}{
		{
			name:  "empty query",
			query: domain.Query{MaxChunks: 5, Temperature: 0.1},
			code:  domain.CodeEmptyQuery,
		},
		{
			name:  "too long",
			query: domain.Query{Text: strings.Repeat("a", 1001), MaxChunks: 5, Temperature: 0.1},
			code:  domain.CodeQueryTooLong,
		},
		{
			name:  "max_chunks out of range",
			query: domain.Query{Text: "q", MaxChunks: 11, Temperature: 0.1},
			code:  domain.CodeInvalidParameter,
		},
		{
			name:  "temperature out of range",
			query: domain.Query{Text: "q", MaxChunks: 5, Temperature: 1.5},
			code:  domain.CodeInvalidParameter,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Ask(context.Background(), tt.query)
			require.Error(t, err)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.code, verr.Code)
		})
	}

	// No external service was touched.
	assert.Zero(t, llm.calls)
	assert.Empty(t, embedder.lastInput)
}

func TestAsk_GroundingFailedWhenNothingRetrieved(t *testing.T) {
	llm := &mockLLM{answer: "I don't have enough information to answer."}

	svc := newTestAsk(newMockEmbedder(), &mockVectorStore{}, llm)
	answer, err := svc.Ask(context.Background(), domain.NewQuery("question"))
	require.NoError(t, err)

	assert.True(t, answer.GroundingFailed)
	assert.Empty(t, answer.Sources)
	// The model is still asked, with an empty context.
	assert.Equal(t, 1, llm.calls)
}

func TestAsk_GenerationFailurePropagates(t *testing.T) {
	llm := &mockLLM{generateErr: errors.New("quota exceeded")}

	svc := newTestAsk(newMockEmbedder(), &mockVectorStore{}, llm)
	answer, err := svc.Ask(context.Background(), domain.NewQuery("question"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Nil(t, answer)
}

func TestAsk_SourcesOmittedWhenNotRequested(t *testing.T) {
	vectors := &mockVectorStore{searchHits: []driven.ScoredPoint{
		scoredPoint("Fact.", "https://docs.example.com/a", "A", 0.9),
	}}
	llm := &mockLLM{answer: "ok"}

	svc := newTestAsk(newMockEmbedder(), vectors, llm)
	query := domain.NewQuery("question")
	query.IncludeSources = false
	answer, err := svc.Ask(context.Background(), query)
	require.NoError(t, err)

	assert.Empty(t, answer.Sources)
	assert.False(t, answer.GroundingFailed)
}

func TestAsk_CitationPreviewTruncated(t *testing.T) {
	long := strings.Repeat("x", 300)
	vectors := &mockVectorStore{searchHits: []driven.ScoredPoint{
		scoredPoint(long, "https://docs.example.com/a", "A", 0.9),
	}}

	svc := newTestAsk(newMockEmbedder(), vectors, &mockLLM{answer: "ok"})
	answer, err := svc.Ask(context.Background(), domain.NewQuery("question"))
	require.NoError(t, err)

	require.Len(t, answer.Sources, 1)
	assert.Len(t, answer.Sources[0].ContentPreview, domain.CitationPreviewLength)
}

func TestAsk_UsesPromptStoreTemplate(t *testing.T) {
	store := &mockPromptStore{prompts: map[string]string{
		driven.PromptGroundedAnswer: "CONTEXT<%s>QUESTION<%s>",
	}}
	llm := &mockLLM{answer: "ok"}
	svc := NewAskService(newMockEmbedder(), &mockVectorStore{}, llm, store, 1000, 0)

	_, err := svc.Ask(context.Background(), domain.NewQuery("question"))
	require.NoError(t, err)
	assert.Equal(t, "CONTEXT<>QUESTION<question>", llm.lastPrompt)
}

func TestAsk_FallsBackWhenPromptStoreFails(t *testing.T) {
	store := &mockPromptStore{loadErr: errors.New("disk gone")}
	llm := &mockLLM{answer: "ok"}
	svc := NewAskService(newMockEmbedder(), &mockVectorStore{}, llm, store, 1000, 0)

	_, err := svc.Ask(context.Background(), domain.NewQuery("question"))
	require.NoError(t, err)
	assert.Contains(t, llm.lastPrompt, "question")
	assert.Contains(t, llm.lastPrompt, "Context:")
}

func TestRetrieve_ReturnsRankedChunks(t *testing.T) {
	vectors := &mockVectorStore{searchHits: []driven.ScoredPoint{
		scoredPoint("Best match.", "https://docs.example.com/a", "A", 0.95),
		scoredPoint("Second.", "https://docs.example.com/b", "B", 0.80),
	}}

	svc := newTestAsk(newMockEmbedder(), vectors, &mockLLM{})
	result := svc.Retrieve(context.Background(), "query", 5)

	assert.Equal(t, 5, vectors.searchTopK)
	require.Len(t, result.Chunks, 2)
	assert.Equal(t, "Best match.", result.Chunks[0].Content)
	assert.InDelta(t, 0.95, result.Chunks[0].SimilarityScore, 1e-9)
	assert.Equal(t, 2, result.TotalFound)
}

func TestRetrieve_EmptyTextDegradesToEmpty(t *testing.T) {
	embedder := newMockEmbedder()
	svc := newTestAsk(embedder, &mockVectorStore{}, &mockLLM{})

	result := svc.Retrieve(context.Background(), "   ", 5)
	assert.Empty(t, result.Chunks)
	assert.Empty(t, embedder.lastInput)
}

func TestRetrieve_EmbeddingFailureDegradesToEmpty(t *testing.T) {
	embedder := newMockEmbedder()
	embedder.embedErr = errors.New("unreachable")

	svc := newTestAsk(embedder, &mockVectorStore{}, &mockLLM{})
	result := svc.Retrieve(context.Background(), "query", 5)

	assert.Empty(t, result.Chunks)
	assert.Zero(t, result.TotalFound)
}

func TestRetrieve_SearchFailureDegradesToEmpty(t *testing.T) {
	vectors := &mockVectorStore{searchErr: errors.New("connection refused")}

	svc := newTestAsk(newMockEmbedder(), vectors, &mockLLM{})
	result := svc.Retrieve(context.Background(), "query", 5)

	assert.Empty(t, result.Chunks)
}

func TestRetrieve_DefaultTopK(t *testing.T) {
	vectors := &mockVectorStore{}
	svc := newTestAsk(newMockEmbedder(), vectors, &mockLLM{})

	svc.Retrieve(context.Background(), "query", 0)
	assert.Equal(t, domain.MaxChunksPerQuery, vectors.searchTopK)
}

func TestRetrieve_MinScoreFiltersWeakMatches(t *testing.T) {
	vectors := &mockVectorStore{searchHits: []driven.ScoredPoint{
		scoredPoint("Strong.", "https://docs.example.com/a", "A", 0.9),
		scoredPoint("Weak.", "https://docs.example.com/b", "B", 0.2),
	}}
	svc := NewAskService(newMockEmbedder(), vectors, &mockLLM{}, nil, 1000, 0.5)

	result := svc.Retrieve(context.Background(), "query", 5)
	require.Len(t, result.Chunks, 1)
	assert.Equal(t, "Strong.", result.Chunks[0].Content)
}
