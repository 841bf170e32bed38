package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/askdocs-labs/askdocs-cli/internal/core/domain"
	"github.com/askdocs-labs/askdocs-cli/internal/core/ports/driven"
	"github.com/askdocs-labs/askdocs-cli/internal/core/ports/driving"
	"github.com/askdocs-labs/askdocs-cli/internal/logger"
)

// Ensure AskService implements the interface.
var _ driving.AskService = (*AskService)(nil)

// placeholderConfidence is reported until real answer scoring exists.
// TODO: derive confidence from retrieval scores once enough indexed
// sites exist to calibrate against.
const placeholderConfidence = 0.9

// defaultGroundedPrompt is the fallback when no PromptStore is configured.
const defaultGroundedPrompt = `You are a helpful AI assistant that answers questions using only the provided context.
If the context does not contain enough information to answer, say so instead of guessing.

Context:
%s

Question:
%s`

// AskService answers questions grounded in indexed content.
type AskService struct {
	embedder    driven.EmbeddingService
	vectors     driven.VectorStore
	llm         driven.LLMService
	promptStore driven.PromptStore

	// maxOutputTokens caps answer generation length.
	maxOutputTokens int

	// minScore drops retrieved chunks below this similarity. Zero
	// disables the filter.
	minScore float64
}

// NewAskService creates a new ask service. The promptStore is optional;
// without it the embedded default prompt is used.
func NewAskService(
	embedder driven.EmbeddingService,
	vectors driven.VectorStore,
	llm driven.LLMService,
	promptStore driven.PromptStore,
	maxOutputTokens int,
	minScore float64,
) *AskService {
	if maxOutputTokens <= 0 {
		maxOutputTokens = 1000
	}
	return &AskService{
		embedder:        embedder,
		vectors:         vectors,
		llm:             llm,
		promptStore:     promptStore,
		maxOutputTokens: maxOutputTokens,
		minScore:        minScore,
	}
}

// Retrieve embeds text as a search query and returns the topK most
// similar chunks. Collaborator failures degrade to an empty result
// rather than an error: a transient outage should read as "nothing
// found", not break the caller.
func (s *AskService) Retrieve(ctx context.Context, text string, topK int) *domain.RetrievalResult {
	started := time.Now()

	if strings.TrimSpace(text) == "" {
		return domain.EmptyRetrievalResult(time.Since(started))
	}
	if topK <= 0 {
		topK = domain.MaxChunksPerQuery
	}

	vector, err := s.embedder.Embed(ctx, text, driven.InputQuery)
	if err != nil {
		logger.Warn("Query embedding failed: %v", err)
		return domain.EmptyRetrievalResult(time.Since(started))
	}

	points, err := s.vectors.Search(ctx, vector, topK)
	if err != nil {
		logger.Warn("Vector search failed: %v", err)
		return domain.EmptyRetrievalResult(time.Since(started))
	}

	chunks := make([]domain.RetrievedChunk, 0, len(points))
	for _, p := range points {
		if s.minScore > 0 && p.Score < s.minScore {
			continue
		}
		chunks = append(chunks, domain.RetrievedChunk{
			Chunk:           p.Chunk,
			SimilarityScore: p.Score,
		})
	}

	return &domain.RetrievalResult{
		Chunks:     chunks,
		TotalFound: len(chunks),
		SearchTime: time.Since(started),
	}
}

// Ask validates the query, retrieves grounding context, generates an
// answer and attaches citations. Validation failures return before any
// external call; generation failures propagate because a degraded
// answer with no generation behind it would be a fabrication.
func (s *AskService) Ask(ctx context.Context, query domain.Query) (*domain.Answer, error) {
	started := time.Now()

	if verr := query.Validate(); verr != nil {
		return nil, verr
	}

	result := s.Retrieve(ctx, query.Text, query.MaxChunks)
	result.Clamp(query.MaxChunks)

	groundingFailed := len(result.Chunks) == 0
	if groundingFailed {
		logger.Debug("No grounding chunks for query, answering from empty context")
	}

	contents := make([]string, len(result.Chunks))
	for i, chunk := range result.Chunks {
		contents[i] = chunk.Content
	}
	contextText := strings.Join(contents, "\n\n")

	prompt := fmt.Sprintf(s.loadPrompt(), contextText, query.Text)

	answer, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   s.maxOutputTokens,
		Temperature: query.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}

	var sources []domain.SourceCitation
	if query.IncludeSources {
		sources = make([]domain.SourceCitation, 0, len(result.Chunks))
		for _, chunk := range result.Chunks {
			sources = append(sources, domain.NewSourceCitation(chunk))
		}
	}

	return &domain.Answer{
		Answer:          answer,
		Sources:         sources,
		ConfidenceScore: placeholderConfidence,
		TokensUsed:      len(strings.Fields(answer)),
		ProcessingTime:  time.Since(started),
		GroundingFailed: groundingFailed,
	}, nil
}

// loadPrompt returns the grounded answer template, falling back to the
// embedded default when no store is configured or loading fails.
func (s *AskService) loadPrompt() string {
	if s.promptStore == nil {
		return defaultGroundedPrompt
	}
	prompt, err := s.promptStore.Load(driven.PromptGroundedAnswer)
	if err != nil {
		return defaultGroundedPrompt
	}
	return prompt
}
