package driving

import (
	"context"

	"github.com/askdocs-labs/askdocs-cli/internal/core/domain"
)

// AskService answers questions grounded in indexed content.
type AskService interface {
	// Ask validates the query, retrieves grounding context, generates
	// an answer and attaches citations. Validation failures return a
	// *domain.ValidationError before any external call; generation
	// failures propagate.
	Ask(ctx context.Context, query domain.Query) (*domain.Answer, error)

	// Retrieve performs the similarity search alone: embed the text as
	// a query and return the topK ranked chunks. Collaborator failures
	// degrade to an empty result, never an error.
	Retrieve(ctx context.Context, text string, topK int) *domain.RetrievalResult
}
