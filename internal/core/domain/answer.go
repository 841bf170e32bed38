package domain

import "time"

// CitationPreviewLength is the maximum length of a citation's content
// preview in characters.
const CitationPreviewLength = 200

// SourceCitation points a reader at the indexed content that grounded
// part of an answer.
type SourceCitation struct {
	// SourceURL is the cited page.
	SourceURL string `json:"source_url"`

	// SourceTitle is the title of that page.
	SourceTitle string `json:"source_title"`

	// ContentPreview is a bounded-length excerpt of the cited chunk.
	ContentPreview string `json:"content_preview"`

	// RelevanceScore is the chunk's similarity to the query.
	RelevanceScore float64 `json:"relevance_score"`
}

// NewSourceCitation builds a citation from a retrieved chunk,
// truncating the preview to CitationPreviewLength.
func NewSourceCitation(rc RetrievedChunk) SourceCitation {
	preview := rc.Content
	if len(preview) > CitationPreviewLength {
		preview = preview[:CitationPreviewLength]
	}
	return SourceCitation{
		SourceURL:      rc.SourceURL,
		SourceTitle:    rc.SourceTitle,
		ContentPreview: preview,
		RelevanceScore: rc.SimilarityScore,
	}
}

// Answer is the final response to a query: the generated text plus the
// citations it was grounded in. Constructed once per query, returned,
// never persisted.
type Answer struct {
	// Answer is the language model's generated text.
	Answer string `json:"answer"`

	// Sources are the citations, in retrieval order. Empty when the
	// query did not request sources or nothing was retrieved.
	Sources []SourceCitation `json:"sources"`

	// ConfidenceScore is a fixed placeholder; no calibrated confidence
	// signal exists for the generation.
	ConfidenceScore float64 `json:"confidence_score"`

	// TokensUsed approximates the answer size by whitespace-separated
	// token count.
	TokensUsed int `json:"tokens_used"`

	// ProcessingTime is the end-to-end wall time for the query.
	ProcessingTime time.Duration `json:"processing_time"`

	// GroundingFailed is set when the answer was generated without any
	// retrieved context, so it cannot be traced back to indexed content.
	GroundingFailed bool `json:"grounding_failed"`
}
