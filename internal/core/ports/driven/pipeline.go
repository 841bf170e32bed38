package driven

import (
	"context"

	"github.com/askdocs-labs/askdocs-cli/internal/core/domain"
)

// URLDiscoverer finds the content-page URLs of a site.
type URLDiscoverer interface {
	// Discover returns the URLs to index for the site at baseURL.
	// Discovery never fails: an unreachable site yields an empty set.
	Discover(ctx context.Context, baseURL string) []string
}

// PageExtractor fetches a URL and extracts its readable content.
type PageExtractor interface {
	// Extract returns the extracted page. Failures yield an empty page
	// carrying the error in its metadata rather than an error return.
	Extract(ctx context.Context, url string) domain.Page
}

// TextSplitter cuts extracted text into overlapping chunks.
type TextSplitter interface {
	// Split returns ordered chunks covering every character of text.
	Split(text string) []domain.Chunk
}
