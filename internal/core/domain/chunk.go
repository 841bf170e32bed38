package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// pointNamespace is the UUID namespace for deterministic point IDs.
// Changing it invalidates every previously indexed collection.
var pointNamespace = uuid.MustParse("9c0e7f74-2f6b-4c39-9b1e-5a1d33c2a8e1")

// Page is the clean text extracted from a single URL.
type Page struct {
	// URL is the page location the content was extracted from.
	URL string

	// Title is the page title, falling back to the last URL path
	// segment when the document has no title element.
	Title string

	// Content is the de-markup'd, whitespace-normalised visible text.
	// Empty when extraction failed; the failure reason is then carried
	// in Metadata under the "error" key.
	Content string

	// Metadata contains arbitrary key-value pairs.
	Metadata map[string]any
}

// IsEmpty returns true when the page carries no usable content.
func (p Page) IsEmpty() bool {
	return p.Content == ""
}

// Chunk is a contiguous slice of extracted text, the unit of embedding
// and indexing. Chunks are immutable after creation; re-indexing the
// same (SourceURL, Position) pair overwrites the stored point.
type Chunk struct {
	// Content is the chunk text.
	Content string

	// SourceURL is the page the chunk was cut from.
	SourceURL string

	// SourceTitle is the title of that page.
	SourceTitle string

	// Position is the 0-based ordinal within the source document.
	Position int

	// StartOffset and EndOffset are character offsets into the
	// original extracted text. EndOffset-StartOffset is approximately
	// the configured chunk size except for the final chunk.
	StartOffset int
	EndOffset   int

	// Metadata contains chunk-level key-value pairs, e.g. the
	// indexing timestamp.
	Metadata map[string]any
}

// PointID returns the stable identifier for the chunk's indexed point.
// It is a UUIDv5 of (SourceURL, Position), so indexing the same chunk
// twice upserts rather than duplicates.
func (c Chunk) PointID() string {
	name := fmt.Sprintf("%s_%d", c.SourceURL, c.Position)
	return uuid.NewSHA1(pointNamespace, []byte(name)).String()
}
