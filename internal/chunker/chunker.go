// Package chunker splits extracted text into overlapping,
// boundary-aware segments for embedding.
package chunker

import (
	"strings"

	"github.com/askdocs-labs/askdocs-cli/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultOverlap is the default number of overlapping characters
// between consecutive chunks.
const DefaultOverlap = 100

const (
	sentenceEnd    = ". "
	paragraphBreak = "\n\n"
)

// Chunker produces overlapping chunks, preferring to break at sentence
// and paragraph boundaries. Output is a pure function of
// (text, chunkSize, overlap).
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Overlap must stay below chunk size or the cursor cannot advance.
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// Split cuts text into ordered chunks whose offset ranges collectively
// cover every character of the input. Empty text yields no chunks.
//
// Each candidate window of chunkSize characters is shortened to the
// last ". " past the window midpoint, else the last "\n\n" past the
// midpoint, else kept whole. The cursor then advances to
// end-overlap, but never behind its previous value, so progress is
// strictly monotonic even for pathological overlap/boundary
// combinations.
func (c *Chunker) Split(text string) []domain.Chunk {
	if text == "" {
		return nil
	}

	estimated := len(text)/(c.chunkSize-c.overlap) + 1
	chunks := make([]domain.Chunk, 0, estimated)

	start := 0
	position := 0

	for start < len(text) {
		end := start + c.chunkSize

		if end >= len(text) {
			// Final chunk: the remainder, possibly shorter than chunkSize.
			chunks = append(chunks, domain.Chunk{
				Content:     text[start:],
				Position:    position,
				StartOffset: start,
				EndOffset:   len(text),
			})
			break
		}

		actualEnd := end
		window := text[start:end]

		if i := strings.LastIndex(window, sentenceEnd); i > c.chunkSize/2 {
			actualEnd = start + i + len(sentenceEnd)
		} else if i := strings.LastIndex(window, paragraphBreak); i > c.chunkSize/2 {
			actualEnd = start + i + len(paragraphBreak)
		}

		chunks = append(chunks, domain.Chunk{
			Content:     text[start:actualEnd],
			Position:    position,
			StartOffset: start,
			EndOffset:   actualEnd,
		})

		// Minimum-advance invariant: overlapping back past the current
		// start would stall or move backwards.
		next := actualEnd - c.overlap
		if next <= start {
			next = actualEnd
		}
		start = next
		position++
	}

	return chunks
}

// ChunkSize returns the configured chunk size.
func (c *Chunker) ChunkSize() int {
	return c.chunkSize
}

// Overlap returns the configured overlap.
func (c *Chunker) Overlap() int {
	return c.overlap
}
