package driven

import (
	"context"
	"time"
)

// IndexedPage is the local record of one ingested page.
type IndexedPage struct {
	// URL is the page location.
	URL string

	// Title is the extracted page title.
	Title string

	// ChunkCount is the number of chunks stored for the page.
	ChunkCount int

	// IndexedAt is when the page was last (re)indexed.
	IndexedAt time.Time
}

// IngestRun records the outcome of one ingestion pipeline run.
type IngestRun struct {
	// ID identifies the run.
	ID string

	// BaseURL is the site that was indexed.
	BaseURL string

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time
	FinishedAt time.Time

	// PagesIndexed, ChunksIndexed and Errors summarise the run.
	PagesIndexed  int
	ChunksIndexed int
	Errors        int
}

// DocumentStore keeps a local record of what has been indexed.
// Backed by SQLite. The vector store remains the source of truth for
// retrieval; this store only serves reporting (`askdocs docs`,
// ingest reports).
type DocumentStore interface {
	// SavePage stores or updates the record for an indexed page.
	SavePage(ctx context.Context, page IndexedPage) error

	// ListPages returns all indexed pages, most recent first.
	ListPages(ctx context.Context) ([]IndexedPage, error)

	// SaveRun stores a completed ingest run.
	SaveRun(ctx context.Context, run IngestRun) error

	// ListRuns returns past ingest runs, most recent first.
	ListRuns(ctx context.Context) ([]IngestRun, error)

	// Close releases resources.
	Close() error
}
