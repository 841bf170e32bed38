package driving

import (
	"context"
	"time"
)

// Ingestor runs the offline indexing pipeline:
// discover URLs, extract, chunk, embed, persist.
type Ingestor interface {
	// Ingest indexes the site at baseURL. Per-page failures are
	// counted and skipped; a collection setup failure aborts before
	// any page is processed.
	Ingest(ctx context.Context, baseURL string) (*IngestReport, error)

	// Status returns progress of the ingestion currently running, or
	// an idle status when none is.
	Status(ctx context.Context) (*IngestStatus, error)
}

// IngestReport summarises a completed ingestion run.
type IngestReport struct {
	// BaseURL is the site that was indexed.
	BaseURL string

	// URLsDiscovered is the size of the discovered URL set.
	URLsDiscovered int

	// PagesIndexed is the number of pages whose chunks were persisted.
	PagesIndexed int

	// ChunksIndexed is the total number of chunks persisted.
	ChunksIndexed int

	// PagesSkipped counts pages skipped for empty content or
	// collaborator failures.
	PagesSkipped int

	// Elapsed is the wall time of the run.
	Elapsed time.Duration
}

// IngestStatus is the live progress of a running ingestion.
type IngestStatus struct {
	// Running indicates an ingestion is in progress.
	Running bool

	// URLsTotal is the size of the discovered URL set.
	URLsTotal int

	// PagesProcessed counts URLs handled so far, including skips.
	PagesProcessed int

	// ChunksIndexed counts chunks persisted so far.
	ChunksIndexed int

	// ErrorCount is the number of per-page failures so far.
	ErrorCount int
}
