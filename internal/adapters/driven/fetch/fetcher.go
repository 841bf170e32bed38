// Package fetch provides the HTTP page fetcher used by the crawler and
// the content extractor.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/askdocs-labs/askdocs-cli/internal/core/ports/driven"
)

// Ensure Fetcher implements the interface.
var _ driven.Fetcher = (*Fetcher)(nil)

// Default configuration values.
const (
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "askdocs/0.1 (+https://github.com/askdocs-labs/askdocs-cli)"

	// maxBodySize caps page bodies at 10 MiB to keep a single
	// misbehaving page from exhausting memory.
	maxBodySize = 10 << 20
)

// Config holds fetcher configuration.
type Config struct {
	// Timeout is the per-request timeout (default: 10s).
	Timeout time.Duration

	// UserAgent identifies the crawler to origin servers.
	UserAgent string
}

// Fetcher retrieves pages over HTTP with a bounded timeout.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// New creates a fetcher.
func New(cfg Config) *Fetcher {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	return &Fetcher{
		client:    &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
	}
}

// Fetch performs a GET for the URL and returns the response body.
// Non-2xx statuses are errors.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", url, err)
	}
	return body, nil
}
