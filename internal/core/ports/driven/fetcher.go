package driven

import "context"

// Fetcher retrieves raw page bytes over HTTP.
//
// The crawler and extractor depend on this narrow interface rather than
// *http.Client so tests can substitute fakes without a network.
type Fetcher interface {
	// Fetch performs a GET for the URL and returns the response body.
	// Non-2xx statuses are errors.
	Fetch(ctx context.Context, url string) ([]byte, error)
}
