package extractor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher implements driven.Fetcher for testing.
type fakeFetcher struct {
	pages map[string]string
	err   error
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.pages[url]
	if !ok {
		return nil, errors.New("not found")
	}
	return []byte(body), nil
}

const docusaurusPage = `<!DOCTYPE html>
<html>
<head><title>Installing the Toolkit | Handbook</title>
<script>var x = 1;</script>
<style>.a { color: red }</style>
</head>
<body>
<nav>Home Docs Blog</nav>
<header>Site header</header>
<div class="main-wrapper">
  <aside>Sidebar links</aside>
  <article class="theme-doc-markdown">
    <h1>Installing   the Toolkit</h1>
    <p>Run the installer.
       Then restart.</p>
  </article>
</div>
<footer>Copyright</footer>
</body>
</html>`

func TestExtract_ContentSelection(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://example.com/docs/install/": docusaurusPage,
	}}
	e := New(f)

	page := e.Extract(context.Background(), "https://example.com/docs/install/")

	assert.Equal(t, "Installing the Toolkit | Handbook", page.Title)
	assert.Equal(t, "https://example.com/docs/install/", page.URL)

	// Navigation chrome and script/style text must not leak into the
	// content; whitespace runs collapse to single spaces.
	assert.NotContains(t, page.Content, "Home Docs Blog")
	assert.NotContains(t, page.Content, "Sidebar links")
	assert.NotContains(t, page.Content, "Copyright")
	assert.NotContains(t, page.Content, "var x")
	assert.Contains(t, page.Content, "Installing the Toolkit")
	assert.Contains(t, page.Content, "Run the installer. Then restart.")
}

func TestExtract_BodyFallback(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://example.com/plain.html": `<html><head><title>Plain</title></head>` +
			`<body><p>Just a paragraph.</p></body></html>`,
	}}
	e := New(f)

	page := e.Extract(context.Background(), "https://example.com/plain.html")
	assert.Equal(t, "Plain", page.Title)
	assert.Equal(t, "Just a paragraph.", page.Content)
}

func TestExtract_TitleFallbackToPathSegment(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://example.com/docs/getting-started/": `<html><body><main>Welcome.</main></body></html>`,
	}}
	e := New(f)

	page := e.Extract(context.Background(), "https://example.com/docs/getting-started/")
	assert.Equal(t, "getting-started", page.Title)
}

func TestExtract_FetchFailure(t *testing.T) {
	f := &fakeFetcher{err: errors.New("connection refused")}
	e := New(f)

	page := e.Extract(context.Background(), "https://example.com/docs/")

	// Failures yield an empty-content page carrying the error, so the
	// ingestion pipeline can skip and continue.
	require.True(t, page.IsEmpty())
	assert.Equal(t, "https://example.com/docs/", page.URL)
	assert.Contains(t, page.Metadata["error"], "connection refused")
}

func TestTitleFromURL(t *testing.T) {
	assert.Equal(t, "intro", titleFromURL("https://example.com/docs/intro"))
	assert.Equal(t, "intro", titleFromURL("https://example.com/docs/intro/"))
	assert.Equal(t, "example.com", titleFromURL("https://example.com/"))
}
