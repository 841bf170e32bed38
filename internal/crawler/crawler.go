// Package crawler discovers the set of content-page URLs for a target
// site, preferring the sitemap and falling back to bounded
// breadth-first link following.
package crawler

import (
	"bytes"
	"context"
	"encoding/xml"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"github.com/askdocs-labs/askdocs-cli/internal/core/ports/driven"
	"github.com/askdocs-labs/askdocs-cli/internal/logger"
)

// Default configuration values.
const (
	// DefaultMaxPages caps the discovered URL set; the crawl terminates
	// once it is reached (invariant: |visited| <= MaxPages).
	DefaultMaxPages = 1000

	// DefaultMaxQueue caps the BFS frontier (invariant: |queue| <= MaxQueue).
	DefaultMaxQueue = 500

	// DefaultSitemapThreshold is the minimum number of sitemap entries
	// for the sitemap to be trusted over link following.
	DefaultSitemapThreshold = 10

	// DefaultRequestsPerSecond throttles page fetches.
	DefaultRequestsPerSecond = 10
)

// contentMarker identifies documentation-section paths during BFS.
const contentMarker = "/docs/"

// Config holds crawler configuration.
type Config struct {
	// MaxPages caps the discovered URL set (default: 1000).
	MaxPages int

	// MaxQueue caps the BFS frontier (default: 500).
	MaxQueue int

	// SitemapThreshold is the minimum sitemap entry count
	// (default: 10).
	SitemapThreshold int

	// RequestsPerSecond throttles fetches (default: 10).
	RequestsPerSecond float64
}

// Crawler discovers content URLs for a site.
type Crawler struct {
	fetcher          driven.Fetcher
	limiter          *rate.Limiter
	maxPages         int
	maxQueue         int
	sitemapThreshold int
}

// New creates a crawler using the given fetcher.
func New(fetcher driven.Fetcher, cfg Config) *Crawler {
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = DefaultMaxPages
	}
	if cfg.MaxQueue <= 0 {
		cfg.MaxQueue = DefaultMaxQueue
	}
	if cfg.SitemapThreshold <= 0 {
		cfg.SitemapThreshold = DefaultSitemapThreshold
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}

	return &Crawler{
		fetcher:          fetcher,
		limiter:          rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		maxPages:         cfg.MaxPages,
		maxQueue:         cfg.MaxQueue,
		sitemapThreshold: cfg.SitemapThreshold,
	}
}

// Discover returns the content-page URLs belonging to the site at
// baseURL. It tries the sitemap first and falls back to breadth-first
// link following. Single-page failures are logged and skipped; the
// crawl never fails past its boundary - it returns whatever it has
// discovered, possibly nothing.
func (c *Crawler) Discover(ctx context.Context, baseURL string) []string {
	logger.Section("URL Discovery")
	logger.Info("Crawling %s", baseURL)

	urls := c.fromSitemap(ctx, baseURL)
	if len(urls) >= c.sitemapThreshold {
		logger.Info("Sitemap yielded %d URLs", len(urls))
		return urls
	}

	logger.Debug("Sitemap yielded %d URLs (below threshold %d), falling back to BFS",
		len(urls), c.sitemapThreshold)

	urls = c.fromLinks(ctx, baseURL)
	logger.Info("Discovered %d URLs", len(urls))
	return urls
}

// fromSitemap fetches <base>/sitemap.xml and returns the in-domain
// content URLs it lists, in document order.
func (c *Crawler) fromSitemap(ctx context.Context, baseURL string) []string {
	sitemapURL := resolveURL(baseURL, "sitemap.xml")
	if sitemapURL == "" {
		return nil
	}

	body, err := c.fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		logger.Warn("Could not fetch sitemap: %v", err)
		return nil
	}

	var urls []string
	seen := make(map[string]bool)
	for _, loc := range sitemapLocs(body) {
		if !isContentURL(loc, baseURL) || seen[loc] {
			continue
		}
		seen[loc] = true
		urls = append(urls, loc)
	}
	return urls
}

// sitemapLocs extracts every <loc> value from a sitemap or sitemap
// index document.
func sitemapLocs(body []byte) []string {
	var locs []string
	dec := xml.NewDecoder(bytes.NewReader(body))
	for {
		tok, err := dec.Token()
		if err != nil {
			return locs
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "loc" {
			continue
		}
		var value string
		if err := dec.DecodeElement(&value, &start); err != nil {
			return locs
		}
		if value = strings.TrimSpace(value); value != "" {
			locs = append(locs, value)
		}
	}
}

// fromLinks performs bounded breadth-first link following from baseURL.
// At every step |discovered| <= maxPages and |queue| <= maxQueue.
func (c *Crawler) fromLinks(ctx context.Context, baseURL string) []string {
	var urls []string
	discovered := make(map[string]bool)
	visited := make(map[string]bool)
	queue := []string{baseURL}

	for len(queue) > 0 && len(urls) < c.maxPages {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		if err := c.limiter.Wait(ctx); err != nil {
			// Context cancelled; return what we have.
			return urls
		}

		body, err := c.fetcher.Fetch(ctx, current)
		if err != nil {
			logger.Warn("Error crawling %s: %v", current, err)
			continue
		}

		for _, href := range pageLinks(body) {
			full := resolveURL(baseURL, href)
			if full == "" || visited[full] || discovered[full] {
				continue
			}
			if !strings.HasPrefix(full, baseURL) || !isCrawlTarget(full, baseURL) {
				continue
			}
			if len(urls) < c.maxPages {
				discovered[full] = true
				urls = append(urls, full)
			}
			if len(queue) < c.maxQueue {
				queue = append(queue, full)
			}
		}
	}

	return urls
}

// pageLinks returns the href values of all hyperlinks in an HTML page.
func pageLinks(body []byte) []string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	var hrefs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, a := range n.Attr {
				if a.Key == "href" && a.Val != "" {
					hrefs = append(hrefs, a.Val)
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return hrefs
}

// resolveURL resolves ref against base, dropping fragments.
func resolveURL(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ""
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	resolved := b.ResolveReference(r)
	resolved.Fragment = ""
	return resolved.String()
}

// isContentURL reports whether a sitemap entry belongs to the site and
// looks like a content page.
func isContentURL(u, baseURL string) bool {
	if !strings.HasPrefix(u, baseURL) {
		return false
	}
	return strings.HasSuffix(u, ".html") || strings.HasSuffix(u, "/")
}

// isCrawlTarget reports whether a BFS-found URL looks like a content
// page: a documentation path, or anything ending in .html or /.
func isCrawlTarget(u, baseURL string) bool {
	if strings.Contains(u, contentMarker) {
		return true
	}
	return isContentURL(u, baseURL)
}
