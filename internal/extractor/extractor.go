// Package extractor turns a fetched HTML page into clean,
// whitespace-normalised text with a title.
package extractor

import (
	"bytes"
	"context"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/askdocs-labs/askdocs-cli/internal/core/domain"
	"github.com/askdocs-labs/askdocs-cli/internal/core/ports/driven"
	"github.com/askdocs-labs/askdocs-cli/internal/logger"
)

// structuralElements are removed before content selection; they hold
// navigation chrome, not page content.
var structuralElements = []string{"nav", "header", "footer", "aside"}

// strippedElements never contribute visible text.
var strippedElements = []string{"script", "style", "noscript", "svg", "head", "template"}

// contentSelectors is the prioritised list of content containers,
// Docusaurus-style themes first. The first match wins; the page body
// is the fallback.
var contentSelectors = []selector{
	{attr: "role", value: "main"},
	{class: "main-wrapper"},
	{class: "container"},
	{class: "theme-doc-markdown"},
	{class: "markdown"},
	{class: "doc-content"},
	{class: "article"},
	{tag: "main"},
	{class: "content"},
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// selector matches an element by tag name, class membership, or an
// exact attribute value. Zero fields are ignored.
type selector struct {
	tag   string
	class string
	attr  string
	value string
}

// Extractor fetches a URL and extracts its visible text content.
type Extractor struct {
	fetcher driven.Fetcher
}

// New creates an extractor using the given fetcher.
func New(fetcher driven.Fetcher) *Extractor {
	return &Extractor{fetcher: fetcher}
}

// Extract returns the clean text and title for one URL. It never
// returns an error: fetch or parse failures yield an empty-content
// page with the failure message under Metadata["error"], so ingestion
// can continue past single-page failures.
func (e *Extractor) Extract(ctx context.Context, pageURL string) domain.Page {
	body, err := e.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		logger.Warn("Extract %s: %v", pageURL, err)
		return errorPage(pageURL, err)
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		logger.Warn("Extract %s: parse: %v", pageURL, err)
		return errorPage(pageURL, err)
	}

	title := extractTitle(doc, pageURL)

	removeElements(doc, strippedElements)
	removeElements(doc, structuralElements)

	content := findContent(doc)
	if content == nil {
		content = findNode(doc, selector{tag: "body"})
	}
	if content == nil {
		content = doc
	}

	text := collectText(content)

	return domain.Page{
		URL:      pageURL,
		Title:    title,
		Content:  text,
		Metadata: map[string]any{},
	}
}

func errorPage(pageURL string, err error) domain.Page {
	return domain.Page{
		URL:      pageURL,
		Metadata: map[string]any{"error": err.Error()},
	}
}

// extractTitle returns the <title> text, falling back to the final URL
// path segment when the document has none.
func extractTitle(doc *html.Node, pageURL string) string {
	if node := findNode(doc, selector{tag: "title"}); node != nil {
		if title := strings.TrimSpace(nodeText(node)); title != "" {
			return title
		}
	}
	return titleFromURL(pageURL)
}

// titleFromURL derives a title from the last non-empty path segment.
func titleFromURL(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return pageURL
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	last := segments[len(segments)-1]
	if last == "" {
		return u.Host
	}
	return last
}

// findContent returns the first node matching the prioritised content
// selectors.
func findContent(doc *html.Node) *html.Node {
	for _, sel := range contentSelectors {
		if node := findNode(doc, sel); node != nil {
			return node
		}
	}
	return nil
}

// findNode walks the tree depth-first and returns the first element
// matching the selector.
func findNode(n *html.Node, sel selector) *html.Node {
	if n.Type == html.ElementNode && matches(n, sel) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, sel); found != nil {
			return found
		}
	}
	return nil
}

func matches(n *html.Node, sel selector) bool {
	if sel.tag != "" && n.Data != sel.tag {
		return false
	}
	if sel.attr != "" && attrValue(n, sel.attr) != sel.value {
		return false
	}
	if sel.class != "" && !hasClass(n, sel.class) {
		return false
	}
	return sel.tag != "" || sel.attr != "" || sel.class != ""
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attrValue(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// removeElements unlinks every element with one of the given names
// from the tree.
func removeElements(n *html.Node, names []string) {
	var c *html.Node
	for child := n.FirstChild; child != nil; child = c {
		c = child.NextSibling
		if child.Type == html.ElementNode && contains(names, child.Data) {
			n.RemoveChild(child)
			continue
		}
		removeElements(child, names)
	}
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// collectText gathers all text nodes under n, separated by single
// spaces, with whitespace runs collapsed.
func collectText(n *html.Node) string {
	var b strings.Builder
	appendText(&b, n)
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(b.String(), " "))
}

func appendText(b *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		appendText(b, c)
	}
}

// nodeText returns the concatenated text of a single node's subtree
// without whitespace normalisation.
func nodeText(n *html.Node) string {
	var b strings.Builder
	appendText(&b, n)
	return b.String()
}
