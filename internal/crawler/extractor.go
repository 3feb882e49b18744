package crawler

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// NoTitle is the placeholder used when a page has no title element.
const NoTitle = "No Title"

// unwantedSelector matches elements stripped before text extraction:
// scripts, styles, page chrome and interactive controls.
const unwantedSelector = "script, style, nav, footer, header, aside, button, input, form, advertisement, ad"

// contentSelectors is searched in priority order for the page's content
// region: semantic landmarks first for precision, then explicit support
// containers, then generic wrappers for recall. Falls back to body when
// nothing matches, so heterogeneous templates still yield usable text.
var contentSelectors = []string{
	"main", "article", "[role=main]",
	".content", ".main-content", ".support-content",
	".faq-content", ".help-content", "#main-content",
	".container", ".wrapper",
}

// minBlockTextLen filters out stray labels and one-word fragments.
const minBlockTextLen = 10

// Extraction holds the results of parsing one fetched page.
type Extraction struct {
	// Title is the page title, or NoTitle when absent.
	Title string

	// Text is the linearised content-region text, one block per line.
	Text string

	// Links are absolute, fragment- and query-stripped outbound URLs
	// that passed the frontier's eligibility rule. Deduplicated;
	// order is not guaranteed.
	Links []string
}

// Extractor parses fetched HTML into title, content text and outbound
// links. Link eligibility is delegated to the frontier.
type Extractor struct {
	frontier *Frontier
}

// NewExtractor creates an extractor that filters links through frontier.
func NewExtractor(frontier *Frontier) *Extractor {
	return &Extractor{frontier: frontier}
}

// Extract parses rawBody fetched from pageURL. Malformed HTML degrades to
// best-effort extraction; Extract only fails when the body cannot be
// parsed at all.
func (e *Extractor) Extract(rawBody []byte, pageURL string) (*Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rawBody))
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = NoTitle
	}

	// Collect links before stripping chrome: navigation elements are a
	// primary source of outbound support links.
	links := e.extractLinks(doc, pageURL)

	doc.Find(unwantedSelector).Remove()

	text := extractText(findContentAreas(doc))

	return &Extraction{
		Title: title,
		Text:  text,
		Links: links,
	}, nil
}

// extractLinks resolves every anchor against the page URL, strips fragment
// and query, and keeps only eligible, deduplicated support URLs.
func (e *Extractor) extractLinks(doc *goquery.Document, pageURL string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "mailto:") {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}

		resolved := base.ResolveReference(ref)
		resolved.Fragment = ""
		resolved.RawQuery = ""
		clean := resolved.String()

		if seen[clean] || !e.frontier.ShouldFollow(clean) {
			return
		}
		seen[clean] = true
		links = append(links, clean)
	})

	return links
}

// findContentAreas returns the first matching content-region selection,
// falling back to the whole body.
func findContentAreas(doc *goquery.Document) *goquery.Selection {
	for _, selector := range contentSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			return sel
		}
	}
	return doc.Find("body")
}

// extractText concatenates the trimmed text of block-level elements longer
// than minBlockTextLen, each followed by a newline.
func extractText(areas *goquery.Selection) string {
	var b strings.Builder

	areas.Find("p, div, h1, h2, h3, h4, h5, h6, li").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if len(text) > minBlockTextLen {
			b.WriteString(text)
			b.WriteString("\n")
		}
	})

	return b.String()
}
