package crawler

import (
	"regexp"
	"strings"
)

// Default traversal bounds.
const (
	DefaultMaxPages = 200
	DefaultMaxDepth = 2
)

// skipPatterns rejects binary downloads, auth pages, API endpoints and
// print views at enqueue time.
var skipPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\.pdf$`),
	regexp.MustCompile(`(?i)\.doc$`),
	regexp.MustCompile(`(?i)\.docx$`),
	regexp.MustCompile(`(?i)\.zip$`),
	regexp.MustCompile(`(?i)\.rar$`),
	regexp.MustCompile(`(?i)/login`),
	regexp.MustCompile(`(?i)/register`),
	regexp.MustCompile(`(?i)/download`),
	regexp.MustCompile(`(?i)/api/`),
	regexp.MustCompile(`#`),
	regexp.MustCompile(`(?i)\?print=`),
	regexp.MustCompile(`(?i)/print/`),
	regexp.MustCompile(`(?i)javascript:`),
}

// Frontier maintains the breadth-first traversal queue and the visited
// set, and enforces the depth and page-count bounds. Single-threaded:
// the crawl runs on one control flow, so no locking is needed here. If
// fetching is ever parallelised, ShouldFollow+Enqueue must become one
// synchronised test-and-set to keep the visit-once and budget invariants.
type Frontier struct {
	supportRoot string
	maxDepth    int
	maxPages    int

	queue   []string
	queued  map[string]bool
	visited map[string]bool
}

// NewFrontier creates a frontier for the given support-section root URL.
// Non-positive bounds fall back to the defaults.
func NewFrontier(supportRoot string, maxDepth, maxPages int) *Frontier {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	return &Frontier{
		supportRoot: strings.TrimSuffix(supportRoot, "/"),
		maxDepth:    maxDepth,
		maxPages:    maxPages,
		queued:      make(map[string]bool),
		visited:     make(map[string]bool),
	}
}

// Depth returns the number of non-empty path segments below the support
// root, or 0 for URLs outside the support section.
func (f *Frontier) Depth(url string) int {
	if !f.isSupportURL(url) {
		return 0
	}

	relative := strings.Trim(url[len(f.supportRoot):], "/")
	if relative == "" {
		return 0
	}

	return len(strings.Split(relative, "/"))
}

// ShouldFollow reports whether a URL is eligible for crawling: under the
// support root, not already visited, within the depth bound, and not
// matching any skip pattern.
func (f *Frontier) ShouldFollow(url string) bool {
	if !f.isSupportURL(url) {
		return false
	}
	if f.visited[url] {
		return false
	}
	if f.Depth(url) > f.maxDepth {
		return false
	}
	for _, pattern := range skipPatterns {
		if pattern.MatchString(url) {
			return false
		}
	}
	return true
}

// Enqueue appends the URL to the tail of the queue unless it was already
// visited or queued, or the page budget is exhausted.
func (f *Frontier) Enqueue(url string) {
	if f.visited[url] || f.queued[url] {
		return
	}
	if len(f.visited)+len(f.queue) >= f.maxPages {
		return
	}
	f.queue = append(f.queue, url)
	f.queued[url] = true
}

// Dequeue pops the head of the queue. Returns false when the queue is empty.
func (f *Frontier) Dequeue() (string, bool) {
	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue = f.queue[1:]
	delete(f.queued, url)
	return url, true
}

// MarkVisited records the URL in the visited set. Idempotent.
func (f *Frontier) MarkVisited(url string) {
	f.visited[url] = true
}

// Visited reports whether the URL has been crawled already.
func (f *Frontier) Visited(url string) bool {
	return f.visited[url]
}

// VisitedCount returns the number of crawled URLs.
func (f *Frontier) VisitedCount() int {
	return len(f.visited)
}

// QueueLen returns the number of URLs still queued.
func (f *Frontier) QueueLen() int {
	return len(f.queue)
}

// BudgetExhausted reports whether the page budget has been reached.
func (f *Frontier) BudgetExhausted() bool {
	return len(f.visited) >= f.maxPages
}

func (f *Frontier) isSupportURL(url string) bool {
	return strings.HasPrefix(url, f.supportRoot)
}
