package crawler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/clearbrook-labs/supportrag/internal/content"
	"github.com/clearbrook-labs/supportrag/internal/core/domain"
	"github.com/clearbrook-labs/supportrag/internal/core/ports/driven"
	"github.com/clearbrook-labs/supportrag/internal/logger"
)

// DefaultDelay is the politeness delay between successive fetches.
const DefaultDelay = 2 * time.Second

// Config bounds one crawl.
type Config struct {
	// SupportRoot is the URL prefix defining the crawlable subsection.
	SupportRoot string

	// StartURL is the first page fetched. Defaults to SupportRoot.
	StartURL string

	// MaxDepth bounds path depth below the support root (default 2).
	MaxDepth int

	// MaxPages bounds the number of visited URLs (default 200).
	MaxPages int

	// Delay is the inter-request politeness delay (default 2s).
	Delay time.Duration
}

// Result summarises one crawl.
type Result struct {
	// Documents are the validated pages, in visit order.
	Documents []domain.Document

	// URLsVisited counts every fetch attempt, including rejected pages.
	URLsVisited int

	// QueueRemaining counts URLs left queued when the budget was hit.
	QueueRemaining int
}

// Crawler walks the support section breadth-first on a single control
// flow: dequeue, fetch, extract, validate, save, repeat. The only
// designed suspension point is the rate limiter wait between fetches.
type Crawler struct {
	cfg       Config
	fetcher   driven.Fetcher
	frontier  *Frontier
	extractor *Extractor
	writer    *PageWriter
	limiter   *rate.Limiter
}

// New creates a crawler. The writer may be nil to skip page persistence.
func New(cfg Config, fetcher driven.Fetcher, writer *PageWriter) *Crawler {
	if cfg.StartURL == "" {
		cfg.StartURL = cfg.SupportRoot
	}
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultDelay
	}

	frontier := NewFrontier(cfg.SupportRoot, cfg.MaxDepth, cfg.MaxPages)

	return &Crawler{
		cfg:       cfg,
		fetcher:   fetcher,
		frontier:  frontier,
		extractor: NewExtractor(frontier),
		writer:    writer,
		// Burst 1 lets the first fetch through without waiting; every
		// later fetch pays the full politeness interval.
		limiter: rate.NewLimiter(rate.Every(cfg.Delay), 1),
	}
}

// Crawl runs the traversal until the queue drains or the page budget is
// reached. Per-page failures are logged and skipped; Crawl only returns
// an error when the context is cancelled.
func (c *Crawler) Crawl(ctx context.Context) (*Result, error) {
	logger.Section("Crawl")
	logger.Info("Support root: %s (max depth %d, max pages %d)",
		c.cfg.SupportRoot, c.frontier.maxDepth, c.frontier.maxPages)

	c.frontier.Enqueue(c.cfg.StartURL)

	result := &Result{}

	for !c.frontier.BudgetExhausted() {
		url, ok := c.frontier.Dequeue()
		if !ok {
			break
		}
		if c.frontier.Visited(url) {
			continue
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		doc := c.crawlPage(ctx, url)
		if doc != nil {
			result.Documents = append(result.Documents, *doc)
		}
	}

	result.URLsVisited = c.frontier.VisitedCount()
	result.QueueRemaining = c.frontier.QueueLen()

	logger.Info("Crawl complete: %d pages visited, %d documents, %d queued",
		result.URLsVisited, len(result.Documents), result.QueueRemaining)

	return result, nil
}

// crawlPage fetches and processes one URL. Returns nil when the page was
// rejected or failed; the traversal always continues.
func (c *Crawler) crawlPage(ctx context.Context, url string) *domain.Document {
	depth := c.frontier.Depth(url)
	logger.Debug("Scraping (depth %d): %s", depth, url)

	// Marked before the fetch: a failed page is abandoned, never retried.
	c.frontier.MarkVisited(url)

	body, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		logger.Warn("Fetch failed for %s: %v", url, err)
		return nil
	}

	extraction, err := c.extractor.Extract(body, url)
	if err != nil {
		logger.Warn("Extraction failed for %s: %v", url, err)
		return nil
	}

	for _, link := range extraction.Links {
		c.frontier.Enqueue(link)
	}

	cleaned := content.Clean(extraction.Text)
	if !content.IsValid(cleaned) {
		logger.Debug("Invalid content for %s, skipping", url)
		return nil
	}

	if c.writer != nil {
		if _, err := c.writer.Write(url, extraction.Title, depth, cleaned); err != nil {
			logger.Warn("Could not save page %s: %v", url, err)
		}
	}

	logger.Debug("Extracted %d chars from %s (%d new links)",
		len(cleaned), url, len(extraction.Links))

	return &domain.Document{
		ID:      uuid.New().String(),
		Content: cleaned,
		Meta: domain.Metadata{
			Source:        url,
			Type:          domain.DocTypeWebPage,
			Title:         extraction.Title,
			Depth:         depth,
			ContentLength: len(cleaned),
		},
		CreatedAt: time.Now(),
	}
}
