package services

import (
	"context"
	"time"

	"github.com/clearbrook-labs/supportrag/internal/chunker"
	"github.com/clearbrook-labs/supportrag/internal/core/domain"
	"github.com/clearbrook-labs/supportrag/internal/core/ports/driven"
	"github.com/clearbrook-labs/supportrag/internal/core/ports/driving"
	"github.com/clearbrook-labs/supportrag/internal/crawler"
	"github.com/clearbrook-labs/supportrag/internal/logger"
)

// Ensure Ingest implements the interface.
var _ driving.IngestService = (*Ingest)(nil)

// Crawler walks the support site and returns extracted documents.
type Crawler interface {
	Crawl(ctx context.Context) (*crawler.Result, error)
}

// Ingest runs the complete ingestion pipeline: crawl, load local
// documents, chunk, and build the vector index. Single-threaded by
// design; each run rebuilds the index from scratch.
type Ingest struct {
	crawler  Crawler
	pdfs     driven.DocumentLoader
	docx     driven.DocumentLoader
	splitter *chunker.Chunker
	store    driven.VectorStore
	maxDepth int
}

// NewIngest creates the ingestion service.
func NewIngest(c Crawler, pdfs, docx driven.DocumentLoader, splitter *chunker.Chunker,
	store driven.VectorStore, maxDepth int) *Ingest {
	return &Ingest{
		crawler:  c,
		pdfs:     pdfs,
		docx:     docx,
		splitter: splitter,
		store:    store,
		maxDepth: maxDepth,
	}
}

// Run executes one ingestion run and returns its summary.
func (s *Ingest) Run(ctx context.Context) (*domain.IngestStats, error) {
	logger.Section("Ingestion")

	crawled, err := s.crawler.Crawl(ctx)
	if err != nil {
		return nil, err
	}
	documents := crawled.Documents

	logger.Section("Local documents")
	documents = append(documents, s.pdfs.Load()...)
	documents = append(documents, s.docx.Load()...)

	if len(documents) == 0 {
		logger.Warn("No documents were processed. Check the support URL and data directories.")
		return nil, domain.ErrNoDocuments
	}

	chunks := s.splitter.SplitAll(documents)
	logger.Info("Created %d chunks from %d documents", len(chunks), len(documents))
	if len(chunks) == 0 {
		return nil, domain.ErrNoDocuments
	}

	stats := buildStats(documents, chunks, crawled.URLsVisited, s.maxDepth)

	logger.Section("Vector index")
	if err := s.store.Build(ctx, chunks, stats); err != nil {
		return nil, err
	}

	logger.Info("Ingestion complete: %d documents, %d chunks, %d sources",
		stats.TotalDocuments, stats.TotalChunks, len(stats.Sources))

	return &stats, nil
}

// buildStats summarises a run: totals, distinct sources and types in
// first-seen order, per-type counts.
func buildStats(documents []domain.Document, chunks []domain.Chunk, urlsVisited, maxDepth int) domain.IngestStats {
	stats := domain.IngestStats{
		TotalDocuments: len(documents),
		TotalChunks:    len(chunks),
		URLsVisited:    urlsVisited,
		MaxDepth:       maxDepth,
		CreatedAt:      time.Now().UTC(),
	}

	seenSources := make(map[string]bool)
	seenTypes := make(map[domain.DocType]bool)
	for _, doc := range documents {
		if !seenSources[doc.Meta.Source] {
			seenSources[doc.Meta.Source] = true
			stats.Sources = append(stats.Sources, doc.Meta.Source)
		}
		if !seenTypes[doc.Meta.Type] {
			seenTypes[doc.Meta.Type] = true
			stats.DocumentTypes = append(stats.DocumentTypes, string(doc.Meta.Type))
		}

		switch doc.Meta.Type {
		case domain.DocTypeWebPage:
			stats.WebPages++
		case domain.DocTypePDF:
			stats.PDFs++
		case domain.DocTypeDOCX:
			stats.DOCXs++
		}
	}

	return stats
}
