package driving

import (
	"context"

	"github.com/clearbrook-labs/supportrag/internal/core/domain"
)

// IngestService runs the complete ingestion pipeline: crawl the support
// section, load local PDF and DOCX files, chunk everything, and build the
// persistent vector index. Safe to call repeatedly; each run re-crawls
// and rebuilds the index from scratch.
type IngestService interface {
	// Run executes one ingestion run and returns its summary.
	// A run that accumulates zero documents returns domain.ErrNoDocuments
	// without attempting index construction.
	Run(ctx context.Context) (*domain.IngestStats, error)
}
