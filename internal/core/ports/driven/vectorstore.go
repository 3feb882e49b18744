package driven

import (
	"context"

	"github.com/clearbrook-labs/supportrag/internal/core/domain"
)

// VectorStore persists chunk embeddings and supports nearest-neighbour
// retrieval. It is keyed by a directory on disk; presence-checking is a
// first-class operation rather than an incidental filesystem probe.
// The store is the only entity with cross-run persistence.
type VectorStore interface {
	// Exists reports whether a built index is present in the directory.
	Exists() bool

	// Build embeds the chunks and persists them, replacing any previous
	// index in the directory. Stats are written alongside as metadata.
	Build(ctx context.Context, chunks []domain.Chunk, stats domain.IngestStats) error

	// Load opens a previously built index for querying.
	Load(ctx context.Context) error

	// Search returns up to k chunks ranked by descending similarity
	// to the query embedding.
	Search(ctx context.Context, embedding []float32, k int) ([]domain.Hit, error)

	// Count returns the number of indexed chunks.
	Count(ctx context.Context) (int, error)

	// Metadata returns the ingestion stats persisted with the index.
	Metadata() (*domain.IngestStats, error)

	// Close releases resources.
	Close() error
}
