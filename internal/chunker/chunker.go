// Package chunker splits document content into fixed-size overlapping
// windows for embedding.
package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/clearbrook-labs/supportrag/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per window.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of characters shared by
// adjacent windows.
const DefaultChunkOverlap = 200

// MinChunkLen is the floor below which a trimmed window is discarded.
const MinChunkLen = 50

// Chunker splits documents into windows of chunkSize characters,
// stepping by chunkSize-overlap.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the window size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between adjacent windows in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Overlap must leave a positive step or the scan never advances.
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// Split cuts one document into chunks. Each chunk carries a copy of the
// parent metadata and its window index; windows whose trimmed text falls
// under MinChunkLen are dropped, so indices may have gaps.
// Windows are measured in runes so a multi-byte character on a window
// boundary is never split.
func (c *Chunker) Split(doc domain.Document) []domain.Chunk {
	if doc.Content == "" {
		return nil
	}

	content := []rune(doc.Content)
	contentLen := len(content)
	step := c.chunkSize - c.overlap

	chunks := make([]domain.Chunk, 0, contentLen/step+1)

	index := 0
	for start := 0; start < contentLen; start += step {
		end := start + c.chunkSize
		if end > contentLen {
			end = contentLen
		}

		window := strings.TrimSpace(string(content[start:end]))
		if utf8.RuneCountInString(window) >= MinChunkLen {
			chunks = append(chunks, domain.Chunk{
				ID:         uuid.New().String(),
				DocumentID: doc.ID,
				Content:    window,
				ChunkID:    index,
				Meta:       doc.Meta,
			})
		}
		index++
	}

	return chunks
}

// SplitAll chunks every document in order.
func (c *Chunker) SplitAll(docs []domain.Document) []domain.Chunk {
	var chunks []domain.Chunk
	for _, doc := range docs {
		chunks = append(chunks, c.Split(doc)...)
	}
	return chunks
}
