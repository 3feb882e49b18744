// Package sqlite persists chunk embeddings in a single-file SQLite
// index and serves brute-force cosine-similarity retrieval over it.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/clearbrook-labs/supportrag/internal/core/domain"
	"github.com/clearbrook-labs/supportrag/internal/core/ports/driven"
	"github.com/clearbrook-labs/supportrag/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

const (
	dbFileName       = "index.db"
	metadataFileName = "metadata.json"

	// embedBatchSize bounds one embeddings API request at build time.
	embedBatchSize = 100
)

const schema = `
CREATE TABLE IF NOT EXISTS chunks (
	id          TEXT PRIMARY KEY,
	document_id TEXT NOT NULL,
	chunk_id    INTEGER NOT NULL,
	content     TEXT NOT NULL,
	metadata    TEXT NOT NULL,
	embedding   BLOB NOT NULL
);
`

// Store is a directory-backed vector index: index.db holds the chunks
// and their embeddings, metadata.json the ingestion summary.
type Store struct {
	dir      string
	embedder driven.EmbeddingService

	mu sync.RWMutex
	db *sql.DB
}

// New creates a store over the given directory. Nothing is opened until
// Build or Load.
func New(dir string, embedder driven.EmbeddingService) *Store {
	return &Store{dir: dir, embedder: embedder}
}

// Exists reports whether a built index is present in the directory.
func (s *Store) Exists() bool {
	for _, name := range []string{dbFileName, metadataFileName} {
		if _, err := os.Stat(filepath.Join(s.dir, name)); err != nil {
			return false
		}
	}
	return true
}

// Build embeds the chunks and persists them, replacing any previous
// index in the directory.
func (s *Store) Build(ctx context.Context, chunks []domain.Chunk, stats domain.IngestStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(chunks) == 0 {
		return domain.ErrNoDocuments
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}

	if s.db != nil {
		s.db.Close()
		s.db = nil
	}
	dbPath := filepath.Join(s.dir, dbFileName)
	if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing previous index: %w", err)
	}

	db, err := openDB(dbPath)
	if err != nil {
		return err
	}

	logger.Info("Building vector index: %d chunks, model %s", len(chunks), s.embedder.ModelName())

	if err := s.insertChunks(ctx, db, chunks); err != nil {
		db.Close()
		return err
	}

	if err := writeMetadata(filepath.Join(s.dir, metadataFileName), stats); err != nil {
		db.Close()
		return err
	}

	s.db = db
	return nil
}

// insertChunks embeds and writes all chunks in one transaction, so a
// failed build never leaves a partially filled index.
func (s *Store) insertChunks(ctx context.Context, db *sql.DB, chunks []domain.Chunk) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, document_id, chunk_id, content, metadata, embedding)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Content
		}

		embeddings, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("embedding batch at %d: %w", start, err)
		}
		if len(embeddings) != len(batch) {
			return fmt.Errorf("embedding batch at %d: got %d vectors for %d texts",
				start, len(embeddings), len(batch))
		}

		for i, chunk := range batch {
			metadataJSON, err := json.Marshal(chunk.Meta)
			if err != nil {
				return fmt.Errorf("marshaling chunk metadata: %w", err)
			}

			_, err = stmt.ExecContext(ctx,
				chunk.ID, chunk.DocumentID, chunk.ChunkID, chunk.Content,
				string(metadataJSON), float32SliceToBytes(embeddings[i]))
			if err != nil {
				return fmt.Errorf("inserting chunk %s: %w", chunk.ID, err)
			}
		}

		logger.Debug("Embedded %d/%d chunks", end, len(chunks))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing index: %w", err)
	}
	return nil
}

// Load opens a previously built index for querying.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return nil
	}
	if !s.Exists() {
		return domain.ErrIndexMissing
	}

	db, err := openDB(filepath.Join(s.dir, dbFileName))
	if err != nil {
		return err
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&count); err != nil {
		db.Close()
		return fmt.Errorf("verifying index: %w", err)
	}

	logger.Info("Loaded vector index: %d chunks", count)
	s.db = db
	return nil
}

// Search returns up to k chunks ranked by descending cosine similarity
// to the query embedding. The scan is brute force over every stored
// vector; at support-site scale that is a few thousand rows.
func (s *Store) Search(ctx context.Context, embedding []float32, k int) ([]domain.Hit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, domain.ErrIndexNotLoaded
	}
	if k <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, chunk_id, content, metadata, embedding FROM chunks
	`)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var hits []domain.Hit
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}

		hits = append(hits, domain.Hit{
			Chunk:      *chunk,
			Similarity: cosineSimilarity(embedding, chunk.Embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Count returns the number of indexed chunks.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return 0, domain.ErrIndexNotLoaded
	}

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return count, nil
}

// Metadata returns the ingestion stats persisted with the index.
func (s *Store) Metadata() (*domain.IngestStats, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, metadataFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrIndexMissing
		}
		return nil, fmt.Errorf("reading index metadata: %w", err)
	}

	var stats domain.IngestStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("unmarshaling index metadata: %w", err)
	}
	return &stats, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening index database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return db, nil
}

func writeMetadata(path string, stats domain.IngestStats) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling index metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing index metadata: %w", err)
	}
	return nil
}

// scanChunk reads one chunk row including its embedding.
func scanChunk(rows *sql.Rows) (*domain.Chunk, error) {
	var chunk domain.Chunk
	var metadataJSON string
	var embeddingBlob []byte

	if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.ChunkID,
		&chunk.Content, &metadataJSON, &embeddingBlob); err != nil {
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}

	if err := json.Unmarshal([]byte(metadataJSON), &chunk.Meta); err != nil {
		return nil, fmt.Errorf("unmarshaling chunk metadata: %w", err)
	}
	chunk.Embedding = bytesToFloat32Slice(embeddingBlob)
	return &chunk, nil
}

// float32SliceToBytes converts a []float32 to a little-endian byte blob.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte blob back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched or zero-magnitude vectors score zero.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
