package services

import (
	"context"

	"github.com/clearbrook-labs/supportrag/internal/core/domain"
	"github.com/clearbrook-labs/supportrag/internal/core/ports/driven"
	"github.com/clearbrook-labs/supportrag/internal/crawler"
)

// Shared test doubles for the service tests.

type stubEmbedder struct {
	err   error
	calls int
}

func (s *stubEmbedder) Embed(context.Context, string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []float32{1, 0, 0}, nil
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		v, err := s.Embed(ctx, texts[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (s *stubEmbedder) Dimensions() int   { return 3 }
func (s *stubEmbedder) ModelName() string { return "stub-embedder" }

type stubLLM struct {
	answer string
	err    error
	calls  int

	lastPrompt string
}

func (s *stubLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

func (s *stubLLM) ModelName() string          { return "stub-llm" }
func (s *stubLLM) Ping(context.Context) error { return nil }

type stubStore struct {
	hits      []domain.Hit
	searchErr error
	countErr  error
	stats     *domain.IngestStats
	metaErr   error

	built      []domain.Chunk
	builtStats domain.IngestStats
	buildErr   error
}

func (s *stubStore) Exists() bool { return s.stats != nil }

func (s *stubStore) Build(_ context.Context, chunks []domain.Chunk, stats domain.IngestStats) error {
	if s.buildErr != nil {
		return s.buildErr
	}
	s.built = chunks
	s.builtStats = stats
	return nil
}

func (s *stubStore) Load(context.Context) error { return nil }

func (s *stubStore) Search(context.Context, []float32, int) ([]domain.Hit, error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return s.hits, nil
}

func (s *stubStore) Count(context.Context) (int, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	return len(s.hits), nil
}

func (s *stubStore) Metadata() (*domain.IngestStats, error) {
	if s.metaErr != nil {
		return nil, s.metaErr
	}
	return s.stats, nil
}

func (s *stubStore) Close() error { return nil }

type stubCrawler struct {
	result *crawler.Result
	err    error
}

func (s *stubCrawler) Crawl(context.Context) (*crawler.Result, error) {
	return s.result, s.err
}

type stubLoader struct {
	docs []domain.Document
}

func (s *stubLoader) Load() []domain.Document { return s.docs }

func webHit(source, title, content string) domain.Hit {
	return domain.Hit{
		Chunk: domain.Chunk{
			ID:      "chunk-" + title,
			Content: content,
			Meta: domain.Metadata{
				Source: source,
				Type:   domain.DocTypeWebPage,
				Title:  title,
			},
		},
		Similarity: 0.9,
	}
}
