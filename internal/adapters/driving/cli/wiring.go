package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/clearbrook-labs/supportrag/internal/adapters/driven/config/file"
	openaiembed "github.com/clearbrook-labs/supportrag/internal/adapters/driven/embedding/openai"
	openaillm "github.com/clearbrook-labs/supportrag/internal/adapters/driven/llm/openai"
	"github.com/clearbrook-labs/supportrag/internal/adapters/driven/vectorstore/sqlite"
	"github.com/clearbrook-labs/supportrag/internal/chunker"
	"github.com/clearbrook-labs/supportrag/internal/core/domain"
	"github.com/clearbrook-labs/supportrag/internal/core/services"
	"github.com/clearbrook-labs/supportrag/internal/crawler"
	"github.com/clearbrook-labs/supportrag/internal/loaders/docx"
	"github.com/clearbrook-labs/supportrag/internal/loaders/pdf"
)

var cfg *file.Config

// loadConfig reads the config file and fails fast on the one fatal
// configuration condition, a missing API key.
func loadConfig() error {
	if cfg != nil {
		return nil
	}

	loaded, err := file.Load(configPath)
	if err != nil {
		return err
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("%w (set it in the environment or a .env file)", err)
	}

	cfg = loaded
	return nil
}

// buildStack constructs the driven adapters shared by every command.
func buildStack() (*openaiembed.EmbeddingService, *openaillm.LLMService, *sqlite.Store, error) {
	embedder, err := openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.EmbeddingModel,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	llm, err := openaillm.NewLLMService(openaillm.Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.ChatModel,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	return embedder, llm, sqlite.New(cfg.Data.IndexDir, embedder), nil
}

// initChat wires the query-side services, loading the persisted index.
func initChat(ctx context.Context) error {
	if chatService != nil {
		return nil
	}
	if err := loadConfig(); err != nil {
		return err
	}

	embedder, llm, store, err := buildStack()
	if err != nil {
		return err
	}

	// Validates the credential before the index is touched, so a bad
	// key fails here instead of on the first question.
	if err := llm.Ping(ctx); err != nil {
		return fmt.Errorf("LLM connectivity check failed: %w", err)
	}

	if err := store.Load(ctx); err != nil {
		if errors.Is(err, domain.ErrIndexMissing) {
			return fmt.Errorf("no index found in %s: run 'supportrag ingest' first", cfg.Data.IndexDir)
		}
		return err
	}

	vectorStore = store
	chatService = services.NewChat(embedder, llm, store)
	return nil
}

// initIngest wires the ingestion pipeline.
func initIngest() error {
	if ingestService != nil {
		return nil
	}
	if err := loadConfig(); err != nil {
		return err
	}
	if cfg.Site.SupportRoot == "" {
		return fmt.Errorf("%w: site.support_root is not configured", domain.ErrInvalidInput)
	}

	_, _, store, err := buildStack()
	if err != nil {
		return err
	}

	writer, err := crawler.NewPageWriter(cfg.Data.ScrapedDir)
	if err != nil {
		return err
	}

	c := crawler.New(crawler.Config{
		SupportRoot: cfg.Site.SupportRoot,
		StartURL:    cfg.Site.StartURL,
		MaxDepth:    cfg.Site.MaxDepth,
		MaxPages:    cfg.Site.MaxPages,
		Delay:       cfg.Site.Delay(),
	}, crawler.NewFetcher(), writer)

	vectorStore = store
	ingestService = services.NewIngest(
		c,
		pdf.New(cfg.Data.PDFDir),
		docx.New(cfg.Data.DOCXDir),
		chunker.New(),
		store,
		cfg.Site.MaxDepth,
	)
	return nil
}
