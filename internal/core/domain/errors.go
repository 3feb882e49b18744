package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrFetch indicates a page could not be retrieved: network failure,
	// timeout, or a non-2xx status. The page is abandoned, never retried.
	ErrFetch = errors.New("fetch failed")

	// ErrNoDocuments indicates an ingestion run accumulated nothing.
	// Index construction is skipped entirely in this case.
	ErrNoDocuments = errors.New("no documents ingested")

	// ErrIndexMissing indicates the vector index directory does not exist.
	// Run an ingestion to build it.
	ErrIndexMissing = errors.New("vector index not built")

	// ErrIndexNotLoaded indicates a query arrived before Load.
	ErrIndexNotLoaded = errors.New("vector index not loaded")

	// ErrMissingAPIKey indicates the required LLM credential is absent.
	// This is fatal at startup, not absorbed like per-item failures.
	ErrMissingAPIKey = errors.New("OPENAI_API_KEY not set")

	// ErrLLMUnavailable indicates the language model service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
