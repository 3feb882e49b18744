package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/clearbrook-labs/supportrag/internal/core/domain"
	"github.com/clearbrook-labs/supportrag/internal/core/ports/driven"
	"github.com/clearbrook-labs/supportrag/internal/core/ports/driving"
	"github.com/clearbrook-labs/supportrag/internal/logger"
)

// Ensure Chat implements the interface.
var _ driving.ChatService = (*Chat)(nil)

// retrievalK is how many chunks ground each answer.
const retrievalK = 5

// DefaultSimilarQuestions is how many suggestions SimilarQuestions
// returns when the caller passes n <= 0.
const DefaultSimilarQuestions = 3

// canaryQuestion exercises the full Ask path during health checks.
const canaryQuestion = "How do I open an account?"

const (
	noAnswer    = "I don't know."
	errorAnswer = "I encountered an error while processing your question. " +
		"Please try again or contact support."
)

// answerPrompt constrains the model to the retrieved context. The exact
// "I don't know." instruction doubles as the confidence signal, so the
// wording here and in the heuristic below must stay in sync.
const answerPrompt = `You are a customer support assistant. Answer questions based ONLY on the provided context from the official support documentation.

IMPORTANT RULES:
1. Only answer questions using information from the provided context
2. If the context doesn't contain enough information to answer the question, respond with "I don't know."
3. Be helpful and specific when you can answer based on the context
4. Always mention relevant policy numbers, charges, or specific procedures when available in the context
5. Format your response clearly and professionally

Context: %s

Question: %s

Answer:`

// interrogativePrefixes marks sentences that read like questions even
// without a question mark.
var interrogativePrefixes = []string{
	"what", "how", "when", "where", "why", "can", "do", "is", "are",
}

// Chat answers support questions by retrieving indexed chunks and
// generating grounded answers. Every failure degrades into an
// apologetic payload; Ask never propagates an error to the caller.
type Chat struct {
	embedder driven.EmbeddingService
	llm      driven.LLMService
	store    driven.VectorStore
}

// NewChat creates the chat service.
func NewChat(embedder driven.EmbeddingService, llm driven.LLMService, store driven.VectorStore) *Chat {
	return &Chat{embedder: embedder, llm: llm, store: store}
}

// Ask answers one question from the indexed knowledge base.
func (c *Chat) Ask(ctx context.Context, question string) domain.Answer {
	hits, err := c.retrieve(ctx, question)
	if err != nil {
		logger.Warn("Error processing question: %v", err)
		return errorPayload()
	}

	if len(hits) == 0 {
		return domain.Answer{
			Answer:     noAnswer,
			Sources:    []domain.SourceCitation{},
			Confidence: domain.ConfidenceLow,
		}
	}

	prompt := fmt.Sprintf(answerPrompt, formatContext(hits), question)
	answer, err := c.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   500,
		Temperature: 0.1,
	})
	if err != nil {
		logger.Warn("Error processing question: %v", err)
		return errorPayload()
	}

	confidence := domain.ConfidenceHigh
	if strings.Contains(answer, "I don't know") {
		confidence = domain.ConfidenceLow
	}

	citations := make([]domain.SourceCitation, 0, len(hits))
	for _, hit := range hits {
		citations = append(citations, domain.SourceCitation{
			Source: hit.Chunk.Meta.Source,
			Type:   hit.Chunk.Meta.Type,
			Title:  hit.Chunk.Meta.Title,
		})
	}

	return domain.Answer{
		Answer:     answer,
		Sources:    domain.DedupeCitations(citations),
		Confidence: confidence,
	}
}

// SimilarQuestions surfaces question-like sentences from the chunks
// most similar to the given question. Failures yield an empty slice.
func (c *Chat) SimilarQuestions(ctx context.Context, question string, n int) []string {
	if n <= 0 {
		n = DefaultSimilarQuestions
	}

	hits, err := c.retrieve(ctx, question)
	if err != nil {
		logger.Debug("Similar questions unavailable: %v", err)
		return []string{}
	}
	if len(hits) > n {
		hits = hits[:n]
	}

	questions := make([]string, 0, n)
	for _, hit := range hits {
		for _, sentence := range strings.Split(hit.Chunk.Content, ".") {
			sentence = strings.TrimSpace(sentence)
			if !looksLikeQuestion(sentence) {
				continue
			}
			if len(sentence) > 10 && len(sentence) < 100 {
				questions = append(questions, sentence)
				if len(questions) >= n {
					return questions
				}
			}
		}
	}
	return questions
}

// HealthCheck runs the canary question through the full Ask path.
func (c *Chat) HealthCheck(ctx context.Context) domain.Health {
	result := c.Ask(ctx, canaryQuestion)

	health := domain.Health{
		Status:              "healthy",
		TestQuerySuccessful: result.Confidence != domain.ConfidenceError,
	}

	if _, err := c.store.Count(ctx); err != nil {
		health.Status = "error"
		health.Error = err.Error()
		return health
	}
	health.VectorStoreLoaded = true

	if stats, err := c.store.Metadata(); err == nil {
		health.TotalDocuments = stats.TotalChunks
	}

	return health
}

// retrieve embeds the question and fetches the top matching chunks.
func (c *Chat) retrieve(ctx context.Context, question string) ([]domain.Hit, error) {
	embedding, err := c.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embedding question: %w", err)
	}

	hits, err := c.store.Search(ctx, embedding, retrievalK)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}
	return hits, nil
}

// formatContext renders retrieved chunks as a numbered context block.
func formatContext(hits []domain.Hit) string {
	blocks := make([]string, 0, len(hits))
	for i, hit := range hits {
		blocks = append(blocks, fmt.Sprintf("Document %d (Source: %s, Type: %s):\n%s\n",
			i+1, hit.Chunk.Meta.Source, hit.Chunk.Meta.Type, hit.Chunk.Content))
	}
	return strings.Join(blocks, "\n")
}

func looksLikeQuestion(sentence string) bool {
	if strings.Contains(sentence, "?") {
		return true
	}
	lower := strings.ToLower(sentence)
	for _, prefix := range interrogativePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

func errorPayload() domain.Answer {
	return domain.Answer{
		Answer:     errorAnswer,
		Sources:    []domain.SourceCitation{},
		Confidence: domain.ConfidenceError,
	}
}
