package driving

import (
	"context"

	"github.com/clearbrook-labs/supportrag/internal/core/domain"
)

// ChatService answers support questions from the indexed knowledge base.
// All operations degrade rather than fail: Ask returns an apologetic
// payload with confidence "error" instead of propagating internal faults,
// and SimilarQuestions returns an empty slice on any failure.
type ChatService interface {
	// Ask retrieves relevant chunks for the question and synthesises a
	// grounded answer with source citations and a confidence label.
	// The caller validates that the question is non-empty and at most
	// 500 characters; Ask itself does not re-validate.
	Ask(ctx context.Context, question string) domain.Answer

	// SimilarQuestions surfaces up to n question-like sentences found in
	// the chunks most similar to the given question.
	SimilarQuestions(ctx context.Context, question string, n int) []string

	// HealthCheck runs a canary question through Ask and reports the
	// serving-time state of the system.
	HealthCheck(ctx context.Context) domain.Health
}
