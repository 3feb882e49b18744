package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/clearbrook-labs/supportrag/internal/core/domain"
)

// maxQuestionLen matches the HTTP API bound.
const maxQuestionLen = 500

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the support question to answer"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer           string                  `json:"answer"`
	Sources          []domain.SourceCitation `json:"sources"`
	Confidence       domain.Confidence       `json:"confidence"`
	SimilarQuestions []string                `json:"similar_questions"`
}

// HealthInput is the (empty) input schema for the health tool.
type HealthInput struct{}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a customer-support question from the indexed knowledge base",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "health",
		Description: "Report the serving-time health of the support chatbot",
	}, s.handleHealth)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if strings.TrimSpace(input.Question) == "" {
		return nil, AskOutput{}, fmt.Errorf("question cannot be empty")
	}
	if len(input.Question) > maxQuestionLen {
		return nil, AskOutput{}, fmt.Errorf("question too long (max %d characters)", maxQuestionLen)
	}

	answer := s.chat.Ask(ctx, input.Question)
	similar := s.chat.SimilarQuestions(ctx, input.Question, 0)

	return nil, AskOutput{
		Answer:           answer.Answer,
		Sources:          answer.Sources,
		Confidence:       answer.Confidence,
		SimilarQuestions: similar,
	}, nil
}

// handleHealth handles the health tool invocation.
func (s *Server) handleHealth(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ HealthInput,
) (*mcp.CallToolResult, domain.Health, error) {
	return nil, s.chat.HealthCheck(ctx), nil
}
