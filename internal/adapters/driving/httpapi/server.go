// Package httpapi exposes the chat service over a thin JSON API:
// POST /ask, GET /health, GET /sources.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/clearbrook-labs/supportrag/internal/core/domain"
	"github.com/clearbrook-labs/supportrag/internal/core/ports/driven"
	"github.com/clearbrook-labs/supportrag/internal/core/ports/driving"
	"github.com/clearbrook-labs/supportrag/internal/logger"
)

// MaxQuestionLen bounds a question in characters.
const MaxQuestionLen = 500

// Server serves the JSON API.
type Server struct {
	chat  driving.ChatService
	store driven.VectorStore
	http  *http.Server
}

// askRequest is the POST /ask body.
type askRequest struct {
	Question string `json:"question"`
}

// askResponse extends the chat answer with follow-up suggestions.
type askResponse struct {
	Answer           string                  `json:"answer"`
	Sources          []domain.SourceCitation `json:"sources"`
	Confidence       domain.Confidence       `json:"confidence"`
	SimilarQuestions []string                `json:"similar_questions"`
}

// sourcesResponse summarises what the index was built from.
type sourcesResponse struct {
	TotalDocuments int      `json:"total_documents"`
	TotalChunks    int      `json:"total_chunks"`
	Sources        []string `json:"sources"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// New creates the API server listening on addr.
func New(addr string, chat driving.ChatService, store driven.VectorStore) *Server {
	s := &Server{chat: chat, store: store}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler builds the route table wrapped in CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /ask", s.handleAsk)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /sources", s.handleSources)
	return cors(mux)
}

// ListenAndServe blocks serving requests until Shutdown.
func (s *Server) ListenAndServe() error {
	logger.Info("HTTP API listening on %s", s.http.Addr)
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Question cannot be empty"})
		return
	}
	if len(req.Question) > MaxQuestionLen {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Question too long (max 500 characters)"})
		return
	}

	logger.Debug("Processing question: %.100s", req.Question)

	answer := s.chat.Ask(r.Context(), req.Question)
	similar := s.chat.SimilarQuestions(r.Context(), req.Question, 0)

	writeJSON(w, http.StatusOK, askResponse{
		Answer:           answer.Answer,
		Sources:          answer.Sources,
		Confidence:       answer.Confidence,
		SimilarQuestions: similar,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.chat.HealthCheck(r.Context()))
}

func (s *Server) handleSources(w http.ResponseWriter, _ *http.Request) {
	stats, err := s.store.Metadata()
	if err != nil {
		writeJSON(w, http.StatusOK, sourcesResponse{Sources: []string{}})
		return
	}

	sources := stats.Sources
	if sources == nil {
		sources = []string{}
	}
	writeJSON(w, http.StatusOK, sourcesResponse{
		TotalDocuments: stats.TotalDocuments,
		TotalChunks:    stats.TotalChunks,
		Sources:        sources,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("Could not write response: %v", err)
	}
}

// cors allows the chat widget to call the API from any origin.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
