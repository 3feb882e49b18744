package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearbrook-labs/supportrag/internal/core/domain"
)

type stubChat struct {
	answer  domain.Answer
	similar []string
	health  domain.Health

	lastQuestion string
}

func (s *stubChat) Ask(_ context.Context, question string) domain.Answer {
	s.lastQuestion = question
	return s.answer
}

func (s *stubChat) SimilarQuestions(context.Context, string, int) []string {
	return s.similar
}

func (s *stubChat) HealthCheck(context.Context) domain.Health {
	return s.health
}

type stubStore struct {
	stats *domain.IngestStats
	err   error
}

func (s *stubStore) Exists() bool { return s.stats != nil }
func (s *stubStore) Build(context.Context, []domain.Chunk, domain.IngestStats) error {
	return nil
}
func (s *stubStore) Load(context.Context) error { return nil }
func (s *stubStore) Search(context.Context, []float32, int) ([]domain.Hit, error) {
	return nil, nil
}
func (s *stubStore) Count(context.Context) (int, error) { return 0, nil }
func (s *stubStore) Metadata() (*domain.IngestStats, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.stats == nil {
		return nil, domain.ErrIndexMissing
	}
	return s.stats, nil
}
func (s *stubStore) Close() error { return nil }

func newTestServer(chat *stubChat, store *stubStore) *httptest.Server {
	s := New("", chat, store)
	return httptest.NewServer(s.Handler())
}

func TestAskEndpoint(t *testing.T) {
	chat := &stubChat{
		answer: domain.Answer{
			Answer: "Charges are listed on the pricing page.",
			Sources: []domain.SourceCitation{
				{Source: "https://example.com/support/charges", Type: domain.DocTypeWebPage, Title: "Charges"},
			},
			Confidence: domain.ConfidenceHigh,
		},
		similar: []string{"What are the account charges"},
	}
	srv := newTestServer(chat, &stubStore{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/ask", "application/json",
		strings.NewReader(`{"question": "What are the charges?"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	var body askResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Charges are listed on the pricing page.", body.Answer)
	assert.Equal(t, domain.ConfidenceHigh, body.Confidence)
	require.Len(t, body.Sources, 1)
	assert.Equal(t, []string{"What are the account charges"}, body.SimilarQuestions)
	assert.Equal(t, "What are the charges?", chat.lastQuestion)
}

func TestAskRejectsEmptyQuestion(t *testing.T) {
	srv := newTestServer(&stubChat{}, &stubStore{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/ask", "application/json",
		strings.NewReader(`{"question": "   "}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Error, "empty")
}

func TestAskRejectsLongQuestion(t *testing.T) {
	srv := newTestServer(&stubChat{}, &stubStore{})
	defer srv.Close()

	question := strings.Repeat("a", MaxQuestionLen+1)
	resp, err := http.Post(srv.URL+"/ask", "application/json",
		strings.NewReader(`{"question": "`+question+`"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAskRejectsMalformedBody(t *testing.T) {
	srv := newTestServer(&stubChat{}, &stubStore{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/ask", "application/json", strings.NewReader(`{`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	chat := &stubChat{health: domain.Health{
		Status:              "healthy",
		VectorStoreLoaded:   true,
		TotalDocuments:      10,
		TestQuerySuccessful: true,
	}}
	srv := newTestServer(chat, &stubStore{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health domain.Health
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, 10, health.TotalDocuments)
}

func TestSourcesEndpoint(t *testing.T) {
	store := &stubStore{stats: &domain.IngestStats{
		TotalDocuments: 4,
		TotalChunks:    40,
		Sources:        []string{"https://example.com/support/faq", "guide.pdf"},
	}}
	srv := newTestServer(&stubChat{}, store)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/sources")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body sourcesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 4, body.TotalDocuments)
	assert.Equal(t, 40, body.TotalChunks)
	assert.Len(t, body.Sources, 2)
}

func TestSourcesEndpointNoIndex(t *testing.T) {
	srv := newTestServer(&stubChat{}, &stubStore{err: domain.ErrIndexMissing})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/sources")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body sourcesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 0, body.TotalDocuments)
	assert.NotNil(t, body.Sources)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(&stubChat{}, &stubStore{})
	defer srv.Close()

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/ask", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
