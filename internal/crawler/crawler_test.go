package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearbrook-labs/supportrag/internal/core/domain"
)

const filler = "This support article explains the account opening flow in enough detail to pass validation."

func page(title, body string, links ...string) string {
	html := fmt.Sprintf("<html><head><title>%s</title></head><body><main><p>%s</p></main>", title, body)
	for _, l := range links {
		html += fmt.Sprintf(`<a href="%s">link</a>`, l)
	}
	return html + "</body></html>"
}

func newTestSite(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/support", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, page("Support Home", filler, "/support/margin", "/support/charges", "/pricing"))
	})
	mux.HandleFunc("/support/margin", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, page("Margin", filler, "/support/margin/pledge", "/support/margin/a/b"))
	})
	mux.HandleFunc("/support/charges", func(w http.ResponseWriter, _ *http.Request) {
		// Navigation-dominated page: extracted but rejected by IsValid.
		fmt.Fprint(w, page("Charges", "menu navigation footer header login register menu navigation footer header"))
	})
	mux.HandleFunc("/support/margin/pledge", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, page("Pledge", filler))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestCrawler(t *testing.T, srv *httptest.Server, cfg Config, dir string) *Crawler {
	t.Helper()

	cfg.SupportRoot = srv.URL + "/support"
	cfg.Delay = time.Millisecond

	var writer *PageWriter
	if dir != "" {
		var err error
		writer, err = NewPageWriter(dir)
		require.NoError(t, err)
	}

	return New(cfg, NewFetcherWithClient(srv.Client()), writer)
}

func TestCrawlWalksSupportSection(t *testing.T) {
	srv := newTestSite(t)
	c := newTestCrawler(t, srv, Config{MaxDepth: 2, MaxPages: 200}, "")

	result, err := c.Crawl(context.Background())
	require.NoError(t, err)

	// Four pages fetched; the nav-dominated one produced no document and
	// /support/margin/a/b was never followed (depth 3).
	assert.Equal(t, 4, result.URLsVisited)
	assert.Equal(t, 0, result.QueueRemaining)
	require.Len(t, result.Documents, 3)

	sources := make([]string, 0, len(result.Documents))
	for _, d := range result.Documents {
		sources = append(sources, d.Meta.Source)
		assert.NotEmpty(t, d.ID)
		assert.Equal(t, domain.DocTypeWebPage, d.Meta.Type)
		assert.Equal(t, len(d.Content), d.Meta.ContentLength)
	}
	assert.Equal(t, []string{
		srv.URL + "/support",
		srv.URL + "/support/margin",
		srv.URL + "/support/margin/pledge",
	}, sources, "breadth-first visit order")
}

func TestCrawlRespectsPageBudget(t *testing.T) {
	srv := newTestSite(t)
	c := newTestCrawler(t, srv, Config{MaxDepth: 2, MaxPages: 2}, "")

	result, err := c.Crawl(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.URLsVisited)
}

func TestCrawlSavesPages(t *testing.T) {
	srv := newTestSite(t)
	dir := t.TempDir()
	c := newTestCrawler(t, srv, Config{MaxDepth: 2, MaxPages: 200}, dir)

	_, err := c.Crawl(context.Background())
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	data, err := os.ReadFile(filepath.Join(dir, "_support_margin.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Title: Margin\n")
	assert.Contains(t, string(data), filler)
}

func TestCrawlSurvivesFetchFailures(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/support", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, page("Home", filler, "/support/broken", "/support/ok"))
	})
	mux.HandleFunc("/support/broken", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/support/ok", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, page("OK", filler))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestCrawler(t, srv, Config{MaxDepth: 2, MaxPages: 200}, "")

	result, err := c.Crawl(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Documents, 2)
	assert.Equal(t, srv.URL+"/support/ok", result.Documents[1].Meta.Source)
}

func TestCrawlCancelled(t *testing.T) {
	srv := newTestSite(t)
	c := newTestCrawler(t, srv, Config{MaxDepth: 2, MaxPages: 200}, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Crawl(ctx)
	assert.Error(t, err)
}
