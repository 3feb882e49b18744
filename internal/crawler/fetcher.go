package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/clearbrook-labs/supportrag/internal/core/domain"
	"github.com/clearbrook-labs/supportrag/internal/core/ports/driven"
)

// Ensure Fetcher implements the port.
var _ driven.Fetcher = (*Fetcher)(nil)

// DefaultFetchTimeout is the per-request timeout.
const DefaultFetchTimeout = 15 * time.Second

// maxBodySize bounds how much of a response body is read (5MB).
const maxBodySize = int64(5 * 1024 * 1024)

// browserHeaders is the fixed browser-identifying header set sent with
// every request. Some support sites serve reduced pages to unknown agents.
var browserHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.5",
	"Accept-Encoding":           "gzip, deflate",
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
}

// Fetcher performs HTTP GETs with a browser-like identity and a fixed
// timeout. Inter-request politeness delay is enforced by the crawler.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher with the default timeout.
func NewFetcher() *Fetcher {
	return NewFetcherWithClient(&http.Client{Timeout: DefaultFetchTimeout})
}

// NewFetcherWithClient creates a fetcher with a custom client. Useful for
// testing against httptest servers.
func NewFetcherWithClient(client *http.Client) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch retrieves the page body. Network failures and non-2xx statuses
// return an error wrapping domain.ErrFetch; the caller abandons the URL
// and moves on.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", domain.ErrFetch, err)
	}
	for key, value := range browserHeaders {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrFetch, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s: status %d", domain.ErrFetch, url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", domain.ErrFetch, err)
	}

	return body, nil
}
