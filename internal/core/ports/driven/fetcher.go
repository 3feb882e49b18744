package driven

import "context"

// Fetcher retrieves a single page body over HTTP.
// Implementations return an error wrapping domain.ErrFetch on network
// failure or non-2xx status. Politeness delay between requests is the
// crawler's responsibility, not the fetcher's.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
