package crawler

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// PageWriter persists each validated page as a text file under a
// directory, named after the URL path with unsafe characters replaced.
type PageWriter struct {
	dir string
}

// NewPageWriter creates a writer rooted at dir, creating it if needed.
func NewPageWriter(dir string) (*PageWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create scraped pages directory: %w", err)
	}
	return &PageWriter{dir: dir}, nil
}

var unsafePathChars = strings.NewReplacer("/", "_", "?", "_", "&", "_", "#", "_")

// Write saves the page content with a Title/URL/Depth header. Name
// collisions are disambiguated with a numeric suffix so two pages whose
// paths sanitise identically both survive.
func (w *PageWriter) Write(pageURL, title string, depth int, content string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	safePath := unsafePathChars.Replace(parsed.Path)
	if safePath == "" || safePath == "_" {
		safePath = "main_page"
	}

	path := w.uniquePath(filepath.Join(w.dir, safePath+".txt"))

	header := fmt.Sprintf("Title: %s\nURL: %s\nDepth: %d\n\n", title, pageURL, depth)
	if err := os.WriteFile(path, []byte(header+content), 0o644); err != nil {
		return "", fmt.Errorf("write page file: %w", err)
	}

	return path, nil
}

// uniquePath appends _1, _2, ... until the name is unused.
func (w *PageWriter) uniquePath(base string) string {
	path := base
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		path = fmt.Sprintf("%s_%d%s", stem, counter, ext)
	}
}
