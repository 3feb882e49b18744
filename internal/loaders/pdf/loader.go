// Package pdf loads supplementary PDF documents from a local directory.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	ledongthuc "github.com/ledongthuc/pdf"

	"github.com/clearbrook-labs/supportrag/internal/content"
	"github.com/clearbrook-labs/supportrag/internal/core/domain"
	"github.com/clearbrook-labs/supportrag/internal/logger"
)

// MinDocContentLen is the floor below which an extracted file is
// discarded rather than indexed.
const MinDocContentLen = 100

// Loader reads every .pdf file in a directory.
type Loader struct {
	dir string
}

// New creates a loader for the given directory.
func New(dir string) *Loader {
	return &Loader{dir: dir}
}

// Load extracts every PDF in the directory. A single file's failure is
// logged and skipped; Load never aborts the batch.
func (l *Loader) Load() []domain.Document {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("PDF directory %s does not exist, skipping", l.dir)
		} else {
			logger.Warn("Could not read PDF directory %s: %v", l.dir, err)
		}
		return nil
	}

	var docs []domain.Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}

		doc, err := l.loadFile(filepath.Join(l.dir, entry.Name()), entry.Name())
		if err != nil {
			logger.Warn("Error processing PDF %s: %v", entry.Name(), err)
			continue
		}
		if doc != nil {
			logger.Info("Successfully processed %s (%d pages)", entry.Name(), doc.Meta.Pages)
			docs = append(docs, *doc)
		}
	}

	return docs
}

// loadFile extracts one PDF page by page. Pages whose extraction fails
// or is blank are skipped without failing the file. Returns nil when
// the extracted text falls under the content floor.
func (l *Loader) loadFile(path, name string) (*domain.Document, error) {
	f, reader, err := ledongthuc.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pages := reader.NumPage()

	var b strings.Builder
	for i := 1; i <= pages; i++ {
		text, err := extractPage(reader, i)
		if err != nil {
			logger.Warn("Could not extract text from page %d of %s: %v", i, name, err)
			continue
		}
		if strings.TrimSpace(text) != "" {
			b.WriteString(text)
			b.WriteString("\n")
		}
	}

	if len(strings.TrimSpace(b.String())) <= MinDocContentLen {
		return nil, nil
	}

	cleaned := content.Clean(b.String())

	return &domain.Document{
		ID:      uuid.New().String(),
		Content: cleaned,
		Meta: domain.Metadata{
			Source:        name,
			Type:          domain.DocTypePDF,
			Pages:         pages,
			ContentLength: len(cleaned),
		},
		CreatedAt: time.Now(),
	}, nil
}

// extractPage pulls the plain text of one page. The parser panics on
// some malformed content streams; that surfaces as a page-level error.
func extractPage(reader *ledongthuc.Reader, n int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("page parse: %v", rec)
		}
	}()

	page := reader.Page(n)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}
