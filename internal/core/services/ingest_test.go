package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearbrook-labs/supportrag/internal/chunker"
	"github.com/clearbrook-labs/supportrag/internal/core/domain"
	"github.com/clearbrook-labs/supportrag/internal/crawler"
)

func ingestDoc(id, source string, docType domain.DocType) domain.Document {
	return domain.Document{
		ID:      id,
		Content: strings.Repeat(source+" support content. ", 5),
		Meta: domain.Metadata{
			Source: source,
			Type:   docType,
		},
		CreatedAt: time.Now(),
	}
}

func TestRunFullPipeline(t *testing.T) {
	web := ingestDoc("d1", "https://example.com/support/margin", domain.DocTypeWebPage)
	pdfDoc := ingestDoc("d2", "guide.pdf", domain.DocTypePDF)
	docxDoc := ingestDoc("d3", "kyc.docx", domain.DocTypeDOCX)

	store := &stubStore{}
	svc := NewIngest(
		&stubCrawler{result: &crawler.Result{Documents: []domain.Document{web}, URLsVisited: 7}},
		&stubLoader{docs: []domain.Document{pdfDoc}},
		&stubLoader{docs: []domain.Document{docxDoc}},
		chunker.New(),
		store,
		2,
	)

	stats, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalDocuments)
	assert.Equal(t, len(store.built), stats.TotalChunks)
	assert.NotEmpty(t, store.built)
	assert.Equal(t, []string{"https://example.com/support/margin", "guide.pdf", "kyc.docx"}, stats.Sources)
	assert.Equal(t, []string{"web_page", "pdf_document", "docx_document"}, stats.DocumentTypes)
	assert.Equal(t, 1, stats.WebPages)
	assert.Equal(t, 1, stats.PDFs)
	assert.Equal(t, 1, stats.DOCXs)
	assert.Equal(t, 7, stats.URLsVisited)
	assert.Equal(t, 2, stats.MaxDepth)
	assert.False(t, stats.CreatedAt.IsZero())

	// The same stats object is persisted with the index.
	assert.Equal(t, *stats, store.builtStats)
}

func TestRunZeroDocumentsShortCircuits(t *testing.T) {
	store := &stubStore{}
	svc := NewIngest(
		&stubCrawler{result: &crawler.Result{}},
		&stubLoader{},
		&stubLoader{},
		chunker.New(),
		store,
		2,
	)

	_, err := svc.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoDocuments)
	assert.Nil(t, store.built, "index construction never attempted")
}

func TestRunCrawlFailurePropagates(t *testing.T) {
	svc := NewIngest(
		&stubCrawler{err: errors.New("network down")},
		&stubLoader{},
		&stubLoader{},
		chunker.New(),
		&stubStore{},
		2,
	)

	_, err := svc.Run(context.Background())
	assert.Error(t, err)
}

func TestRunBuildFailurePropagates(t *testing.T) {
	web := ingestDoc("d1", "https://example.com/support/faq", domain.DocTypeWebPage)
	svc := NewIngest(
		&stubCrawler{result: &crawler.Result{Documents: []domain.Document{web}}},
		&stubLoader{},
		&stubLoader{},
		chunker.New(),
		&stubStore{buildErr: errors.New("embedding quota exhausted")},
		2,
	)

	_, err := svc.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding quota exhausted")
}

func TestRunDistinctSourcesDeduped(t *testing.T) {
	a := ingestDoc("d1", "https://example.com/support/faq", domain.DocTypeWebPage)
	b := ingestDoc("d2", "https://example.com/support/faq", domain.DocTypeWebPage)

	store := &stubStore{}
	svc := NewIngest(
		&stubCrawler{result: &crawler.Result{Documents: []domain.Document{a, b}}},
		&stubLoader{},
		&stubLoader{},
		chunker.New(),
		store,
		2,
	)

	stats, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalDocuments)
	assert.Len(t, stats.Sources, 1)
	assert.Equal(t, []string{"web_page"}, stats.DocumentTypes)
}
