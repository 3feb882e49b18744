package chunker

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearbrook-labs/supportrag/internal/core/domain"
)

func testDoc(content string) domain.Document {
	return domain.Document{
		ID:      "doc-1",
		Content: content,
		Meta: domain.Metadata{
			Source: "https://www.example.com/support/faq",
			Type:   domain.DocTypeWebPage,
			Title:  "FAQ",
		},
		CreatedAt: time.Now(),
	}
}

func TestSplitShortDocument(t *testing.T) {
	c := New()
	content := strings.Repeat("a", 300)

	chunks := c.Split(testDoc(content))

	require.Len(t, chunks, 1)
	assert.Equal(t, content, chunks[0].Content)
	assert.Equal(t, 0, chunks[0].ChunkID)
	assert.Equal(t, "doc-1", chunks[0].DocumentID)
}

func TestSplitEmptyDocument(t *testing.T) {
	assert.Empty(t, New().Split(testDoc("")))
}

func TestSplitWindowSizeAndOverlap(t *testing.T) {
	c := New()
	content := strings.Repeat("x", 2500)

	chunks := c.Split(testDoc(content))

	// Windows start at 0, 800, 1600, 2400.
	require.Len(t, chunks, 4)
	assert.Len(t, chunks[0].Content, 1000)
	assert.Len(t, chunks[1].Content, 1000)
	assert.Len(t, chunks[2].Content, 900)
	assert.Len(t, chunks[3].Content, 100)

	for i, ch := range chunks {
		assert.Equal(t, i, ch.ChunkID)
	}
}

func TestSplitAdjacentWindowsShareOverlap(t *testing.T) {
	c := New()

	var b strings.Builder
	for b.Len() < 2000 {
		b.WriteString("0123456789")
	}
	chunks := c.Split(testDoc(b.String()))

	require.GreaterOrEqual(t, len(chunks), 2)
	assert.Equal(t, chunks[0].Content[800:], chunks[1].Content[:200])
}

func TestSplitDiscardsShortTrailingWindow(t *testing.T) {
	c := New()
	// 820 chars: second window is 20 chars, below the floor.
	content := strings.Repeat("y", 820)

	chunks := c.Split(testDoc(content))
	require.Len(t, chunks, 1)
	assert.Equal(t, 0, chunks[0].ChunkID)
}

func TestSplitIndexGapsPreserved(t *testing.T) {
	c := New(WithChunkSize(100), WithOverlap(0))
	// Second window trims to nothing but still consumes index 1.
	content := strings.Repeat("z", 100) + strings.Repeat(" ", 100) + strings.Repeat("z", 100)

	chunks := c.Split(testDoc(content))
	require.Len(t, chunks, 2)
	assert.Equal(t, 0, chunks[0].ChunkID)
	assert.Equal(t, 2, chunks[1].ChunkID)
}

func TestSplitKeepsMultiByteRunesIntact(t *testing.T) {
	c := New()
	// The rupee sign sits exactly on the first window boundary.
	content := strings.Repeat("a", 999) + "₹" + strings.Repeat("b", 300)

	chunks := c.Split(testDoc(content))

	require.Len(t, chunks, 2)
	for _, ch := range chunks {
		assert.True(t, utf8.ValidString(ch.Content))
	}
	assert.True(t, strings.HasSuffix(chunks[0].Content, "₹"))
	assert.Equal(t, 1000, utf8.RuneCountInString(chunks[0].Content))
	assert.Contains(t, chunks[1].Content, "₹"+strings.Repeat("b", 300))
}

func TestSplitCopiesMetadata(t *testing.T) {
	c := New()
	chunks := c.Split(testDoc(strings.Repeat("m", 200)))

	require.Len(t, chunks, 1)
	assert.Equal(t, "https://www.example.com/support/faq", chunks[0].Meta.Source)
	assert.Equal(t, domain.DocTypeWebPage, chunks[0].Meta.Type)
	assert.Equal(t, "FAQ", chunks[0].Meta.Title)
}

func TestSplitUniqueIDs(t *testing.T) {
	c := New()
	chunks := c.Split(testDoc(strings.Repeat("q", 3000)))

	seen := make(map[string]bool)
	for _, ch := range chunks {
		assert.False(t, seen[ch.ID])
		seen[ch.ID] = true
	}
}

func TestOverlapClamped(t *testing.T) {
	c := New(WithChunkSize(100), WithOverlap(100))
	chunks := c.Split(testDoc(strings.Repeat("w", 400)))
	assert.NotEmpty(t, chunks)
}

func TestSplitAll(t *testing.T) {
	c := New()
	docs := []domain.Document{
		testDoc(strings.Repeat("a", 200)),
		testDoc(strings.Repeat("b", 200)),
	}

	chunks := c.SplitAll(docs)
	require.Len(t, chunks, 2)
	assert.Equal(t, strings.Repeat("a", 200), chunks[0].Content)
	assert.Equal(t, strings.Repeat("b", 200), chunks[1].Content)
}
