package crawler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageWriterHeaderAndBody(t *testing.T) {
	dir := t.TempDir()
	w, err := NewPageWriter(dir)
	require.NoError(t, err)

	path, err := w.Write("https://www.example.com/support/margin", "Margin FAQ", 1, "pledge rules")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Title: Margin FAQ\nURL: https://www.example.com/support/margin\nDepth: 1\n\npledge rules", string(data))
	assert.Equal(t, "_support_margin.txt", filepath.Base(path))
}

func TestPageWriterRootPage(t *testing.T) {
	dir := t.TempDir()
	w, err := NewPageWriter(dir)
	require.NoError(t, err)

	path, err := w.Write("https://www.example.com/", "Home", 0, "content")
	require.NoError(t, err)
	assert.Equal(t, "main_page.txt", filepath.Base(path))
}

func TestPageWriterCollisions(t *testing.T) {
	dir := t.TempDir()
	w, err := NewPageWriter(dir)
	require.NoError(t, err)

	first, err := w.Write("https://a.example.com/support/faq", "A", 1, "one")
	require.NoError(t, err)
	second, err := w.Write("https://b.example.com/support/faq", "B", 1, "two")
	require.NoError(t, err)
	third, err := w.Write("https://c.example.com/support/faq", "C", 1, "three")
	require.NoError(t, err)

	assert.Equal(t, "_support_faq.txt", filepath.Base(first))
	assert.Equal(t, "_support_faq_1.txt", filepath.Base(second))
	assert.Equal(t, "_support_faq_2.txt", filepath.Base(third))
}
