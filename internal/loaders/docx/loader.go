// Package docx loads supplementary DOCX documents from a local
// directory. DOCX files are ZIP archives of WordprocessingML parts;
// text lives in word/document.xml plus the header and footer parts.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clearbrook-labs/supportrag/internal/content"
	"github.com/clearbrook-labs/supportrag/internal/core/domain"
	"github.com/clearbrook-labs/supportrag/internal/logger"
)

// MinDocContentLen is the floor below which an extracted file is
// discarded rather than indexed.
const MinDocContentLen = 100

// Loader reads every .docx file in a directory.
type Loader struct {
	dir string
}

// New creates a loader for the given directory.
func New(dir string) *Loader {
	return &Loader{dir: dir}
}

// Load extracts every DOCX in the directory. A single file's failure is
// logged and skipped; Load never aborts the batch.
func (l *Loader) Load() []domain.Document {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("DOCX directory %s does not exist, skipping", l.dir)
		} else {
			logger.Warn("Could not read DOCX directory %s: %v", l.dir, err)
		}
		return nil
	}

	var docs []domain.Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".docx") {
			continue
		}

		doc, err := l.loadFile(filepath.Join(l.dir, entry.Name()), entry.Name())
		if err != nil {
			logger.Warn("Error processing DOCX %s: %v", entry.Name(), err)
			continue
		}
		if doc != nil {
			logger.Info("Successfully processed %s (%d paragraphs, %d tables)",
				entry.Name(), doc.Meta.Paragraphs, doc.Meta.Tables)
			docs = append(docs, *doc)
		}
	}

	return docs
}

// loadFile extracts one DOCX: body paragraphs first, then table cells
// (row-major, cells space-joined, rows newline-separated), then header
// and footer paragraphs. Returns nil when the extracted text falls
// under the content floor.
func (l *Loader) loadFile(path, name string) (*domain.Document, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	body, err := parseBody(&reader.Reader)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	paragraphCount := 0
	for _, para := range body.Paragraphs {
		if text := para.text(); strings.TrimSpace(text) != "" {
			b.WriteString(text)
			b.WriteString("\n")
			paragraphCount++
		}
	}

	for _, tbl := range body.Tables {
		for _, row := range tbl.Rows {
			for _, cell := range row.Cells {
				if text := cell.text(); strings.TrimSpace(text) != "" {
					b.WriteString(text)
					b.WriteString(" ")
				}
			}
			b.WriteString("\n")
		}
	}

	for _, text := range headerFooterText(&reader.Reader) {
		b.WriteString(text)
		b.WriteString("\n")
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
			Type:          domain.DocTypeDOCX,
			Paragraphs:    paragraphCount,
			Tables:        len(body.Tables),
			ContentLength: len(cleaned),
		},
		CreatedAt: time.Now(),
	}, nil
}

// WordprocessingML structure. Element names match by local name, so the
// w: prefix needs no namespace handling.
type documentXML struct {
	Body bodyXML `xml:"body"`
}

type bodyXML struct {
	Paragraphs []paragraph `xml:"p"`
	Tables     []table     `xml:"tbl"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

type table struct {
	Rows []tableRow `xml:"tr"`
}

type tableRow struct {
	Cells []tableCell `xml:"tc"`
}

type tableCell struct {
	Paragraphs []paragraph `xml:"p"`
}

// headerFooterXML covers both w:hdr and w:ftr roots.
type headerFooterXML struct {
	Paragraphs []paragraph `xml:"p"`
}

func (p paragraph) text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		for _, t := range r.Text {
			b.WriteString(t.Content)
		}
	}
	return b.String()
}

func (c tableCell) text() string {
	parts := make([]string, 0, len(c.Paragraphs))
	for _, p := range c.Paragraphs {
		if text := p.text(); strings.TrimSpace(text) != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}

func parseBody(reader *zip.Reader) (*bodyXML, error) {
	data, err := readPart(reader, "word/document.xml")
	if err != nil {
		return nil, err
	}

	var doc documentXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc.Body, nil
}

// headerFooterText collects non-blank paragraphs from every header and
// footer part, headers before footers to match section order.
func headerFooterText(reader *zip.Reader) []string {
	var texts []string
	for _, prefix := range []string{"word/header", "word/footer"} {
		for _, file := range reader.File {
			if !strings.HasPrefix(file.Name, prefix) || !strings.HasSuffix(file.Name, ".xml") {
				continue
			}

			data, err := readPart(reader, file.Name)
			if err != nil {
				continue
			}

			var part headerFooterXML
			if err := xml.Unmarshal(data, &part); err != nil {
				continue
			}
			for _, para := range part.Paragraphs {
				if text := para.text(); strings.TrimSpace(text) != "" {
					texts = append(texts, text)
				}
			}
		}
	}
	return texts
}

func readPart(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, os.ErrNotExist
}
