package domain

import "time"

// DocType identifies the origin format of a document.
type DocType string

const (
	// DocTypeWebPage is a page scraped from the support site.
	DocTypeWebPage DocType = "web_page"

	// DocTypePDF is a document loaded from a local PDF file.
	DocTypePDF DocType = "pdf_document"

	// DocTypeDOCX is a document loaded from a local DOCX file.
	DocTypeDOCX DocType = "docx_document"
)

// Metadata describes where a document came from and its structural shape.
// It is copied verbatim onto every chunk derived from the document.
type Metadata struct {
	// Source is the page URL for web pages or the file name for documents.
	Source string `json:"source"`

	// Type is the origin format.
	Type DocType `json:"type"`

	// Title is the page title. Empty for file documents.
	Title string `json:"title,omitempty"`

	// Depth is the crawl depth below the support root. Web pages only.
	Depth int `json:"depth,omitempty"`

	// Pages is the page count. PDF documents only.
	Pages int `json:"pages,omitempty"`

	// Paragraphs is the non-blank paragraph count. DOCX documents only.
	Paragraphs int `json:"paragraphs,omitempty"`

	// Tables is the table count. DOCX documents only.
	Tables int `json:"tables,omitempty"`

	// ContentLength is the length of the cleaned content in characters.
	ContentLength int `json:"content_length"`
}

// Document is a unit of support content after extraction and cleaning.
// Documents are owned by a single ingestion run and are not mutated after
// creation; the chunker copies their metadata rather than sharing it.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Content is the cleaned full text.
	Content string

	// Meta records provenance and structural counts.
	Meta Metadata

	// CreatedAt is when the document was produced by the ingestion run.
	CreatedAt time.Time
}

// Chunk is a bounded, possibly overlapping slice of a document's text.
// Chunks are the unit actually embedded, indexed and retrieved.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the trimmed window text. Always at least 50 characters.
	Content string

	// ChunkID is the window's index within the parent's split sequence.
	// Indices of windows discarded for being too short are not reused,
	// so the sequence may have gaps but never duplicates.
	ChunkID int

	// Meta is a copy of the parent document's metadata.
	Meta Metadata

	// Embedding is the vector representation, populated at index time.
	Embedding []float32
}

// Hit is a retrieved chunk with its similarity to the query.
type Hit struct {
	Chunk Chunk

	// Similarity is the cosine similarity score (0-1).
	Similarity float64
}

// IngestStats summarises one complete ingestion run.
type IngestStats struct {
	TotalDocuments int       `json:"total_documents"`
	TotalChunks    int       `json:"total_chunks"`
	Sources        []string  `json:"sources"`
	DocumentTypes  []string  `json:"document_types"`
	WebPages       int       `json:"web_pages_processed"`
	PDFs           int       `json:"pdfs_processed"`
	DOCXs          int       `json:"docx_processed"`
	URLsVisited    int       `json:"urls_visited"`
	MaxDepth       int       `json:"max_depth"`
	CreatedAt      time.Time `json:"created_at"`
}
