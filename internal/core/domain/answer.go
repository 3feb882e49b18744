package domain

// Confidence is a coarse classification of answer reliability.
// It is a heuristic label, not a calibrated probability.
type Confidence string

const (
	// ConfidenceHigh means the model answered from the retrieved context.
	ConfidenceHigh Confidence = "high"

	// ConfidenceLow means retrieval was empty or the model declined.
	ConfidenceLow Confidence = "low"

	// ConfidenceError means retrieval or generation failed.
	ConfidenceError Confidence = "error"
)

// SourceCitation points a user at the material an answer was grounded on.
type SourceCitation struct {
	Source string  `json:"source"`
	Type   DocType `json:"type"`
	Title  string  `json:"title"`
}

// MaxCitations caps the citation list on every answer.
const MaxCitations = 3

// Answer is the payload returned for one question.
type Answer struct {
	Answer     string           `json:"answer"`
	Sources    []SourceCitation `json:"sources"`
	Confidence Confidence       `json:"confidence"`
}

// Health reports the serving-time state of the system.
type Health struct {
	Status              string `json:"status"`
	VectorStoreLoaded   bool   `json:"vector_store_loaded"`
	TotalDocuments      int    `json:"total_documents"`
	TestQuerySuccessful bool   `json:"test_query_successful"`
	Error               string `json:"error,omitempty"`
}

// DedupeCitations removes value-equal citations, preserving first-seen order,
// and caps the result at MaxCitations entries.
func DedupeCitations(citations []SourceCitation) []SourceCitation {
	seen := make(map[SourceCitation]bool, len(citations))
	result := make([]SourceCitation, 0, MaxCitations)

	for _, c := range citations {
		if seen[c] {
			continue
		}
		seen[c] = true
		result = append(result, c)
		if len(result) >= MaxCitations {
			break
		}
	}

	return result
}
