// Package content cleans and validates extracted text before indexing.
package content

import (
	"regexp"
	"strings"
)

// MinValidContentLen is the shortest cleaned text accepted as a page.
const MinValidContentLen = 50

// maxNavWordRatio rejects pages whose text is mostly chrome vocabulary.
const maxNavWordRatio = 0.1

var whitespaceRuns = regexp.MustCompile(`\s+`)

// boilerplatePatterns strips copyright notices and legal-policy footers
// that survive content-area extraction.
var boilerplatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)©\s*\d{4}[^.\n]*`),
	regexp.MustCompile(`(?i)All rights reserved`),
	regexp.MustCompile(`(?i)Terms and Conditions`),
	regexp.MustCompile(`(?i)Privacy Policy`),
	regexp.MustCompile(`(?i)Cookie Policy`),
}

// navWords is the navigation vocabulary used to detect pages that are
// mostly chrome rather than support content. Words are matched against
// whitespace-split tokens, so the two-word entries only ever match when
// a token equals them exactly, which single tokens never do; they are
// kept for parity with the phrase list the heuristic was tuned on.
var navWords = map[string]bool{
	"menu":       true,
	"navigation": true,
	"footer":     true,
	"header":     true,
	"login":      true,
	"register":   true,
	"sign up":    true,
	"sign in":    true,
}

// Clean normalises extracted text: whitespace runs collapse to a single
// space, boilerplate phrases are stripped case-insensitively, and the
// result is trimmed. Clean is idempotent.
func Clean(text string) string {
	text = whitespaceRuns.ReplaceAllString(text, " ")
	for _, pattern := range boilerplatePatterns {
		text = pattern.ReplaceAllString(text, "")
	}
	// Stripping a phrase can leave adjacent spaces touching; collapse
	// again so Clean(Clean(x)) == Clean(x).
	text = whitespaceRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// IsValid reports whether cleaned text is substantial support content:
// at least MinValidContentLen characters, and less than 10% of its words
// drawn from the navigation vocabulary.
func IsValid(text string) bool {
	if len(strings.TrimSpace(text)) < MinValidContentLen {
		return false
	}

	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return false
	}

	navCount := 0
	for _, word := range words {
		if navWords[word] {
			navCount++
		}
	}

	return float64(navCount)/float64(len(words)) < maxNavWordRatio
}
