// Package evidence implements C5: extracting and ranking the sentences,
// skills, and keywords that justify why a job matched a résumé, plus
// XSS-safe highlighting of the matched terms.
package evidence

import (
	"regexp"
	"strings"
)

var sentenceBoundary = regexp.MustCompile(`([.!?])\s+([A-Z])`)

// SplitIntoSentences breaks text on sentence-ending punctuation followed
// by a capitalized word, then drops fragments that are too short to be
// useful evidence (under 20 chars) or look like a bare bullet/header.
func SplitIntoSentences(text string) []string {
	// Go's regexp (RE2) has no lookaround, so the Python
	// `(?<=[.!?])\s+(?=[A-Z])` split is emulated by matching the
	// boundary and splitting right before the captured capital letter.
	marked := sentenceBoundary.ReplaceAllString(text, "$1\x00$2")
	raw := strings.Split(marked, "\x00")

	cleaned := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if len(s) < 20 {
			continue
		}
		if isBulletHeader(s) {
			continue
		}
		cleaned = append(cleaned, s)
	}
	return cleaned
}

func isBulletHeader(s string) bool {
	if len(s) >= 50 {
		return false
	}
	for _, prefix := range []string{"-", "*", "•", "–"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
