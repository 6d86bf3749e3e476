// Package textnorm implements C1: cleaning job-posting and résumé text into
// a normalized form suitable for embedding, plus lightweight skill
// extraction and structured document assembly.
package textnorm

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

// CleaningVersion is bumped whenever the cleaning logic changes in a way
// that would make previously computed embeddings stale. It feeds
// embedding.ComputeVersionID alongside the model name.
const CleaningVersion = "1"

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
	multiSpacePattern = regexp.MustCompile(`[ \t]+`)
	multiNewlinePatt  = regexp.MustCompile(`\n{3,}`)

	boilerplatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(equal opportunity employer|eoe|eeo)\b`),
		regexp.MustCompile(`(?i)\bby applying.*you agree\b`),
		regexp.MustCompile(`(?i)\baccommodation(s)? available\b`),
		regexp.MustCompile(`(?i)\bwe are an equal opportunity\b`),
		regexp.MustCompile(`(?i)\bclick (here )?to apply\b`),
		regexp.MustCompile(`(?i)\bapply now\b`),
	}
)

// CleanResult is the outcome of a cleaning pass over raw text.
type CleanResult struct {
	Text           string
	WasHTML        bool
	RemovedChars   int
	OriginalLength int
}

// CompressionRatio is the fraction of the original text removed during
// cleaning; 0 when the original was empty.
func (r CleanResult) CompressionRatio() float64 {
	if r.OriginalLength == 0 {
		return 0
	}
	return float64(r.RemovedChars) / float64(r.OriginalLength)
}

// CleanJobText strips HTML, decodes entities, normalizes whitespace, and
// drops boilerplate lines (EEO notices, "apply now" CTAs) from a job
// posting's description. Idempotent: cleaning already-clean text is a
// no-op beyond whitespace trimming.
func CleanJobText(text string) CleanResult {
	if text == "" {
		return CleanResult{}
	}
	originalLen := len(text)
	wasHTML := htmlTagPattern.MatchString(text)

	cleaned := normalizeBase(text)

	lines := strings.Split(cleaned, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			filtered = append(filtered, "")
			continue
		}
		if !isBoilerplate(stripped) {
			filtered = append(filtered, line)
		}
	}
	cleaned = strings.TrimSpace(strings.Join(filtered, "\n"))

	return CleanResult{
		Text:           cleaned,
		WasHTML:        wasHTML,
		RemovedChars:   originalLen - len(cleaned),
		OriginalLength: originalLen,
	}
}

// CleanResumeText performs the same HTML/whitespace normalization as
// CleanJobText but skips boilerplate removal: résumés don't carry
// job-posting boilerplate, and running those patterns over résumé prose
// risks deleting real content (a line that happens to mention "apply now"
// as a past job duty, for instance).
func CleanResumeText(text string) CleanResult {
	if text == "" {
		return CleanResult{}
	}
	originalLen := len(text)
	wasHTML := htmlTagPattern.MatchString(text)

	cleaned := strings.TrimSpace(normalizeBase(text))

	return CleanResult{
		Text:           cleaned,
		WasHTML:        wasHTML,
		RemovedChars:   originalLen - len(cleaned),
		OriginalLength: originalLen,
	}
}

func normalizeBase(text string) string {
	cleaned := htmlTagPattern.ReplaceAllString(text, " ")
	cleaned = html.UnescapeString(cleaned)
	cleaned = strings.ReplaceAll(cleaned, "\r\n", "\n")
	cleaned = strings.ReplaceAll(cleaned, "\r", "\n")
	cleaned = multiSpacePattern.ReplaceAllString(cleaned, " ")
	cleaned = multiNewlinePatt.ReplaceAllString(cleaned, "\n\n")
	return cleaned
}

func isBoilerplate(line string) bool {
	for _, p := range boilerplatePatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// IsTextTooShort reports whether text has fewer than minChars meaningful
// (non-whitespace) characters. minChars <= 0 defaults to 200.
func IsTextTooShort(text string, minChars int) bool {
	if minChars <= 0 {
		minChars = 200
	}
	if text == "" {
		return true
	}
	meaningful := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			meaningful++
		}
	}
	return meaningful < minChars
}
