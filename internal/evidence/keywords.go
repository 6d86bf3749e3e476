package evidence

import (
	"regexp"
	"strings"
)

// DefaultMinKeywordLength is the minimum word length ExtractKeywords
// keeps when no override is given.
const DefaultMinKeywordLength = 4

var wordPattern = regexp.MustCompile(`\b[a-zA-Z]+\b`)

// stopWords mirrors the reference implementation's hand-picked exclusion
// list: function words plus a handful of job-posting filler terms
// ("experience", "team", "looking", ...) that are too generic to count as
// evidence on their own.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {}, "at": {}, "to": {}, "for": {},
	"of": {}, "with": {}, "by": {}, "from": {}, "as": {}, "is": {}, "was": {}, "are": {}, "were": {}, "been": {},
	"be": {}, "have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {}, "will": {}, "would": {},
	"could": {}, "should": {}, "may": {}, "might": {}, "must": {}, "shall": {}, "can": {}, "need": {},
	"this": {}, "that": {}, "these": {}, "those": {}, "what": {}, "which": {}, "who": {}, "whom": {},
	"whose": {}, "where": {}, "when": {}, "why": {}, "how": {}, "all": {}, "each": {}, "every": {},
	"both": {}, "few": {}, "more": {}, "most": {}, "other": {}, "some": {}, "such": {}, "than": {},
	"too": {}, "very": {}, "just": {}, "also": {}, "only": {}, "own": {}, "same": {}, "into": {},
	"over": {}, "after": {}, "before": {}, "between": {}, "under": {}, "again": {}, "further": {},
	"then": {}, "once": {}, "here": {}, "there": {}, "about": {}, "through": {}, "during": {},
	"above": {}, "below": {}, "your": {}, "you": {}, "their": {}, "they": {}, "our": {}, "we": {},
	"work": {}, "working": {}, "experience": {}, "team": {}, "ability": {}, "skills": {},
	"strong": {}, "excellent": {}, "good": {}, "great": {}, "best": {}, "well": {}, "new": {},
	"years": {}, "year": {}, "role": {}, "position": {}, "company": {}, "looking": {},
}

// ExtractKeywords lowercases text, pulls alphabetic words of at least
// minLength characters (DefaultMinKeywordLength when minLength <= 0), and
// drops stop words. The result is a deduplicated set.
func ExtractKeywords(text string, minLength int) map[string]struct{} {
	if minLength <= 0 {
		minLength = DefaultMinKeywordLength
	}
	lower := strings.ToLower(text)
	words := wordPattern.FindAllString(lower, -1)

	out := make(map[string]struct{})
	for _, w := range words {
		if len(w) < minLength {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		out[w] = struct{}{}
	}
	return out
}
