package evidence

import (
	"html"
	"regexp"
)

// DefaultHighlightClass is the CSS class HighlightText wraps matched
// terms in when no override is given.
const DefaultHighlightClass = "highlight"

// HighlightText HTML-escapes text first (closing the XSS boundary before
// any substitution runs), then wraps case-insensitive occurrences of each
// term in a styled <span>. Escaping the source before highlighting means
// a term that happens to contain "<" or "&" can never break out of the
// surrounding markup.
func HighlightText(text string, terms []string, highlightClass string) string {
	safeText := html.EscapeString(text)
	if len(terms) == 0 {
		return safeText
	}
	if highlightClass == "" {
		highlightClass = DefaultHighlightClass
	}
	safeClass := html.EscapeString(highlightClass)

	for _, term := range terms {
		safeTerm := html.EscapeString(term)
		if safeTerm == "" {
			continue
		}
		pattern, err := regexp.Compile("(?i)" + regexp.QuoteMeta(safeTerm))
		if err != nil {
			continue
		}
		safeText = pattern.ReplaceAllString(safeText, `<span class="`+safeClass+`" style="background-color: #fff3cd; padding: 1px 3px; border-radius: 3px; font-weight: 500;">$0</span>`)
	}
	return safeText
}
