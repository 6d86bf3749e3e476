package evidence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighlightText_WrapsMatches(t *testing.T) {
	out := HighlightText("Experienced Go developer.", []string{"Go"}, "")
	assert.Contains(t, out, `<span class="highlight"`)
	assert.Contains(t, out, ">Go</span>")
}

func TestHighlightText_EscapesHTMLInSourceText(t *testing.T) {
	out := HighlightText("<script>alert(1)</script> Go engineer", []string{"Go"}, "")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestHighlightText_NoTermsStillEscapes(t *testing.T) {
	out := HighlightText("<b>bold</b>", nil, "")
	assert.Equal(t, "&lt;b&gt;bold&lt;/b&gt;", out)
}
