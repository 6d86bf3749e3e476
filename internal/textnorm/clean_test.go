package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJobText_StripsHTMLAndBoilerplate(t *testing.T) {
	raw := "<p>We build things.</p>\nEqual Opportunity Employer.\nApply now!\n\n\n\nGreat benefits."
	res := CleanJobText(raw)

	assert.True(t, res.WasHTML)
	assert.Contains(t, res.Text, "We build things.")
	assert.Contains(t, res.Text, "Great benefits.")
	assert.NotContains(t, res.Text, "Equal Opportunity")
	assert.NotContains(t, res.Text, "Apply now")
	assert.Greater(t, res.RemovedChars, 0)
}

func TestCleanJobText_Idempotent(t *testing.T) {
	raw := "<b>Senior Engineer</b> wanted. Equal opportunity employer."
	once := CleanJobText(raw).Text
	twice := CleanJobText(once).Text
	assert.Equal(t, once, twice)
}

func TestCleanJobText_Empty(t *testing.T) {
	res := CleanJobText("")
	assert.Equal(t, CleanResult{}, res)
	assert.Equal(t, 0.0, res.CompressionRatio())
}

func TestCleanResumeText_KeepsApplyNowMention(t *testing.T) {
	raw := "Built a feature that let customers apply now for same-day shipping."
	res := CleanResumeText(raw)
	assert.Contains(t, res.Text, "apply now")
}

func TestCleanResumeText_NormalizesWhitespace(t *testing.T) {
	raw := "Line one.\r\n\r\nLine   two.\t\tEnd."
	res := CleanResumeText(raw)
	assert.NotContains(t, res.Text, "\r")
	assert.Contains(t, res.Text, "Line two.")
}

func TestIsTextTooShort(t *testing.T) {
	assert.True(t, IsTextTooShort("", 0))
	assert.True(t, IsTextTooShort("short", 200))
	assert.False(t, IsTextTooShort(stringsRepeat("word ", 100), 200))
}

func stringsRepeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
