package textnorm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildJobDocument_Structure(t *testing.T) {
	doc := BuildJobDocument("Backend Engineer", "Acme", "Remote", "Build APIs.", 0)

	assert.True(t, strings.HasPrefix(doc, "Title: Backend Engineer\n"))
	assert.Contains(t, doc, "Company: Acme")
	assert.Contains(t, doc, "Location: Remote")
	assert.Contains(t, doc, "Description:\nBuild APIs.")
}

func TestBuildJobDocument_CleansEmbeddedHTML(t *testing.T) {
	doc := BuildJobDocument("Title", "Co", "NYC", "<p>Ships fast.</p> Equal opportunity employer.", 0)
	assert.NotContains(t, doc, "<p>")
}

func TestBuildJobDocument_TruncatesLongDescription(t *testing.T) {
	desc := strings.Repeat("word ", 2000)
	doc := BuildJobDocument("T", "C", "L", desc, 50)
	assert.Contains(t, doc, "...")
	assert.Less(t, len(doc), len(desc))
}
