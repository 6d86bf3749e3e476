package evidence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords_FiltersStopWordsAndShortWords(t *testing.T) {
	got := ExtractKeywords("We are looking for a backend engineer with strong distributed systems experience.", 0)

	_, hasBackend := got["backend"]
	_, hasDistributed := got["distributed"]
	_, hasExperience := got["experience"]
	_, hasWe := got["we"]

	assert.True(t, hasBackend)
	assert.True(t, hasDistributed)
	assert.False(t, hasExperience)
	assert.False(t, hasWe)
}

func TestExtractKeywords_MinLength(t *testing.T) {
	got := ExtractKeywords("go is a great language for apis", 0)
	_, hasGo := got["go"]
	assert.False(t, hasGo) // below default min length of 4
}
