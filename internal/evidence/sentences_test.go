package evidence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitIntoSentences_Basic(t *testing.T) {
	text := "We build reliable backend systems. Our team ships weekly. Come join us!"
	got := SplitIntoSentences(text)
	assert.Len(t, got, 2)
	assert.Equal(t, "We build reliable backend systems.", got[0])
}

func TestSplitIntoSentences_DropsShortFragments(t *testing.T) {
	text := "Ok. This is a reasonably long sentence about the job requirements."
	got := SplitIntoSentences(text)
	assert.Len(t, got, 1)
	assert.Equal(t, "This is a reasonably long sentence about the job requirements.", got[0])
}

func TestSplitIntoSentences_DropsShortBulletHeader(t *testing.T) {
	text := "- Tools and frameworks we use.\nThis is a reasonably long sentence about the job requirements."
	got := SplitIntoSentences(text)
	assert.Len(t, got, 1)
}
