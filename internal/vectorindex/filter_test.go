package vectorindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches_Eq(t *testing.T) {
	meta := map[string]any{"category": "it-jobs"}
	assert.True(t, Matches(meta, Eq("category", "it-jobs")))
	assert.False(t, Matches(meta, Eq("category", "sales-jobs")))
}

func TestMatches_GteLte(t *testing.T) {
	meta := map[string]any{"salary_min": 80000.0}
	assert.True(t, Matches(meta, Gte("salary_min", 50000.0)))
	assert.False(t, Matches(meta, Gte("salary_min", 90000.0)))
	assert.True(t, Matches(meta, Lte("salary_min", 90000.0)))
}

func TestMatches_In(t *testing.T) {
	meta := map[string]any{"source": "adzuna"}
	assert.True(t, Matches(meta, In("source", []any{"adzuna", "indeed"})))
	assert.False(t, Matches(meta, In("source", []any{"indeed"})))
}

func TestMatches_And(t *testing.T) {
	meta := map[string]any{"category": "it-jobs", "salary_min": 80000.0}
	where := And(Eq("category", "it-jobs"), Gte("salary_min", 70000.0))
	assert.True(t, Matches(meta, where))

	where2 := And(Eq("category", "it-jobs"), Gte("salary_min", 90000.0))
	assert.False(t, Matches(meta, where2))
}

func TestMatches_MissingField(t *testing.T) {
	meta := map[string]any{"category": "it-jobs"}
	assert.False(t, Matches(meta, Eq("location", "NYC")))
}

func TestMatches_StringGteForDates(t *testing.T) {
	meta := map[string]any{"posted_at": "2026-06-15T00:00:00Z"}
	assert.True(t, Matches(meta, Gte("posted_at", "2026-06-01T00:00:00Z")))
	assert.False(t, Matches(meta, Gte("posted_at", "2026-07-01T00:00:00Z")))
}
