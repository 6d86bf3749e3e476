package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSkills_DefaultLexicon(t *testing.T) {
	text := "We need a Go developer with Kubernetes, Docker, and some Python scripting."
	got := ExtractSkills(text, nil)

	assert.Contains(t, got, "go")
	assert.Contains(t, got, "kubernetes")
	assert.Contains(t, got, "docker")
	assert.Contains(t, got, "python")
	assert.NotContains(t, got, "java")
}

func TestExtractSkills_CustomLexicon(t *testing.T) {
	got := ExtractSkills("Familiar with Snowflake and dbt pipelines.", []string{"snowflake", "dbt", "airflow"})
	assert.Equal(t, []string{"dbt", "snowflake"}, got)
}

func TestExtractSkills_NoMatches(t *testing.T) {
	got := ExtractSkills("A plain sentence about gardening.", nil)
	assert.Empty(t, got)
}

func TestExtractSkills_SortedAndDeduped(t *testing.T) {
	got := ExtractSkills("Python python PYTHON and sql SQL.", []string{"python", "sql"})
	assert.Equal(t, []string{"python", "sql"}, got)
}

func TestExtractSkills_DefaultLexiconReusedAcrossCalls(t *testing.T) {
	first := ExtractSkills("Go and Docker experience.", nil)
	second := ExtractSkills("Python and AWS experience.", nil)

	assert.Equal(t, []string{"docker", "go"}, first)
	assert.Equal(t, []string{"aws", "python"}, second)
	assert.NotNil(t, defaultPatterns)
	assert.Len(t, defaultPatterns, len(DefaultSkillLexicon))
}
