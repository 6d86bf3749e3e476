package jobsource

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSONL(t *testing.T, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "jobs.jsonl")
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestJSONFileSource_JobsAndCount(t *testing.T) {
	path := writeJSONL(t,
		`{"id":"adzuna_1","source":"adzuna","source_id":"1","title":"Engineer"}`,
		`{"id":"indeed_1","source":"indeed","source_id":"1","title":"Manager"}`,
	)
	src := NewJSONFileSource(path)
	ctx := context.Background()

	jobs, err := src.Jobs(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, jobs, 2)

	adzunaJobs, err := src.Jobs(ctx, "adzuna", 0)
	require.NoError(t, err)
	require.Len(t, adzunaJobs, 1)
	assert.Equal(t, "Engineer", adzunaJobs[0].Title)

	count, err := src.Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestJSONFileSource_RespectsLimit(t *testing.T) {
	path := writeJSONL(t,
		`{"id":"a_1","source":"a","source_id":"1"}`,
		`{"id":"a_2","source":"a","source_id":"2"}`,
		`{"id":"a_3","source":"a","source_id":"3"}`,
	)
	src := NewJSONFileSource(path)

	jobs, err := src.Jobs(context.Background(), "", 2)
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}

func TestJSONFileSource_MalformedLine(t *testing.T) {
	path := writeJSONL(t, `{"id": not-json}`)
	src := NewJSONFileSource(path)
	_, err := src.Jobs(context.Background(), "", 0)
	assert.Error(t, err)
}
