package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/jobrec/internal/embedding"
	"github.com/your-org/jobrec/internal/evidence"
	"github.com/your-org/jobrec/internal/repository"
	"github.com/your-org/jobrec/internal/scoring"
	"github.com/your-org/jobrec/internal/vectorindex"
	"github.com/your-org/jobrec/pkg/models"
)

func newTestSearcher(t *testing.T) (*Searcher, *Indexer) {
	t.Helper()
	embedder := embedding.NewLocalService()
	cfg, err := embedder.Config(context.Background())
	require.NoError(t, err)

	index := vectorindex.NewMemoryIndex("jobs", cfg.VersionID)
	store := repository.NewMemoryJobStore()
	indexer := NewIndexer(nil, store, embedder, index)

	scorer := scoring.New(models.DefaultScoringWeights())
	extractor := evidence.New(embedder, 0, 0)

	return NewSearcher(embedder, index, store, scorer, extractor), indexer
}

const goJobDescription = "We need a backend engineer experienced with Go, Kubernetes, and PostgreSQL " +
	"to build distributed systems that process millions of events per day across several regions."

const frontendJobDescription = "We need a frontend engineer experienced with React and TypeScript " +
	"to build delightful customer-facing products used by millions of people every day."

func seedJob(t *testing.T, indexer *Indexer, id, source, description string, postedAt time.Time) {
	t.Helper()
	indexer.Source = stubSource{jobs: []models.Job{{
		ID: id, Source: source, SourceID: id, Title: "Engineer", Company: "Acme",
		Location: "Remote", Description: description, PostedAt: postedAt,
	}}}
	_, err := indexer.IndexJobs(context.Background(), IndexJobsOptions{})
	require.NoError(t, err)
}

const goResumeText = "Experienced backend engineer with five years building Go microservices, " +
	"Kubernetes deployments, and PostgreSQL-backed APIs for high-traffic distributed systems. " +
	"Comfortable owning services end to end, from design reviews through on-call rotations."

func TestSearcher_Search_RanksBySimilarity(t *testing.T) {
	searcher, indexer := newTestSearcher(t)
	seedJob(t, indexer, "src_go", "src", goJobDescription, time.Now())
	seedJob(t, indexer, "src_fe", "src", frontendJobDescription, time.Now())

	result, err := searcher.Search(context.Background(), goResumeText, SearchOptions{TopK: 10})
	require.NoError(t, err)
	require.Len(t, result.Jobs, 2)
	assert.Equal(t, "src_go", result.Jobs[0].Job.ID, "the Go-heavy job should outrank the frontend job for a Go résumé")
	assert.GreaterOrEqual(t, result.Jobs[0].TotalScore, result.Jobs[1].TotalScore)
	assert.Equal(t, 2, result.Analytics.Scored)
}

func TestSearcher_Search_MinScoreFiltersResults(t *testing.T) {
	searcher, indexer := newTestSearcher(t)
	seedJob(t, indexer, "src_go", "src", goJobDescription, time.Now())

	result, err := searcher.Search(context.Background(), goResumeText, SearchOptions{TopK: 10, MinScore: 2.0})
	require.NoError(t, err)
	assert.Empty(t, result.Jobs)
	assert.Equal(t, 1, result.Analytics.FilteredOut)
}

func TestSearcher_Search_SourcesFilter(t *testing.T) {
	searcher, indexer := newTestSearcher(t)
	seedJob(t, indexer, "a_1", "a", goJobDescription, time.Now())
	seedJob(t, indexer, "b_1", "b", goJobDescription, time.Now())

	result, err := searcher.Search(context.Background(), goResumeText, SearchOptions{TopK: 10, Sources: []string{"a"}})
	require.NoError(t, err)
	require.Len(t, result.Jobs, 1)
	assert.Equal(t, "a_1", result.Jobs[0].Job.ID)
}

func TestSearcher_Search_TooShortResumeIsInvalidInput(t *testing.T) {
	searcher, _ := newTestSearcher(t)
	_, err := searcher.Search(context.Background(), "hi", SearchOptions{})
	require.Error(t, err)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, InvalidInput, perr.Kind)
}

func TestSearcher_Search_StoreMissIsFilteredOutNotFatal(t *testing.T) {
	searcher, indexer := newTestSearcher(t)
	seedJob(t, indexer, "src_go", "src", goJobDescription, time.Now())

	// An entry in the vector index with no backing row in the job store,
	// e.g. a job deleted from metadata storage after it was indexed.
	vec, err := searcher.Embedder.EmbedOne(context.Background(), goJobDescription)
	require.NoError(t, err)
	_, err = searcher.Index.Upsert(context.Background(), []models.VectorIndexEntry{{
		ID:        "orphaned",
		Document:  goJobDescription,
		Embedding: vec,
	}})
	require.NoError(t, err)

	result, err := searcher.Search(context.Background(), goResumeText, SearchOptions{TopK: 10})
	require.NoError(t, err)
	require.Len(t, result.Jobs, 1)
	assert.Equal(t, "src_go", result.Jobs[0].Job.ID)
	assert.Equal(t, 1, result.Analytics.FilteredOut)
}

func TestSearcher_Search_BuildsEvidenceForEveryResult(t *testing.T) {
	searcher, indexer := newTestSearcher(t)
	seedJob(t, indexer, "src_go", "src", goJobDescription, time.Now())

	result, err := searcher.Search(context.Background(), goResumeText, SearchOptions{TopK: 10})
	require.NoError(t, err)
	require.Len(t, result.Jobs, 1)

	ev, ok := result.Evidence["src_go"]
	require.True(t, ok)
	assert.NotEmpty(t, ev.SkillMatches)
}
