package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/jobrec/pkg/models"
)

func ptr(v float64) *float64 { return &v }
func strPtr(v string) *string { return &v }

func TestDistanceToSimilarity_Clamped(t *testing.T) {
	assert.Equal(t, 1.0, DistanceToSimilarity(-0.5))
	assert.Equal(t, 0.0, DistanceToSimilarity(1.5))
	assert.InDelta(t, 0.8, DistanceToSimilarity(0.2), 1e-9)
}

func TestComputeSkillOverlap_NeutralWhenNoJobSkills(t *testing.T) {
	score, matched, missing := ComputeSkillOverlap([]string{"go"}, "A lovely day for a walk in the park.")
	assert.Equal(t, 0.5, score)
	assert.Empty(t, matched)
	assert.Empty(t, missing)
}

func TestComputeSkillOverlap_PartialMatch(t *testing.T) {
	score, matched, missing := ComputeSkillOverlap(
		[]string{"go", "docker"},
		"Looking for a Go developer with Docker, Kubernetes, and AWS experience.",
	)
	assert.InDelta(t, 2.0/4.0, score, 1e-9)
	assert.ElementsMatch(t, []string{"go", "docker"}, matched)
	assert.ElementsMatch(t, []string{"kubernetes", "aws"}, missing)
}

func TestComputeRecency_DecaysWithHalfLife(t *testing.T) {
	s := New(models.DefaultScoringWeights())
	fixedNow := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixedNow }

	today := s.ComputeRecency(fixedNow)
	assert.InDelta(t, 1.0, today, 1e-6)

	halfLifeAgo := s.ComputeRecency(fixedNow.AddDate(0, 0, -30))
	assert.InDelta(t, 0.5, halfLifeAgo, 0.01)

	future := s.ComputeRecency(fixedNow.AddDate(0, 0, 5))
	assert.InDelta(t, 1.0, future, 1e-6)
}

func TestComputeRecency_FloorsFractionalDays(t *testing.T) {
	s := New(models.DefaultScoringWeights())
	fixedNow := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixedNow }

	// Posted 2.5 days ago floors to 2 whole days, not 2.5.
	posted := fixedNow.Add(-60 * time.Hour)
	got := s.ComputeRecency(posted)
	want := math.Exp(-math.Ln2 * 2 / RecencyHalfLifeDays)
	assert.InDelta(t, want, got, 1e-9)
}

func TestComputeLocationMatch(t *testing.T) {
	assert.Equal(t, 0.5, ComputeLocationMatch("Remote", nil))
	assert.Equal(t, 1.0, ComputeLocationMatch("Remote - US", strPtr("remote")))
	assert.Equal(t, 1.0, ComputeLocationMatch("New York, NY", strPtr("new york")))
	assert.Equal(t, 0.7, ComputeLocationMatch("Austin, TX", strPtr("dallas tx")))
	assert.Equal(t, 0.3, ComputeLocationMatch("Berlin", strPtr("new york")))
}

func TestComputeSalaryMatch(t *testing.T) {
	assert.Equal(t, 0.5, ComputeSalaryMatch(ptr(50000), ptr(60000), nil))
	assert.Equal(t, 1.0, ComputeSalaryMatch(ptr(100000), ptr(120000), ptr(100000)))
	assert.InDelta(t, 0.8, ComputeSalaryMatch(nil, ptr(90000), ptr(100000)), 1e-9)
	assert.Less(t, ComputeSalaryMatch(nil, ptr(50000), ptr(100000)), 0.6)
}

func TestScoreJob_RenormalizesExcludedComponents(t *testing.T) {
	s := New(models.DefaultScoringWeights())
	job := models.Job{
		Description: "Go developer needed with Kubernetes skills.",
		Location:    "Remote",
		PostedAt:    time.Now().AddDate(0, 0, -1),
	}
	profile := models.ResumeProfile{Skills: []string{"go", "kubernetes"}}

	scored := s.ScoreJob(job, 0.1, profile)

	assert.InDelta(t, 1.0, scored.EffectiveWeights["embedding"]+scored.EffectiveWeights["skill"]+
		scored.EffectiveWeights["recency"]+scored.EffectiveWeights["location"]+scored.EffectiveWeights["salary"], 1e-9)
	_, hasLocation := scored.EffectiveWeights["location"]
	assert.False(t, hasLocation)
	assert.Greater(t, scored.TotalScore, 0.0)
	assert.NotEmpty(t, scored.Explanation)
}

func TestScoreJob_ExcludesLocationAndSalaryWhenAbsent(t *testing.T) {
	s := New(models.DefaultScoringWeights())
	job := models.Job{Description: "Plain job.", PostedAt: time.Now()}
	profile := models.ResumeProfile{}

	scored := s.ScoreJob(job, 0.3, profile)

	_, hasLocation := scored.EffectiveWeights["location"]
	_, hasSalary := scored.EffectiveWeights["salary"]
	assert.False(t, hasLocation)
	assert.False(t, hasSalary)

	var sum float64
	for _, w := range scored.EffectiveWeights {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestScoreJobs_SortedDescendingAndLengthMismatch(t *testing.T) {
	s := New(models.DefaultScoringWeights())
	jobs := []models.Job{
		{Description: "Go backend role.", PostedAt: time.Now()},
		{Description: "Unrelated role about gardening.", PostedAt: time.Now().AddDate(0, 0, -200)},
	}
	profile := models.ResumeProfile{Skills: []string{"go"}}

	scored, err := s.ScoreJobs(jobs, []float64{0.1, 0.9}, profile)
	require.NoError(t, err)
	require.Len(t, scored, 2)
	assert.GreaterOrEqual(t, scored[0].TotalScore, scored[1].TotalScore)

	_, err = s.ScoreJobs(jobs, []float64{0.1}, profile)
	assert.Error(t, err)
}

func TestScoreJobs_TiesKeepInsertionOrder(t *testing.T) {
	s := New(models.DefaultScoringWeights())
	now := time.Now()
	jobs := []models.Job{
		{ID: "first", Description: "Plain job.", PostedAt: now},
		{ID: "second", Description: "Plain job.", PostedAt: now},
		{ID: "third", Description: "Plain job.", PostedAt: now},
	}
	profile := models.ResumeProfile{}

	scored, err := s.ScoreJobs(jobs, []float64{0.5, 0.5, 0.5}, profile)
	require.NoError(t, err)
	require.Len(t, scored, 3)
	assert.Equal(t, "first", scored[0].Job.ID)
	assert.Equal(t, "second", scored[1].Job.ID)
	assert.Equal(t, "third", scored[2].Job.ID)
}

func TestGenerateExplanation_UsesUncappedMissingCount(t *testing.T) {
	s := New(models.DefaultScoringWeights())
	job := models.Job{
		Description: "Looking for Python, JavaScript, TypeScript, Java, Go, Rust, SQL, MongoDB, Redis, AWS, Docker, and Kubernetes skills.",
		PostedAt:    time.Now(),
	}
	profile := models.ResumeProfile{}

	scored := s.ScoreJob(job, 0.5, profile)

	require.LessOrEqual(t, len(scored.MissingSkills), 10)
	assert.Contains(t, scored.Explanation, "missing 12 skills")
}
