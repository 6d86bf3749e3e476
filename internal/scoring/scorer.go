// Package scoring implements C4: the hybrid scorer that combines
// embedding similarity with skill overlap, recency, location, and salary
// fit into one explainable match score per job.
package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/your-org/jobrec/internal/textnorm"
	"github.com/your-org/jobrec/pkg/models"
)

// RecencyHalfLifeDays is the number of days after which a job posting's
// recency score is halved.
const RecencyHalfLifeDays = 30.0

// Scorer computes HybridScorer-style match scores for jobs against a
// résumé profile.
type Scorer struct {
	weights models.ScoringWeights
	now     func() time.Time
}

// New constructs a Scorer with the given weights. A zero-value
// ScoringWeights falls back to models.DefaultScoringWeights.
func New(weights models.ScoringWeights) *Scorer {
	if weights == (models.ScoringWeights{}) {
		weights = models.DefaultScoringWeights()
	}
	return &Scorer{weights: weights, now: time.Now}
}

// DistanceToSimilarity converts a Chroma-style cosine distance
// (1 - cosine similarity) into a similarity score clamped to [0, 1].
func DistanceToSimilarity(distance float64) float64 {
	return clamp01(1 - distance)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ComputeSkillOverlap scores how much of the job's extracted skill set
// the résumé covers (recall-style: matched / total job skills). With no
// skills extracted from the job text, it returns a neutral 0.5 and no
// matches.
func ComputeSkillOverlap(resumeSkills []string, jobText string) (score float64, matched, missing []string) {
	jobSkills := textnorm.ExtractSkills(jobText, nil)
	if len(jobSkills) == 0 {
		return 0.5, nil, nil
	}

	resumeSet := make(map[string]struct{}, len(resumeSkills))
	for _, s := range resumeSkills {
		resumeSet[strings.ToLower(s)] = struct{}{}
	}

	for _, s := range jobSkills {
		if _, ok := resumeSet[s]; ok {
			matched = append(matched, s)
		} else {
			missing = append(missing, s)
		}
	}

	return float64(len(matched)) / float64(len(jobSkills)), matched, missing
}

// ComputeRecency scores a job's posting date with exponential decay: 1.0
// for a job posted today, halving every RecencyHalfLifeDays.
func (s *Scorer) ComputeRecency(postedAt time.Time) float64 {
	now := s.now().UTC()
	posted := postedAt.UTC()

	daysAgo := math.Floor(now.Sub(posted).Hours() / 24)
	if daysAgo < 0 {
		daysAgo = 0
	}
	decayRate := math.Ln2 / RecencyHalfLifeDays
	recency := math.Exp(-decayRate * daysAgo)
	return clamp01(recency)
}

// ComputeLocationMatch scores location fit by string matching: exact or
// substring match and shared "remote" mentions score 1.0, any shared word
// scores 0.7, otherwise 0.3. With no stated preference it returns a
// neutral 0.5.
func ComputeLocationMatch(jobLocation string, preferredLocation *string) float64 {
	if preferredLocation == nil || *preferredLocation == "" {
		return 0.5
	}

	jobLower := strings.ToLower(jobLocation)
	prefLower := strings.ToLower(*preferredLocation)

	if strings.Contains(prefLower, "remote") && strings.Contains(jobLower, "remote") {
		return 1.0
	}
	if strings.Contains(jobLower, prefLower) || strings.Contains(prefLower, jobLower) {
		return 1.0
	}

	prefWords := wordSet(prefLower)
	jobWords := wordSet(strings.ReplaceAll(jobLower, ",", " "))
	for w := range prefWords {
		if _, ok := jobWords[w]; ok {
			return 0.7
		}
	}
	return 0.3
}

func wordSet(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		out[w] = struct{}{}
	}
	return out
}

// ComputeSalaryMatch scores salary fit as a ratio of the job's midpoint
// salary to the user's minimum desired salary: 1.0 at or above parity,
// linearly scaled from 0.6 to 1.0 between 80%-100%, and a steep falloff
// below 80%. With no stated preference, or no job salary data, it
// returns a neutral 0.5.
func ComputeSalaryMatch(jobSalaryMin, jobSalaryMax, userMinSalary *float64) float64 {
	if userMinSalary == nil || *userMinSalary == 0 {
		return 0.5
	}

	var jobMid float64
	switch {
	case jobSalaryMin != nil && jobSalaryMax != nil:
		jobMid = (*jobSalaryMin + *jobSalaryMax) / 2
	case jobSalaryMax != nil:
		jobMid = *jobSalaryMax
	case jobSalaryMin != nil:
		jobMid = *jobSalaryMin
	default:
		return 0.5
	}

	ratio := jobMid / *userMinSalary
	switch {
	case ratio >= 1.0:
		return 1.0
	case ratio >= 0.8:
		return 0.6 + (ratio-0.8)*(0.4/0.2)
	default:
		return math.Max(0, ratio*0.75)
	}
}

// GenerateExplanation renders a short human-readable summary of why a job
// scored the way it did.
func GenerateExplanation(breakdown models.ScoreBreakdown, matchedSkills, missingSkills []string) string {
	var parts []string

	switch {
	case breakdown.Embedding >= 0.7:
		parts = append(parts, fmt.Sprintf("Strong semantic match (%.0f%%)", breakdown.Embedding*100))
	case breakdown.Embedding >= 0.5:
		parts = append(parts, fmt.Sprintf("Good semantic match (%.0f%%)", breakdown.Embedding*100))
	}

	if len(matchedSkills) > 0 {
		parts = append(parts, fmt.Sprintf("covers %d required skills", len(matchedSkills)))
	}
	if len(missingSkills) > 3 {
		parts = append(parts, fmt.Sprintf("missing %d skills", len(missingSkills)))
	}

	if breakdown.Recency >= 0.8 {
		parts = append(parts, "posted recently")
	}

	if len(parts) == 0 {
		parts = append(parts, "Moderate match")
	}

	return strings.Join(parts, ", ") + "."
}

// ScoreJob scores one job against a résumé profile using distance (the
// job's vector-index query distance) as the embedding-similarity input.
func (s *Scorer) ScoreJob(job models.Job, distance float64, profile models.ResumeProfile) models.ScoredJob {
	var breakdown models.ScoreBreakdown

	breakdown.Embedding = DistanceToSimilarity(distance)

	skillScore, matched, missing := ComputeSkillOverlap(profile.Skills, job.Description)
	breakdown.Skill = skillScore

	breakdown.Recency = s.ComputeRecency(job.PostedAt)
	breakdown.Location = ComputeLocationMatch(job.Location, profile.PreferredLocation)
	breakdown.Salary = ComputeSalaryMatch(job.SalaryMin, job.SalaryMax, profile.MinSalary)

	exclude := make(map[string]struct{})
	if profile.PreferredLocation == nil || *profile.PreferredLocation == "" {
		exclude["location"] = struct{}{}
	}
	if (profile.MinSalary == nil || *profile.MinSalary == 0) && job.SalaryMin == nil {
		exclude["salary"] = struct{}{}
	}

	weights := renormalize(s.weights, exclude)

	breakdownMap := breakdown.AsMap()
	contributions := make(map[string]float64, len(weights))
	var total float64
	for k, w := range weights {
		c := breakdownMap[k] * w
		contributions[k] = c
		total += c
	}

	sort.Strings(matched)
	sort.Strings(missing)

	explanation := GenerateExplanation(breakdown, matched, missing)

	if len(missing) > 10 {
		missing = missing[:10]
	}

	return models.ScoredJob{
		Job:              job,
		TotalScore:       total,
		Breakdown:        breakdown,
		EffectiveWeights: weights,
		Contributions:    contributions,
		MatchedSkills:    matched,
		MissingSkills:    missing,
		Explanation:      explanation,
		Distance:         distance,
	}
}

// ScoreJobs scores every job against distances[i] and returns the results
// sorted by TotalScore descending. jobs and distances must be the same
// length.
func (s *Scorer) ScoreJobs(jobs []models.Job, distances []float64, profile models.ResumeProfile) ([]models.ScoredJob, error) {
	if len(jobs) != len(distances) {
		return nil, fmt.Errorf("scoring: jobs and distances must have same length: %d vs %d", len(jobs), len(distances))
	}

	out := make([]models.ScoredJob, len(jobs))
	for i, job := range jobs {
		out[i] = s.ScoreJob(job, distances[i], profile)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalScore > out[j].TotalScore })
	return out, nil
}

// renormalize drops the excluded weight keys and rescales the remainder
// to sum to 1. If every remaining weight is zero, it splits evenly.
func renormalize(weights models.ScoringWeights, exclude map[string]struct{}) map[string]float64 {
	all := weights.AsMap()
	available := make(map[string]float64)
	var total float64
	for k, v := range all {
		if _, skip := exclude[k]; skip {
			continue
		}
		available[k] = v
		total += v
	}
	if total == 0 {
		even := 1.0 / float64(len(available))
		for k := range available {
			available[k] = even
		}
		return available
	}
	for k, v := range available {
		available[k] = v / total
	}
	return available
}
