// Package models holds the domain types shared across the matching and
// ranking pipeline: postings, résumé profiles, embedding configuration,
// and the scored/explained results returned by a search.
package models

import "time"

// Job is an immutable job posting. Id is globally unique and injective on
// (Source, SourceID): id = "<source>_<sourceId>".
type Job struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	SourceID    string    `json:"source_id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	URL         string    `json:"url"`

	SalaryMin *float64 `json:"salary_min,omitempty"`
	SalaryMax *float64 `json:"salary_max,omitempty"`

	ContractType *string `json:"contract_type,omitempty"`
	ContractTime *string `json:"contract_time,omitempty"`
	Category     *string `json:"category,omitempty"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	// Label is an optional user feedback signal (0/1). Stored for later
	// analysis but never consulted by the scorer or evidence extractor.
	Label *int `json:"label,omitempty"`

	PostedAt  time.Time `json:"posted_at"`
	CreatedAt time.Time `json:"created_at"`
}

// MidSalary returns the job's midpoint salary and whether one could be
// computed at all (false when neither SalaryMin nor SalaryMax is set).
func (j Job) MidSalary() (float64, bool) {
	switch {
	case j.SalaryMin != nil && j.SalaryMax != nil:
		return (*j.SalaryMin + *j.SalaryMax) / 2, true
	case j.SalaryMax != nil:
		return *j.SalaryMax, true
	case j.SalaryMin != nil:
		return *j.SalaryMin, true
	default:
		return 0, false
	}
}

// ResumeProfile is derived from an uploaded résumé: raw and cleaned text,
// extracted skills, a dense L2-normalized embedding, and optional search
// preferences.
type ResumeProfile struct {
	RawText   string
	CleanText string
	Skills    []string

	Embedding []float32

	PreferredLocation *string
	MinSalary         *float64
}

// EmbeddingConfig identifies the model and cleaning logic that produced a
// set of vectors. Vectors under different VersionIDs are never comparable.
type EmbeddingConfig struct {
	ModelName string
	Dim       int
	VersionID string
}

// VectorIndexEntry is one record in the vector index: an id, its source
// document, its dense vector, and a metadata payload restricted to scalar
// types so it survives any ANN backend's filter language.
type VectorIndexEntry struct {
	ID        string
	Document  string
	Embedding []float32
	Metadata  JobMetadata
}

// JobMetadata is the scalar-only metadata payload attached to each vector.
type JobMetadata struct {
	JobID     string
	Source    string
	SourceID  string
	Company   string
	Location  string
	Category  string
	PostedAt  string // ISO-8601, UTC
	SalaryMin *float64
	SalaryMax *float64
}

// ToMap renders the metadata as scalar key/value pairs for storage engines
// (like Chroma) that accept map[string]any metadata.
func (m JobMetadata) ToMap() map[string]any {
	out := map[string]any{
		"job_id":    m.JobID,
		"source":    m.Source,
		"source_id": m.SourceID,
		"company":   m.Company,
		"location":  m.Location,
		"category":  m.Category,
		"posted_at": m.PostedAt,
	}
	if m.SalaryMin != nil {
		out["salary_min"] = *m.SalaryMin
	}
	if m.SalaryMax != nil {
		out["salary_max"] = *m.SalaryMax
	}
	return out
}

// ScoringWeights are five non-negative weights that sum to 1.
type ScoringWeights struct {
	Embedding float64
	Skill     float64
	Recency   float64
	Location  float64
	Salary    float64
}

// DefaultScoringWeights mirrors the reference distribution.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		Embedding: 0.55,
		Skill:     0.25,
		Recency:   0.10,
		Location:  0.07,
		Salary:    0.03,
	}
}

// AsMap renders the weights keyed by component name, for renormalization.
func (w ScoringWeights) AsMap() map[string]float64 {
	return map[string]float64{
		"embedding": w.Embedding,
		"skill":     w.Skill,
		"recency":   w.Recency,
		"location":  w.Location,
		"salary":    w.Salary,
	}
}

// ScoreBreakdown holds the five component scores, each in [0,1].
type ScoreBreakdown struct {
	Embedding float64
	Skill     float64
	Recency   float64
	Location  float64
	Salary    float64
}

// AsMap renders the breakdown keyed by component name.
func (b ScoreBreakdown) AsMap() map[string]float64 {
	return map[string]float64{
		"embedding": b.Embedding,
		"skill":     b.Skill,
		"recency":   b.Recency,
		"location":  b.Location,
		"salary":    b.Salary,
	}
}

// ScoredJob is a job ranked against a résumé profile, with its full
// decomposition and evidence trace. Produced per-query; never persisted.
type ScoredJob struct {
	Job              Job
	TotalScore       float64
	Breakdown        ScoreBreakdown
	EffectiveWeights map[string]float64
	Contributions    map[string]float64
	MatchedSkills    []string
	MissingSkills    []string
	Explanation      string
	Distance         float64
}

// EvidenceMatch is one sentence/skill/keyword-level justification linking a
// résumé to a job.
type EvidenceMatch struct {
	ResumeSentence string
	JobSentence    string
	Similarity     float64
	Type           EvidenceType
	MatchedTerms   []string
}

// EvidenceType classifies how an EvidenceMatch was produced.
type EvidenceType string

const (
	EvidenceSemantic EvidenceType = "semantic"
	EvidenceSkill    EvidenceType = "skill"
	EvidenceKeyword  EvidenceType = "keyword"
)

// EvidenceResult bundles the evidence computed for one job match.
type EvidenceResult struct {
	JobID               string
	Matches             []EvidenceMatch
	TopResumeSentences  []string
	TopJobSentences     []string
	SkillMatches        []string
	KeywordMatches      []string
}

// MatchCount returns the number of evidence matches.
func (r EvidenceResult) MatchCount() int { return len(r.Matches) }

// AvgSimilarity returns the mean similarity across all matches, or 0 if empty.
func (r EvidenceResult) AvgSimilarity() float64 {
	if len(r.Matches) == 0 {
		return 0
	}
	var sum float64
	for _, m := range r.Matches {
		sum += m.Similarity
	}
	return sum / float64(len(r.Matches))
}

// AnalyticsSnapshot is an aggregate read-model over a scored result set:
// skill coverage, per-stage funnel counts, and source/category diversity.
// It is computed on demand and never persisted.
type AnalyticsSnapshot struct {
	TotalCandidates int
	FilteredOut     int
	Scored          int
	EvidenceBuilt   int

	SkillCoverage map[string]int // skill -> number of results mentioning it
	SourceCounts  map[string]int
	CategoryCounts map[string]int

	StageDurations map[string]time.Duration
}
