package pipeline

import (
	"context"
	"log"
	"time"

	"github.com/your-org/jobrec/internal/embedding"
	"github.com/your-org/jobrec/internal/evidence"
	"github.com/your-org/jobrec/internal/repository"
	"github.com/your-org/jobrec/internal/scoring"
	"github.com/your-org/jobrec/internal/textnorm"
	"github.com/your-org/jobrec/internal/vectorindex"
	"github.com/your-org/jobrec/pkg/models"
)

// SearchOptions mirrors the CLI flags/search parameters spec.md §6 names
// for the search operation.
type SearchOptions struct {
	TopK              int // 1-200
	MinScore          float64
	RecencyDays       *int // postedAt >= now - d
	PreferredLocation *string
	MinSalary         *float64
	Sources           []string
	Verbose           bool
}

// SearchResult bundles one query's ranked jobs, their evidence (when
// computable), and an aggregate snapshot over the whole result set.
type SearchResult struct {
	Jobs      []models.ScoredJob
	Evidence  map[string]models.EvidenceResult
	Analytics models.AnalyticsSnapshot
}

// Searcher wires C1 (textnorm), C2 (embedding), C3 (vectorindex), C4
// (scoring), and C5 (evidence) into spec.md §6's search operation.
type Searcher struct {
	Embedder embedding.Service
	Index    vectorindex.Index
	Store    repository.JobStore
	Scorer   *scoring.Scorer
	Evidence *evidence.Extractor
}

// NewSearcher constructs a Searcher from its collaborators.
func NewSearcher(embedder embedding.Service, index vectorindex.Index, store repository.JobStore, scorer *scoring.Scorer, extractor *evidence.Extractor) *Searcher {
	return &Searcher{Embedder: embedder, Index: index, Store: store, Scorer: scorer, Evidence: extractor}
}

// Search cleans résumé text, extracts skills, embeds it, queries the
// vector index with the compiled where clause, scores and explains every
// candidate, and builds best-effort evidence for each.
func (s *Searcher) Search(ctx context.Context, resumeText string, opts SearchOptions) (SearchResult, error) {
	start := time.Now()
	analytics := models.AnalyticsSnapshot{
		SkillCoverage:  make(map[string]int),
		SourceCounts:   make(map[string]int),
		CategoryCounts: make(map[string]int),
		StageDurations: make(map[string]time.Duration),
	}

	if opts.TopK <= 0 {
		opts.TopK = 20
	}
	if opts.TopK > 200 {
		opts.TopK = 200
	}

	if textnorm.IsTextTooShort(resumeText, 0) {
		return SearchResult{}, wrap(InvalidInput, "Search", errTooShort)
	}

	cleanResume := textnorm.CleanResumeText(resumeText).Text
	skills := textnorm.ExtractSkills(cleanResume, nil)

	profile := models.ResumeProfile{
		RawText:           resumeText,
		CleanText:         cleanResume,
		Skills:            skills,
		PreferredLocation: opts.PreferredLocation,
		MinSalary:         opts.MinSalary,
	}

	embedStart := time.Now()
	vec, err := s.Embedder.EmbedOne(ctx, cleanResume)
	if err != nil {
		return SearchResult{}, wrap(Transient, "Search.Embedder.EmbedOne", err)
	}
	profile.Embedding = vec
	analytics.StageDurations["embed"] = time.Since(embedStart)

	where := compileWhere(opts)

	queryStart := time.Now()
	results, err := s.Index.Query(ctx, vec, opts.TopK, where)
	if err != nil {
		return SearchResult{}, wrap(Transient, "Search.Index.Query", err)
	}
	analytics.StageDurations["query"] = time.Since(queryStart)
	analytics.TotalCandidates = len(results)

	jobs := make([]models.Job, 0, len(results))
	distances := make([]float64, 0, len(results))
	for _, r := range results {
		job, err := s.Store.GetByID(ctx, r.ID)
		if err != nil {
			notFound := wrap(NotFound, "Search.Store.GetByID", err)
			if opts.Verbose {
				log.Printf("search: %v", notFound)
			}
			analytics.FilteredOut++
			continue
		}
		jobs = append(jobs, job)
		distances = append(distances, r.Distance)
	}

	scoreStart := time.Now()
	scored, err := s.Scorer.ScoreJobs(jobs, distances, profile)
	if err != nil {
		return SearchResult{}, wrap(InvalidInput, "Search.Scorer.ScoreJobs", err)
	}
	analytics.StageDurations["score"] = time.Since(scoreStart)
	analytics.Scored = len(scored)

	final := make([]models.ScoredJob, 0, len(scored))
	for _, sj := range scored {
		if sj.TotalScore < opts.MinScore {
			analytics.FilteredOut++
			continue
		}
		final = append(final, sj)
	}

	evidenceStart := time.Now()
	evidenceResults := make(map[string]models.EvidenceResult, len(final))
	for _, sj := range final {
		result, err := s.Evidence.ExtractEvidence(ctx, sj.Job.ID, cleanResume, sj.Job.Description)
		if err != nil {
			// Degraded, not fatal: spec.md §7 class (4) — a search still
			// returns its scored results without this job's evidence.
			if opts.Verbose {
				log.Printf("search: evidence extraction degraded for job %s: %v", sj.Job.ID, err)
			}
			continue
		}
		evidenceResults[sj.Job.ID] = result
		analytics.EvidenceBuilt++
	}
	analytics.StageDurations["evidence"] = time.Since(evidenceStart)

	for _, sj := range final {
		analytics.SourceCounts[sj.Job.Source]++
		if sj.Job.Category != nil {
			analytics.CategoryCounts[*sj.Job.Category]++
		}
		for _, skill := range sj.MatchedSkills {
			analytics.SkillCoverage[skill]++
		}
	}
	analytics.StageDurations["total"] = time.Since(start)

	return SearchResult{Jobs: final, Evidence: evidenceResults, Analytics: analytics}, nil
}

func compileWhere(opts SearchOptions) vectorindex.WhereClause {
	var clauses []vectorindex.WhereClause

	if opts.RecencyDays != nil {
		cutoff := time.Now().UTC().AddDate(0, 0, -*opts.RecencyDays).Format(time.RFC3339)
		clauses = append(clauses, vectorindex.Gte("posted_at", cutoff))
	}
	if len(opts.Sources) > 0 {
		vals := make([]any, len(opts.Sources))
		for i, s := range opts.Sources {
			vals[i] = s
		}
		clauses = append(clauses, vectorindex.In("source", vals))
	}

	if len(clauses) == 0 {
		return nil
	}
	return vectorindex.And(clauses...)
}
