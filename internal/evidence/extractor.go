package evidence

import (
	"context"
	"sort"
	"strings"

	"github.com/your-org/jobrec/internal/embedding"
	"github.com/your-org/jobrec/internal/textnorm"
	"github.com/your-org/jobrec/pkg/models"
)

// DefaultTopK is the number of top evidence matches Extractor returns
// when no override is given.
const DefaultTopK = 5

// DefaultSimilarityThreshold is the minimum sentence-pair cosine
// similarity Extractor requires to record a semantic match.
const DefaultSimilarityThreshold = 0.5

// Extractor builds an EvidenceResult explaining a job match, combining
// semantic sentence similarity (via an embedding.Service), skill-term
// overlap, and keyword overlap.
type Extractor struct {
	embedder  embedding.Service // optional; nil disables semantic evidence
	topK      int
	threshold float64
}

// New constructs an Extractor. embedder may be nil to disable semantic
// evidence (skill and keyword evidence still run).
func New(embedder embedding.Service, topK int, threshold float64) *Extractor {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	return &Extractor{embedder: embedder, topK: topK, threshold: threshold}
}

// ExtractSkillEvidence returns the skills shared between résumé and job
// text, and the skills the job lists that the résumé doesn't.
func ExtractSkillEvidence(resumeText, jobText string) (matched, jobOnly []string) {
	resumeSkills := toSet(textnorm.ExtractSkills(resumeText, nil))
	jobSkills := toSet(textnorm.ExtractSkills(jobText, nil))

	for s := range resumeSkills {
		if _, ok := jobSkills[s]; ok {
			matched = append(matched, s)
		}
	}
	for s := range jobSkills {
		if _, ok := resumeSkills[s]; !ok {
			jobOnly = append(jobOnly, s)
		}
	}
	sort.Strings(matched)
	sort.Strings(jobOnly)
	return matched, jobOnly
}

func toSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, s := range items {
		out[s] = struct{}{}
	}
	return out
}

// ExtractKeywordEvidence returns overlapping keywords between résumé and
// job text, longest (most specific) first, then alphabetically, capped
// at 20.
func ExtractKeywordEvidence(resumeText, jobText string) []string {
	resumeKeywords := ExtractKeywords(resumeText, 0)
	jobKeywords := ExtractKeywords(jobText, 0)

	var overlap []string
	for k := range resumeKeywords {
		if _, ok := jobKeywords[k]; ok {
			overlap = append(overlap, k)
		}
	}

	sort.Slice(overlap, func(i, j int) bool {
		if len(overlap[i]) != len(overlap[j]) {
			return len(overlap[i]) > len(overlap[j])
		}
		return overlap[i] < overlap[j]
	})

	if len(overlap) > 20 {
		overlap = overlap[:20]
	}
	return overlap
}

// ExtractSemanticEvidence embeds résumé and job sentences (capped at 30
// each for cost) and, for every job sentence, keeps its single best
// résumé match when similarity clears the threshold. Returns up to topK
// matches, highest similarity first. Returns nil (not an error) when no
// embedder is configured, matching the reference implementation's
// behavior with no embedding manager.
func (e *Extractor) ExtractSemanticEvidence(ctx context.Context, resumeText, jobText string) ([]models.EvidenceMatch, error) {
	if e.embedder == nil {
		return nil, nil
	}

	resumeSentences := SplitIntoSentences(resumeText)
	jobSentences := SplitIntoSentences(jobText)
	if len(resumeSentences) == 0 || len(jobSentences) == 0 {
		return nil, nil
	}

	if len(resumeSentences) > 30 {
		resumeSentences = resumeSentences[:30]
	}
	if len(jobSentences) > 30 {
		jobSentences = jobSentences[:30]
	}

	resumeEmbeddings, err := e.embedder.EmbedMany(ctx, resumeSentences)
	if err != nil {
		return nil, nil // degraded: evidence is best-effort, never fatal
	}
	jobEmbeddings, err := e.embedder.EmbedMany(ctx, jobSentences)
	if err != nil {
		return nil, nil
	}

	var matches []models.EvidenceMatch
	for j, jobSent := range jobSentences {
		bestIdx := -1
		bestSim := -1.0
		for i := range resumeSentences {
			sim, err := e.embedder.Cosine(resumeEmbeddings[i], jobEmbeddings[j])
			if err != nil {
				continue
			}
			if sim > bestSim {
				bestSim = sim
				bestIdx = i
			}
		}
		if bestIdx >= 0 && bestSim >= e.threshold {
			matches = append(matches, models.EvidenceMatch{
				ResumeSentence: resumeSentences[bestIdx],
				JobSentence:    jobSent,
				Similarity:     bestSim,
				Type:           models.EvidenceSemantic,
			})
		}
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Similarity > matches[j].Similarity })
	if len(matches) > e.topK {
		matches = matches[:e.topK]
	}
	return matches, nil
}

// ExtractEvidence builds the full EvidenceResult for one job match: the
// top semantic sentence matches, one synthetic match per top shared
// skill, and the raw skill/keyword overlap lists.
func (e *Extractor) ExtractEvidence(ctx context.Context, jobID, resumeText, jobText string) (models.EvidenceResult, error) {
	skillMatches, _ := ExtractSkillEvidence(resumeText, jobText)
	keywordMatches := ExtractKeywordEvidence(resumeText, jobText)

	semanticMatches, err := e.ExtractSemanticEvidence(ctx, resumeText, jobText)
	if err != nil {
		return models.EvidenceResult{}, err
	}

	allMatches := append([]models.EvidenceMatch{}, semanticMatches...)

	resumeSentences := SplitIntoSentences(resumeText)
	jobSentences := SplitIntoSentences(jobText)

	topSkills := skillMatches
	if len(topSkills) > 5 {
		topSkills = topSkills[:5]
	}
	for _, skill := range topSkills {
		resumeSent := firstContaining(resumeSentences, skill)
		if resumeSent == "" {
			resumeSent = "Resume mentions: " + skill
		}
		jobSent := firstContaining(jobSentences, skill)
		if jobSent == "" {
			jobSent = "Job requires: " + skill
		}
		allMatches = append(allMatches, models.EvidenceMatch{
			ResumeSentence: resumeSent,
			JobSentence:    jobSent,
			Similarity:     1.0,
			Type:           models.EvidenceSkill,
			MatchedTerms:   []string{skill},
		})
	}

	topResume := dedupeCapped(mapField(allMatches, func(m models.EvidenceMatch) string { return m.ResumeSentence }), e.topK)
	topJob := dedupeCapped(mapField(allMatches, func(m models.EvidenceMatch) string { return m.JobSentence }), e.topK)

	return models.EvidenceResult{
		JobID:              jobID,
		Matches:            allMatches,
		TopResumeSentences: topResume,
		TopJobSentences:    topJob,
		SkillMatches:       skillMatches,
		KeywordMatches:     keywordMatches,
	}, nil
}

// ExtractEvidenceBatch runs ExtractEvidence for every (jobID, jobText)
// pair against the same résumé text.
func (e *Extractor) ExtractEvidenceBatch(ctx context.Context, jobIDs []string, resumeText string, jobTexts []string) (map[string]models.EvidenceResult, error) {
	out := make(map[string]models.EvidenceResult, len(jobIDs))
	for i, jobID := range jobIDs {
		result, err := e.ExtractEvidence(ctx, jobID, resumeText, jobTexts[i])
		if err != nil {
			return nil, err
		}
		out[jobID] = result
	}
	return out, nil
}

func firstContaining(sentences []string, term string) string {
	lowerTerm := strings.ToLower(term)
	for _, s := range sentences {
		if strings.Contains(strings.ToLower(s), lowerTerm) {
			return s
		}
	}
	return ""
}

func mapField(matches []models.EvidenceMatch, f func(models.EvidenceMatch) string) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = f(m)
	}
	return out
}

func dedupeCapped(items []string, k int) []string {
	if len(items) > k {
		items = items[:k]
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
