package textnorm

import (
	"regexp"
	"sort"
	"strings"
	"sync"
)

// DefaultSkillLexicon is the default keyword list for ExtractSkills,
// mirroring the reference implementation's hand-curated tech-term list.
// Callers needing a different domain vocabulary pass their own slice.
var DefaultSkillLexicon = []string{
	"python", "javascript", "typescript", "java", "c++", "c#", "go", "rust",
	"sql", "nosql", "mongodb", "postgresql", "mysql", "redis",
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform",
	"react", "angular", "vue", "node.js", "django", "flask", "fastapi",
	"machine learning", "deep learning", "nlp", "computer vision",
	"tensorflow", "pytorch", "scikit-learn", "pandas", "numpy",
	"git", "ci/cd", "agile", "scrum", "jira",
	"rest", "graphql", "microservices", "api",
}

type skillPattern struct {
	skill string
	re    *regexp.Regexp
}

var (
	defaultPatternsOnce sync.Once
	defaultPatterns     []skillPattern
)

func compilePatterns(lexicon []string) []skillPattern {
	out := make([]skillPattern, 0, len(lexicon))
	for _, skill := range lexicon {
		s := strings.ToLower(skill)
		pattern := `\b` + regexp.QuoteMeta(s) + `\b`
		re, err := regexp.Compile(pattern)
		if err != nil {
			continue
		}
		out = append(out, skillPattern{skill: s, re: re})
	}
	return out
}

// ExtractSkills does whole-word, case-insensitive matching of lexicon
// entries against text, returning the matched terms lowercased, sorted,
// and deduplicated. A nil lexicon falls back to DefaultSkillLexicon,
// whose patterns are compiled once and reused across calls.
func ExtractSkills(text string, lexicon []string) []string {
	var patterns []skillPattern
	if lexicon == nil {
		defaultPatternsOnce.Do(func() {
			defaultPatterns = compilePatterns(DefaultSkillLexicon)
		})
		patterns = defaultPatterns
	} else {
		patterns = compilePatterns(lexicon)
	}

	lower := strings.ToLower(text)

	found := make(map[string]struct{})
	for _, p := range patterns {
		if p.re.MatchString(lower) {
			found[p.skill] = struct{}{}
		}
	}

	out := make([]string, 0, len(found))
	for s := range found {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
