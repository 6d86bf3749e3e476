package embedding

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"

	"github.com/your-org/jobrec/pkg/models"
)

// LocalDim is the vector dimension produced by LocalService.
const LocalDim = 256

// LocalModelName identifies the deterministic local provider in
// EmbeddingConfig, distinguishing its vectors (and their versionId) from
// any OpenAI model's.
const LocalModelName = "local-hash-v1"

// LocalService is a deterministic, content-sensitive embedder with no
// network or API-key dependency: it hashes token shingles of the input
// into a fixed-width vector, then L2-normalizes. Distinct inputs produce
// distinct vectors, and identical inputs always produce the same vector,
// so cosine similarity over LocalService output is meaningful for tests
// and offline CLI runs — unlike the teacher's constant-0.1 placeholder,
// which collapses every input to the same vector and can't exercise the
// scorer or evidence extractor at all.
type LocalService struct {
	mu     sync.Mutex
	loaded bool
}

// NewLocalService constructs a ready-to-use local embedder.
func NewLocalService() *LocalService {
	return &LocalService{}
}

// Config implements Service.
func (s *LocalService) Config(ctx context.Context) (models.EmbeddingConfig, error) {
	s.mu.Lock()
	s.loaded = true
	s.mu.Unlock()
	return DefaultEmbeddingConfig(LocalModelName, LocalDim), nil
}

// EmbedOne implements Service.
func (s *LocalService) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("embedding: text cannot be empty")
	}
	s.mu.Lock()
	s.loaded = true
	s.mu.Unlock()
	return hashEmbed(text), nil
}

// EmbedMany implements Service.
func (s *LocalService) EmbedMany(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("embedding: texts cannot be empty")
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		if t == "" {
			return nil, fmt.Errorf("embedding: text at index %d is empty", i)
		}
		out[i] = hashEmbed(t)
	}
	return out, nil
}

// Cosine implements Service.
func (s *LocalService) Cosine(a, b []float32) (float64, error) {
	return Cosine(a, b)
}

// Unload implements Service.
func (s *LocalService) Unload() {
	s.mu.Lock()
	s.loaded = false
	s.mu.Unlock()
}

// hashEmbed folds word-shingle hashes into a LocalDim-wide vector and
// L2-normalizes the result.
func hashEmbed(text string) []float32 {
	vec := make([]float32, LocalDim)
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return vec
	}

	shingle := func(s string) {
		h := fnv.New32a()
		h.Write([]byte(s))
		idx := int(h.Sum32() % uint32(LocalDim))
		sign := float32(1)
		if h.Sum32()%2 == 0 {
			sign = -1
		}
		vec[idx] += sign
	}

	for _, w := range words {
		shingle(w)
	}
	for i := 0; i < len(words)-1; i++ {
		shingle(words[i] + "_" + words[i+1])
	}

	normalizeL2(vec)
	return vec
}
