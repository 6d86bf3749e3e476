package embedding

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/your-org/jobrec/pkg/models"
)

// defaultRetryInterval is the fixed backoff used for the single retry of
// a Transient embedding-call failure (spec.md §7, class 3).
const defaultRetryInterval = 250 * time.Millisecond

// Service is the C2 contract: load/describe the active embedding model,
// embed one or many texts, measure similarity between two already-computed
// vectors, and release any loaded model state.
type Service interface {
	// Config returns the active EmbeddingConfig, loading the model first
	// if it hasn't been loaded yet.
	Config(ctx context.Context) (models.EmbeddingConfig, error)

	// EmbedOne embeds a single text. Returns an InvalidInput-flavored error
	// for an empty string.
	EmbedOne(ctx context.Context, text string) ([]float32, error)

	// EmbedMany embeds a batch of texts in one call where the provider
	// supports true batching; returns vectors in input order.
	EmbedMany(ctx context.Context, texts []string) ([][]float32, error)

	// Cosine computes cosine similarity between two vectors of equal
	// length. Vectors produced by EmbedOne/EmbedMany are already
	// L2-normalized, so this reduces to a dot product, but Cosine
	// normalizes defensively for vectors from other sources.
	Cosine(a, b []float32) (float64, error)

	// Unload releases any loaded model state, freeing memory. Safe to
	// call when nothing is loaded.
	Unload()
}

// Cosine is the package-level implementation shared by every provider.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("embedding: vector length mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("embedding: cannot compare empty vectors")
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// normalizeL2 scales v in place to unit length; a zero vector is left
// unchanged.
func normalizeL2(v []float32) {
	var sumSq float64
	for _, x := range v {
		sumSq += float64(x) * float64(x)
	}
	if sumSq == 0 {
		return
	}
	norm := math.Sqrt(sumSq)
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
}
