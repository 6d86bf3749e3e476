package vectorindex

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/your-org/jobrec/internal/embedding"
	"github.com/your-org/jobrec/pkg/models"
)

// MemoryIndex is a brute-force, in-process Index: every Query scans all
// stored vectors. Generalized from the teacher's PlaceholderVectorStore
// (an unordered map keyed by a single int) into an ordered, filterable,
// versioned store matching the full C3 contract — used by unit tests and
// by the CLI when JOBREC_VECTOR_BACKEND is "memory" (the default).
type MemoryIndex struct {
	mu               sync.RWMutex
	collectionName   string
	embeddingVersion string
	entries          map[string]models.VectorIndexEntry
}

// NewMemoryIndex constructs an empty index for the given base collection
// name and embedding version.
func NewMemoryIndex(baseCollection, embeddingVersion string) *MemoryIndex {
	return &MemoryIndex{
		collectionName:   CollectionName(baseCollection, embeddingVersion),
		embeddingVersion: embeddingVersion,
		entries:          make(map[string]models.VectorIndexEntry),
	}
}

// Upsert implements Index.
func (m *MemoryIndex) Upsert(ctx context.Context, entries []models.VectorIndexEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range entries {
		if e.ID == "" {
			return 0, fmt.Errorf("vectorindex: entry missing id")
		}
		m.entries[e.ID] = e
	}
	return len(entries), nil
}

// Query implements Index via a full linear scan ranked by cosine
// similarity (converted to a Chroma-style distance of 1 - similarity).
func (m *MemoryIndex) Query(ctx context.Context, queryEmbedding []float32, nResults int, where WhereClause) ([]QueryResult, error) {
	if nResults <= 0 {
		nResults = 10
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	type scored struct {
		result   QueryResult
		distance float64
	}
	var candidates []scored

	for _, e := range m.entries {
		meta := e.Metadata.ToMap()
		if where != nil && !Matches(meta, where) {
			continue
		}
		sim, err := embedding.Cosine(queryEmbedding, e.Embedding)
		if err != nil {
			continue
		}
		candidates = append(candidates, scored{
			result: QueryResult{
				ID:       e.ID,
				Document: e.Document,
				Metadata: meta,
				Distance: 1 - sim,
			},
			distance: 1 - sim,
		})
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].distance < candidates[j].distance })

	if len(candidates) > nResults {
		candidates = candidates[:nResults]
	}
	out := make([]QueryResult, len(candidates))
	for i, c := range candidates {
		out[i] = c.result
	}
	return out, nil
}

// GetByIDs implements Index.
func (m *MemoryIndex) GetByIDs(ctx context.Context, ids []string) ([]models.VectorIndexEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.VectorIndexEntry, 0, len(ids))
	for _, id := range ids {
		if e, ok := m.entries[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

// DeleteByIDs implements Index.
func (m *MemoryIndex) DeleteByIDs(ctx context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		delete(m.entries, id)
	}
	return nil
}

// ListAllIDs implements Index.
func (m *MemoryIndex) ListAllIDs(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.entries))
	for id := range m.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// DeleteCollection implements Index.
func (m *MemoryIndex) DeleteCollection(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]models.VectorIndexEntry)
	return nil
}

// Info implements Index.
func (m *MemoryIndex) Info(ctx context.Context) (IndexInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return IndexInfo{
		CollectionName:   m.collectionName,
		PersistDir:       "",
		EmbeddingVersion: m.embeddingVersion,
		Count:            len(m.entries),
	}, nil
}
