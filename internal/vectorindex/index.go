// Package vectorindex implements C3: a versioned, filterable approximate
// nearest-neighbor index over job embeddings, backed by ChromaDB, with a
// pure-Go in-memory implementation for tests and offline runs.
package vectorindex

import (
	"context"

	"github.com/your-org/jobrec/pkg/models"
)

// Index is the C3 contract every backend (Chroma, in-memory) satisfies.
// Every operation is scoped to one versioned collection; callers never
// mix entries from two EmbeddingConfig.VersionID values in the same Index
// instance.
type Index interface {
	// Upsert inserts or replaces entries, keyed by VectorIndexEntry.ID.
	Upsert(ctx context.Context, entries []models.VectorIndexEntry) (int, error)

	// Query returns the nResults nearest neighbors to queryEmbedding,
	// optionally restricted by where. Results are ordered nearest-first.
	Query(ctx context.Context, queryEmbedding []float32, nResults int, where WhereClause) ([]QueryResult, error)

	// GetByIDs returns stored entries for the given ids, skipping ids
	// that aren't present. Order is not guaranteed to match ids.
	GetByIDs(ctx context.Context, ids []string) ([]models.VectorIndexEntry, error)

	// DeleteByIDs removes entries by id; ids not present are ignored.
	DeleteByIDs(ctx context.Context, ids []string) error

	// ListAllIDs returns every id currently stored in the collection.
	ListAllIDs(ctx context.Context) ([]string, error)

	// DeleteCollection drops the entire versioned collection.
	DeleteCollection(ctx context.Context) error

	// Info reports the collection's name, version, and current count.
	Info(ctx context.Context) (IndexInfo, error)
}

// QueryResult is one neighbor returned by Query.
type QueryResult struct {
	ID       string
	Document string
	Metadata map[string]any
	Distance float64
}

// IndexInfo describes a collection's identity and size.
type IndexInfo struct {
	CollectionName  string
	PersistDir      string
	EmbeddingVersion string
	Count           int
}

// CollectionName builds the "<base>__<versionId>" name every backend uses
// to keep embeddings from different model/cleaning versions in separate
// collections.
func CollectionName(base, versionID string) string {
	return base + "__" + versionID
}
