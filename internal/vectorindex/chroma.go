package vectorindex

import (
	"context"
	"fmt"
	"os"

	chroma "github.com/amikos-tech/chroma-go"

	"github.com/your-org/jobrec/pkg/models"
)

// ChromaIndex implements Index against a ChromaDB server, completing the
// integration the teacher left as a commented-out TODO
// ("ChromaDB Go client API is stabilized") in its own vectorstore.go. The
// call shape (CreateCollection's positional metadata/getOrCreate/
// embeddingFunction/distanceFunction arguments, AddRecords, Query,
// Delete) is carried over unchanged; what changes is the domain —
// embeddings are always supplied by the caller (no server-side embedding
// function), so Query takes a precomputed query vector instead of the
// teacher's raw query string, and metadata/documents describe job
// postings instead of résumé chunks.
type ChromaIndex struct {
	client           *chroma.Client
	collection       *chroma.Collection
	collectionName   string
	embeddingVersion string
	persistDir       string
}

// NewChromaIndex connects to a Chroma server at basePath and gets or
// creates the versioned collection "<baseCollection>__<embeddingVersion>".
func NewChromaIndex(ctx context.Context, basePath, baseCollection, embeddingVersion string) (*ChromaIndex, error) {
	client, err := chroma.NewClient(chroma.WithBasePath(basePath))
	if err != nil {
		return nil, fmt.Errorf("vectorindex: failed to create Chroma client: %w", err)
	}

	name := CollectionName(baseCollection, embeddingVersion)
	metadata := map[string]interface{}{
		"embedding_version": embeddingVersion,
		"description":       "job postings for hybrid matching",
		"hnsw:space":        "cosine",
	}

	collection, err := client.CreateCollection(
		ctx,
		name,
		metadata,
		true, // getOrCreate
		nil,  // embeddingFunction: vectors are always supplied by the caller
		nil,  // distanceFunction: cosine set via metadata above
	)
	if err != nil {
		return nil, fmt.Errorf("vectorindex: failed to get/create collection %q: %w", name, err)
	}

	return &ChromaIndex{
		client:           client,
		collection:       collection,
		collectionName:   name,
		embeddingVersion: embeddingVersion,
		persistDir:       basePath,
	}, nil
}

// NewChromaIndexFromEnv reads CHROMA_BASE_PATH (defaulting to
// http://localhost:8000) and wires NewChromaIndex, for callers that don't
// want to thread connection details through their own config plumbing.
func NewChromaIndexFromEnv(ctx context.Context, baseCollection, embeddingVersion string) (*ChromaIndex, error) {
	basePath := os.Getenv("CHROMA_BASE_PATH")
	if basePath == "" {
		basePath = "http://localhost:8000"
	}
	return NewChromaIndex(ctx, basePath, baseCollection, embeddingVersion)
}

// Upsert implements Index.
func (c *ChromaIndex) Upsert(ctx context.Context, entries []models.VectorIndexEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	ids := make([]string, len(entries))
	documents := make([]string, len(entries))
	metadatas := make([]map[string]interface{}, len(entries))
	vectors := make([][]float64, len(entries))

	for i, e := range entries {
		if e.ID == "" {
			return 0, fmt.Errorf("vectorindex: entry missing id")
		}
		ids[i] = e.ID
		documents[i] = e.Document
		metadatas[i] = e.Metadata.ToMap()

		vec := make([]float64, len(e.Embedding))
		for j, v := range e.Embedding {
			vec[j] = float64(v)
		}
		vectors[i] = vec
	}

	if _, err := c.collection.AddRecords(ctx, ids, vectors, metadatas, documents); err != nil {
		return 0, fmt.Errorf("vectorindex: failed to add %d records to collection %q: %w", len(entries), c.collectionName, err)
	}
	return len(entries), nil
}

// Query implements Index.
func (c *ChromaIndex) Query(ctx context.Context, queryEmbedding []float32, nResults int, where WhereClause) ([]QueryResult, error) {
	if nResults <= 0 {
		nResults = 10
	}

	vec := make([]float64, len(queryEmbedding))
	for i, v := range queryEmbedding {
		vec[i] = float64(v)
	}

	var whereMap map[string]interface{}
	if where != nil {
		whereMap = map[string]interface{}(where)
	}

	queryResult, err := c.collection.QueryWithEmbeddings(
		ctx,
		[][]float64{vec},
		int32(nResults),
		whereMap,
		nil, // whereDocumentFilter
		[]string{"metadatas", "documents", "distances"},
	)
	if err != nil {
		return nil, fmt.Errorf("vectorindex: failed to query collection %q: %w", c.collectionName, err)
	}

	var out []QueryResult
	if queryResult == nil || len(queryResult.Ids) == 0 {
		return out, nil
	}

	ids := queryResult.Ids[0]
	for j, id := range ids {
		var doc string
		if len(queryResult.Documents) > 0 && len(queryResult.Documents[0]) > j {
			doc = queryResult.Documents[0][j]
		}
		var meta map[string]interface{}
		if len(queryResult.Metadatas) > 0 && len(queryResult.Metadatas[0]) > j {
			meta = queryResult.Metadatas[0][j]
		}
		var dist float64
		if len(queryResult.Distances) > 0 && len(queryResult.Distances[0]) > j {
			dist = queryResult.Distances[0][j]
		}
		out = append(out, QueryResult{ID: id, Document: doc, Metadata: meta, Distance: dist})
	}
	return out, nil
}

// GetByIDs implements Index.
func (c *ChromaIndex) GetByIDs(ctx context.Context, ids []string) ([]models.VectorIndexEntry, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	getResult, err := c.collection.GetWithOptions(ctx, ids, nil, nil, []string{"metadatas", "documents", "embeddings"})
	if err != nil {
		return nil, fmt.Errorf("vectorindex: failed to get %d ids from collection %q: %w", len(ids), c.collectionName, err)
	}

	out := make([]models.VectorIndexEntry, 0, len(getResult.Ids))
	for i, id := range getResult.Ids {
		var doc string
		if len(getResult.Documents) > i {
			doc = getResult.Documents[i]
		}
		var meta map[string]interface{}
		if len(getResult.Metadatas) > i {
			meta = getResult.Metadatas[i]
		}
		out = append(out, models.VectorIndexEntry{
			ID:       id,
			Document: doc,
			Metadata: metadataFromMap(meta),
		})
	}
	return out, nil
}

// DeleteByIDs implements Index.
func (c *ChromaIndex) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := c.collection.Delete(ctx, ids, nil, nil); err != nil {
		return fmt.Errorf("vectorindex: failed to delete %d ids from collection %q: %w", len(ids), c.collectionName, err)
	}
	return nil
}

// ListAllIDs implements Index.
func (c *ChromaIndex) ListAllIDs(ctx context.Context) ([]string, error) {
	getResult, err := c.collection.GetWithOptions(ctx, nil, nil, nil, []string{})
	if err != nil {
		return nil, fmt.Errorf("vectorindex: failed to list ids for collection %q: %w", c.collectionName, err)
	}
	return getResult.Ids, nil
}

// DeleteCollection implements Index.
func (c *ChromaIndex) DeleteCollection(ctx context.Context) error {
	if err := c.client.DeleteCollection(ctx, c.collectionName); err != nil {
		return fmt.Errorf("vectorindex: failed to delete collection %q: %w", c.collectionName, err)
	}
	return nil
}

// Info implements Index.
func (c *ChromaIndex) Info(ctx context.Context) (IndexInfo, error) {
	count, err := c.collection.Count(ctx)
	if err != nil {
		return IndexInfo{}, fmt.Errorf("vectorindex: failed to count collection %q: %w", c.collectionName, err)
	}
	return IndexInfo{
		CollectionName:   c.collectionName,
		PersistDir:       c.persistDir,
		EmbeddingVersion: c.embeddingVersion,
		Count:            int(count),
	}, nil
}

func metadataFromMap(m map[string]interface{}) models.JobMetadata {
	get := func(k string) string {
		if v, ok := m[k].(string); ok {
			return v
		}
		return ""
	}
	getFloatPtr := func(k string) *float64 {
		switch v := m[k].(type) {
		case float64:
			return &v
		default:
			return nil
		}
	}
	return models.JobMetadata{
		JobID:     get("job_id"),
		Source:    get("source"),
		SourceID:  get("source_id"),
		Company:   get("company"),
		Location:  get("location"),
		Category:  get("category"),
		PostedAt:  get("posted_at"),
		SalaryMin: getFloatPtr("salary_min"),
		SalaryMax: getFloatPtr("salary_max"),
	}
}
