package pipeline

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/your-org/jobrec/internal/embedding"
	"github.com/your-org/jobrec/internal/jobsource"
	"github.com/your-org/jobrec/internal/repository"
	"github.com/your-org/jobrec/internal/textnorm"
	"github.com/your-org/jobrec/internal/vectorindex"
	"github.com/your-org/jobrec/pkg/models"
)

// IndexJobsOptions controls one indexJobs run, mirroring the CLI flags
// spec.md §6 names for the index subcommand.
type IndexJobsOptions struct {
	Source         string // "" means every source
	Limit          int    // 0 means no limit
	Rebuild        bool   // drop and recreate the collection first
	BatchSizeJobs  int    // how many jobs are read/upserted to the row store per batch
	BatchSizeEmbed int    // how many documents are embedded per EmbedMany call
	Verbose        bool
}

// IndexJobsCounts reports what happened during one indexJobs run, the
// "counts" spec.md §6 says indexJobs returns.
type IndexJobsCounts struct {
	RunID       string
	Read        int
	Skipped     int // already indexed, or too short to embed meaningfully
	Embedded    int
	Upserted    int
	Duration    time.Duration
}

// Indexer wires C1 (textnorm) and C2 (embedding) into C3 (vectorindex) and
// the metadata row store, implementing spec.md §6's indexJobs operation:
// read from a Source, clean + embed new jobs, and upsert them into both
// the vector index and the row store in batches.
type Indexer struct {
	Source   jobsource.Source
	Store    repository.JobStore
	Embedder embedding.Service
	Index    vectorindex.Index
}

// NewIndexer constructs an Indexer from its four collaborators.
func NewIndexer(source jobsource.Source, store repository.JobStore, embedder embedding.Service, index vectorindex.Index) *Indexer {
	return &Indexer{Source: source, Store: store, Embedder: embedder, Index: index}
}

// IndexJobs runs one indexJobs pass end to end.
func (idx *Indexer) IndexJobs(ctx context.Context, opts IndexJobsOptions) (IndexJobsCounts, error) {
	start := time.Now()
	runID := uuid.NewString()
	counts := IndexJobsCounts{RunID: runID}

	if opts.BatchSizeJobs <= 0 {
		opts.BatchSizeJobs = 100
	}
	if opts.BatchSizeEmbed <= 0 {
		opts.BatchSizeEmbed = 32
	}

	if opts.Rebuild {
		if err := idx.Index.DeleteCollection(ctx); err != nil {
			return counts, wrap(Transient, "IndexJobs.DeleteCollection", err)
		}
		if opts.Verbose {
			log.Printf("indexJobs[%s]: rebuild requested, collection dropped", runID)
		}
	}

	jobs, err := idx.Source.Jobs(ctx, opts.Source, opts.Limit)
	if err != nil {
		return counts, wrap(Transient, "IndexJobs.Source.Jobs", err)
	}
	counts.Read = len(jobs)

	var existing map[string]struct{}
	if !opts.Rebuild {
		ids, err := idx.Index.ListAllIDs(ctx)
		if err != nil {
			return counts, wrap(Transient, "IndexJobs.ListAllIDs", err)
		}
		existing = make(map[string]struct{}, len(ids))
		for _, id := range ids {
			existing[id] = struct{}{}
		}
	}

	for batchStart := 0; batchStart < len(jobs); batchStart += opts.BatchSizeJobs {
		batchEnd := batchStart + opts.BatchSizeJobs
		if batchEnd > len(jobs) {
			batchEnd = len(jobs)
		}
		batch := jobs[batchStart:batchEnd]

		if err := idx.indexBatch(ctx, batch, existing, opts, &counts); err != nil {
			return counts, err
		}
	}

	counts.Duration = time.Since(start)
	if opts.Verbose {
		log.Printf("indexJobs[%s]: read=%d skipped=%d embedded=%d upserted=%d duration=%s",
			runID, counts.Read, counts.Skipped, counts.Embedded, counts.Upserted, counts.Duration)
	}
	return counts, nil
}

func (idx *Indexer) indexBatch(ctx context.Context, batch []models.Job, existing map[string]struct{}, opts IndexJobsOptions, counts *IndexJobsCounts) error {
	type prepared struct {
		job      models.Job
		document string
	}
	var toEmbed []prepared

	for _, job := range batch {
		if existing != nil {
			if _, ok := existing[job.ID]; ok {
				counts.Skipped++
				continue
			}
		}

		cleanDescription := textnorm.CleanJobText(job.Description).Text
		job.Description = cleanDescription
		document := textnorm.BuildJobDocument(job.Title, job.Company, job.Location, cleanDescription, 0)

		// Job documents need 100 non-whitespace characters; the stricter
		// 200-character default is the résumé threshold Search applies.
		if textnorm.IsTextTooShort(document, 100) {
			counts.Skipped++
			continue
		}

		toEmbed = append(toEmbed, prepared{job: job, document: document})
	}

	if err := idx.Store.Upsert(ctx, batch); err != nil {
		return wrap(Transient, "IndexJobs.Store.Upsert", err)
	}

	for embedStart := 0; embedStart < len(toEmbed); embedStart += opts.BatchSizeEmbed {
		embedEnd := embedStart + opts.BatchSizeEmbed
		if embedEnd > len(toEmbed) {
			embedEnd = len(toEmbed)
		}
		sub := toEmbed[embedStart:embedEnd]

		documents := make([]string, len(sub))
		for i, p := range sub {
			documents[i] = p.document
		}

		vectors, err := idx.Embedder.EmbedMany(ctx, documents)
		if err != nil {
			return wrap(Transient, "IndexJobs.Embedder.EmbedMany", err)
		}
		counts.Embedded += len(vectors)

		entries := make([]models.VectorIndexEntry, len(sub))
		for i, p := range sub {
			entries[i] = models.VectorIndexEntry{
				ID:        p.job.ID,
				Document:  p.document,
				Embedding: vectors[i],
				Metadata:  jobMetadata(p.job),
			}
		}

		upserted, err := idx.Index.Upsert(ctx, entries)
		if err != nil {
			return wrap(Transient, "IndexJobs.Index.Upsert", err)
		}
		counts.Upserted += upserted
	}

	return nil
}

func jobMetadata(job models.Job) models.JobMetadata {
	category := ""
	if job.Category != nil {
		category = *job.Category
	}
	return models.JobMetadata{
		JobID:     job.ID,
		Source:    job.Source,
		SourceID:  job.SourceID,
		Company:   job.Company,
		Location:  job.Location,
		Category:  category,
		PostedAt:  job.PostedAt.UTC().Format(time.RFC3339),
		SalaryMin: job.SalaryMin,
		SalaryMax: job.SalaryMax,
	}
}
