// Package repository defines the metadata row-store interface for job
// postings and a Postgres adapter, plus an in-memory adapter for tests.
// The schema mirrors the original's SQLite/Postgres metadata table, not
// its own business-logic endpoints — this package's job is purely to get
// a Job in and out of durable storage by (source, sourceId).
package repository

import (
	"context"

	"github.com/your-org/jobrec/pkg/models"
)

// JobStore persists and retrieves job postings, unique on
// (Source, SourceID).
type JobStore interface {
	// Upsert inserts or updates jobs, keyed by (Source, SourceID).
	Upsert(ctx context.Context, jobs []models.Job) error

	// GetByID returns a job by its ID ("<source>_<sourceId>"), or a
	// NotFound-flavored error if absent.
	GetByID(ctx context.Context, id string) (models.Job, error)

	// List returns jobs matching an optional source filter, with
	// pagination.
	List(ctx context.Context, sourceFilter string, limit, offset int) ([]models.Job, error)

	// Count returns the number of stored jobs matching sourceFilter.
	Count(ctx context.Context, sourceFilter string) (int, error)

	// Close releases any held resources (connections, file handles).
	Close() error
}
