// Package jobsource defines the external job-posting feed interface and
// a thin file-based adapter, standing in for the out-of-scope Adzuna
// crawler.
package jobsource

import (
	"context"

	"github.com/your-org/jobrec/pkg/models"
)

// Source yields job postings for indexJobs to consume. Real crawlers
// (Adzuna, LinkedIn, etc.) are explicitly out of scope; Source exists so
// indexJobs has something concrete to read from.
type Source interface {
	// Jobs returns up to limit postings, optionally filtered to source
	// name sourceFilter ("" for no filter). limit <= 0 means no limit.
	Jobs(ctx context.Context, sourceFilter string, limit int) ([]models.Job, error)

	// Count returns the total number of postings available, honoring
	// the same sourceFilter semantics as Jobs.
	Count(ctx context.Context, sourceFilter string) (int, error)
}
