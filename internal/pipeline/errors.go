// Package pipeline orchestrates C1-C5 into the two end-to-end operations
// spec.md names: indexJobs (clean, embed, upsert job postings) and search
// (clean, embed, query, score, and explain against a résumé profile).
package pipeline

import "fmt"

// errTooShort is the cause wrapped into an InvalidInput error when a
// résumé has too little extractable text to search against meaningfully.
var errTooShort = fmt.Errorf("résumé text is too short to search against")

// Kind classifies a pipeline error into one of the six error classes
// spec.md §7 names.
type Kind int

const (
	// Configuration errors are fatal at startup: missing credentials,
	// unreachable stores, malformed settings.
	Configuration Kind = iota
	// InvalidInput errors come from caller-supplied data: empty text,
	// mismatched slice lengths, malformed filters.
	InvalidInput
	// Transient errors come from a dependency that may succeed on retry
	// (a flaky embedding API call, a momentary index timeout).
	Transient
	// Degraded marks a non-fatal evidence-extraction failure: the
	// search still returns scored results, just without that job's
	// evidence.
	Degraded
	// VersionMismatch is fatal at query time: the active embedding
	// config doesn't match the collection being queried.
	VersionMismatch
	// NotFound marks an absent resource that callers may choose to
	// absorb rather than fail on (a job id the index returned that the
	// row store does not have).
	NotFound
)

func (k Kind) String() string {
	switch k {
	case Configuration:
		return "configuration"
	case InvalidInput:
		return "invalid_input"
	case Transient:
		return "transient"
	case Degraded:
		return "degraded"
	case VersionMismatch:
		return "version_mismatch"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error wraps an underlying cause with a Kind, so callers can branch on
// errors.As(err, &pipeline.Error{}) without string-matching messages.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("pipeline: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("pipeline: %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// wrap builds an *Error, or returns nil if err is nil.
func wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}
