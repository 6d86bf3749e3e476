package jobsource

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/gabriel-vasile/mimetype"

	"github.com/your-org/jobrec/pkg/models"
)

// JSONFileSource reads job postings from a newline-delimited JSON file,
// one Job object per line — a stand-in for the Adzuna-backed crawler
// that's out of scope here.
type JSONFileSource struct {
	path string
}

// NewJSONFileSource constructs a source reading from path. The file's
// content is sniffed (not just its extension) on every call, rejecting
// anything that isn't text/plain-compatible, the same allowlist-by-
// content-sniffing approach used for upload validation elsewhere in the
// stack.
func NewJSONFileSource(path string) *JSONFileSource {
	return &JSONFileSource{path: path}
}

func (s *JSONFileSource) readAll(sourceFilter string, limit int) ([]models.Job, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("jobsource: failed to read %q: %w", s.path, err)
	}

	mime := mimetype.Detect(data)
	if !mime.Is("text/plain") && !isNDJSONCompatible(mime.String()) {
		return nil, fmt.Errorf("jobsource: %q has unexpected content type %q", s.path, mime.String())
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("jobsource: failed to open %q: %w", s.path, err)
	}
	defer f.Close()

	var jobs []models.Job
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var job models.Job
		if err := json.Unmarshal(line, &job); err != nil {
			return nil, fmt.Errorf("jobsource: malformed job at %q line %d: %w", s.path, lineNo, err)
		}

		if sourceFilter != "" && job.Source != sourceFilter {
			continue
		}

		jobs = append(jobs, job)
		if limit > 0 && len(jobs) >= limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("jobsource: failed to scan %q: %w", s.path, err)
	}

	return jobs, nil
}

// isNDJSONCompatible allows the handful of MIME types mimetype assigns
// to content (NDJSON, JSON, CSV, or unrecognized bytes) that a
// hand-written .jsonl file may sniff as, depending on its first bytes.
func isNDJSONCompatible(mime string) bool {
	switch mime {
	case "application/x-ndjson", "application/json", "text/csv", "application/octet-stream":
		return true
	default:
		return false
	}
}

// Jobs implements Source.
func (s *JSONFileSource) Jobs(ctx context.Context, sourceFilter string, limit int) ([]models.Job, error) {
	return s.readAll(sourceFilter, limit)
}

// Count implements Source.
func (s *JSONFileSource) Count(ctx context.Context, sourceFilter string) (int, error) {
	jobs, err := s.readAll(sourceFilter, 0)
	if err != nil {
		return 0, err
	}
	return len(jobs), nil
}
