package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/your-org/jobrec/pkg/models"
)

// MemoryJobStore is an in-process JobStore for tests and offline runs.
type MemoryJobStore struct {
	mu   sync.RWMutex
	jobs map[string]models.Job
}

// NewMemoryJobStore constructs an empty store.
func NewMemoryJobStore() *MemoryJobStore {
	return &MemoryJobStore{jobs: make(map[string]models.Job)}
}

// Upsert implements JobStore.
func (m *MemoryJobStore) Upsert(ctx context.Context, jobs []models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, j := range jobs {
		if j.ID == "" {
			return fmt.Errorf("repository: job missing id")
		}
		m.jobs[j.ID] = j
	}
	return nil
}

// GetByID implements JobStore.
func (m *MemoryJobStore) GetByID(ctx context.Context, id string) (models.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[id]
	if !ok {
		return models.Job{}, fmt.Errorf("repository: job not found with id %q", id)
	}
	return job, nil
}

// List implements JobStore.
func (m *MemoryJobStore) List(ctx context.Context, sourceFilter string, limit, offset int) ([]models.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []models.Job
	for _, j := range m.jobs {
		if sourceFilter != "" && j.Source != sourceFilter {
			continue
		}
		matched = append(matched, j)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	if offset >= len(matched) {
		return nil, nil
	}
	end := len(matched)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return matched[offset:end], nil
}

// Count implements JobStore.
func (m *MemoryJobStore) Count(ctx context.Context, sourceFilter string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if sourceFilter == "" {
		return len(m.jobs), nil
	}
	count := 0
	for _, j := range m.jobs {
		if j.Source == sourceFilter {
			count++
		}
	}
	return count, nil
}

// Close implements JobStore.
func (m *MemoryJobStore) Close() error { return nil }
