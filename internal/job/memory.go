package job

import (
	"context"
	"sync"
)

// Compile-time check that MemoryRepository implements Repository.
var _ Repository = (*MemoryRepository)(nil)

// MemoryRepository is an in-memory implementation of Repository.
// It uses a map with RWMutex for thread-safe access. Jobs are never
// deleted: once terminal they stay readable for the session's duration.
type MemoryRepository struct {
	mu   sync.RWMutex
	jobs map[string]*RenderJob
}

// NewMemoryRepository creates a new in-memory job repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		jobs: make(map[string]*RenderJob),
	}
}

// Save persists a job to the in-memory storage.
// Creates a clone to avoid external mutations.
func (r *MemoryRepository) Save(_ context.Context, job *RenderJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = job.Clone()
	return nil
}

// FindByID retrieves a job by its ID.
// Returns a clone to prevent external mutations.
func (r *MemoryRepository) FindByID(_ context.Context, id string) (*RenderJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, ErrJobNotFound
	}
	return job.Clone(), nil
}

// List returns all jobs in the repository.
// Returns clones to prevent external mutations.
func (r *MemoryRepository) List(_ context.Context) ([]*RenderJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*RenderJob, 0, len(r.jobs))
	for _, job := range r.jobs {
		result = append(result, job.Clone())
	}
	return result, nil
}
