package job

import (
	"context"
	"errors"
)

// ErrJobNotFound is returned when a job cannot be found by ID.
var ErrJobNotFound = errors.New("job not found")

// Repository defines the interface for job persistence. Render jobs are
// ephemeral and tracked only for the polling session's lifetime, so the
// in-memory implementation is the default backend.
type Repository interface {
	// Save persists a job to the storage.
	// If the job already exists, it is updated.
	Save(ctx context.Context, job *RenderJob) error

	// FindByID retrieves a job by its provider-assigned identifier.
	// Returns ErrJobNotFound if the job does not exist.
	FindByID(ctx context.Context, id string) (*RenderJob, error)

	// List returns all jobs.
	List(ctx context.Context) ([]*RenderJob, error)
}
