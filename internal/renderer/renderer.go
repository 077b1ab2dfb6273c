// Package renderer provides the common interface for render providers.
// Provider adapters normalize heterogeneous status shapes into one model;
// no provider-specific status name crosses this boundary.
package renderer

import (
	"context"

	"github.com/reelforge/reelforge-api/internal/shotstack"
)

// Status represents the normalized status of a render job.
type Status string

// Normalized job statuses across providers.
const (
	StatusQueued    Status = "queued"    // Accepted, waiting for a worker
	StatusRendering Status = "rendering" // In progress (or unrecognized provider state)
	StatusDone      Status = "done"      // Finished successfully
	StatusFailed    Status = "failed"    // Finished with an error
)

// IsTerminal returns true if the status represents a final state.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusDone, StatusFailed:
		return true
	default:
		return false
	}
}

// PollResult contains the normalized result of polling a job's status.
type PollResult struct {
	Status      Status // Normalized job status
	Progress    int    // Provider-reported percent, 0 when absent
	ArtifactURL string // URL of the rendered artifact (only when done)
	Error       string // Error message (only when failed)
}

// Renderer defines the interface for render providers.
type Renderer interface {
	// Submit sends a composed edit to the provider and returns its job ID.
	Submit(ctx context.Context, edit shotstack.Edit) (jobID string, err error)

	// Poll checks the status of a job and returns the normalized result.
	Poll(ctx context.Context, jobID string) (PollResult, error)
}
