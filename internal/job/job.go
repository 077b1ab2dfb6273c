// Package job provides the RenderJob aggregate for tracking remote render
// jobs. It includes the status state machine, the poll-result reducer, and
// repository interfaces for persistence.
package job

import (
	"sync"
	"time"

	"github.com/reelforge/reelforge-api/internal/renderer"
)

// Status represents the current state of a RenderJob.
type Status string

const (
	// StatusQueued indicates the provider accepted the job but has not started.
	StatusQueued Status = "queued"
	// StatusRendering indicates the provider is processing the job.
	StatusRendering Status = "rendering"
	// StatusDone indicates the job finished successfully.
	StatusDone Status = "done"
	// StatusFailed indicates the job finished with an error.
	StatusFailed Status = "failed"
)

// IsTerminal returns true if the status is a terminal state.
func (s Status) IsTerminal() bool {
	return s == StatusDone || s == StatusFailed
}

// validTransitions defines which state transitions are allowed.
// Providers may skip intermediate states, so queued can go straight
// to a terminal state. Self-transitions are legal while non-terminal;
// a regression (rendering back to queued) is not.
var validTransitions = map[Status][]Status{
	StatusQueued:    {StatusQueued, StatusRendering, StatusDone, StatusFailed},
	StatusRendering: {StatusRendering, StatusDone, StatusFailed},
	StatusDone:      {},
	StatusFailed:    {},
}

// canTransition checks if a transition from one status to another is valid.
func canTransition(from, to Status) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// RenderJob represents one submitted render. It is created only after a
// successful provider acknowledgment and becomes immutable once terminal.
type RenderJob struct {
	mu sync.RWMutex

	// ID is the provider-assigned identifier, treated as opaque.
	ID string
	// Status is the current normalized job state.
	Status Status
	// Progress is the percentage of completion (0-100),
	// monotonically non-decreasing while the job is live.
	Progress int
	// ArtifactURL is the rendered video URL, set only on terminal success.
	ArtifactURL string
	// Error contains the provider's error detail if the job failed.
	Error string
	// SubmittedAt is when the provider acknowledged the submission.
	SubmittedAt time.Time
	// UpdatedAt is when the job was last reconciled.
	UpdatedAt time.Time
	// CompletedAt is when the job reached a terminal state.
	CompletedAt time.Time
}

// New creates a RenderJob in queued state for a provider-acknowledged
// submission.
func New(id string) *RenderJob {
	now := time.Now()
	return &RenderJob{
		ID:          id,
		Status:      StatusQueued,
		SubmittedAt: now,
		UpdatedAt:   now,
	}
}

// Apply reconciles the job with a fresh poll result. It is the only
// mutation path for a job after creation and enforces the lifecycle
// invariants:
//
//   - terminal states absorb all further input (no-op)
//   - invalid transitions keep the current status
//   - progress never decreases; done pins it to 100, failed keeps the
//     last observed value
//   - the artifact URL is recorded only on terminal success
func (j *RenderJob) Apply(poll renderer.PollResult) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.Status.IsTerminal() {
		return
	}

	next := Status(poll.Status)
	if !canTransition(j.Status, next) {
		next = j.Status
	}

	if poll.Progress > j.Progress {
		j.Progress = poll.Progress
	}

	j.Status = next
	j.UpdatedAt = time.Now()

	switch next {
	case StatusDone:
		j.Progress = 100
		j.ArtifactURL = poll.ArtifactURL
		j.CompletedAt = j.UpdatedAt
	case StatusFailed:
		j.Error = poll.Error
		j.CompletedAt = j.UpdatedAt
	}
}

// GetStatus returns the current job status (thread-safe).
func (j *RenderJob) GetStatus() Status {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.Status
}

// IsTerminal returns true if the job is in a terminal state.
func (j *RenderJob) IsTerminal() bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.Status.IsTerminal()
}

// Clone creates a deep copy of the job for safe reads.
func (j *RenderJob) Clone() *RenderJob {
	j.mu.RLock()
	defer j.mu.RUnlock()

	return &RenderJob{
		ID:          j.ID,
		Status:      j.Status,
		Progress:    j.Progress,
		ArtifactURL: j.ArtifactURL,
		Error:       j.Error,
		SubmittedAt: j.SubmittedAt,
		UpdatedAt:   j.UpdatedAt,
		CompletedAt: j.CompletedAt,
	}
}
