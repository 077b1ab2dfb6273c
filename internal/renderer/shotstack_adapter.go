package renderer

import (
	"context"
	"fmt"

	"github.com/reelforge/reelforge-api/internal/shotstack"
)

// ShotstackAdapter adapts the Shotstack client to the Renderer interface.
type ShotstackAdapter struct {
	client shotstack.Client
}

// NewShotstackAdapter creates a new Shotstack renderer adapter.
func NewShotstackAdapter(client shotstack.Client) *ShotstackAdapter {
	return &ShotstackAdapter{client: client}
}

// Submit sends a render job to Shotstack.
func (a *ShotstackAdapter) Submit(ctx context.Context, edit shotstack.Edit) (string, error) {
	jobID, err := a.client.Submit(ctx, edit)
	if err != nil {
		return "", fmt.Errorf("shotstack adapter submit: %w", err)
	}
	return jobID, nil
}

// Poll checks the status of a Shotstack render.
// Statuses outside the known vocabulary normalize to rendering: a new or
// garbled provider state must never be dropped or treated as terminal
// until it is explicitly added to the mapping.
func (a *ShotstackAdapter) Poll(ctx context.Context, jobID string) (PollResult, error) {
	result, err := a.client.Poll(ctx, jobID)
	if err != nil {
		return PollResult{}, fmt.Errorf("shotstack adapter poll: %w", err)
	}

	var status Status
	switch result.Status {
	case shotstack.StatusQueued:
		status = StatusQueued
	case shotstack.StatusFetching, shotstack.StatusRendering, shotstack.StatusSaving:
		status = StatusRendering
	case shotstack.StatusDone:
		status = StatusDone
	case shotstack.StatusFailed:
		status = StatusFailed
	default:
		status = StatusRendering
	}

	return PollResult{
		Status:      status,
		Progress:    result.Progress,
		ArtifactURL: result.URL,
		Error:       result.Error,
	}, nil
}

// Compile-time check that ShotstackAdapter implements Renderer.
var _ Renderer = (*ShotstackAdapter)(nil)
