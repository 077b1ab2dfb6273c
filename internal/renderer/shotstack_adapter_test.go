package renderer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/reelforge/reelforge-api/internal/shotstack"
)

// mockShotstackClient implements shotstack.Client for testing.
type mockShotstackClient struct {
	mock.Mock
}

func (m *mockShotstackClient) Submit(ctx context.Context, edit shotstack.Edit) (string, error) {
	args := m.Called(ctx, edit)
	return args.String(0), args.Error(1)
}

func (m *mockShotstackClient) Poll(ctx context.Context, renderID string) (shotstack.PollResult, error) {
	args := m.Called(ctx, renderID)
	return args.Get(0).(shotstack.PollResult), args.Error(1)
}

func TestShotstackAdapter_Submit(t *testing.T) {
	client := &mockShotstackClient{}
	client.On("Submit", mock.Anything, mock.Anything).Return("render-123", nil)

	adapter := NewShotstackAdapter(client)
	id, err := adapter.Submit(context.Background(), shotstack.Edit{})

	require.NoError(t, err)
	assert.Equal(t, "render-123", id)
}

func TestShotstackAdapter_Submit_Error(t *testing.T) {
	client := &mockShotstackClient{}
	submitErr := errors.New("submit failed")
	client.On("Submit", mock.Anything, mock.Anything).Return("", submitErr)

	adapter := NewShotstackAdapter(client)
	_, err := adapter.Submit(context.Background(), shotstack.Edit{})

	assert.ErrorIs(t, err, submitErr)
}

func TestShotstackAdapter_Poll_StatusMapping(t *testing.T) {
	tests := []struct {
		provider shotstack.Status
		want     Status
	}{
		{shotstack.StatusQueued, StatusQueued},
		{shotstack.StatusFetching, StatusRendering},
		{shotstack.StatusRendering, StatusRendering},
		{shotstack.StatusSaving, StatusRendering},
		{shotstack.StatusDone, StatusDone},
		{shotstack.StatusFailed, StatusFailed},
		// Vocabulary the provider may grow later must never look terminal.
		{shotstack.Status("transcoding"), StatusRendering},
		{shotstack.Status(""), StatusRendering},
	}

	for _, tt := range tests {
		t.Run(string(tt.provider), func(t *testing.T) {
			client := &mockShotstackClient{}
			client.On("Poll", mock.Anything, "render-1").Return(shotstack.PollResult{
				Status:   tt.provider,
				Progress: 42,
			}, nil)

			adapter := NewShotstackAdapter(client)
			result, err := adapter.Poll(context.Background(), "render-1")

			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Status)
			assert.Equal(t, 42, result.Progress)
		})
	}
}

func TestShotstackAdapter_Poll_CarriesTerminalDetail(t *testing.T) {
	client := &mockShotstackClient{}
	client.On("Poll", mock.Anything, "render-1").Return(shotstack.PollResult{
		Status:   shotstack.StatusDone,
		Progress: 100,
		URL:      "https://cdn.shotstack.io/out.mp4",
	}, nil)

	adapter := NewShotstackAdapter(client)
	result, err := adapter.Poll(context.Background(), "render-1")

	require.NoError(t, err)
	assert.Equal(t, StatusDone, result.Status)
	assert.Equal(t, "https://cdn.shotstack.io/out.mp4", result.ArtifactURL)
}

func TestShotstackAdapter_Poll_Error(t *testing.T) {
	client := &mockShotstackClient{}
	pollErr := errors.New("network down")
	client.On("Poll", mock.Anything, "render-1").Return(shotstack.PollResult{}, pollErr)

	adapter := NewShotstackAdapter(client)
	_, err := adapter.Poll(context.Background(), "render-1")

	assert.ErrorIs(t, err, pollErr)
}
