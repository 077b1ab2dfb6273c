package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/reelforge/reelforge-api/internal/apperr"
	"github.com/reelforge/reelforge-api/internal/job"
	"github.com/reelforge/reelforge-api/internal/publish"
	"github.com/reelforge/reelforge-api/internal/renderer"
	"github.com/reelforge/reelforge-api/internal/shotstack"
)

// mockRenderer implements renderer.Renderer for testing.
type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) Submit(ctx context.Context, edit shotstack.Edit) (string, error) {
	args := m.Called(ctx, edit)
	return args.String(0), args.Error(1)
}

func (m *mockRenderer) Poll(ctx context.Context, jobID string) (renderer.PollResult, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).(renderer.PollResult), args.Error(1)
}

// mockResolver implements assets.Resolver for testing.
type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) ResolveSpeech(ctx context.Context, voiceID, script string) (string, error) {
	args := m.Called(ctx, voiceID, script)
	return args.String(0), args.Error(1)
}

func (m *mockResolver) ResolveMusic(trackID string) (string, error) {
	args := m.Called(trackID)
	return args.String(0), args.Error(1)
}

type testEnv struct {
	handlers *Handlers
	rend     *mockRenderer
	res      *mockResolver
	store    *publish.MemoryTokenStore
}

func newTestEnv(t *testing.T, opts ...HandlerOption) *testEnv {
	t.Helper()
	rend := &mockRenderer{}
	res := &mockResolver{}
	svc := job.NewService(job.NewMemoryRepository(), rend, res, nil)
	return &testEnv{
		handlers: NewHandlers(svc, nil, opts...),
		rend:     rend,
		res:      res,
	}
}

func newTestEnvWithGate(t *testing.T) *testEnv {
	t.Helper()
	store := publish.NewMemoryTokenStore()
	gate, err := publish.NewGate("client-id", "client-secret", "http://localhost:8080/youtube/callback", store)
	require.NoError(t, err)

	env := newTestEnv(t, WithPublishGate(gate))
	env.store = store
	return env
}

func generateBody() []byte {
	body, _ := json.Marshal(map[string]any{
		"script":      "hello world from a test",
		"voice":       map[string]string{"id": "alloy", "label": "Alloy"},
		"aspectRatio": "9:16",
	})
	return body
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	env.handlers.Health(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestVoicesAndMusic(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	env.handlers.Voices(w, httptest.NewRequest(http.MethodGet, "/voices", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var voices []map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&voices))
	assert.Len(t, voices, 10)

	w = httptest.NewRecorder()
	env.handlers.Music(w, httptest.NewRequest(http.MethodGet, "/music", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var tracks []map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&tracks))
	assert.Len(t, tracks, 10)
}

func TestGenerate(t *testing.T) {
	env := newTestEnv(t)
	env.res.On("ResolveSpeech", mock.Anything, "alloy", mock.Anything).Return("https://host/audio/s.mp3", nil)
	env.rend.On("Submit", mock.Anything, mock.Anything).Return("render-123", nil)

	req := httptest.NewRequest(http.MethodPost, "/generate", bytes.NewReader(generateBody()))
	w := httptest.NewRecorder()
	env.handlers.Generate(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)

	var resp GenerateResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "render-123", resp.JobID)
	assert.Equal(t, "queued", resp.Status)
}

func TestGenerate_InvalidJSON(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/generate", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()
	env.handlers.Generate(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "INVALID_JSON", resp.Code)
}

func TestGenerate_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing script", map[string]any{"voice": map[string]string{"id": "alloy"}, "aspectRatio": "9:16"}},
		{"missing voice", map[string]any{"script": "hi", "aspectRatio": "9:16"}},
		{"missing aspect ratio", map[string]any{"script": "hi", "voice": map[string]string{"id": "alloy"}}},
		{"empty voice id", map[string]any{"script": "hi", "voice": map[string]string{"id": ""}, "aspectRatio": "9:16"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			body, _ := json.Marshal(tt.body)

			req := httptest.NewRequest(http.MethodPost, "/generate", bytes.NewReader(body))
			w := httptest.NewRecorder()
			env.handlers.Generate(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, "VALIDATION_ERROR", resp.Code)
		})
	}
}

func TestGenerate_UnknownVoice(t *testing.T) {
	env := newTestEnv(t)
	env.res.On("ResolveSpeech", mock.Anything, "invented", mock.Anything).Return("", apperr.ErrNotFound)

	body, _ := json.Marshal(map[string]any{
		"script":      "hello",
		"voice":       map[string]string{"id": "invented"},
		"aspectRatio": "9:16",
	})

	req := httptest.NewRequest(http.MethodPost, "/generate", bytes.NewReader(body))
	w := httptest.NewRecorder()
	env.handlers.Generate(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerate_UpstreamFailure(t *testing.T) {
	env := newTestEnv(t)
	env.res.On("ResolveSpeech", mock.Anything, mock.Anything, mock.Anything).Return("https://host/s.mp3", nil)
	env.rend.On("Submit", mock.Anything, mock.Anything).Return("", apperr.ErrUpstream)

	req := httptest.NewRequest(http.MethodPost, "/generate", bytes.NewReader(generateBody()))
	w := httptest.NewRecorder()
	env.handlers.Generate(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "RENDER_SUBMIT_FAILED", resp.Code)
}

func TestStatus(t *testing.T) {
	env := newTestEnv(t)
	env.res.On("ResolveSpeech", mock.Anything, mock.Anything, mock.Anything).Return("https://host/s.mp3", nil)
	env.rend.On("Submit", mock.Anything, mock.Anything).Return("render-123", nil)
	env.rend.On("Poll", mock.Anything, "render-123").Return(renderer.PollResult{
		Status:   renderer.StatusRendering,
		Progress: 64,
	}, nil)

	// Submit first so a job exists.
	w := httptest.NewRecorder()
	env.handlers.Generate(w, httptest.NewRequest(http.MethodPost, "/generate", bytes.NewReader(generateBody())))
	require.Equal(t, http.StatusAccepted, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/status?id=render-123", nil)
	w = httptest.NewRecorder()
	env.handlers.Status(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp StatusResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "render-123", resp.JobID)
	assert.Equal(t, "rendering", resp.Status)
	assert.Equal(t, 64, resp.Progress)
	assert.Empty(t, resp.URL)
}

func TestStatus_MissingID(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	env.handlers.Status(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatus_NotFound(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/status?id=missing", nil)
	w := httptest.NewRecorder()
	env.handlers.Status(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestYouTubeAuth_NotConfigured(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/youtube/auth", nil)
	w := httptest.NewRecorder()
	env.handlers.YouTubeAuth(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "PUBLISH_NOT_CONFIGURED", resp.Code)
}

func TestYouTubeAuth_RedirectsToProvider(t *testing.T) {
	env := newTestEnvWithGate(t)

	req := httptest.NewRequest(http.MethodGet, "/youtube/auth?returnTo=/job/42", nil)
	w := httptest.NewRecorder()
	env.handlers.YouTubeAuth(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	location := w.Header().Get("Location")
	assert.Contains(t, location, "client_id=client-id")
	assert.Contains(t, location, "access_type=offline")
}

func TestYouTubeCallback_MissingCode(t *testing.T) {
	env := newTestEnvWithGate(t)

	req := httptest.NewRequest(http.MethodGet, "/youtube/callback", nil)
	w := httptest.NewRecorder()
	env.handlers.YouTubeCallback(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "MISSING_AUTH_CODE", resp.Code)
}

func TestYouTubeStatus(t *testing.T) {
	env := newTestEnvWithGate(t)

	// First call mints a session cookie and reports not connected.
	req := httptest.NewRequest(http.MethodGet, "/youtube/status", nil)
	w := httptest.NewRecorder()
	env.handlers.YouTubeStatus(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	var resp ConnectionResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.False(t, resp.Connected)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	session := cookies[0]

	// Store a token for that session and ask again.
	env.store.Set(context.Background(), session.Value, &oauth2.Token{AccessToken: "at"})

	req = httptest.NewRequest(http.MethodGet, "/youtube/status", nil)
	req.AddCookie(session)
	w = httptest.NewRecorder()
	env.handlers.YouTubeStatus(w, req)

	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Connected)
}

func TestYouTubePublish_NotConnected(t *testing.T) {
	env := newTestEnvWithGate(t)

	body, _ := json.Marshal(map[string]string{
		"videoUrl": "https://cdn/video.mp4",
		"title":    "My Video",
	})

	req := httptest.NewRequest(http.MethodPost, "/youtube/publish", bytes.NewReader(body))
	w := httptest.NewRecorder()
	env.handlers.YouTubePublish(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "NOT_CONNECTED", resp.Code)
}

func TestYouTubePublish_Validation(t *testing.T) {
	env := newTestEnvWithGate(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing video url", map[string]string{"title": "My Video"}},
		{"missing title", map[string]string{"videoUrl": "https://cdn/video.mp4"}},
		{"malformed video url", map[string]string{"videoUrl": "not-a-url", "title": "My Video"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/youtube/publish", bytes.NewReader(body))
			w := httptest.NewRecorder()
			env.handlers.YouTubePublish(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRouter_MethodRouting(t *testing.T) {
	env := newTestEnv(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(env.handlers, logger, DefaultConfig())

	// Wrong method on a registered path.
	req := httptest.NewRequest(http.MethodDelete, "/generate", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
