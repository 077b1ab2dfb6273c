package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/reelforge/reelforge-api/internal/apperr"
	"github.com/reelforge/reelforge-api/internal/assets"
	"github.com/reelforge/reelforge-api/internal/job"
	"github.com/reelforge/reelforge-api/internal/publish"
)

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	service           *job.Service
	gate              *publish.Gate
	validator         *validator.Validate
	logger            *slog.Logger
	backgroundPolling bool
}

// HandlerOption is a function that configures a Handlers instance.
type HandlerOption func(*Handlers)

// WithBackgroundPolling enables or disables server-side poll loops.
// When enabled, a submitted job is reconciled on a fixed cadence until it
// reaches a terminal state, so GET /status reads a snapshot instead of
// calling the provider.
func WithBackgroundPolling(enabled bool) HandlerOption {
	return func(h *Handlers) {
		h.backgroundPolling = enabled
	}
}

// WithPublishGate wires the OAuth publish gate. Without it the /youtube
// endpoints report that publishing is not configured.
func WithPublishGate(gate *publish.Gate) HandlerOption {
	return func(h *Handlers) {
		h.gate = gate
	}
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *job.Service, logger *slog.Logger, opts ...HandlerOption) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handlers{
		service:   service,
		validator: validator.New(),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Health handles GET /health requests.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Voices handles GET /voices requests.
func (h *Handlers) Voices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, assets.Voices())
}

// Music handles GET /music requests.
func (h *Handlers) Music(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, assets.Tracks())
}

// Generate handles POST /generate requests.
func (h *Handlers) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode request body",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, "invalid JSON body", "INVALID_JSON")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		h.logger.Warn("request validation failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
		return
	}

	input := job.GenerateInput{
		Script:           req.Script,
		VoiceID:          req.Voice.ID,
		CaptionsDisabled: req.Captions.Disabled,
		CaptionStyle:     req.Captions.Style,
		CaptionAlignment: req.Captions.Alignment,
		AspectRatio:      req.AspectRatio,
		Preset:           req.Preset,
	}
	if req.Music != nil {
		input.MusicID = req.Music.ID
	}

	created, err := h.service.Generate(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrValidation), errors.Is(err, apperr.ErrNotFound):
			writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
		case errors.Is(err, apperr.ErrTimeout):
			writeError(w, http.StatusGatewayTimeout, "render submission timed out", "RENDER_SUBMIT_TIMEOUT")
		case errors.Is(err, apperr.ErrUpstream):
			h.logger.Error("render submission failed",
				slog.String("error", err.Error()),
			)
			writeError(w, http.StatusBadGateway, "render submission failed", "RENDER_SUBMIT_FAILED")
		default:
			h.logger.Error("failed to generate video",
				slog.String("error", err.Error()),
			)
			writeError(w, http.StatusInternalServerError, "failed to generate video", "GENERATION_FAILED")
		}
		return
	}

	if h.backgroundPolling {
		h.service.StartPolling(created.ID)
	}

	writeJSON(w, http.StatusAccepted, GenerateResponse{
		JobID:  created.ID,
		Status: string(created.GetStatus()),
	})
}

// Status handles GET /status requests.
func (h *Handlers) Status(w http.ResponseWriter, r *http.Request) {
	jobID := r.URL.Query().Get("id")
	if jobID == "" {
		writeError(w, http.StatusBadRequest, "render ID is required", "MISSING_RENDER_ID")
		return
	}

	var (
		found *job.RenderJob
		err   error
	)
	if h.backgroundPolling {
		found, err = h.service.GetJob(r.Context(), jobID)
	} else {
		found, err = h.service.Poll(r.Context(), jobID)
	}
	if err != nil {
		switch {
		case errors.Is(err, job.ErrJobNotFound):
			writeError(w, http.StatusNotFound, "render job not found", "JOB_NOT_FOUND")
		case errors.Is(err, apperr.ErrTimeout):
			writeError(w, http.StatusGatewayTimeout, "status check timed out", "STATUS_POLL_TIMEOUT")
		case errors.Is(err, apperr.ErrUpstream):
			h.logger.Error("status check failed",
				slog.String("job_id", jobID),
				slog.String("error", err.Error()),
			)
			writeError(w, http.StatusBadGateway, "status check failed", "STATUS_POLL_FAILED")
		default:
			h.logger.Error("failed to get job",
				slog.String("job_id", jobID),
				slog.String("error", err.Error()),
			)
			writeError(w, http.StatusInternalServerError, "failed to get job", "JOB_FETCH_FAILED")
		}
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{
		JobID:    found.ID,
		Status:   string(found.GetStatus()),
		Progress: found.Progress,
		URL:      found.ArtifactURL,
		Error:    found.Error,
	})
}

// YouTubeAuth handles GET /youtube/auth requests.
func (h *Handlers) YouTubeAuth(w http.ResponseWriter, r *http.Request) {
	if h.gate == nil {
		writeError(w, http.StatusInternalServerError, "publishing is not configured", "PUBLISH_NOT_CONFIGURED")
		return
	}

	// Make sure the session exists before leaving for the provider so the
	// callback lands on the same key.
	sessionKey(w, r)

	returnTo := r.URL.Query().Get("returnTo")
	http.Redirect(w, r, h.gate.BeginAuthorization(returnTo), http.StatusFound)
}

// YouTubeCallback handles GET /youtube/callback requests.
func (h *Handlers) YouTubeCallback(w http.ResponseWriter, r *http.Request) {
	if h.gate == nil {
		writeError(w, http.StatusInternalServerError, "publishing is not configured", "PUBLISH_NOT_CONFIGURED")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "authorization code is required", "MISSING_AUTH_CODE")
		return
	}

	key := sessionKey(w, r)
	returnTo, err := h.gate.CompleteAuthorization(r.Context(), key, code, r.URL.Query().Get("state"))
	if err != nil {
		h.logger.Error("oauth code exchange failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "authorization failed", "OAUTH_EXCHANGE_FAILED")
		return
	}

	http.Redirect(w, r, returnTo, http.StatusFound)
}

// YouTubeStatus handles GET /youtube/status requests.
func (h *Handlers) YouTubeStatus(w http.ResponseWriter, r *http.Request) {
	// Connection state changes out of band; never serve it from a cache.
	w.Header().Set("Cache-Control", "no-store")

	connected := h.gate != nil && h.gate.Connected(r.Context(), sessionKey(w, r))
	writeJSON(w, http.StatusOK, ConnectionResponse{Connected: connected})
}

// YouTubePublish handles POST /youtube/publish requests.
func (h *Handlers) YouTubePublish(w http.ResponseWriter, r *http.Request) {
	if h.gate == nil {
		writeError(w, http.StatusInternalServerError, "publishing is not configured", "PUBLISH_NOT_CONFIGURED")
		return
	}

	var req PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode request body",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, "invalid JSON body", "INVALID_JSON")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		h.logger.Warn("request validation failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
		return
	}

	key := sessionKey(w, r)
	videoID, err := h.gate.Publish(r.Context(), key, publish.Request{
		ArtifactURL: req.VideoURL,
		Title:       req.Title,
		Description: req.Description,
		Visibility:  req.PrivacyStatus,
	})
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotConnected):
			writeError(w, http.StatusUnauthorized, "not connected to YouTube", "NOT_CONNECTED")
		case errors.Is(err, apperr.ErrArtifactUnavailable):
			writeError(w, http.StatusBadRequest, "unable to fetch video file", "ARTIFACT_UNAVAILABLE")
		case errors.Is(err, apperr.ErrUpstream):
			h.logger.Error("video upload failed",
				slog.String("error", err.Error()),
			)
			writeError(w, http.StatusBadGateway, "video upload failed", "UPLOAD_FAILED")
		default:
			h.logger.Error("failed to publish video",
				slog.String("error", err.Error()),
			)
			writeError(w, http.StatusInternalServerError, "failed to publish video", "PUBLISH_FAILED")
		}
		return
	}

	h.logger.Info("video published",
		slog.String("video_id", videoID),
	)

	writeJSON(w, http.StatusOK, PublishResponse{VideoID: videoID})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeError writes an error response in the standard format.
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}
