// Package server provides the HTTP server for the ReelForge API.
// It includes handlers, middleware, routes, and DTOs separated from domain types.
package server

// VoiceSelection identifies the narration voice choice.
type VoiceSelection struct {
	// ID is the voice identifier from the voice catalog.
	ID string `json:"id" validate:"required"`
	// Label is the display label for the voice.
	Label string `json:"label"`
}

// MusicSelection identifies the background music choice.
type MusicSelection struct {
	// ID is the track identifier from the music catalog.
	ID string `json:"id" validate:"required"`
	// Name is the display name for the track.
	Name string `json:"name"`
}

// CaptionConfig is the user's caption configuration.
type CaptionConfig struct {
	// Disabled suppresses captions entirely.
	Disabled bool `json:"disabled"`
	// Style is the caption style identifier.
	Style string `json:"style"`
	// Alignment is one of top, middle, bottom.
	Alignment string `json:"alignment" validate:"omitempty,oneof=top middle bottom"`
}

// GenerateRequest is the HTTP request body for submitting a render.
type GenerateRequest struct {
	// Script is the narration text.
	Script string `json:"script" validate:"required"`
	// Voice is the narration voice selection.
	Voice *VoiceSelection `json:"voice" validate:"required"`
	// Music is the optional background music selection.
	Music *MusicSelection `json:"music"`
	// Captions configures the caption track.
	Captions CaptionConfig `json:"captions"`
	// AspectRatio is the frame ratio selection, e.g. "9:16".
	// Unknown values render at the default square dimensions.
	AspectRatio string `json:"aspectRatio" validate:"required"`
	// Preset is the optional art preset identifier.
	Preset string `json:"preset"`
}

// GenerateResponse is the HTTP response after submitting a render.
type GenerateResponse struct {
	// JobID is the provider-assigned identifier for the render job.
	JobID string `json:"jobId"`
	// Status is the initial job status.
	Status string `json:"status"`
}

// StatusResponse is the HTTP response for a job status check.
type StatusResponse struct {
	// JobID is the provider-assigned identifier for the render job.
	JobID string `json:"jobId"`
	// Status is the normalized job status.
	Status string `json:"status"`
	// Progress is the percentage of completion (0-100).
	Progress int `json:"progress"`
	// URL is the rendered artifact URL (only when done).
	URL string `json:"url,omitempty"`
	// Error is the provider's failure detail (only when failed).
	Error string `json:"error,omitempty"`
}

// ConnectionResponse is the HTTP response for the publish connection check.
type ConnectionResponse struct {
	// Connected reports whether a destination account is authorized.
	Connected bool `json:"connected"`
}

// PublishRequest is the HTTP request body for publishing an artifact.
type PublishRequest struct {
	// VideoURL is the rendered artifact URL.
	VideoURL string `json:"videoUrl" validate:"required,url"`
	// Title is the destination video title.
	Title string `json:"title" validate:"required"`
	// Description is the optional destination video description.
	Description string `json:"description"`
	// PrivacyStatus is public, unlisted, or private. Defaults to unlisted.
	PrivacyStatus string `json:"privacyStatus" validate:"omitempty,oneof=public unlisted private"`
}

// PublishResponse is the HTTP response after a successful publish.
type PublishResponse struct {
	// VideoID is the destination provider's video identifier.
	VideoID string `json:"videoId"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	// Error is the human-readable error message.
	Error string `json:"error"`
	// Code is the error code for programmatic handling.
	Code string `json:"code"`
}

// HealthResponse is the HTTP response for the health check endpoint.
type HealthResponse struct {
	// Status is the health status of the service.
	Status string `json:"status"`
}
