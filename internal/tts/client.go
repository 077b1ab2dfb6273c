// Package tts provides an HTTP client for the OpenAI speech synthesis API.
package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/reelforge/reelforge-api/internal/apperr"
)

// Static errors for TTS client operations.
var (
	// ErrAPIKeyNotSet is returned when no API key is provided.
	ErrAPIKeyNotSet = errors.New("tts: OPENAI_API_KEY is not set")
	// ErrVoiceRequired is returned when the voice ID is not provided.
	ErrVoiceRequired = errors.New("tts: voice is required")
	// ErrTextRequired is returned when the input text is empty.
	ErrTextRequired = errors.New("tts: input text is required")
)

// Client defines the interface for speech synthesis.
type Client interface {
	// Synthesize renders the text with the given voice and returns MP3 audio.
	Synthesize(ctx context.Context, voice, text string) ([]byte, error)
}

// speechRequest is the request body for the /audio/speech endpoint.
type speechRequest struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	ResponseFormat string  `json:"response_format"`
	Speed          float64 `json:"speed"`
}

// HTTPClient is the HTTP implementation of the TTS Client interface.
type HTTPClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// ClientOption is a function that configures an HTTPClient.
type ClientOption func(*HTTPClient)

// WithAPIKey sets the API key for authentication.
func WithAPIKey(key string) ClientOption {
	return func(hc *HTTPClient) {
		hc.apiKey = key
	}
}

// WithBaseURL sets a custom base URL for the OpenAI API.
func WithBaseURL(url string) ClientOption {
	return func(hc *HTTPClient) {
		hc.baseURL = url
	}
}

// WithModel sets the speech model to use.
func WithModel(model string) ClientOption {
	return func(hc *HTTPClient) {
		hc.model = model
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(hc *HTTPClient) {
		hc.httpClient = c
	}
}

// NewClient creates a new TTS HTTP client.
// The API key can be set via the WithAPIKey option. If not provided,
// it is read from the environment variable OPENAI_API_KEY.
func NewClient(opts ...ClientOption) (*HTTPClient, error) {
	c := &HTTPClient{
		baseURL:    "https://api.openai.com/v1",
		model:      "tts-1",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.apiKey == "" {
		c.apiKey = os.Getenv("OPENAI_API_KEY")
	}

	if c.apiKey == "" {
		return nil, ErrAPIKeyNotSet
	}

	return c, nil
}

// Synthesize renders the text with the given voice and returns MP3 audio.
func (c *HTTPClient) Synthesize(ctx context.Context, voice, text string) ([]byte, error) {
	if voice == "" {
		return nil, ErrVoiceRequired
	}
	if text == "" {
		return nil, ErrTextRequired
	}

	reqBody := speechRequest{
		Model:          c.model,
		Input:          text,
		Voice:          voice,
		ResponseFormat: "mp3",
		Speed:          1.0,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("tts: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/speech", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("tts: create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("tts: %w: %s", apperr.ErrTimeout, err)
		}
		return nil, fmt.Errorf("tts: %w: %s", apperr.ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tts: %w: read response: %s", apperr.ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("tts: %w: status %d: %s", apperr.ErrUpstream, resp.StatusCode, string(respBody))
	}

	return respBody, nil
}

// isTimeout reports whether err is a deadline or network timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
