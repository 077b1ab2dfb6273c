package shotstack

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

// Static errors for Shotstack client operations.
var (
	// ErrAPIKeyNotSet is returned when no API key is provided.
	ErrAPIKeyNotSet = errors.New("shotstack: SHOTSTACK_API_KEY is not set")
	// ErrRenderIDRequired is returned when the render ID is not provided.
	ErrRenderIDRequired = errors.New("shotstack: render ID is required")
	// ErrNoRenderIDReturned is returned when the submit response contains no render ID.
	ErrNoRenderIDReturned = errors.New("shotstack: submit failed: no render ID returned")
)

// Client defines the interface for interacting with the Shotstack Edit API.
type Client interface {
	// Submit sends a render job to Shotstack and returns the render ID.
	Submit(ctx context.Context, edit Edit) (renderID string, err error)

	// Poll checks the status of a render and returns the result.
	Poll(ctx context.Context, renderID string) (PollResult, error)
}

// HTTPClient is the HTTP implementation of the Shotstack Client interface.
type HTTPClient struct {
	apiKey     string
	host       string
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

// WithHost sets a custom base URL for the Shotstack API,
// e.g. the stage or v1 environment.
func WithHost(host string) ClientOption {
	return func(hc *HTTPClient) {
		hc.host = host
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(hc *HTTPClient) {
		hc.httpClient = c
	}
}

// NewClient creates a new Shotstack HTTP client.
// The API key can be set via the WithAPIKey option. If not provided,
// it is read from the environment variable SHOTSTACK_API_KEY.
func NewClient(opts ...ClientOption) (*HTTPClient, error) {
	c := &HTTPClient{
		host:       "https://api.shotstack.io/stage",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.apiKey == "" {
		c.apiKey = os.Getenv("SHOTSTACK_API_KEY")
	}

	if c.apiKey == "" {
		return nil, ErrAPIKeyNotSet
	}

	return c, nil
}

// Submit sends a render job to Shotstack and returns the render ID.
// There is no retry at this layer: retrying a whole submission is a
// caller decision.
func (c *HTTPClient) Submit(ctx context.Context, edit Edit) (string, error) {
	bodyBytes, err := json.Marshal(edit)
	if err != nil {
		return "", fmt.Errorf("shotstack: marshal request: %w", err)
	}

	url := c.host + "/render"

	var resp renderResponse
	if err := c.doRequest(ctx, http.MethodPost, url, bodyBytes, &resp); err != nil {
		return "", err
	}

	if resp.Response.ID == "" {
		if resp.Message != "" {
			return "", fmt.Errorf("%w: %s", ErrNoRenderIDReturned, resp.Message)
		}
		return "", ErrNoRenderIDReturned
	}

	return resp.Response.ID, nil
}

// Poll checks the status of a render and returns the result.
func (c *HTTPClient) Poll(ctx context.Context, renderID string) (PollResult, error) {
	if renderID == "" {
		return PollResult{}, ErrRenderIDRequired
	}

	url := fmt.Sprintf("%s/render/%s", c.host, renderID)

	var resp statusResponse
	if err := c.doRequest(ctx, http.MethodGet, url, nil, &resp); err != nil {
		return PollResult{}, err
	}

	var mapped Status
	switch resp.Response.Status {
	case "queued":
		mapped = StatusQueued
	case "fetching":
		mapped = StatusFetching
	case "rendering":
		mapped = StatusRendering
	case "saving":
		mapped = StatusSaving
	case "done":
		mapped = StatusDone
	case "failed":
		mapped = StatusFailed
	default:
		mapped = Status(resp.Response.Status)
	}

	result := PollResult{
		Status:   mapped,
		Progress: resp.Response.Progress,
	}

	switch result.Status {
	case StatusDone:
		result.URL = resp.Response.URL
	case StatusFailed:
		result.Error = resp.Response.Error
	}

	return result, nil
}

// doRequest performs a single HTTP request against the Shotstack API.
// Timeouts surface as apperr.ErrTimeout, every other transport or
// non-2xx failure as apperr.ErrUpstream carrying status and body.
func (c *HTTPClient) doRequest(ctx context.Context, method, url string, body []byte, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("shotstack: create request: %w", err)
	}

	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return fmt.Errorf("shotstack: %w: %s", apperr.ErrTimeout, err)
		}
		return fmt.Errorf("shotstack: %w: %s", apperr.ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("shotstack: %w: read response: %s", apperr.ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("shotstack: %w: status %d: %s", apperr.ErrUpstream, resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("shotstack: %w: unmarshal response: %s", apperr.ErrUpstream, err)
		}
	}

	return nil
}

// isTimeout reports whether err is a deadline or network timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
