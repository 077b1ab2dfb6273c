package publish

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	youtube "google.golang.org/api/youtube/v3"

	"github.com/reelforge/reelforge-api/internal/apperr"
)

// Static errors for publish gate operations.
var (
	// ErrClientCredsNotSet is returned when the OAuth client credentials are missing.
	ErrClientCredsNotSet = errors.New("publish: YT_CLIENT_ID / YT_CLIENT_SECRET are not set")
	// ErrNoVideoIDReturned is returned when the upload response carries no video ID.
	ErrNoVideoIDReturned = errors.New("publish: upload succeeded but no video ID returned")
)

// youtubeUploadScope grants video upload access only.
const youtubeUploadScope = "https://www.googleapis.com/auth/youtube.upload"

// defaultReturnTarget is where the callback redirects when the state
// parameter is missing or undecodable.
const defaultReturnTarget = "/video"

// uploadCategoryID is the YouTube category for published videos
// ("People & Blogs").
const uploadCategoryID = "22"

// Request describes one publish submission.
type Request struct {
	// ArtifactURL is the rendered video's URL.
	ArtifactURL string
	// Title is the destination video title. Required.
	Title string
	// Description is the optional destination video description.
	Description string
	// Visibility is public, unlisted, or private. Defaults to unlisted.
	Visibility string
}

// Gate runs the OAuth-backed publish workflow: establish a connection,
// then stream a finished artifact to the destination once both the
// artifact and the connection are ready.
type Gate struct {
	oauth      *oauth2.Config
	store      TokenStore
	httpClient *http.Client
}

// GateOption is a function that configures a Gate.
type GateOption func(*Gate)

// WithHTTPClient sets the HTTP client used to fetch artifacts.
func WithHTTPClient(c *http.Client) GateOption {
	return func(g *Gate) {
		g.httpClient = c
	}
}

// NewGate creates a new publish Gate.
func NewGate(clientID, clientSecret, redirectURL string, store TokenStore, opts ...GateOption) (*Gate, error) {
	if clientID == "" || clientSecret == "" {
		return nil, ErrClientCredsNotSet
	}

	g := &Gate{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{youtubeUploadScope},
			Endpoint:     google.Endpoint,
		},
		store:      store,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Connected reports whether a token set exists for the key.
// Read-only; "not connected" is a valid answer, not an error.
func (g *Gate) Connected(ctx context.Context, key string) bool {
	_, ok := g.store.Get(ctx, key)
	return ok
}

// BeginAuthorization computes the provider authorization URL. The return
// target rides along base64-encoded in the state parameter so the callback
// can send the user back where they came from. Offline access with a
// consent prompt is requested so a refresh token is issued.
func (g *Gate) BeginAuthorization(returnTo string) string {
	if returnTo == "" {
		returnTo = defaultReturnTarget
	}
	state := base64.StdEncoding.EncodeToString([]byte(returnTo))
	return g.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// CompleteAuthorization exchanges the authorization code, persists the
// token set wholesale, and returns the decoded return target for the
// caller to redirect to.
func (g *Gate) CompleteAuthorization(ctx context.Context, key, code, state string) (string, error) {
	tok, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("publish: %w: %s", apperr.ErrAuthExchange, err)
	}

	g.store.Set(ctx, key, tok)

	returnTo := defaultReturnTarget
	if state != "" {
		if decoded, err := base64.StdEncoding.DecodeString(state); err == nil && len(decoded) > 0 {
			returnTo = string(decoded)
		}
	}
	return returnTo, nil
}

// Disconnect drops the stored connection.
func (g *Gate) Disconnect(ctx context.Context, key string) {
	g.store.Clear(ctx, key)
}

// Publish streams the artifact to YouTube and returns the new video ID.
// An expiring token is refreshed transparently through the token source;
// if refresh fails the connection is invalidated and re-authorization is
// required. The artifact is piped from its URL into the upload without
// buffering the whole file.
func (g *Gate) Publish(ctx context.Context, key string, req Request) (string, error) {
	tok, ok := g.store.Get(ctx, key)
	if !ok {
		return "", fmt.Errorf("publish: %w", apperr.ErrNotConnected)
	}

	source := g.oauth.TokenSource(ctx, tok)
	fresh, err := source.Token()
	if err != nil {
		g.store.Clear(ctx, key)
		return "", fmt.Errorf("publish: token refresh: %w", apperr.ErrNotConnected)
	}
	if fresh.AccessToken != tok.AccessToken {
		g.store.Set(ctx, key, fresh)
	}

	artifactReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.ArtifactURL, nil)
	if err != nil {
		return "", fmt.Errorf("publish: %w: %s", apperr.ErrArtifactUnavailable, err)
	}
	resp, err := g.httpClient.Do(artifactReq)
	if err != nil {
		return "", fmt.Errorf("publish: %w: %s", apperr.ErrArtifactUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("publish: %w: status %d", apperr.ErrArtifactUnavailable, resp.StatusCode)
	}

	svc, err := youtube.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return "", fmt.Errorf("publish: %w: create service: %s", apperr.ErrUpstream, err)
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = "unlisted"
	}

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       req.Title,
			Description: req.Description,
			CategoryId:  uploadCategoryID,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus: visibility,
		},
	}

	uploaded, err := svc.Videos.Insert([]string{"snippet", "status"}, video).
		Media(resp.Body).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("publish: %w: upload: %s", apperr.ErrUpstream, err)
	}

	if uploaded.Id == "" {
		return "", ErrNoVideoIDReturned
	}
	return uploaded.Id, nil
}
