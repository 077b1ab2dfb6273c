package assets

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/reelforge/reelforge-api/internal/apperr"
	"github.com/reelforge/reelforge-api/internal/assets/id"
	"github.com/reelforge/reelforge-api/internal/storage"
	"github.com/reelforge/reelforge-api/internal/tts"
)

// Resolver resolves logical asset references to fetchable URLs.
type Resolver interface {
	// ResolveSpeech synthesizes the script with the given voice, hosts
	// the audio, and returns its URL. Idempotent per (voice, script).
	ResolveSpeech(ctx context.Context, voiceID, script string) (string, error)

	// ResolveMusic resolves a music track id to its catalog URL.
	ResolveMusic(trackID string) (string, error)
}

// CatalogResolver implements Resolver backed by the voice/music catalogs,
// a TTS client, and an asset store.
type CatalogResolver struct {
	tts     tts.Client
	store   storage.Store
	cdnBase string

	mu    sync.Mutex
	cache map[string]string // (voice, script) digest -> hosted URL
}

// Compile-time check that CatalogResolver implements Resolver.
var _ Resolver = (*CatalogResolver)(nil)

// NewCatalogResolver creates a new CatalogResolver.
// cdnBase is the music CDN base URL without a trailing slash.
func NewCatalogResolver(ttsClient tts.Client, store storage.Store, cdnBase string) *CatalogResolver {
	return &CatalogResolver{
		tts:     ttsClient,
		store:   store,
		cdnBase: strings.TrimSuffix(cdnBase, "/"),
		cache:   make(map[string]string),
	}
}

// ResolveSpeech synthesizes the script with the given voice, uploads the
// audio, and returns the hosted URL. Resolving the same (voice, script)
// pair twice returns the first upload's URL without re-synthesizing.
func (r *CatalogResolver) ResolveSpeech(ctx context.Context, voiceID, script string) (string, error) {
	if _, ok := VoiceByID(voiceID); !ok {
		return "", fmt.Errorf("assets: voice %q: %w", voiceID, apperr.ErrNotFound)
	}

	key := speechDigest(voiceID, script)

	r.mu.Lock()
	if url, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return url, nil
	}
	r.mu.Unlock()

	audio, err := r.tts.Synthesize(ctx, voiceID, script)
	if err != nil {
		return "", fmt.Errorf("assets: synthesize speech: %w", err)
	}

	objectKey := "audio/" + id.Generate("speech") + ".mp3"
	url, err := r.store.Upload(ctx, objectKey, "audio/mpeg", bytes.NewReader(audio))
	if err != nil {
		return "", fmt.Errorf("assets: host speech audio: %w", err)
	}

	r.mu.Lock()
	r.cache[key] = url
	r.mu.Unlock()

	return url, nil
}

// ResolveMusic resolves a music track id to its CDN URL.
// Returns apperr.ErrNotFound for ids outside the catalog.
func (r *CatalogResolver) ResolveMusic(trackID string) (string, error) {
	if _, ok := TrackByID(trackID); !ok {
		return "", fmt.Errorf("assets: music track %q: %w", trackID, apperr.ErrNotFound)
	}
	return fmt.Sprintf("%s/%s.mp3", r.cdnBase, trackID), nil
}

// speechDigest keys the idempotency cache on voice and script content.
func speechDigest(voiceID, script string) string {
	sum := sha256.Sum256([]byte(voiceID + "\x00" + script))
	return hex.EncodeToString(sum[:])
}
