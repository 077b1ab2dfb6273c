package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore hosts audio assets on local disk, served back through the
// API's /audio/ route. Suitable for development; the render provider can
// only fetch these URLs when the server is publicly reachable.
type LocalStore struct {
	dir     string
	baseURL string
}

// Compile-time check that LocalStore implements Store.
var _ Store = (*LocalStore)(nil)

// NewLocalStore creates a new LocalStore instance.
// Files are written under dir, which is created if it doesn't exist.
// baseURL is the externally visible address of the API, without a
// trailing slash.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "reelforge")
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Dir returns the directory assets are written to.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Upload writes the asset to disk and returns its URL under /audio/.
func (s *LocalStore) Upload(ctx context.Context, key, _ string, data io.Reader) (string, error) {
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	// Keys are generated internally, but never trust them as paths.
	name := filepath.Base(key)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path) // #nosec G304 - path is confined to s.dir
	if err != nil {
		return "", fmt.Errorf("create asset file: %w", err)
	}

	if _, err := io.Copy(f, data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write asset file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close asset file: %w", err)
	}

	return s.baseURL + "/audio/" + name, nil
}
