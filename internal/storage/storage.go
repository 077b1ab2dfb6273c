// Package storage provides durable hosting for synthesized audio assets.
// The render provider fetches assets by URL, so every upload must yield a
// stable, publicly fetchable address. It defines the Store interface (port)
// with S3 and local-disk implementations.
package storage

import (
	"context"
	"io"
)

// Store defines the interface for hosting audio assets.
type Store interface {
	// Upload writes the asset under the given key and returns its
	// fetchable URL. Uploading the same key twice replaces the content
	// but returns the same URL.
	Upload(ctx context.Context, key, contentType string, data io.Reader) (url string, err error)
}
