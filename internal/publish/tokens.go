// Package publish gates artifact publishing behind a YouTube OAuth
// connection. The token store is a port so the backend (memory, database,
// secret manager) can be swapped without touching the gate logic; tokens
// never leave the server.
package publish

import (
	"context"
	"sync"

	"golang.org/x/oauth2"
)

// TokenStore holds OAuth token sets keyed by session/user.
type TokenStore interface {
	// Get returns the stored token set for the key, if any.
	// The "not connected" case is not an error.
	Get(ctx context.Context, key string) (*oauth2.Token, bool)

	// Set replaces the stored token set wholesale.
	Set(ctx context.Context, key string, tok *oauth2.Token)

	// Clear removes the stored token set.
	Clear(ctx context.Context, key string)
}

// Compile-time check that MemoryTokenStore implements TokenStore.
var _ TokenStore = (*MemoryTokenStore)(nil)

// MemoryTokenStore is an in-memory TokenStore.
// Writes replace the whole token set; concurrent refreshes resolve
// last-writer-wins, which is acceptable for single-user connections.
type MemoryTokenStore struct {
	mu     sync.RWMutex
	tokens map[string]*oauth2.Token
}

// NewMemoryTokenStore creates a new in-memory token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{
		tokens: make(map[string]*oauth2.Token),
	}
}

// Get returns the stored token set for the key, if any.
func (s *MemoryTokenStore) Get(_ context.Context, key string) (*oauth2.Token, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tok, ok := s.tokens[key]
	if !ok {
		return nil, false
	}
	copied := *tok
	return &copied, true
}

// Set replaces the stored token set wholesale.
func (s *MemoryTokenStore) Set(_ context.Context, key string, tok *oauth2.Token) {
	copied := *tok
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[key] = &copied
}

// Clear removes the stored token set.
func (s *MemoryTokenStore) Clear(_ context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, key)
}
