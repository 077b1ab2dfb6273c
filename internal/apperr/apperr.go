// Package apperr defines the sentinel errors shared across the service.
// Packages wrap these with %w and context; handlers map them to HTTP
// statuses with errors.Is, so error classes stay stable while messages
// stay local to where the failure happened.
package apperr

import "errors"

var (
	// ErrValidation marks client input that fails validation.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a lookup against an unknown identifier,
	// catalog entries included.
	ErrNotFound = errors.New("not found")

	// ErrUpstream marks a provider transport or non-2xx failure.
	ErrUpstream = errors.New("upstream request failed")

	// ErrTimeout marks a provider deadline or network timeout.
	// Distinct from ErrUpstream so callers can retry on it.
	ErrTimeout = errors.New("upstream request timed out")

	// ErrNotConnected marks a publish attempt without an authorized
	// connection, including one invalidated by a failed token refresh.
	ErrNotConnected = errors.New("no authorized connection")

	// ErrAuthExchange marks a failed OAuth authorization-code exchange.
	ErrAuthExchange = errors.New("authorization code exchange failed")

	// ErrArtifactUnavailable marks a render artifact that could not be
	// fetched for publishing.
	ErrArtifactUnavailable = errors.New("artifact unavailable")
)

// IsTransient reports whether the error is worth retrying on the same
// cadence rather than surfacing as a permanent failure.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTimeout)
}
