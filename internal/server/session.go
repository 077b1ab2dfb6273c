package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// sessionCookieName is the cookie carrying the anonymous session id that
// keys the OAuth token store.
const sessionCookieName = "rf_session"

// sessionMaxAge keeps the session cookie for 30 days.
const sessionMaxAge = 30 * 24 * time.Hour

// sessionKey returns the caller's session id, minting and setting a new
// one when the cookie is absent. The cookie is HTTP-only so the id never
// leaks to page scripts.
func sessionKey(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(sessionMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
