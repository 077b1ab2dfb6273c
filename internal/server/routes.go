package server

import (
	"log/slog"
	"net/http"
)

// Config contains server configuration options.
type Config struct {
	// AllowedOrigins is the list of allowed CORS origins.
	AllowedOrigins []string
	// AudioDir, when set, serves locally hosted speech audio under /audio/.
	// Empty when audio is hosted on S3.
	AudioDir string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		AllowedOrigins: []string{"*"},
	}
}

// NewRouter creates a new HTTP router with all routes configured.
// It uses Go 1.22+ ServeMux with method-based routing.
func NewRouter(h *Handlers, logger *slog.Logger, cfg Config) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /voices", h.Voices)
	mux.HandleFunc("GET /music", h.Music)
	mux.HandleFunc("POST /generate", h.Generate)
	mux.HandleFunc("GET /status", h.Status)
	mux.HandleFunc("GET /youtube/auth", h.YouTubeAuth)
	mux.HandleFunc("GET /youtube/callback", h.YouTubeCallback)
	mux.HandleFunc("GET /youtube/status", h.YouTubeStatus)
	mux.HandleFunc("POST /youtube/publish", h.YouTubePublish)

	if cfg.AudioDir != "" {
		mux.Handle("GET /audio/", http.StripPrefix("/audio/", http.FileServer(http.Dir(cfg.AudioDir))))
	}

	chain := ChainMiddleware(
		RecoveryMiddleware(logger),
		LoggingMiddleware(logger),
		CORSMiddleware(cfg.AllowedOrigins),
	)

	return chain(mux)
}
