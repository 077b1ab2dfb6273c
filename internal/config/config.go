// Package config provides configuration loading from environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Static errors for configuration validation.
var (
	// ErrShotstackAPIKeyRequired is returned when SHOTSTACK_API_KEY is not set.
	ErrShotstackAPIKeyRequired = errors.New("config: SHOTSTACK_API_KEY is required")
	// ErrOpenAIAPIKeyRequired is returned when OPENAI_API_KEY is not set.
	ErrOpenAIAPIKeyRequired = errors.New("config: OPENAI_API_KEY is required")
)

// Config holds all configuration for the application.
type Config struct {
	// Server settings
	Port int `env:"PORT, default=8080" json:"port"`

	// Shotstack render provider settings
	ShotstackAPIKey string `env:"SHOTSTACK_API_KEY, required" json:"-"` // Masked in JSON
	ShotstackHost   string `env:"SHOTSTACK_HOST, default=https://api.shotstack.io/stage" json:"shotstack_host"`

	// OpenAI speech synthesis settings
	OpenAIAPIKey string `env:"OPENAI_API_KEY, required" json:"-"` // Masked in JSON

	// YouTube OAuth settings. Publishing is disabled when unset.
	YouTubeClientID     string `env:"YT_CLIENT_ID" json:"-"`
	YouTubeClientSecret string `env:"YT_CLIENT_SECRET" json:"-"`
	YouTubeRedirectURL  string `env:"YT_REDIRECT_URI" json:"youtube_redirect_url,omitempty"`

	// Music catalog settings
	MusicCDNBase string `env:"MUSIC_CDN_BASE, default=https://cdn.revid.ai/audio" json:"music_cdn_base"`

	// Job tracking settings
	PollInterval time.Duration `env:"POLL_INTERVAL, default=4s" json:"poll_interval"`

	// Audio hosting settings
	PublicBaseURL      string `env:"PUBLIC_BASE_URL, default=http://localhost:8080" json:"public_base_url"`
	TempDir            string `env:"TEMP_DIR, default=/tmp/reelforge" json:"temp_dir"`
	S3Bucket           string `env:"S3_BUCKET" json:"s3_bucket,omitempty"`
	S3Region           string `env:"S3_REGION" json:"s3_region,omitempty"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID" json:"-"`     // Masked in JSON
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" json:"-"` // Masked in JSON

	// Logging settings
	LogFormat string `env:"LOG_FORMAT, default=text" json:"log_format"` // "json" or "text"
	LogLevel  string `env:"LOG_LEVEL, default=info" json:"log_level"`   // "debug", "info", "warn", "error"
}

// S3Enabled returns true if S3 configuration is provided.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != "" && c.S3Region != ""
}

// PublishEnabled returns true if YouTube OAuth client credentials are provided.
func (c *Config) PublishEnabled() bool {
	return c.YouTubeClientID != "" && c.YouTubeClientSecret != ""
}

// Load reads configuration from environment variables using go-envconfig.
// It returns an error if required variables are not set.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := envconfig.Process(context.Background(), cfg); err != nil {
		// Map envconfig errors to our domain errors for required fields
		if strings.Contains(err.Error(), "SHOTSTACK_API_KEY") {
			return nil, ErrShotstackAPIKeyRequired
		}
		if strings.Contains(err.Error(), "OPENAI_API_KEY") {
			return nil, ErrOpenAIAPIKeyRequired
		}
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration is present.
func (c *Config) Validate() error {
	if c.ShotstackAPIKey == "" {
		return ErrShotstackAPIKeyRequired
	}
	if c.OpenAIAPIKey == "" {
		return ErrOpenAIAPIKeyRequired
	}
	return nil
}

// NewLogger creates a structured logger based on the configuration.
// When LogFormat is "json", it outputs JSON logs suitable for production.
// Otherwise, it outputs human-readable text logs.
func (c *Config) NewLogger() *slog.Logger {
	level := parseLogLevel(c.LogLevel)

	var handler slog.Handler
	if strings.ToLower(c.LogFormat) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}

	return slog.New(handler)
}

// String returns a string representation of the config with sensitive values masked.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Port: %d, ShotstackHost: %s, MusicCDNBase: %s, PollInterval: %s, PublicBaseURL: %s, TempDir: %s, S3Bucket: %s, S3Region: %s, PublishEnabled: %t, LogFormat: %s, LogLevel: %s}",
		c.Port,
		c.ShotstackHost,
		c.MusicCDNBase,
		c.PollInterval,
		c.PublicBaseURL,
		c.TempDir,
		c.S3Bucket,
		c.S3Region,
		c.PublishEnabled(),
		c.LogFormat,
		c.LogLevel,
	)
}

// parseLogLevel converts a string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
