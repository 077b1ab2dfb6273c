// Package bootstrap provides dependency initialization for the ReelForge API.
package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/reelforge/reelforge-api/internal/assets"
	"github.com/reelforge/reelforge-api/internal/config"
	"github.com/reelforge/reelforge-api/internal/job"
	"github.com/reelforge/reelforge-api/internal/publish"
	"github.com/reelforge/reelforge-api/internal/renderer"
	"github.com/reelforge/reelforge-api/internal/shotstack"
	"github.com/reelforge/reelforge-api/internal/storage"
	"github.com/reelforge/reelforge-api/internal/tts"
)

// Dependencies holds all initialized dependencies for the HTTP server.
type Dependencies struct {
	JobService *job.Service

	// PublishGate is nil when the OAuth client credentials are not set.
	PublishGate *publish.Gate

	// AudioDir is non-empty when speech audio is hosted on local disk and
	// must be served by the API under /audio/.
	AudioDir string
}

// NewDependencies creates and initializes all dependencies for the application.
func NewDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	store, audioDir, err := initStorage(cfg, logger)
	if err != nil {
		return nil, err
	}

	ttsClient, err := tts.NewClient(tts.WithAPIKey(cfg.OpenAIAPIKey))
	if err != nil {
		return nil, fmt.Errorf("create speech client: %w", err)
	}

	renderClient, err := shotstack.NewClient(
		shotstack.WithAPIKey(cfg.ShotstackAPIKey),
		shotstack.WithHost(cfg.ShotstackHost),
	)
	if err != nil {
		return nil, fmt.Errorf("create render client: %w", err)
	}

	resolver := assets.NewCatalogResolver(ttsClient, store, cfg.MusicCDNBase)
	repo := job.NewMemoryRepository()

	svc := job.NewService(
		repo,
		renderer.NewShotstackAdapter(renderClient),
		resolver,
		logger,
		job.WithPollInterval(cfg.PollInterval),
	)

	deps := &Dependencies{
		JobService: svc,
		AudioDir:   audioDir,
	}

	if cfg.PublishEnabled() {
		gate, err := publish.NewGate(
			cfg.YouTubeClientID,
			cfg.YouTubeClientSecret,
			cfg.YouTubeRedirectURL,
			publish.NewMemoryTokenStore(),
		)
		if err != nil {
			return nil, fmt.Errorf("create publish gate: %w", err)
		}
		deps.PublishGate = gate
		logger.Info("YouTube publishing enabled")
	} else {
		logger.Info("YouTube publishing disabled, client credentials not set")
	}

	return deps, nil
}

// initStorage creates the appropriate asset store based on configuration.
// The second return value is the local audio directory to serve, empty for S3.
func initStorage(cfg *config.Config, logger *slog.Logger) (storage.Store, string, error) {
	if cfg.S3Enabled() {
		s3Store, err := storage.NewS3Store(storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
		if err != nil {
			return nil, "", fmt.Errorf("create S3 store: %w", err)
		}
		logger.Info("S3 asset store configured",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region),
		)
		return s3Store, "", nil
	}

	localStore, err := storage.NewLocalStore(cfg.TempDir, cfg.PublicBaseURL)
	if err != nil {
		return nil, "", fmt.Errorf("create local store: %w", err)
	}
	logger.Info("local asset store configured",
		slog.String("dir", localStore.Dir()),
		slog.String("base_url", cfg.PublicBaseURL),
	)
	return localStore, localStore.Dir(), nil
}
