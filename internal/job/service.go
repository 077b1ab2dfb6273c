package job

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/reelforge/reelforge-api/internal/apperr"
	"github.com/reelforge/reelforge-api/internal/assets"
	"github.com/reelforge/reelforge-api/internal/composition"
	"github.com/reelforge/reelforge-api/internal/renderer"
)

// GenerateInput contains the user's composed generation request.
type GenerateInput struct {
	// Script is the narration text.
	Script string
	// VoiceID selects the narration voice.
	VoiceID string
	// MusicID selects the optional background track. Empty means none.
	MusicID string
	// CaptionsDisabled suppresses the caption track.
	CaptionsDisabled bool
	// CaptionStyle is the internal caption style identifier.
	CaptionStyle string
	// CaptionAlignment is one of top, middle, bottom.
	CaptionAlignment string
	// AspectRatio is the frame ratio selection.
	AspectRatio string
	// Preset is the optional art preset identifier.
	Preset string
}

// Service orchestrates the generation pipeline: resolve assets, build the
// composition, submit the render, and track its lifecycle by polling.
type Service struct {
	repo         Repository
	renderer     renderer.Renderer
	resolver     assets.Resolver
	logger       *slog.Logger
	pollInterval time.Duration

	mu       sync.Mutex
	polls    map[string]context.CancelFunc
	jobLocks map[string]*sync.Mutex
}

// ServiceOption is a function that configures a Service.
type ServiceOption func(*Service)

// WithPollInterval sets the fixed interval between status polls.
func WithPollInterval(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

// NewService creates a new Service.
func NewService(repo Repository, rend renderer.Renderer, resolver assets.Resolver, logger *slog.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		repo:         repo,
		renderer:     rend,
		resolver:     resolver,
		logger:       logger,
		pollInterval: 4 * time.Second,
		polls:        make(map[string]context.CancelFunc),
		jobLocks:     make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate runs the pre-submission pipeline and submits the render.
// If any step fails, no RenderJob is created: the job exists only once
// the provider has acknowledged the submission.
func (s *Service) Generate(ctx context.Context, input GenerateInput) (*RenderJob, error) {
	script := strings.TrimSpace(input.Script)
	if script == "" {
		return nil, fmt.Errorf("script is required: %w", apperr.ErrValidation)
	}
	if input.VoiceID == "" {
		return nil, fmt.Errorf("voice is required: %w", apperr.ErrValidation)
	}
	if input.AspectRatio == "" {
		return nil, fmt.Errorf("aspect ratio is required: %w", apperr.ErrValidation)
	}

	speechURL, err := s.resolver.ResolveSpeech(ctx, input.VoiceID, script)
	if err != nil {
		return nil, err
	}

	var musicURL string
	if input.MusicID != "" {
		musicURL, err = s.resolver.ResolveMusic(input.MusicID)
		if err != nil {
			return nil, err
		}
	}

	edit := composition.Build(composition.Request{
		Script:      script,
		AspectRatio: input.AspectRatio,
		Captions: composition.Captions{
			Disabled:  input.CaptionsDisabled,
			Style:     input.CaptionStyle,
			Alignment: input.CaptionAlignment,
		},
		Preset: input.Preset,
	}, speechURL, musicURL)

	jobID, err := s.renderer.Submit(ctx, edit)
	if err != nil {
		return nil, err
	}

	j := New(jobID)
	if err := s.repo.Save(ctx, j); err != nil {
		return nil, err
	}

	s.logger.Info("render job submitted",
		slog.String("job_id", jobID),
		slog.String("aspect_ratio", input.AspectRatio),
		slog.String("voice", input.VoiceID),
		slog.String("preset", composition.Preset(input.Preset)),
		slog.Bool("music", musicURL != ""),
		slog.Bool("captions", !input.CaptionsDisabled),
	)

	return j.Clone(), nil
}

// GetJob retrieves a job snapshot by ID without touching the provider.
func (s *Service) GetJob(ctx context.Context, id string) (*RenderJob, error) {
	return s.repo.FindByID(ctx, id)
}

// Poll reconciles a job with the provider once and returns the updated
// snapshot. Terminal jobs are returned as-is without a provider call.
// A provider error leaves the job state untouched: a transient fetch
// failure must never turn into a failed job.
//
// Polls for the same job are serialized so result N+1 is never applied
// before result N, which would let statuses regress.
func (s *Service) Poll(ctx context.Context, jobID string) (*RenderJob, error) {
	lock := s.lockFor(jobID)
	lock.Lock()
	defer lock.Unlock()

	j, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if j.IsTerminal() {
		return j, nil
	}

	result, err := s.renderer.Poll(ctx, jobID)
	if err != nil {
		return nil, err
	}

	j.Apply(result)
	if err := s.repo.Save(ctx, j); err != nil {
		return nil, err
	}

	return j, nil
}

// StartPolling launches a background loop that reconciles the job at the
// fixed interval until it reaches a terminal state. The returned cancel
// function stops the loop deterministically; calling it more than once is
// safe. At most one loop runs per job id.
func (s *Service) StartPolling(jobID string) (cancel func()) {
	ctx, stop := context.WithCancel(context.Background())

	s.mu.Lock()
	if existing, ok := s.polls[jobID]; ok {
		s.mu.Unlock()
		stop()
		return existing
	}
	s.polls[jobID] = stop
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.polls, jobID)
			s.mu.Unlock()
		}()

		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				j, err := s.Poll(ctx, jobID)
				if err != nil {
					if errors.Is(err, ErrJobNotFound) || ctx.Err() != nil {
						return
					}
					// Transient failures retry on the same cadence.
					s.logger.Warn("status poll failed",
						slog.String("job_id", jobID),
						slog.String("error", err.Error()),
					)
					continue
				}
				if j.GetStatus().IsTerminal() {
					return
				}
			}
		}
	}()

	return stop
}

// lockFor returns the per-job mutex serializing provider polls.
func (s *Service) lockFor(jobID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.jobLocks[jobID]
	if !ok {
		lock = &sync.Mutex{}
		s.jobLocks[jobID] = lock
	}
	return lock
}
