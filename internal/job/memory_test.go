package job

import (
	"context"
	"errors"
	"testing"

	"github.com/reelforge/reelforge-api/internal/renderer"
)

func TestMemoryRepository_SaveAndFind(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	j := New("render-1")
	if err := repo.Save(ctx, j); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindByID(ctx, "render-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != "render-1" {
		t.Errorf("expected render-1, got %s", found.ID)
	}
	if found.Status != StatusQueued {
		t.Errorf("expected queued, got %s", found.Status)
	}
}

func TestMemoryRepository_FindByID_NotFound(t *testing.T) {
	repo := NewMemoryRepository()

	_, err := repo.FindByID(context.Background(), "missing")
	if !errors.Is(err, ErrJobNotFound) {
		t.Errorf("expected ErrJobNotFound, got %v", err)
	}
}

func TestMemoryRepository_ReturnsClones(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	j := New("render-2")
	_ = repo.Save(ctx, j)

	// Mutating the original after Save must not affect the stored copy.
	j.Apply(renderer.PollResult{Status: renderer.StatusDone, Progress: 100})

	stored, _ := repo.FindByID(ctx, "render-2")
	if stored.Status != StatusQueued {
		t.Errorf("stored job was mutated externally: %s", stored.Status)
	}

	// Mutating a found copy must not affect the stored one either.
	stored.Apply(renderer.PollResult{Status: renderer.StatusFailed, Error: "boom"})
	again, _ := repo.FindByID(ctx, "render-2")
	if again.Status != StatusQueued {
		t.Errorf("stored job was mutated through a read copy: %s", again.Status)
	}
}

func TestMemoryRepository_List(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_ = repo.Save(ctx, New("a"))
	_ = repo.Save(ctx, New("b"))

	jobs, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 {
		t.Errorf("expected 2 jobs, got %d", len(jobs))
	}
}
