// Package highscore keeps the best session score.
package highscore

import (
	"context"
	"fmt"
	"sync"
)

// Repo is the persistence boundary for the high score.
type Repo interface {
	Read(ctx context.Context) (int, error)
	Write(ctx context.Context, score int) error
	Reset(ctx context.Context) error
}

// Ledger owns the high score. The stored value only grows, except through
// Reset.
type Ledger struct {
	mu   sync.Mutex
	repo Repo
}

// NewLedger creates a Ledger over repo.
func NewLedger(repo Repo) *Ledger {
	return &Ledger{repo: repo}
}

// Get returns the current high score.
func (l *Ledger) Get(ctx context.Context) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	n, err := l.repo.Read(ctx)
	if err != nil {
		return 0, fmt.Errorf("read high score: %w", err)
	}
	return n, nil
}

// RaiseIfGreater stores score if it beats the current high score and
// reports whether it did.
func (l *Ledger) RaiseIfGreater(ctx context.Context, score int) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	best, err := l.repo.Read(ctx)
	if err != nil {
		return false, fmt.Errorf("read high score: %w", err)
	}
	if score <= best {
		return false, nil
	}
	if err := l.repo.Write(ctx, score); err != nil {
		return false, fmt.Errorf("write high score: %w", err)
	}
	return true, nil
}

// Reset sets the high score back to zero.
func (l *Ledger) Reset(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.repo.Reset(ctx); err != nil {
		return fmt.Errorf("reset high score: %w", err)
	}
	return nil
}

// MemoryRepo is an in-process Repo.
type MemoryRepo struct {
	mu    sync.Mutex
	score int
}

var _ Repo = (*MemoryRepo)(nil)

// NewMemoryRepo returns a MemoryRepo starting at initial.
func NewMemoryRepo(initial int) *MemoryRepo {
	return &MemoryRepo{score: initial}
}

func (m *MemoryRepo) Read(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.score, nil
}

func (m *MemoryRepo) Write(_ context.Context, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.score = score
	return nil
}

func (m *MemoryRepo) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.score = 0
	return nil
}
