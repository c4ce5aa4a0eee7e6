// Package settings holds the player's quiz preferences.
package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/abhisek/histquiz/internal/trivia"
)

// DefaultAmount is used when no amount, or an unparsable one, is given.
const DefaultAmount = 10

// Settings is the requested (amount, difficulty, type) tuple.
type Settings struct {
	Amount     int
	Difficulty trivia.Difficulty
	Type       trivia.QuestionType
}

// Defaults returns the out-of-the-box settings.
func Defaults() Settings {
	return Settings{
		Amount:     DefaultAmount,
		Difficulty: trivia.DifficultyEasy,
		Type:       trivia.TypeMultiple,
	}
}

// Request converts the settings into a question request.
func (s Settings) Request() trivia.Request {
	return trivia.Request{
		Amount:     s.Amount,
		Difficulty: s.Difficulty,
		Type:       s.Type,
	}
}

// Validate checks every field.
func (s Settings) Validate() error {
	return s.Request().Validate()
}

// ClampAmount maps a user-entered amount into the accepted range. Zero
// or negative input means "not given" and yields DefaultAmount.
func ClampAmount(n int) int {
	if n <= 0 {
		return DefaultAmount
	}
	return max(trivia.MinAmount, min(trivia.MaxAmount, n))
}

// ErrNotSaved is returned by Repo.Read when no settings have been saved.
var ErrNotSaved = errors.New("no saved settings")

// Repo is the persistence boundary for settings.
type Repo interface {
	// Read returns the stored settings, or ErrNotSaved if none are stored.
	Read(ctx context.Context) (Settings, error)

	// Write replaces the stored settings.
	Write(ctx context.Context, s Settings) error
}

// Store owns the current settings and persists them through a Repo.
type Store struct {
	mu       sync.RWMutex
	repo     Repo
	current  Settings
	defaults Settings
	saved    bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithDefaults replaces the settings used when nothing valid is saved.
// Invalid defaults are ignored.
func WithDefaults(d Settings) StoreOption {
	return func(st *Store) {
		if d.Validate() == nil {
			st.defaults = d
		}
	}
}

// NewStore creates a Store initialized from repo. Missing or invalid
// saved settings fall back to the defaults.
func NewStore(ctx context.Context, repo Repo, opts ...StoreOption) (*Store, error) {
	st := &Store{repo: repo, defaults: Defaults()}
	for _, opt := range opts {
		opt(st)
	}

	s, err := repo.Read(ctx)
	switch {
	case errors.Is(err, ErrNotSaved):
		s = st.defaults
	case err != nil:
		return nil, fmt.Errorf("read settings: %w", err)
	case s.Validate() != nil:
		s = st.defaults
	default:
		st.saved = true
	}
	st.current = s
	return st, nil
}

// Defaults returns the settings used when nothing is saved.
func (st *Store) Defaults() Settings {
	return st.defaults
}

// Current returns the settings in effect.
func (st *Store) Current() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current
}

// Saved reports whether valid settings have ever been persisted.
func (st *Store) Saved() bool {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.saved
}

// Save validates s and overwrites the current settings wholesale.
func (st *Store) Save(ctx context.Context, s Settings) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if err := st.repo.Write(ctx, s); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	st.current = s
	st.saved = true
	return nil
}

// MemoryRepo keeps settings for the lifetime of the process.
type MemoryRepo struct {
	mu  sync.Mutex
	s   Settings
	set bool
}

var _ Repo = (*MemoryRepo)(nil)

// NewMemoryRepo returns an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (m *MemoryRepo) Read(_ context.Context) (Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return Settings{}, ErrNotSaved
	}
	return m.s, nil
}

func (m *MemoryRepo) Write(_ context.Context, s Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = s
	m.set = true
	return nil
}
