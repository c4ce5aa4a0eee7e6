package trivia

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// DefaultRateLimitBackoff matches the provider's one request per five
// seconds per client.
const DefaultRateLimitBackoff = 5 * time.Second

// FallbackLadder returns the easier difficulties to try, in order, when
// the requested difficulty yields no questions.
func FallbackLadder(d Difficulty) []Difficulty {
	switch d {
	case DifficultyHard:
		return []Difficulty{DifficultyMedium, DifficultyEasy}
	case DifficultyMedium:
		return []Difficulty{DifficultyEasy}
	}
	return nil
}

// Loader wraps a Source with the fallback cascade: exact request, then
// easier difficulties, then no difficulty filter. Amount and type never
// change. Attempts run strictly one after another.
type Loader struct {
	source  Source
	logger  *slog.Logger
	backoff time.Duration
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithRateLimitBackoff sets how long to wait before repeating an attempt
// the provider rate limited.
func WithRateLimitBackoff(d time.Duration) LoaderOption {
	return func(l *Loader) { l.backoff = d }
}

// NewLoader creates a Loader over source. A nil logger uses slog.Default.
func NewLoader(source Source, logger *slog.Logger, opts ...LoaderOption) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Loader{source: source, logger: logger, backoff: DefaultRateLimitBackoff}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load runs the cascade for req. Exhausting every attempt is not an
// error: the result is empty with Degraded set. A NetworkError, a
// MalformedDataError or a repeated rate limit on any attempt aborts the
// cascade as *LoadError.
func (l *Loader) Load(ctx context.Context, req Request) (LoadResult, error) {
	result := LoadResult{Requested: req}

	qs, err := l.attempt(ctx, req)
	if err != nil {
		return result, err
	}
	if len(qs) > 0 {
		result.Questions = qs
		result.UsedDifficulty = req.Difficulty
		return result, nil
	}

	result.Degraded = true

	for _, d := range FallbackLadder(req.Difficulty) {
		qs, err := l.attempt(ctx, req.WithDifficulty(d))
		if err != nil {
			return result, err
		}
		if len(qs) > 0 {
			result.Questions = qs
			result.UsedDifficulty = d
			return result, nil
		}
	}

	// The exact request already covered the unfiltered case.
	if req.Difficulty == DifficultyUnset {
		l.logger.Info("no questions available", "amount", req.Amount, "type", string(req.Type))
		return result, nil
	}

	qs, err = l.attempt(ctx, req.WithDifficulty(DifficultyUnset))
	if err != nil {
		return result, err
	}
	result.Questions = qs
	result.UsedDifficulty = DifficultyUnset
	if len(qs) == 0 {
		l.logger.Info("no questions available", "amount", req.Amount, "type", string(req.Type))
	}
	return result, nil
}

// attempt performs one fetch. Provider-reported emptiness counts as an
// empty batch. A rate-limited attempt is repeated once after the backoff;
// a second rate limit, like any other failure, aborts.
func (l *Loader) attempt(ctx context.Context, req Request) ([]Question, error) {
	for retried := false; ; retried = true {
		qs, err := l.source.Fetch(ctx, req)
		var pe *ProviderError
		switch {
		case err == nil:
			l.logger.Debug("question fetch", "difficulty", req.Difficulty.String(), "count", len(qs))
			return qs, nil

		case errors.As(err, &pe) && pe.Code == CodeRateLimit:
			if retried {
				l.logger.Warn("provider still rate limited",
					"difficulty", req.Difficulty.String(), "error", err)
				return nil, &LoadError{Attempt: req, Err: err}
			}
			l.logger.Warn("provider rate limited, backing off",
				"difficulty", req.Difficulty.String(), "wait", l.backoff)
			if err := sleep(ctx, l.backoff); err != nil {
				return nil, &LoadError{Attempt: req, Err: err}
			}

		case errors.As(err, &pe):
			l.logger.Info("provider returned no questions",
				"difficulty", req.Difficulty.String(), "error", err)
			return nil, nil

		default:
			l.logger.Warn("question fetch failed",
				"difficulty", req.Difficulty.String(), "error", err)
			return nil, &LoadError{Attempt: req, Err: err}
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
