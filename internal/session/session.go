package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/histquiz/internal/settings"
	"github.com/abhisek/histquiz/internal/trivia"
)

// DefaultFeedbackDelay is how long answer feedback stays on screen before
// the session advances.
const DefaultFeedbackDelay = 800 * time.Millisecond

// persistTimeout bounds high-score and history writes on finish.
const persistTimeout = 5 * time.Second

// Loader produces the question batch for a session.
type Loader interface {
	Load(ctx context.Context, req trivia.Request) (trivia.LoadResult, error)
}

// SettingsSource provides the settings a restart loads with.
type SettingsSource interface {
	Current() settings.Settings
}

// ScoreLedger records high scores.
type ScoreLedger interface {
	RaiseIfGreater(ctx context.Context, score int) (bool, error)
}

// HistoryRepo stores finished sessions.
type HistoryRepo interface {
	AppendSession(ctx context.Context, rec Record) error
}

// Observer receives session events. Calls are serialized and arrive in
// order. Observers must not call back into the Session.
type Observer interface {
	OnStateChange(snap Snapshot)
	OnLoadError(err error)
	OnSessionFinished(r Result)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) OnStateChange(Snapshot)   {}
func (NopObserver) OnLoadError(error)        {}
func (NopObserver) OnSessionFinished(Result) {}

// AfterFunc schedules f after d and returns a function that cancels it.
type AfterFunc func(d time.Duration, f func()) (stop func() bool)

func timeAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Option configures a Session.
type Option func(*Session)

// WithFeedbackDelay sets the feedback display interval.
func WithFeedbackDelay(d time.Duration) Option {
	return func(s *Session) { s.feedbackDelay = d }
}

// WithAfterFunc replaces the timer implementation.
func WithAfterFunc(f AfterFunc) Option {
	return func(s *Session) { s.afterFunc = f }
}

// WithObserver sets the event observer.
func WithObserver(o Observer) Option {
	return func(s *Session) { s.observer = o }
}

// WithHistory sets where finished sessions are recorded.
func WithHistory(h HistoryRepo) Option {
	return func(s *Session) { s.history = h }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Session is the quiz state machine:
//
//	Loading -> Active | Empty | Error
//	Active  -> Active | Finished
//	any     -> Loading (Restart)
//
// It is safe for concurrent use. The feedback timer and in-flight loads
// belong to one generation; Restart and Close invalidate both.
type Session struct {
	mu       sync.Mutex
	notifyMu sync.Mutex

	loader   Loader
	settings SettingsSource
	ledger   ScoreLedger
	history  HistoryRepo
	observer Observer
	logger   *slog.Logger

	feedbackDelay time.Duration
	afterFunc     AfterFunc
	now           func() time.Time

	gen        uint64
	closed     bool
	cancelLoad context.CancelFunc
	stopTimer  func() bool

	phase     Phase
	id        string
	startedAt time.Time
	load      trivia.LoadResult
	questions []trivia.Question
	idx       int
	correct   int
	selected  string
	awaiting  bool
	err       error
	result    *Result
}

// New creates a Session in PhaseLoading. Nothing is fetched until
// Restart is called.
func New(loader Loader, st SettingsSource, ledger ScoreLedger, opts ...Option) *Session {
	s := &Session{
		loader:        loader,
		settings:      st,
		ledger:        ledger,
		observer:      NopObserver{},
		logger:        slog.Default(),
		feedbackDelay: DefaultFeedbackDelay,
		afterFunc:     timeAfterFunc,
		now:           time.Now,
		phase:         PhaseLoading,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// event is one batch of observer notifications.
type event struct {
	snap     Snapshot
	loadErr  error
	finished *Result
}

// unlockAndDispatch releases s.mu and delivers ev. Holding notifyMu across
// the handoff keeps delivery in state order.
func (s *Session) unlockAndDispatch(ev event) {
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	if ev.loadErr != nil {
		s.observer.OnLoadError(ev.loadErr)
	}
	if ev.finished != nil {
		s.observer.OnSessionFinished(*ev.finished)
	}
	s.observer.OnStateChange(ev.snap)
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Restart discards all session state, enters PhaseLoading and loads a new
// batch with the current settings. A load still in flight from an earlier
// generation is canceled and its result dropped.
func (s *Session) Restart(ctx context.Context) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.teardownLocked()
	s.gen++
	gen := s.gen
	s.resetLocked()

	loadCtx, cancel := context.WithCancel(ctx)
	s.cancelLoad = cancel
	req := s.settings.Current().Request()
	s.load.Requested = req

	s.logger.Debug("session restart", "generation", gen, "amount", req.Amount,
		"difficulty", req.Difficulty.String(), "type", string(req.Type))

	snap := s.snapshotLocked()
	s.unlockAndDispatch(event{snap: snap})

	go s.runLoad(loadCtx, gen, req)
}

func (s *Session) runLoad(ctx context.Context, gen uint64, req trivia.Request) {
	res, err := s.loader.Load(ctx, req)

	s.mu.Lock()
	if s.closed || gen != s.gen {
		s.mu.Unlock()
		s.logger.Debug("discarding stale load", "generation", gen)
		return
	}
	if s.cancelLoad != nil {
		s.cancelLoad()
		s.cancelLoad = nil
	}

	if err != nil {
		s.phase = PhaseError
		s.err = err
		s.load.Requested = req
		s.logger.Warn("session load failed", "error", err)
		s.unlockAndDispatch(event{snap: s.snapshotLocked(), loadErr: err})
		return
	}

	s.startLocked(res)
	s.unlockAndDispatch(event{snap: s.snapshotLocked()})
}

// Start applies a loaded result directly, replacing any current session.
// An empty result enters PhaseEmpty; otherwise the session becomes active
// at the first question.
func (s *Session) Start(res trivia.LoadResult) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.teardownLocked()
	s.gen++
	s.resetLocked()
	s.startLocked(res)
	s.unlockAndDispatch(event{snap: s.snapshotLocked()})
}

func (s *Session) startLocked(res trivia.LoadResult) {
	s.load = res
	s.load.Questions = nil
	if res.Empty() {
		s.phase = PhaseEmpty
		return
	}
	s.phase = PhaseActive
	s.questions = res.Questions
	s.idx = 0
	s.correct = 0
	s.id = uuid.NewString()
	s.startedAt = s.now()

	if res.Degraded {
		s.logger.Info("loaded degraded batch",
			"requested", res.Requested.Difficulty.String(),
			"used", res.UsedDifficulty.String(),
			"count", len(res.Questions))
	}
}

// SubmitAnswer records answer for the current question and starts the
// feedback timer. It is a no-op, returning false, when the session is not
// active, feedback is already showing, or answer is not one of the
// current question's answers.
func (s *Session) SubmitAnswer(answer string) bool {
	s.mu.Lock()
	if s.phase != PhaseActive || s.awaiting {
		s.mu.Unlock()
		return false
	}
	q := s.questions[s.idx]
	if !q.HasAnswer(answer) {
		s.mu.Unlock()
		return false
	}

	s.selected = answer
	s.awaiting = true
	if q.IsCorrect(answer) {
		s.correct++
	}

	gen, idx := s.gen, s.idx
	s.stopTimer = s.afterFunc(s.feedbackDelay, func() {
		s.advanceFrom(gen, idx)
	})

	s.unlockAndDispatch(event{snap: s.snapshotLocked()})
	return true
}

// Advance ends the feedback interval now: it clears the selection and
// moves to the next question, or finishes the session after the last one.
// It is a no-op unless feedback is showing.
func (s *Session) Advance() {
	s.mu.Lock()
	if s.phase != PhaseActive || !s.awaiting {
		s.mu.Unlock()
		return
	}
	if s.stopTimer != nil {
		s.stopTimer()
		s.stopTimer = nil
	}
	s.advanceLocked()
}

// advanceFrom is the timer callback. It only acts if the session is still
// on the generation and question the timer was started for.
func (s *Session) advanceFrom(gen uint64, idx int) {
	s.mu.Lock()
	if s.closed || gen != s.gen || idx != s.idx || s.phase != PhaseActive || !s.awaiting {
		s.mu.Unlock()
		return
	}
	s.stopTimer = nil
	s.advanceLocked()
}

// advanceLocked must be called with s.mu held; it releases it.
func (s *Session) advanceLocked() {
	s.selected = ""
	s.awaiting = false

	if s.idx+1 < len(s.questions) {
		s.idx++
		s.unlockAndDispatch(event{snap: s.snapshotLocked()})
		return
	}

	s.idx = len(s.questions)
	s.phase = PhaseFinished
	gen := s.gen
	now := s.now()
	r := s.buildResult(now)
	rec := s.buildRecord(r, now)
	s.result = &r
	s.mu.Unlock()

	// Persist without holding mu so Snapshot stays responsive.
	r.IsNewHighScore = s.persist(r, rec)

	s.mu.Lock()
	if s.closed || gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.result = &r
	s.unlockAndDispatch(event{snap: s.snapshotLocked(), finished: &r})
}

// persist raises the high score and appends rec to history. It reports
// whether r set a new high score. Failures are logged, not returned.
func (s *Session) persist(r Result, rec Record) bool {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	var raised bool
	if s.ledger != nil {
		var err error
		raised, err = s.ledger.RaiseIfGreater(ctx, r.Correct)
		if err != nil {
			s.logger.Warn("failed to update high score", "error", err)
		}
	}

	if s.history != nil {
		if err := s.history.AppendSession(ctx, rec); err != nil {
			s.logger.Warn("failed to record session", "session_id", r.SessionID, "error", err)
		}
	}

	s.logger.Info("session finished",
		"session_id", r.SessionID,
		"correct", r.Correct,
		"total", r.Total,
		"pass", r.Pass,
		"new_high_score", raised)
	return raised
}

// Close stops the feedback timer, cancels any in-flight load and makes
// every later call a no-op.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teardownLocked()
	s.gen++
	s.closed = true
}

func (s *Session) teardownLocked() {
	if s.stopTimer != nil {
		s.stopTimer()
		s.stopTimer = nil
	}
	if s.cancelLoad != nil {
		s.cancelLoad()
		s.cancelLoad = nil
	}
}

func (s *Session) resetLocked() {
	s.phase = PhaseLoading
	s.id = ""
	s.startedAt = time.Time{}
	s.load = trivia.LoadResult{}
	s.questions = nil
	s.idx = 0
	s.correct = 0
	s.selected = ""
	s.awaiting = false
	s.err = nil
	s.result = nil
}
