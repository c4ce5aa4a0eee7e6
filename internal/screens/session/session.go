package session

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/histquiz/internal/router"
	"github.com/abhisek/histquiz/internal/screen"
	sess "github.com/abhisek/histquiz/internal/session"
	"github.com/abhisek/histquiz/internal/ui/components"
	"github.com/abhisek/histquiz/internal/ui/layout"
)

// questionKey identifies the question the answer list was built for.
type questionKey struct {
	gen uint64
	idx int
}

// SessionScreen implements screen.Screen for the quiz tab. It renders
// snapshots of a sess.Session and turns key presses into session calls;
// the session's own feedback timer drives question advances.
type SessionScreen struct {
	ctx        context.Context
	session    *sess.Session
	bridge     *Bridge
	newHistory func() screen.Screen

	snap      sess.Snapshot
	answers   components.AnswerList
	action    components.Button // Try Again / Restart
	shown     questionKey
	announced uint64
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)

// Option configures a SessionScreen.
type Option func(*SessionScreen)

// WithHistoryScreen lets "h" push the screen built by f.
func WithHistoryScreen(f func() screen.Screen) Option {
	return func(s *SessionScreen) { s.newHistory = f }
}

// WithContext sets the context loads run under.
func WithContext(ctx context.Context) Option {
	return func(s *SessionScreen) { s.ctx = ctx }
}

// New creates a SessionScreen. bridge must be the observer registered on
// session.
func New(session *sess.Session, bridge *Bridge, opts ...Option) *SessionScreen {
	s := &SessionScreen{
		ctx:     context.Background(),
		session: session,
		bridge:  bridge,
		shown:   questionKey{idx: -1},
	}
	s.action = components.NewButton("Try Again", true, func() tea.Cmd {
		s.restart()
		return nil
	})
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init starts the first session and subscribes to its changes.
func (s *SessionScreen) Init() tea.Cmd {
	s.restart()
	return s.bridge.wait
}

func (s *SessionScreen) Title() string {
	return "Quiz"
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	hints := s.phaseHints()
	if s.newHistory != nil && s.snap.Phase != sess.PhaseActive {
		hints = append(hints, layout.KeyHint{Key: "h", Description: "History"})
	}
	return append(hints,
		layout.KeyHint{Key: "Tab", Description: "Settings"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
}

func (s *SessionScreen) phaseHints() []layout.KeyHint {
	switch s.snap.Phase {
	case sess.PhaseActive:
		if s.snap.AwaitingAdvance {
			return []layout.KeyHint{{Key: "Enter", Description: "Next"}}
		}
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "1-4", Description: "Answer"},
			{Key: "Enter", Description: "Submit"},
		}
	case sess.PhaseEmpty, sess.PhaseError:
		return []layout.KeyHint{{Key: "r", Description: "Try again"}}
	case sess.PhaseFinished:
		return []layout.KeyHint{{Key: "r", Description: "Restart"}}
	}
	return nil
}

func (s *SessionScreen) View(width, height int) string {
	switch s.snap.Phase {
	case sess.PhaseEmpty:
		return renderEmpty(s.action.View(), width, height)
	case sess.PhaseError:
		return renderError(s.action.View(), width, height)
	case sess.PhaseActive:
		return s.renderQuestionView(width, height)
	case sess.PhaseFinished:
		return renderResult(s.snap.Result, s.action.View(), width, height)
	}
	return renderLoading(width, height)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionChangedMsg:
		return s, tea.Batch(s.bridge.wait, s.sessionChanged())

	case screen.SettingsSavedMsg:
		s.restart()
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if key == "h" && s.newHistory != nil && s.snap.Phase != sess.PhaseActive {
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: s.newHistory()} }
	}

	switch s.snap.Phase {
	case sess.PhaseActive:
		if s.snap.AwaitingAdvance {
			if key == "enter" || key == "space" {
				s.session.Advance()
				s.refresh()
			}
			return s, nil
		}
		s.answers, _ = s.answers.Update(msg)
		if answer, ok := s.answers.Picked(); ok {
			s.session.SubmitAnswer(answer)
			s.refresh()
		}

	case sess.PhaseEmpty, sess.PhaseError, sess.PhaseFinished:
		if key == "r" {
			s.restart()
			return s, nil
		}
		var cmd tea.Cmd
		s.action, cmd = s.action.Update(msg)
		return s, cmd
	}
	return s, nil
}

// sessionChanged re-reads the session after a notification. The returned
// command never blocks; the caller re-arms the bridge wait separately.
func (s *SessionScreen) sessionChanged() tea.Cmd {
	s.refresh()
	return s.announceHighScore()
}

// restart begins a new session with the current settings.
func (s *SessionScreen) restart() {
	s.session.Restart(s.ctx)
	s.refresh()
}

// refresh re-reads the session and rebuilds the answer list when the
// question on screen changed.
func (s *SessionScreen) refresh() {
	s.snap = s.session.Snapshot()
	s.action.Label = "Try Again"
	if s.snap.Phase == sess.PhaseFinished {
		s.action.Label = "Restart"
	}

	q, ok := s.snap.Current()
	if !ok {
		return
	}
	key := questionKey{gen: s.snap.Generation, idx: s.snap.CurrentIndex}
	if key != s.shown {
		s.answers = components.NewAnswerList(q.Answers())
		s.shown = key
	}
	if s.snap.AwaitingAdvance {
		s.answers = s.answers.Reveal(s.snap.SelectedAnswer, q.CorrectAnswer())
	}
}

// announceHighScore emits a HighScoreMsg once per session that set a new
// high score.
func (s *SessionScreen) announceHighScore() tea.Cmd {
	res := s.snap.Result
	if s.snap.Phase != sess.PhaseFinished || res == nil || !res.IsNewHighScore {
		return nil
	}
	if s.announced == s.snap.Generation {
		return nil
	}
	s.announced = s.snap.Generation
	score := res.Correct
	return func() tea.Msg { return screen.HighScoreMsg{Score: score} }
}

// Snapshot returns the state last rendered.
func (s *SessionScreen) Snapshot() sess.Snapshot {
	return s.snap
}
