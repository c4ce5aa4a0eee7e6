package session

import (
	"slices"

	"github.com/abhisek/histquiz/internal/trivia"
)

// Phase represents the current phase of the quiz session.
type Phase int

const (
	PhaseLoading  Phase = iota // Waiting for the loader
	PhaseActive                // Serving questions
	PhaseEmpty                 // Loader found no questions at all
	PhaseError                 // Loader failed
	PhaseFinished              // Every question answered
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseActive:
		return "active"
	case PhaseEmpty:
		return "empty"
	case PhaseError:
		return "error"
	case PhaseFinished:
		return "finished"
	}
	return "unknown"
}

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	Phase Phase

	// Generation increases on every restart; snapshots from an older
	// generation describe a session that no longer exists.
	Generation uint64

	// SessionID is set once questions are loaded.
	SessionID string

	Questions []trivia.Question

	// CurrentIndex is len(Questions) once the session is finished.
	CurrentIndex int

	CorrectCount int

	// SelectedAnswer is empty unless AwaitingAdvance is set.
	SelectedAnswer string

	// AwaitingAdvance is true while answer feedback is displayed.
	AwaitingAdvance bool

	// Load describes how the questions were obtained.
	Load trivia.LoadResult

	// Err is the load failure in PhaseError.
	Err error

	// Result is set in PhaseFinished.
	Result *Result
}

// Total returns the number of questions in the session.
func (s Snapshot) Total() int { return len(s.Questions) }

// Current returns the question being asked, if any.
func (s Snapshot) Current() (trivia.Question, bool) {
	if s.Phase != PhaseActive || s.CurrentIndex >= len(s.Questions) {
		return trivia.Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// LastAnswerCorrect reports whether the answer under feedback is correct.
func (s Snapshot) LastAnswerCorrect() bool {
	q, ok := s.Current()
	return ok && s.AwaitingAdvance && q.IsCorrect(s.SelectedAnswer)
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		Phase:           s.phase,
		Generation:      s.gen,
		SessionID:       s.id,
		Questions:       slices.Clone(s.questions),
		CurrentIndex:    s.idx,
		CorrectCount:    s.correct,
		SelectedAnswer:  s.selected,
		AwaitingAdvance: s.awaiting,
		Load:            s.load,
		Err:             s.err,
	}
	snap.Load.Questions = nil
	if s.result != nil {
		r := *s.result
		snap.Result = &r
	}
	return snap
}
