package session

import (
	"time"

	"github.com/abhisek/histquiz/internal/trivia"
)

// Result is the outcome of a finished session.
type Result struct {
	SessionID      string
	Correct        int
	Total          int
	PassThreshold  int
	Pass           bool
	IsNewHighScore bool
	Duration       time.Duration
}

// Accuracy returns Correct / Total, or 0 for an empty session.
func (r Result) Accuracy() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total)
}

// PassThreshold returns the minimum number of correct answers needed to
// pass a session of total questions: ceil(total / 2).
func PassThreshold(total int) int {
	return (total + 1) / 2
}

// Passed reports whether correct meets the pass threshold for total.
func Passed(correct, total int) bool {
	return correct >= PassThreshold(total)
}

// Record is a finished session as kept in history.
type Record struct {
	ID             string
	StartedAt      time.Time
	FinishedAt     time.Time
	Requested      trivia.Request
	UsedDifficulty trivia.Difficulty
	Degraded       bool
	Correct        int
	Total          int
	Passed         bool
}

// buildResult computes the session result from the current state.
func (s *Session) buildResult(now time.Time) Result {
	total := len(s.questions)
	return Result{
		SessionID:     s.id,
		Correct:       s.correct,
		Total:         total,
		PassThreshold: PassThreshold(total),
		Pass:          Passed(s.correct, total),
		Duration:      now.Sub(s.startedAt),
	}
}

func (s *Session) buildRecord(r Result, now time.Time) Record {
	return Record{
		ID:             r.SessionID,
		StartedAt:      s.startedAt,
		FinishedAt:     now,
		Requested:      s.load.Requested,
		UsedDifficulty: s.load.UsedDifficulty,
		Degraded:       s.load.Degraded,
		Correct:        r.Correct,
		Total:          r.Total,
		Passed:         r.Pass,
	}
}
