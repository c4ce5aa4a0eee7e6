package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/histquiz/internal/session"
	"github.com/abhisek/histquiz/internal/trivia"
)

// QueryOpts configures history queries.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	From  time.Time // finished_at >= From
	To    time.Time // finished_at <= To
}

// SessionStats summarizes the session history.
type SessionStats struct {
	Sessions int
	Passed   int
	Correct  int
	Answered int
}

// Accuracy returns Correct / Answered, or 0 with no history.
func (s SessionStats) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered)
}

// SessionRepo stores finished quiz sessions.
type SessionRepo struct {
	db *sql.DB
}

var _ session.HistoryRepo = (*SessionRepo)(nil)

var sessionSelectColumns = []string{
	"id", "started_at", "finished_at", "amount", "requested_difficulty",
	"used_difficulty", "question_type", "degraded", "correct", "total", "passed",
}

// AppendSession records a finished session.
func (r *SessionRepo) AppendSession(ctx context.Context, rec session.Record) error {
	query, args, err := builder().
		Insert(tableSessions).
		Columns(sessionSelectColumns...).
		Values(
			rec.ID,
			rec.StartedAt.Unix(),
			rec.FinishedAt.Unix(),
			rec.Requested.Amount,
			string(rec.Requested.Difficulty),
			string(rec.UsedDifficulty),
			string(rec.Requested.Type),
			rec.Degraded,
			rec.Correct,
			rec.Total,
			rec.Passed,
		).
		QueryErr()
	if err != nil {
		return fmt.Errorf("build session insert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append session: %w", err)
	}
	return nil
}

// ListSessions returns finished sessions, newest first.
func (r *SessionRepo) ListSessions(ctx context.Context, opts QueryOpts) ([]session.Record, error) {
	sel := builder().
		Select(sessionSelectColumns...).
		From(builder().Table(tableSessions))
	if p := timeRange(opts); p != nil {
		sel.Where(p)
	}
	sel.OrderBy(entsql.Desc("finished_at"), entsql.Desc("started_at"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var recs []session.Record
	for rows.Next() {
		var (
			rec                   session.Record
			started, finished     int64
			requested, used, kind string
		)
		if err := rows.Scan(&rec.ID, &started, &finished, &rec.Requested.Amount,
			&requested, &used, &kind, &rec.Degraded, &rec.Correct, &rec.Total, &rec.Passed); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		rec.StartedAt = time.Unix(started, 0)
		rec.FinishedAt = time.Unix(finished, 0)
		rec.Requested.Difficulty = trivia.Difficulty(requested)
		rec.Requested.Type = trivia.QuestionType(kind)
		rec.UsedDifficulty = trivia.Difficulty(used)
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return recs, nil
}

// Stats aggregates the whole session history.
func (r *SessionRepo) Stats(ctx context.Context) (SessionStats, error) {
	t := builder().Table(tableSessions)
	query, args := builder().
		Select(
			entsql.Count("*"),
			"COALESCE("+entsql.Sum(t.C("passed"))+", 0)",
			"COALESCE("+entsql.Sum(t.C("correct"))+", 0)",
			"COALESCE("+entsql.Sum(t.C("total"))+", 0)",
		).
		From(t).
		Query()

	var st SessionStats
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&st.Sessions, &st.Passed, &st.Correct, &st.Answered); err != nil {
		return SessionStats{}, fmt.Errorf("query session stats: %w", err)
	}
	return st, nil
}

func timeRange(opts QueryOpts) *entsql.Predicate {
	var preds []*entsql.Predicate
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("finished_at", opts.From.Unix()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("finished_at", opts.To.Unix()))
	}
	switch len(preds) {
	case 0:
		return nil
	case 1:
		return preds[0]
	}
	return entsql.And(preds...)
}
