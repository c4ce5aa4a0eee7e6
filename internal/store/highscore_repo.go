package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/histquiz/internal/highscore"
)

// HighScoreRepo persists the high score in a single row.
type HighScoreRepo struct {
	db *sql.DB
}

var _ highscore.Repo = (*HighScoreRepo)(nil)

// Read returns the stored high score, or 0 if none is stored.
func (r *HighScoreRepo) Read(ctx context.Context) (int, error) {
	query, args := builder().
		Select("score").
		From(builder().Table(tableHighScores)).
		Where(entsql.EQ("id", singletonID)).
		Query()

	var score int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("query high score: %w", err)
	}
	return score, nil
}

// Write stores score unconditionally. highscore.Ledger decides whether a
// score is worth writing.
func (r *HighScoreRepo) Write(ctx context.Context, score int) error {
	query, args, err := builder().
		Insert(tableHighScores).
		Columns("id", "score", "updated_at").
		Values(singletonID, score, time.Now().Unix()).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues()).
		QueryErr()
	if err != nil {
		return fmt.Errorf("build high score upsert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save high score: %w", err)
	}
	return nil
}

// Reset sets the stored high score to zero.
func (r *HighScoreRepo) Reset(ctx context.Context) error {
	return r.Write(ctx, 0)
}
