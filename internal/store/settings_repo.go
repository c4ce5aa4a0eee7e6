package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/histquiz/internal/settings"
	"github.com/abhisek/histquiz/internal/trivia"
)

// SettingsRepo persists settings in a single row.
type SettingsRepo struct {
	db *sql.DB
}

var _ settings.Repo = (*SettingsRepo)(nil)

// Read returns the saved settings, or settings.ErrNotSaved if nothing has
// been saved. Values are returned as stored; the caller validates them.
func (r *SettingsRepo) Read(ctx context.Context) (settings.Settings, error) {
	query, args := builder().
		Select("amount", "difficulty", "question_type").
		From(builder().Table(tableSettings)).
		Where(entsql.EQ("id", singletonID)).
		Query()

	var (
		s          settings.Settings
		difficulty string
		qtype      string
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&s.Amount, &difficulty, &qtype)
	if errors.Is(err, sql.ErrNoRows) {
		return settings.Settings{}, settings.ErrNotSaved
	}
	if err != nil {
		return settings.Settings{}, fmt.Errorf("query settings: %w", err)
	}
	s.Difficulty = trivia.Difficulty(difficulty)
	s.Type = trivia.QuestionType(qtype)
	return s, nil
}

// Write replaces the saved settings.
func (r *SettingsRepo) Write(ctx context.Context, s settings.Settings) error {
	query, args, err := builder().
		Insert(tableSettings).
		Columns("id", "amount", "difficulty", "question_type", "updated_at").
		Values(singletonID, s.Amount, string(s.Difficulty), string(s.Type), time.Now().Unix()).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues()).
		QueryErr()
	if err != nil {
		return fmt.Errorf("build settings upsert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
