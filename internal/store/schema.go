package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	tableSettings   = "settings"
	tableHighScores = "high_scores"
	tableSessions   = "quiz_sessions"

	// singletonID is the primary key of single-row tables.
	singletonID = 1
)

var (
	settingsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "amount", Type: field.TypeInt},
		{Name: "difficulty", Type: field.TypeString, Default: ""},
		{Name: "question_type", Type: field.TypeString},
		{Name: "updated_at", Type: field.TypeInt64},
	}
	// SettingsTable holds the single saved settings row.
	SettingsTable = &schema.Table{
		Name:       tableSettings,
		Columns:    settingsColumns,
		PrimaryKey: []*schema.Column{settingsColumns[0]},
	}

	highScoreColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "score", Type: field.TypeInt, Default: 0},
		{Name: "updated_at", Type: field.TypeInt64},
	}
	// HighScoresTable holds the single high-score row.
	HighScoresTable = &schema.Table{
		Name:       tableHighScores,
		Columns:    highScoreColumns,
		PrimaryKey: []*schema.Column{highScoreColumns[0]},
	}

	sessionColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Size: 36},
		{Name: "started_at", Type: field.TypeInt64},
		{Name: "finished_at", Type: field.TypeInt64},
		{Name: "amount", Type: field.TypeInt},
		{Name: "requested_difficulty", Type: field.TypeString, Default: ""},
		{Name: "used_difficulty", Type: field.TypeString, Default: ""},
		{Name: "question_type", Type: field.TypeString},
		{Name: "degraded", Type: field.TypeBool, Default: false},
		{Name: "correct", Type: field.TypeInt},
		{Name: "total", Type: field.TypeInt},
		{Name: "passed", Type: field.TypeBool},
	}
	// SessionsTable is the history of finished quiz sessions.
	SessionsTable = &schema.Table{
		Name:       tableSessions,
		Columns:    sessionColumns,
		PrimaryKey: []*schema.Column{sessionColumns[0]},
		Indexes: []*schema.Index{
			{Name: "quizsession_finished_at", Columns: []*schema.Column{sessionColumns[2]}},
		},
	}

	// Tables lists every table created by auto-migration.
	Tables = []*schema.Table{
		SettingsTable,
		HighScoresTable,
		SessionsTable,
	}
)
