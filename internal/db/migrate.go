package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS students (
		id                   TEXT PRIMARY KEY,
		name                 TEXT NOT NULL DEFAULT '',
		learner_type         TEXT NOT NULL DEFAULT 'balanced'
		                     CHECK(learner_type IN ('fast_learner','needs_support','inconsistent','balanced')),
		stress_level         TEXT NOT NULL DEFAULT 'medium'
		                     CHECK(stress_level IN ('low','medium','high')),
		daily_capacity_hours REAL NOT NULL DEFAULT 2.0,
		created_at           TEXT NOT NULL,
		updated_at           TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS subjects (
		id            TEXT PRIMARY KEY,
		student_id    TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		name          TEXT NOT NULL,
		current_score REAL NOT NULL DEFAULT 0 CHECK(current_score BETWEEN 0 AND 100),
		confidence    REAL NOT NULL DEFAULT 0.5 CHECK(confidence BETWEEN 0 AND 1),
		difficulty    REAL NOT NULL DEFAULT 0 CHECK(difficulty >= 0),
		credit_weight REAL NOT NULL DEFAULT 1 CHECK(credit_weight > 0),
		days_remaining INTEGER NOT NULL DEFAULT 0 CHECK(days_remaining >= 0),
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_subjects_student ON subjects(student_id)`,

	`CREATE TABLE IF NOT EXISTS peer_outcomes (
		peer_id       TEXT NOT NULL,
		subject_id    TEXT NOT NULL,
		current_score REAL NOT NULL DEFAULT 0,
		confidence    REAL NOT NULL DEFAULT 0.5,
		hours_per_day REAL NOT NULL DEFAULT 0 CHECK(hours_per_day >= 0),
		improved      INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (peer_id, subject_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_peer_outcomes_subject ON peer_outcomes(subject_id)`,

	`CREATE TABLE IF NOT EXISTS models (
		version    TEXT PRIMARY KEY,
		trained_at TEXT NOT NULL,
		row_count  INTEGER NOT NULL DEFAULT 0,
		tree_count INTEGER NOT NULL DEFAULT 0,
		payload    BLOB NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_models_trained ON models(trained_at)`,

	// Mastery tracking: per-subject score history for velocity trends
	`ALTER TABLE subjects ADD COLUMN score_history TEXT NOT NULL DEFAULT '[]'`,

	// Enrichment flag for fast-learner boosts
	`ALTER TABLE subjects ADD COLUMN enrichment INTEGER NOT NULL DEFAULT 0`,

	// Training context: peer outcomes double as the model training set
	`ALTER TABLE peer_outcomes ADD COLUMN difficulty REAL NOT NULL DEFAULT 0`,
	`ALTER TABLE peer_outcomes ADD COLUMN days_remaining INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE peer_outcomes ADD COLUMN stress_level TEXT NOT NULL DEFAULT 'medium'`,
}
