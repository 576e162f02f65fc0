package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS missions (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL,
			description TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			completed INTEGER NOT NULL DEFAULT 0,
			estimated_time INTEGER NOT NULL DEFAULT 0,
			actual_time INTEGER,
			goal_alignment INTEGER,
			aligned_goal_id TEXT,
			justification TEXT,
			scheduled_at TEXT,

			bet_placed INTEGER NOT NULL DEFAULT 0,
			bet_amount REAL NOT NULL DEFAULT 0,
			bet_multiplier REAL NOT NULL DEFAULT 0,
			bet_won INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS recurring_missions (
			id TEXT PRIMARY KEY,
			description TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			recurrence TEXT NOT NULL,
			start_date TEXT NOT NULL,
			estimated_time INTEGER NOT NULL DEFAULT 0,
			goal_alignment INTEGER,
			aligned_goal_id TEXT,
			justification TEXT,
			scheduled_at TEXT,
			completions TEXT NOT NULL DEFAULT '{}'
		);`,
		`CREATE TABLE IF NOT EXISTS goals (
			id TEXT PRIMARY KEY,
			description TEXT NOT NULL,
			target_date TEXT NOT NULL DEFAULT '',
			label TEXT,
			completed INTEGER NOT NULL DEFAULT 0,
			completion_date TEXT,
			completion_proof TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS diary_entries (
			date TEXT PRIMARY KEY,
			reflection TEXT,
			debrief TEXT,
			grade TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS character (
			key TEXT PRIMARY KEY,
			bonuses REAL NOT NULL DEFAULT 0,
			spent REAL NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		// One row per date whose all-missions-complete bonus has been paid out.
		`CREATE TABLE IF NOT EXISTS grind_bonuses (
			date TEXT PRIMARY KEY
		);`,
		`CREATE INDEX IF NOT EXISTS idx_missions_date ON missions(date);`,
		`CREATE INDEX IF NOT EXISTS idx_missions_completed ON missions(completed);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
