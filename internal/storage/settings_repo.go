package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
)

const (
	SettingDailyGoal    = "daily_goal"
	SettingLastBetSweep = "last_bet_sweep"
)

type SettingsRepo struct {
	db DBTX
}

func NewSettingsRepo(db DBTX) *SettingsRepo {
	return &SettingsRepo{db: db}
}

func (r *SettingsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key)
	var v string
	if err := row.Scan(&v); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("setting get: %w", err)
	}
	return v, true, nil
}

func (r *SettingsRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("setting set: %w", err)
	}
	return nil
}

func (r *SettingsRepo) GetFloat(ctx context.Context, key string, fallback float64) (float64, error) {
	v, ok, err := r.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback, nil
	}
	return f, nil
}

func (r *SettingsRepo) SetFloat(ctx context.Context, key string, v float64) error {
	return r.Set(ctx, key, strconv.FormatFloat(v, 'f', -1, 64))
}

// GrindBonusRepo tracks which dates were already paid the all-complete bonus.
type GrindBonusRepo struct {
	db DBTX
}

func NewGrindBonusRepo(db DBTX) *GrindBonusRepo {
	return &GrindBonusRepo{db: db}
}

func (r *GrindBonusRepo) Awarded(ctx context.Context, date string) (bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT 1 FROM grind_bonuses WHERE date = ? LIMIT 1`, date)
	var one int
	if err := row.Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("grind bonus get: %w", err)
	}
	return true, nil
}

func (r *GrindBonusRepo) MarkAwarded(ctx context.Context, date string) error {
	_, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO grind_bonuses (date) VALUES (?)`, date)
	if err != nil {
		return fmt.Errorf("grind bonus mark: %w", err)
	}
	return nil
}
