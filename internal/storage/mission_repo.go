package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type MissionRepo struct {
	db DBTX
}

func NewMissionRepo(db DBTX) *MissionRepo {
	return &MissionRepo{db: db}
}

const missionCols = `id, date, description, difficulty, category, completed,
	estimated_time, actual_time, goal_alignment, aligned_goal_id, justification, scheduled_at,
	bet_placed, bet_amount, bet_multiplier, bet_won`

func (r *MissionRepo) Insert(ctx context.Context, m *Mission) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO missions (`+missionCols+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.Date, m.Description, m.Difficulty, m.Category, boolToInt(m.Completed),
		m.EstimatedTime, m.ActualTime, m.GoalAlignment, m.AlignedGoalID, m.Justification, m.ScheduledAt,
		boolToInt(m.Bet.Placed), m.Bet.Amount, m.Bet.Multiplier, boolPtrToInt(m.Bet.Won))
	if err != nil {
		return fmt.Errorf("mission insert: %w", err)
	}
	return nil
}

func (r *MissionRepo) Get(ctx context.Context, id string) (*Mission, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+missionCols+` FROM missions WHERE id = ?`, id)
	return scanMission(row)
}

func (r *MissionRepo) ListByDate(ctx context.Context, date string) ([]Mission, error) {
	return r.list(ctx, `SELECT `+missionCols+` FROM missions WHERE date = ? ORDER BY rowid ASC`, date)
}

func (r *MissionRepo) ListAll(ctx context.Context) ([]Mission, error) {
	return r.list(ctx, `SELECT `+missionCols+` FROM missions ORDER BY date ASC, rowid ASC`)
}

// ListUnresolvedBetsBefore returns missions dated strictly before the given
// date that carry a placed, unresolved bet and are not completed.
func (r *MissionRepo) ListUnresolvedBetsBefore(ctx context.Context, date string) ([]Mission, error) {
	return r.list(ctx, `
		SELECT `+missionCols+` FROM missions
		WHERE date < ? AND bet_placed = 1 AND completed = 0 AND bet_won IS NULL
		ORDER BY date ASC, rowid ASC
	`, date)
}

// Update rewrites the full row, mirroring the single-writer snapshot model.
func (r *MissionRepo) Update(ctx context.Context, m *Mission) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE missions SET
			date = ?, description = ?, difficulty = ?, category = ?, completed = ?,
			estimated_time = ?, actual_time = ?, goal_alignment = ?, aligned_goal_id = ?,
			justification = ?, scheduled_at = ?,
			bet_placed = ?, bet_amount = ?, bet_multiplier = ?, bet_won = ?
		WHERE id = ?
	`, m.Date, m.Description, m.Difficulty, m.Category, boolToInt(m.Completed),
		m.EstimatedTime, m.ActualTime, m.GoalAlignment, m.AlignedGoalID,
		m.Justification, m.ScheduledAt,
		boolToInt(m.Bet.Placed), m.Bet.Amount, m.Bet.Multiplier, boolPtrToInt(m.Bet.Won), m.ID)
	if err != nil {
		return fmt.Errorf("mission update: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mission update rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("mission %s not found", m.ID)
	}
	return nil
}

func (r *MissionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM missions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mission delete: %w", err)
	}
	return nil
}

func (r *MissionRepo) list(ctx context.Context, query string, args ...any) ([]Mission, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("mission list: %w", err)
	}
	defer rows.Close()

	var out []Mission
	for rows.Next() {
		m, err := scanMission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mission list rows: %w", err)
	}
	return out, nil
}

func scanMission(row scanner) (*Mission, error) {
	var (
		m             Mission
		completed     int
		actualTime    sql.NullInt64
		goalAlignment sql.NullInt64
		alignedGoalID sql.NullString
		justification sql.NullString
		scheduledAt   sql.NullString
		betPlaced     int
		betWon        sql.NullInt64
	)

	if err := row.Scan(
		&m.ID, &m.Date, &m.Description, &m.Difficulty, &m.Category, &completed,
		&m.EstimatedTime, &actualTime, &goalAlignment, &alignedGoalID, &justification, &scheduledAt,
		&betPlaced, &m.Bet.Amount, &m.Bet.Multiplier, &betWon,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("mission scan: %w", err)
	}

	m.Completed = completed != 0
	m.ActualTime = nullIntPtr(actualTime)
	m.GoalAlignment = nullIntPtr(goalAlignment)
	m.AlignedGoalID = nullStringPtr(alignedGoalID)
	m.Justification = nullStringPtr(justification)
	m.ScheduledAt = nullStringPtr(scheduledAt)
	m.Bet.Placed = betPlaced != 0
	if betWon.Valid {
		v := betWon.Int64 != 0
		m.Bet.Won = &v
	}
	return &m, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func boolPtrToInt(v *bool) *int {
	if v == nil {
		return nil
	}
	n := boolToInt(*v)
	return &n
}

func nullIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullStringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
