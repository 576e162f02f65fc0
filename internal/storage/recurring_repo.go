package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

type RecurringRepo struct {
	db DBTX
}

func NewRecurringRepo(db DBTX) *RecurringRepo {
	return &RecurringRepo{db: db}
}

const recurringCols = `id, description, difficulty, category, recurrence, start_date,
	estimated_time, goal_alignment, aligned_goal_id, justification, scheduled_at, completions`

func (r *RecurringRepo) Insert(ctx context.Context, m *RecurringMission) error {
	raw, err := marshalCompletions(m.Completions)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO recurring_missions (`+recurringCols+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.Description, m.Difficulty, m.Category, m.Recurrence, m.StartDate,
		m.EstimatedTime, m.GoalAlignment, m.AlignedGoalID, m.Justification, m.ScheduledAt, raw)
	if err != nil {
		return fmt.Errorf("recurring insert: %w", err)
	}
	return nil
}

func (r *RecurringRepo) Get(ctx context.Context, id string) (*RecurringMission, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+recurringCols+` FROM recurring_missions WHERE id = ?`, id)
	return scanRecurring(row)
}

func (r *RecurringRepo) ListAll(ctx context.Context) ([]RecurringMission, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+recurringCols+` FROM recurring_missions ORDER BY start_date ASC, rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("recurring list: %w", err)
	}
	defer rows.Close()

	var out []RecurringMission
	for rows.Next() {
		m, err := scanRecurring(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recurring list rows: %w", err)
	}
	return out, nil
}

func (r *RecurringRepo) Update(ctx context.Context, m *RecurringMission) error {
	raw, err := marshalCompletions(m.Completions)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE recurring_missions SET
			description = ?, difficulty = ?, category = ?, recurrence = ?, start_date = ?,
			estimated_time = ?, goal_alignment = ?, aligned_goal_id = ?, justification = ?,
			scheduled_at = ?, completions = ?
		WHERE id = ?
	`, m.Description, m.Difficulty, m.Category, m.Recurrence, m.StartDate,
		m.EstimatedTime, m.GoalAlignment, m.AlignedGoalID, m.Justification,
		m.ScheduledAt, raw, m.ID)
	if err != nil {
		return fmt.Errorf("recurring update: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("recurring update rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("recurring mission %s not found", m.ID)
	}
	return nil
}

// SetCompletion writes one per-date entry without disturbing the rest of the map.
func (r *RecurringRepo) SetCompletion(ctx context.Context, id string, date string, c Completion) error {
	m, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("recurring mission %s not found", id)
	}
	if m.Completions == nil {
		m.Completions = map[string]Completion{}
	}
	m.Completions[date] = c
	return r.Update(ctx, m)
}

func (r *RecurringRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM recurring_missions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("recurring delete: %w", err)
	}
	return nil
}

func marshalCompletions(c map[string]Completion) (string, error) {
	if len(c) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal completions: %w", err)
	}
	return string(data), nil
}

func scanRecurring(row scanner) (*RecurringMission, error) {
	var (
		m             RecurringMission
		goalAlignment sql.NullInt64
		alignedGoalID sql.NullString
		justification sql.NullString
		scheduledAt   sql.NullString
		completions   string
	)

	if err := row.Scan(
		&m.ID, &m.Description, &m.Difficulty, &m.Category, &m.Recurrence, &m.StartDate,
		&m.EstimatedTime, &goalAlignment, &alignedGoalID, &justification, &scheduledAt, &completions,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("recurring scan: %w", err)
	}

	m.GoalAlignment = nullIntPtr(goalAlignment)
	m.AlignedGoalID = nullStringPtr(alignedGoalID)
	m.Justification = nullStringPtr(justification)
	m.ScheduledAt = nullStringPtr(scheduledAt)
	if completions != "" {
		if err := json.Unmarshal([]byte(completions), &m.Completions); err != nil {
			return nil, fmt.Errorf("unmarshal completions: %w", err)
		}
	}
	if m.Completions == nil {
		m.Completions = map[string]Completion{}
	}
	return &m, nil
}
