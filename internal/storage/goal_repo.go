package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type GoalRepo struct {
	db DBTX
}

func NewGoalRepo(db DBTX) *GoalRepo {
	return &GoalRepo{db: db}
}

const goalCols = `id, description, target_date, label, completed, completion_date, completion_proof`

func (r *GoalRepo) Insert(ctx context.Context, g *Goal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (`+goalCols+`) VALUES (?, ?, ?, ?, ?, ?, ?)
	`, g.ID, g.Description, g.TargetDate, g.Label, boolToInt(g.Completed), g.CompletionDate, g.CompletionProof)
	if err != nil {
		return fmt.Errorf("goal insert: %w", err)
	}
	return nil
}

func (r *GoalRepo) Get(ctx context.Context, id string) (*Goal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+goalCols+` FROM goals WHERE id = ?`, id)
	return scanGoal(row)
}

func (r *GoalRepo) ListAll(ctx context.Context) ([]Goal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+goalCols+` FROM goals ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("goal list: %w", err)
	}
	defer rows.Close()

	var out []Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("goal list rows: %w", err)
	}
	return out, nil
}

func (r *GoalRepo) Update(ctx context.Context, g *Goal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE goals SET description = ?, target_date = ?, label = ?, completed = ?,
			completion_date = ?, completion_proof = ?
		WHERE id = ?
	`, g.Description, g.TargetDate, g.Label, boolToInt(g.Completed), g.CompletionDate, g.CompletionProof, g.ID)
	if err != nil {
		return fmt.Errorf("goal update: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("goal update rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("goal %s not found", g.ID)
	}
	return nil
}

func (r *GoalRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id); err != nil {
		return fmt.Errorf("goal delete: %w", err)
	}
	return nil
}

func scanGoal(row scanner) (*Goal, error) {
	var (
		g               Goal
		label           sql.NullString
		completed       int
		completionDate  sql.NullString
		completionProof sql.NullString
	)
	if err := row.Scan(&g.ID, &g.Description, &g.TargetDate, &label, &completed, &completionDate, &completionProof); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("goal scan: %w", err)
	}
	g.Label = nullStringPtr(label)
	g.Completed = completed != 0
	g.CompletionDate = nullStringPtr(completionDate)
	g.CompletionProof = nullStringPtr(completionProof)
	return &g, nil
}
