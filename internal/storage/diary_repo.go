package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type DiaryRepo struct {
	db DBTX
}

func NewDiaryRepo(db DBTX) *DiaryRepo {
	return &DiaryRepo{db: db}
}

func (r *DiaryRepo) Get(ctx context.Context, date string) (*DiaryEntry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT date, reflection, debrief, grade FROM diary_entries WHERE date = ?`, date)
	return scanDiary(row)
}

func (r *DiaryRepo) Upsert(ctx context.Context, e *DiaryEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO diary_entries (date, reflection, debrief, grade) VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET reflection = excluded.reflection, debrief = excluded.debrief, grade = excluded.grade
	`, e.Date, e.Reflection, e.Debrief, e.Grade)
	if err != nil {
		return fmt.Errorf("diary upsert: %w", err)
	}
	return nil
}

// ListAll returns entries keyed by date for grade lookups.
func (r *DiaryRepo) ListAll(ctx context.Context) (map[string]DiaryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT date, reflection, debrief, grade FROM diary_entries`)
	if err != nil {
		return nil, fmt.Errorf("diary list: %w", err)
	}
	defer rows.Close()

	out := map[string]DiaryEntry{}
	for rows.Next() {
		e, err := scanDiary(rows)
		if err != nil {
			return nil, err
		}
		out[e.Date] = *e
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("diary list rows: %w", err)
	}
	return out, nil
}

func scanDiary(row scanner) (*DiaryEntry, error) {
	var (
		e          DiaryEntry
		reflection sql.NullString
		debrief    sql.NullString
		grade      sql.NullString
	)
	if err := row.Scan(&e.Date, &reflection, &debrief, &grade); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("diary scan: %w", err)
	}
	e.Reflection = nullStringPtr(reflection)
	e.Debrief = nullStringPtr(debrief)
	e.Grade = nullStringPtr(grade)
	return &e, nil
}
