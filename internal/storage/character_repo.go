package storage

import (
	"context"
	"database/sql"
	"fmt"
)

const MainCharacterKey = "main"

type CharacterRepo struct {
	db DBTX
}

func NewCharacterRepo(db DBTX) *CharacterRepo {
	return &CharacterRepo{db: db}
}

func (r *CharacterRepo) Get(ctx context.Context, key string) (*Character, error) {
	row := r.db.QueryRowContext(ctx, `SELECT key, bonuses, spent FROM character WHERE key = ?`, key)

	var c Character
	if err := row.Scan(&c.Key, &c.Bonuses, &c.Spent); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("character get: %w", err)
	}
	return &c, nil
}

func (r *CharacterRepo) GetOrCreateMain(ctx context.Context) (*Character, error) {
	c, err := r.Get(ctx, MainCharacterKey)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}

	if _, err := r.db.ExecContext(ctx, `INSERT INTO character (key) VALUES (?)`, MainCharacterKey); err != nil {
		return nil, fmt.Errorf("character insert: %w", err)
	}
	return r.Get(ctx, MainCharacterKey)
}

func (r *CharacterRepo) Update(ctx context.Context, c *Character) error {
	_, err := r.db.ExecContext(ctx, `UPDATE character SET bonuses = ?, spent = ? WHERE key = ?`, c.Bonuses, c.Spent, c.Key)
	if err != nil {
		return fmt.Errorf("character update: %w", err)
	}
	return nil
}
