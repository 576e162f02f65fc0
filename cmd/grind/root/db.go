package root

import (
	"context"
	"database/sql"

	"grindstone/internal/config"
	"grindstone/internal/engine"
	"grindstone/internal/storage"
)

func openDB(ctx context.Context, cfg config.Config) (*sql.DB, func(), error) {
	path := cfg.DBPath
	if path == "" {
		p, err := storage.ResolveDBPath()
		if err != nil {
			return nil, nil, err
		}
		path = p
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	cfg, err := config.Resolve()
	if err != nil {
		return nil, nil, err
	}
	db, cleanup, err := openDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return engine.NewService(db, cfg.Balance), cleanup, nil
}
