package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/scamwatch/scamwatch-cli/internal/directory"
)

func initStore(ctx context.Context) (directory.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		path := cfg.Store.SQLitePath
		if path == "" {
			path = "scamwatch.db"
		}
		return directory.NewSQLite(path)
	case "postgres":
		return directory.NewPostgres(ctx, cfg.Store.DatabaseURL, cfg.Store.Pool.MaxConns, cfg.Store.Pool.MinConns)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}
