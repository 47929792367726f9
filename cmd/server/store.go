package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rezkam/todo/internal/application/todo"
	"github.com/rezkam/todo/internal/config"
	"github.com/rezkam/todo/internal/infrastructure/persistence/memory"
	"github.com/rezkam/todo/internal/infrastructure/persistence/postgres"
	"github.com/rezkam/todo/internal/infrastructure/persistence/sqlite"
)

// store is a repository that owns resources released at shutdown.
type store interface {
	todo.Repository
	io.Closer
}

// openStore builds the repository selected by cfg.Type.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (store, error) {
	switch cfg.Type {
	case config.StoragePostgres:
		return postgres.NewStoreWithConfig(ctx, postgres.DBConfig{
			DSN:            cfg.DSN,
			MaxConns:       cfg.MaxConns,
			AcquireTimeout: cfg.AcquireTimeout,
			AutoMigrate:    cfg.AutoMigrate,
		})
	case config.StorageSQLite:
		return sqlite.NewStoreWithConfig(ctx, sqlite.DBConfig{
			DSN:            cfg.DSN,
			MaxConns:       cfg.MaxConns,
			AcquireTimeout: cfg.AcquireTimeout,
			AutoMigrate:    cfg.AutoMigrate,
		})
	case config.StorageMemory:
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Type)
	}
}
