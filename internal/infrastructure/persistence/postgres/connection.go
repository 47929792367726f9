package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for migrations
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Pool defaults.
const (
	DefaultMaxConns       = 5
	DefaultAcquireTimeout = 3 * time.Second
)

// DBConfig holds PostgreSQL database connection configuration.
type DBConfig struct {
	DSN            string        // PostgreSQL connection string
	MaxConns       int           // Maximum pooled connections (default: 5)
	AcquireTimeout time.Duration // Connect and pool acquire timeout (default: 3s)
	AutoMigrate    bool          // Apply embedded migrations before opening the pool
}

// NewStoreWithConfig creates a new PostgreSQL store with the given configuration.
func NewStoreWithConfig(ctx context.Context, cfg DBConfig) (*Store, error) {
	if cfg.AutoMigrate {
		if err := runMigrationsWithDSN(ctx, cfg.DSN); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	maxConns := int32(cfg.MaxConns)
	if maxConns <= 0 {
		maxConns = DefaultMaxConns
	}
	acquireTimeout := cfg.AcquireTimeout
	if acquireTimeout <= 0 {
		acquireTimeout = DefaultAcquireTimeout
	}

	poolConfig.MaxConns = maxConns
	poolConfig.ConnConfig.ConnectTimeout = acquireTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, acquireTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewStore(pool, acquireTimeout), nil
}

// NewPostgresStore creates a PostgreSQL store with default pool settings and migrations enabled.
func NewPostgresStore(ctx context.Context, connString string) (*Store, error) {
	return NewStoreWithConfig(ctx, DBConfig{
		DSN:         connString,
		AutoMigrate: true,
	})
}

// runMigrationsWithDSN applies the embedded migrations using goose.
// Uses a temporary database/sql connection since goose requires it.
func runMigrationsWithDSN(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.ErrorContext(ctx, "Failed to close migration database connection", "error", err)
		}
	}()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	migrations, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations)
	if err != nil {
		return fmt.Errorf("failed to create goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	for _, r := range results {
		slog.InfoContext(ctx, "applied migration", "source", r.Source.Path, "duration_ms", r.Duration.Milliseconds())
	}

	return nil
}
