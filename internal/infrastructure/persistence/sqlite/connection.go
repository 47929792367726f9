package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Pool defaults, matching the PostgreSQL store.
const (
	DefaultMaxConns       = 5
	DefaultAcquireTimeout = 3 * time.Second
)

// DBConfig holds SQLite connection configuration.
// DSN must name a file; ":memory:" gives every pooled connection its own database.
type DBConfig struct {
	DSN            string
	MaxConns       int
	AcquireTimeout time.Duration
	AutoMigrate    bool
}

// NewStoreWithConfig opens the database, applies migrations if requested and returns a Store.
func NewStoreWithConfig(ctx context.Context, cfg DBConfig) (*Store, error) {
	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = DefaultMaxConns
	}
	acquireTimeout := cfg.AcquireTimeout
	if acquireTimeout <= 0 {
		acquireTimeout = DefaultAcquireTimeout
	}

	db, err := sql.Open("sqlite", withPragmas(cfg.DSN, acquireTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)

	pingCtx, cancel := context.WithTimeout(ctx, acquireTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.AutoMigrate {
		if err := runMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return NewStore(db, acquireTimeout), nil
}

// withPragmas appends per-connection pragmas to dsn.
// Writers wait up to busyTimeout for the database lock instead of failing with SQLITE_BUSY.
func withPragmas(dsn string, busyTimeout time.Duration) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)", dsn, sep, busyTimeout.Milliseconds())
}

// runMigrations applies the embedded migrations with the sqlite3 goose dialect.
func runMigrations(ctx context.Context, db *sql.DB) error {
	migrations, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations)
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
