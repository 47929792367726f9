package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rezkam/todo/internal/application/todo"
)

// Store provides the PostgreSQL implementation of todo.Repository.
// Each operation acquires one pooled connection, bounded by acquireTimeout,
// and issues a single statement on it.
type Store struct {
	pool           *pgxpool.Pool
	acquireTimeout time.Duration
}

var _ todo.Repository = (*Store)(nil)

// NewStore creates a new PostgreSQL store with the given connection pool.
func NewStore(pool *pgxpool.Pool, acquireTimeout time.Duration) *Store {
	if acquireTimeout <= 0 {
		acquireTimeout = DefaultAcquireTimeout
	}
	return &Store{
		pool:           pool,
		acquireTimeout: acquireTimeout,
	}
}

// Pool returns the underlying connection pool.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// Close closes the database connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// Ping verifies a connection can be acquired and the server answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.withConn(ctx, func(conn *pgxpool.Conn) error {
		return conn.Ping(ctx)
	})
}

// withConn acquires a connection within acquireTimeout and runs fn on it.
// The statement itself runs under ctx, not the acquire deadline.
func (s *Store) withConn(ctx context.Context, fn func(conn *pgxpool.Conn) error) error {
	acquireCtx, cancel := context.WithTimeout(ctx, s.acquireTimeout)
	defer cancel()

	conn, err := s.pool.Acquire(acquireCtx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()

	return fn(conn)
}
