package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/rezkam/todo/internal/application/todo"
	"github.com/rezkam/todo/internal/domain"
)

const (
	listTodosSQL  = `SELECT id, COALESCE(content, '') FROM todo`
	insertTodoSQL = `INSERT INTO todo (id, content) VALUES (?, ?)`
	findTodoSQL   = `SELECT id, COALESCE(content, '') FROM todo WHERE id = ?`
	updateTodoSQL = `UPDATE todo SET content = ? WHERE id = ? RETURNING id, COALESCE(content, '')`
	deleteTodoSQL = `DELETE FROM todo WHERE id = ?`
)

// Store provides the SQLite implementation of todo.Repository.
type Store struct {
	db             *sql.DB
	acquireTimeout time.Duration
}

var _ todo.Repository = (*Store)(nil)

// NewStore wraps an open database handle.
func NewStore(db *sql.DB, acquireTimeout time.Duration) *Store {
	if acquireTimeout <= 0 {
		acquireTimeout = DefaultAcquireTimeout
	}
	return &Store{db: db, acquireTimeout: acquireTimeout}
}

// DB returns the underlying database handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies a connection can be acquired.
func (s *Store) Ping(ctx context.Context) error {
	return s.withConn(ctx, func(conn *sql.Conn) error {
		return conn.PingContext(ctx)
	})
}

// withConn takes a connection from the pool within acquireTimeout and runs fn on it.
func (s *Store) withConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	acquireCtx, cancel := context.WithTimeout(ctx, s.acquireTimeout)
	defer cancel()

	conn, err := s.db.Conn(acquireCtx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	return fn(conn)
}

// isPrimaryKeyViolation reports whether err is a SQLite primary key constraint failure.
func isPrimaryKeyViolation(err error) bool {
	var sqliteErr *sqlite.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

// ListTodos returns every row of the todo table.
func (s *Store) ListTodos(ctx context.Context) ([]domain.Todo, error) {
	var todos []domain.Todo
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, listTodosSQL)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var t domain.Todo
			if err := rows.Scan(&t.ID, &t.Title); err != nil {
				return err
			}
			todos = append(todos, t)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// CreateTodo inserts a new row.
func (s *Store) CreateTodo(ctx context.Context, todo *domain.Todo) error {
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, insertTodoSQL, todo.ID, todo.Title)
		return err
	})
	if err != nil {
		if isPrimaryKeyViolation(err) {
			return fmt.Errorf("%w: %s: %w", domain.ErrTodoConflict, todo.ID, err)
		}
		return fmt.Errorf("failed to insert todo: %w", err)
	}
	return nil
}

// FindTodoByID retrieves exactly one row by id.
func (s *Store) FindTodoByID(ctx context.Context, id string) (*domain.Todo, error) {
	var todo domain.Todo
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, findTodoSQL, id).Scan(&todo.ID, &todo.Title)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTodoNotFound, id)
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}
	return &todo, nil
}

// UpdateTodoTitle rewrites the content column of one row.
func (s *Store) UpdateTodoTitle(ctx context.Context, id, title string) (*domain.Todo, error) {
	var todo domain.Todo
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, updateTodoSQL, title, id).Scan(&todo.ID, &todo.Title)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTodoNotFound, id)
		}
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}
	return &todo, nil
}

// DeleteTodo removes one row by id.
func (s *Store) DeleteTodo(ctx context.Context, id string) error {
	var rowsAffected int64
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, deleteTodoSQL, id)
		if err != nil {
			return err
		}
		rowsAffected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrTodoNotFound, id)
	}
	return nil
}
