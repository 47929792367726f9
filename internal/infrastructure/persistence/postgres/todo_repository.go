package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rezkam/todo/internal/domain"
)

const (
	listTodosSQL  = `SELECT id, COALESCE(content, '') FROM todo`
	insertTodoSQL = `INSERT INTO todo (id, content) VALUES ($1, $2)`
	findTodoSQL   = `SELECT id, COALESCE(content, '') FROM todo WHERE id = $1`
	updateTodoSQL = `UPDATE todo SET content = $1 WHERE id = $2 RETURNING id, COALESCE(content, '')`
	deleteTodoSQL = `DELETE FROM todo WHERE id = $1`
)

// uniqueViolation is the SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

// checkRowsAffected maps a zero-row UPDATE/DELETE to domain.ErrTodoNotFound.
func checkRowsAffected(rowsAffected int64, id string) error {
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrTodoNotFound, id)
	}
	return nil
}

// isUniqueViolation checks if an error is a PostgreSQL unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// ListTodos returns every row of the todo table.
func (s *Store) ListTodos(ctx context.Context) ([]domain.Todo, error) {
	var todos []domain.Todo
	err := s.withConn(ctx, func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, listTodosSQL)
		if err != nil {
			return err
		}
		todos, err = pgx.CollectRows(rows, pgx.RowToStructByPos[domain.Todo])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// CreateTodo inserts a new row.
func (s *Store) CreateTodo(ctx context.Context, todo *domain.Todo) error {
	err := s.withConn(ctx, func(conn *pgxpool.Conn) error {
		_, err := conn.Exec(ctx, insertTodoSQL, todo.ID, todo.Title)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s: %w", domain.ErrTodoConflict, todo.ID, err)
		}
		return fmt.Errorf("failed to insert todo: %w", err)
	}
	return nil
}

// FindTodoByID retrieves exactly one row by id.
func (s *Store) FindTodoByID(ctx context.Context, id string) (*domain.Todo, error) {
	var todo domain.Todo
	err := s.withConn(ctx, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx, findTodoSQL, id).Scan(&todo.ID, &todo.Title)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTodoNotFound, id)
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}
	return &todo, nil
}

// UpdateTodoTitle rewrites the content column of one row.
func (s *Store) UpdateTodoTitle(ctx context.Context, id, title string) (*domain.Todo, error) {
	var todo domain.Todo
	err := s.withConn(ctx, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx, updateTodoSQL, title, id).Scan(&todo.ID, &todo.Title)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTodoNotFound, id)
		}
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}
	return &todo, nil
}

// DeleteTodo removes one row by id.
func (s *Store) DeleteTodo(ctx context.Context, id string) error {
	var rowsAffected int64
	err := s.withConn(ctx, func(conn *pgxpool.Conn) error {
		tag, err := conn.Exec(ctx, deleteTodoSQL, id)
		if err != nil {
			return err
		}
		rowsAffected = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return checkRowsAffected(rowsAffected, id)
}
