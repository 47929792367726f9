package todo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/rezkam/todo/internal/domain"
)

const meterName = "github.com/rezkam/todo/internal/application/todo"

// Operation names recorded on the todo.operations counter.
const (
	OpList   = "list"
	OpCreate = "create"
	OpFind   = "find"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Service provides business logic for todo management.
// It orchestrates operations using the Repository interface.
type Service struct {
	repo       Repository
	operations metric.Int64Counter
}

// NewService creates a new todo service.
// Operation counts are recorded on the global meter provider.
func NewService(repo Repository) *Service {
	counter, err := otel.Meter(meterName).Int64Counter("todo.operations",
		metric.WithDescription("Number of todo operations by outcome"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		slog.Warn("failed to create todo.operations counter, metrics disabled", "error", err)
		counter, _ = noop.NewMeterProvider().Meter(meterName).Int64Counter("todo.operations")
	}

	return &Service{
		repo:       repo,
		operations: counter,
	}
}

// ListTodos returns all todos. The slice is never nil.
func (s *Service) ListTodos(ctx context.Context) ([]domain.Todo, error) {
	todos, err := s.repo.ListTodos(ctx)
	s.record(ctx, OpList, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	if todos == nil {
		todos = []domain.Todo{}
	}
	return todos, nil
}

// CreateTodo mints an id and stores a todo with the given text as its title.
// Empty text is accepted.
func (s *Service) CreateTodo(ctx context.Context, text string) (*domain.Todo, error) {
	id, err := domain.NewTodoID()
	if err != nil {
		s.record(ctx, OpCreate, err)
		return nil, err
	}

	todo := &domain.Todo{
		ID:    id,
		Title: text,
	}

	err = s.repo.CreateTodo(ctx, todo)
	s.record(ctx, OpCreate, err)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	return todo, nil
}

// FindTodo retrieves a todo by id.
func (s *Service) FindTodo(ctx context.Context, id string) (*domain.Todo, error) {
	if err := domain.ValidateID(id); err != nil {
		s.record(ctx, OpFind, err)
		return nil, err
	}

	todo, err := s.repo.FindTodoByID(ctx, id)
	s.record(ctx, OpFind, err)
	if err != nil {
		return nil, err // Repository returns domain errors
	}

	return todo, nil
}

// UpdateTodo replaces the title of an existing todo.
func (s *Service) UpdateTodo(ctx context.Context, id, text string) (*domain.Todo, error) {
	if err := domain.ValidateID(id); err != nil {
		s.record(ctx, OpUpdate, err)
		return nil, err
	}

	todo, err := s.repo.UpdateTodoTitle(ctx, id, text)
	s.record(ctx, OpUpdate, err)
	if err != nil {
		return nil, err
	}

	return todo, nil
}

// DeleteTodo removes a todo by id.
func (s *Service) DeleteTodo(ctx context.Context, id string) error {
	if err := domain.ValidateID(id); err != nil {
		s.record(ctx, OpDelete, err)
		return err
	}

	err := s.repo.DeleteTodo(ctx, id)
	s.record(ctx, OpDelete, err)
	return err
}

// Ping reports whether the storage backend is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *Service) record(ctx context.Context, operation string, err error) {
	s.operations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome(err)),
	))
}

// outcome classifies an operation result for metrics.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrTodoNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrTodoConflict):
		return "conflict"
	case errors.Is(err, domain.ErrInvalidID):
		return "invalid"
	default:
		return "error"
	}
}
