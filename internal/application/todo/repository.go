package todo

import (
	"context"

	"github.com/rezkam/todo/internal/domain"
)

// Repository defines storage operations for todos.
// Every method issues a single statement; none of them opens a transaction.
type Repository interface {
	// ListTodos returns every stored todo. Order is whatever the backend yields.
	ListTodos(ctx context.Context) ([]domain.Todo, error)

	// CreateTodo inserts a new row.
	// Returns domain.ErrTodoConflict if the id is already taken.
	CreateTodo(ctx context.Context, todo *domain.Todo) error

	// FindTodoByID retrieves a single todo.
	// Returns domain.ErrTodoNotFound if no row matches.
	FindTodoByID(ctx context.Context, id string) (*domain.Todo, error)

	// UpdateTodoTitle replaces the title and returns the todo as persisted.
	// Returns domain.ErrTodoNotFound if no row was affected.
	UpdateTodoTitle(ctx context.Context, id, title string) (*domain.Todo, error)

	// DeleteTodo removes a todo.
	// Returns domain.ErrTodoNotFound if no row was affected.
	DeleteTodo(ctx context.Context, id string) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}
