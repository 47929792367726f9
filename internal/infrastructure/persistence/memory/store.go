package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/rezkam/todo/internal/application/todo"
	"github.com/rezkam/todo/internal/domain"
)

// Store keeps todos in a map. Used by unit tests and the memory storage type.
type Store struct {
	mu    sync.RWMutex
	todos map[string]string
}

var _ todo.Repository = (*Store)(nil)

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{todos: make(map[string]string)}
}

// ListTodos returns all todos ordered by id.
func (s *Store) ListTodos(_ context.Context) ([]domain.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	todos := make([]domain.Todo, 0, len(s.todos))
	for id, title := range s.todos {
		todos = append(todos, domain.Todo{ID: id, Title: title})
	}
	slices.SortFunc(todos, func(a, b domain.Todo) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return todos, nil
}

// CreateTodo inserts a todo, rejecting duplicate ids.
func (s *Store) CreateTodo(_ context.Context, t *domain.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.todos[t.ID]; exists {
		return fmt.Errorf("%w: %s", domain.ErrTodoConflict, t.ID)
	}
	s.todos[t.ID] = t.Title
	return nil
}

// FindTodoByID retrieves a todo by id.
func (s *Store) FindTodoByID(_ context.Context, id string) (*domain.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	title, ok := s.todos[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTodoNotFound, id)
	}
	return &domain.Todo{ID: id, Title: title}, nil
}

// UpdateTodoTitle replaces the title of an existing todo.
func (s *Store) UpdateTodoTitle(_ context.Context, id, title string) (*domain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.todos[id]; !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTodoNotFound, id)
	}
	s.todos[id] = title
	return &domain.Todo{ID: id, Title: title}, nil
}

// DeleteTodo removes a todo.
func (s *Store) DeleteTodo(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.todos[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrTodoNotFound, id)
	}
	delete(s.todos, id)
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error {
	return nil
}

// Close is a no-op; it lets the store stand in wherever an io.Closer is expected.
func (s *Store) Close() error {
	return nil
}
