package handler

import (
	"github.com/go-chi/chi/v5"

	"github.com/rezkam/todo/internal/application/todo"
	"github.com/rezkam/todo/internal/infrastructure/http/middleware"
	"github.com/rezkam/todo/internal/infrastructure/http/response"
)

// TodoHandler adapts HTTP requests to todo service calls.
type TodoHandler struct {
	todoService *todo.Service
}

// NewTodoHandler creates a new HTTP API handler.
func NewTodoHandler(todoService *todo.Service) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
	}
}

// NewRouter mounts the todo routes on a fresh chi router.
// Both production code and tests use it so routing is identical.
func NewRouter(todoService *todo.Service) chi.Router {
	h := NewTodoHandler(todoService)

	r := chi.NewRouter()
	r.NotFound(response.RouteNotFound)
	r.MethodNotAllowed(response.MethodNotAllowed)

	r.Get("/todos", h.ListTodos)
	r.With(middleware.RequireJSON).Post("/todos", h.CreateTodo)
	r.Get("/todo/{id}", h.FindTodo)
	r.Delete("/todo/{id}", h.DeleteTodo)
	r.With(middleware.RequireJSON).Patch("/todo/{id}", h.UpdateTodo)

	return r
}
