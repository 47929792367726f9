package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rezkam/todo/internal/domain"
	"github.com/rezkam/todo/internal/infrastructure/http/response"
)

// ListTodos handles GET /todos.
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.todoService.ListTodos(r.Context())
	if err != nil {
		response.InternalError(w, r, err, msgListFailed)
		return
	}

	response.OK(w, todos, msgSuccess)
}

// CreateTodo handles POST /todos.
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	req, err := decodeTodoRequest(r)
	if err != nil {
		writeDecodeError(w, r, err, msgCreateFailed)
		return
	}

	created, err := h.todoService.CreateTodo(r.Context(), *req.Text)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to create todo via HTTP", "error", err)
		response.FromDomainError(w, r, err, msgCreateFailed)
		return
	}

	slog.InfoContext(r.Context(), "todo created via HTTP", "todo_id", created.ID)

	response.Created(w, created, msgCreated+created.ID)
}

// FindTodo handles GET /todo/{id}.
func (h *TodoHandler) FindTodo(w http.ResponseWriter, r *http.Request) {
	found, err := h.todoService.FindTodo(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.FromDomainError(w, r, err, msgFailed)
		return
	}

	response.OK(w, found, msgSuccess)
}

// UpdateTodo handles PATCH /todo/{id}.
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	req, err := decodeTodoRequest(r)
	if err != nil {
		writeDecodeError(w, r, err, msgUpdateFailed)
		return
	}
	if req.ID != nil && *req.ID != id {
		response.FromDomainError(w, r, domain.ErrIDMismatch, msgUpdateFailed)
		return
	}

	updated, err := h.todoService.UpdateTodo(r.Context(), id, *req.Text)
	if err != nil {
		if errors.Is(err, domain.ErrTodoNotFound) {
			response.FromDomainError(w, r, err, msgUpdateNotFound)
			return
		}
		response.FromDomainError(w, r, err, msgUpdateFailed)
		return
	}

	response.OK(w, updated, msgUpdated)
}

// DeleteTodo handles DELETE /todo/{id}.
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.todoService.DeleteTodo(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrTodoNotFound) {
			response.FromDomainError(w, r, err, msgDeleteNotFound)
			return
		}
		response.FromDomainError(w, r, err, msgDeleteFailed)
		return
	}

	slog.InfoContext(r.Context(), "todo deleted via HTTP", "todo_id", id)

	response.OK(w, nil, msgDeleted)
}

// writeDecodeError sends 400 for undecodable bodies and validation errors.
func writeDecodeError(w http.ResponseWriter, r *http.Request, err error, message string) {
	var invalid errInvalidJSON
	if errors.As(err, &invalid) {
		response.BadRequest(w, invalid.Error(), message)
		return
	}
	response.FromDomainError(w, r, err, message)
}
