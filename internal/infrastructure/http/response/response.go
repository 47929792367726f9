package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rezkam/todo/internal/domain"
)

// Error codes carried in ErrorBody.Code.
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeInternalError   = "INTERNAL_ERROR"

	CodeMethodNotAllowed     = "METHOD_NOT_ALLOWED"
	CodeUnsupportedMediaType = "UNSUPPORTED_MEDIA_TYPE"
)

// internalErrorMessage is returned to clients in place of the real cause.
const internalErrorMessage = "an internal error occurred"

// encodeFailureJSON is written when the envelope itself cannot be marshaled.
const encodeFailureJSON = `{"error":{"code":"INTERNAL_ERROR","message":"failed to encode response"},"message":"Failed"}`

// Envelope is the body of every API response.
// Error is set if and only if the request failed.
type Envelope struct {
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
	Message string     `json:"message,omitempty"`
}

// ErrorBody describes a failure.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OK sends a 200 OK envelope.
func OK(w http.ResponseWriter, data any, message string) {
	Write(w, http.StatusOK, Envelope{Data: data, Message: message})
}

// Created sends a 201 Created envelope.
func Created(w http.ResponseWriter, data any, message string) {
	Write(w, http.StatusCreated, Envelope{Data: data, Message: message})
}

// Error sends a failure envelope with the given status.
func Error(w http.ResponseWriter, statusCode int, code, errMessage, message string) {
	Write(w, statusCode, Envelope{
		Error:   &ErrorBody{Code: code, Message: errMessage},
		Message: message,
	})
}

// BadRequest sends a 400 for requests that could not be decoded.
func BadRequest(w http.ResponseWriter, errMessage, message string) {
	Error(w, http.StatusBadRequest, CodeInvalidRequest, errMessage, message)
}

// InternalError sends a 500.
// The cause is logged server-side; the client only sees a generic message.
func InternalError(w http.ResponseWriter, r *http.Request, err error, message string) {
	if err != nil {
		slog.ErrorContext(r.Context(), "Internal server error", "error", err, "path", r.URL.Path, "method", r.Method)
	}
	Error(w, http.StatusInternalServerError, CodeInternalError, internalErrorMessage, message)
}

// RouteNotFound is the router's NotFound handler.
func RouteNotFound(w http.ResponseWriter, r *http.Request) {
	Error(w, http.StatusNotFound, CodeNotFound, "no route for "+r.URL.Path, "Failed")
}

// MethodNotAllowed is the router's MethodNotAllowed handler.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	Error(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method "+r.Method+" not allowed", "Failed")
}

// FromDomainError maps domain errors to failure envelopes.
// message is the operation-specific status string placed next to the error.
func FromDomainError(w http.ResponseWriter, r *http.Request, err error, message string) {
	switch {
	case errors.Is(err, domain.ErrTextRequired),
		errors.Is(err, domain.ErrIDMismatch),
		errors.Is(err, domain.ErrInvalidID):
		Error(w, http.StatusBadRequest, CodeValidationError, err.Error(), message)

	case errors.Is(err, domain.ErrTodoNotFound):
		Error(w, http.StatusNotFound, CodeNotFound, err.Error(), message)

	case errors.Is(err, domain.ErrTodoConflict):
		Error(w, http.StatusConflict, CodeConflict, domain.ErrTodoConflict.Error(), message)

	default:
		InternalError(w, r, err, message)
	}
}

// Write marshals env and sends it with statusCode.
// If marshaling fails the client gets a 500 instead of a half-written success.
func Write(w http.ResponseWriter, statusCode int, env Envelope) {
	body, err := json.Marshal(env)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(encodeFailureJSON))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(append(body, '\n')); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}
