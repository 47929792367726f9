package domain

import "errors"

// Domain errors returned by the service and repository implementations.

var (
	// ErrTodoNotFound indicates no todo matched the requested id.
	ErrTodoNotFound = errors.New("todo not found")

	// ErrTodoConflict indicates a todo with the same id already exists.
	ErrTodoConflict = errors.New("todo already exists")

	// ErrInvalidID indicates the id is empty.
	ErrInvalidID = errors.New("invalid ID format")

	// ErrTextRequired indicates the request did not carry a text field.
	ErrTextRequired = errors.New("text is required")

	// ErrIDMismatch indicates the body id disagrees with the path id.
	ErrIDMismatch = errors.New("id in body does not match id in path")
)
