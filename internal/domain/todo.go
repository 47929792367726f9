package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Todo is the single persisted entity.
// Title is stored in the content column.
type Todo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// NewTodoID mints a time-ordered identifier for a new todo.
func NewTodoID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	return id.String(), nil
}

// ValidateID rejects identifiers that can never match a row.
func ValidateID(id string) error {
	if id == "" {
		return ErrInvalidID
	}
	return nil
}
