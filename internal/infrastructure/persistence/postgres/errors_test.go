package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/todo/internal/domain"
)

func TestCheckRowsAffected(t *testing.T) {
	t.Run("zero rows is not found", func(t *testing.T) {
		err := checkRowsAffected(0, "42")
		require.ErrorIs(t, err, domain.ErrTodoNotFound)
		assert.Contains(t, err.Error(), "42")
	})

	t.Run("one row is success", func(t *testing.T) {
		assert.NoError(t, checkRowsAffected(1, "42"))
	})
}

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches wrapped unique violation", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "todo_pkey"}
		wrapped := fmt.Errorf("failed to acquire connection: %w", pgErr)
		assert.True(t, isUniqueViolation(wrapped))
	})

	t.Run("ignores other SQLSTATEs", func(t *testing.T) {
		assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	})

	t.Run("ignores non-postgres errors", func(t *testing.T) {
		assert.False(t, isUniqueViolation(errors.New("boom")))
	})
}
