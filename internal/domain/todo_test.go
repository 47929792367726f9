package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/todo/internal/domain"
)

func TestNewTodoID_IsUUIDv7(t *testing.T) {
	id, err := domain.NewTodoID()
	require.NoError(t, err)

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestNewTodoID_Unique(t *testing.T) {
	const n = 1000
	seen := make(map[string]struct{}, n)

	for range n {
		id, err := domain.NewTodoID()
		require.NoError(t, err)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestValidateID(t *testing.T) {
	assert.ErrorIs(t, domain.ValidateID(""), domain.ErrInvalidID)
	assert.NoError(t, domain.ValidateID("123"))
}
