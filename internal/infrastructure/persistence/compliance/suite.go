package compliance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/todo/internal/application/todo"
	"github.com/rezkam/todo/internal/domain"
)

// RunRepositoryComplianceTest runs a standard set of tests against a todo.Repository.
// setup returns a fresh, empty repository and a teardown func.
func RunRepositoryComplianceTest(t *testing.T, setup func(t *testing.T) (todo.Repository, func())) {
	t.Run("CreateAndFind", func(t *testing.T) {
		repo, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		created := newTodo(t, "buy milk")
		require.NoError(t, repo.CreateTodo(ctx, created))

		found, err := repo.FindTodoByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "buy milk", found.Title)
	})

	t.Run("CreateEmptyTitle", func(t *testing.T) {
		repo, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		created := newTodo(t, "")
		require.NoError(t, repo.CreateTodo(ctx, created))

		found, err := repo.FindTodoByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Empty(t, found.Title)
	})

	t.Run("CreateDuplicateID", func(t *testing.T) {
		repo, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		first := newTodo(t, "first")
		require.NoError(t, repo.CreateTodo(ctx, first))

		err := repo.CreateTodo(ctx, &domain.Todo{ID: first.ID, Title: "second"})
		require.ErrorIs(t, err, domain.ErrTodoConflict)

		found, err := repo.FindTodoByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "first", found.Title)
	})

	t.Run("FindNonExistent", func(t *testing.T) {
		repo, teardown := setup(t)
		defer teardown()

		_, err := repo.FindTodoByID(context.Background(), "does-not-exist")
		require.ErrorIs(t, err, domain.ErrTodoNotFound)
	})

	t.Run("ListEmpty", func(t *testing.T) {
		repo, teardown := setup(t)
		defer teardown()

		todos, err := repo.ListTodos(context.Background())
		require.NoError(t, err)
		assert.Empty(t, todos)
	})

	t.Run("ListReflectsCreatesAndDeletes", func(t *testing.T) {
		repo, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		const created, deleted = 5, 2
		want := make(map[string]string)
		var ids []string
		for i := range created {
			td := newTodo(t, "task "+string(rune('A'+i)))
			require.NoError(t, repo.CreateTodo(ctx, td))
			want[td.ID] = td.Title
			ids = append(ids, td.ID)
		}
		for _, id := range ids[:deleted] {
			require.NoError(t, repo.DeleteTodo(ctx, id))
			delete(want, id)
		}

		todos, err := repo.ListTodos(ctx)
		require.NoError(t, err)
		require.Len(t, todos, created-deleted)

		got := make(map[string]string, len(todos))
		for _, td := range todos {
			got[td.ID] = td.Title
		}
		assert.Equal(t, want, got)
	})

	t.Run("UpdateExisting", func(t *testing.T) {
		repo, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		td := newTodo(t, "draft")
		require.NoError(t, repo.CreateTodo(ctx, td))

		updated, err := repo.UpdateTodoTitle(ctx, td.ID, "final")
		require.NoError(t, err)
		assert.Equal(t, td.ID, updated.ID)
		assert.Equal(t, "final", updated.Title)

		found, err := repo.FindTodoByID(ctx, td.ID)
		require.NoError(t, err)
		assert.Equal(t, "final", found.Title)
	})

	t.Run("UpdateNonExistentLeavesTableUnchanged", func(t *testing.T) {
		repo, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		td := newTodo(t, "keep me")
		require.NoError(t, repo.CreateTodo(ctx, td))

		_, err := repo.UpdateTodoTitle(ctx, "does-not-exist", "changed")
		require.ErrorIs(t, err, domain.ErrTodoNotFound)

		todos, err := repo.ListTodos(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.Todo{*td}, todos)
	})

	t.Run("DeleteExisting", func(t *testing.T) {
		repo, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		keep := newTodo(t, "keep")
		drop := newTodo(t, "drop")
		require.NoError(t, repo.CreateTodo(ctx, keep))
		require.NoError(t, repo.CreateTodo(ctx, drop))

		require.NoError(t, repo.DeleteTodo(ctx, drop.ID))

		todos, err := repo.ListTodos(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.Todo{*keep}, todos)

		_, err = repo.FindTodoByID(ctx, drop.ID)
		require.ErrorIs(t, err, domain.ErrTodoNotFound)
	})

	t.Run("DeleteNonExistentLeavesTableUnchanged", func(t *testing.T) {
		repo, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		td := newTodo(t, "still here")
		require.NoError(t, repo.CreateTodo(ctx, td))

		err := repo.DeleteTodo(ctx, "does-not-exist")
		require.ErrorIs(t, err, domain.ErrTodoNotFound)

		todos, err := repo.ListTodos(ctx)
		require.NoError(t, err)
		assert.Len(t, todos, 1)
	})

	t.Run("Ping", func(t *testing.T) {
		repo, teardown := setup(t)
		defer teardown()

		assert.NoError(t, repo.Ping(context.Background()))
	})
}

func newTodo(t *testing.T, title string) *domain.Todo {
	t.Helper()
	id, err := domain.NewTodoID()
	require.NoError(t, err)
	return &domain.Todo{ID: id, Title: title}
}
