package todo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/rezkam/todo/internal/domain"
)

// mockRepo records the arguments it receives and returns canned results.
type mockRepo struct {
	todos       []domain.Todo
	created     *domain.Todo
	updatedID   string
	updatedText string
	err         error
	calls       int
}

func (m *mockRepo) ListTodos(ctx context.Context) ([]domain.Todo, error) {
	m.calls++
	return m.todos, m.err
}

func (m *mockRepo) CreateTodo(ctx context.Context, todo *domain.Todo) error {
	m.calls++
	m.created = todo
	return m.err
}

func (m *mockRepo) FindTodoByID(ctx context.Context, id string) (*domain.Todo, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Todo{ID: id, Title: "found"}, nil
}

func (m *mockRepo) UpdateTodoTitle(ctx context.Context, id, title string) (*domain.Todo, error) {
	m.calls++
	m.updatedID, m.updatedText = id, title
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Todo{ID: id, Title: title}, nil
}

func (m *mockRepo) DeleteTodo(ctx context.Context, id string) error {
	m.calls++
	return m.err
}

func (m *mockRepo) Ping(ctx context.Context) error {
	return m.err
}

func TestListTodos_NilBecomesEmpty(t *testing.T) {
	svc := NewService(&mockRepo{})

	todos, err := svc.ListTodos(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, todos)
	assert.Empty(t, todos)
}

func TestListTodos_WrapsRepositoryError(t *testing.T) {
	cause := errors.New("pool exhausted")
	svc := NewService(&mockRepo{err: cause})

	_, err := svc.ListTodos(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
}

func TestCreateTodo_MintsIDAndKeepsText(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)

	created, err := svc.CreateTodo(context.Background(), "write report")

	require.NoError(t, err)
	require.NotNil(t, repo.created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "write report", created.Title)
	assert.Equal(t, created, repo.created)
}

func TestCreateTodo_EmptyTextAllowed(t *testing.T) {
	svc := NewService(&mockRepo{})

	created, err := svc.CreateTodo(context.Background(), "")

	require.NoError(t, err)
	assert.Empty(t, created.Title)
}

func TestCreateTodo_ConflictPreserved(t *testing.T) {
	svc := NewService(&mockRepo{err: fmt.Errorf("%w: x", domain.ErrTodoConflict)})

	_, err := svc.CreateTodo(context.Background(), "x")

	assert.ErrorIs(t, err, domain.ErrTodoConflict)
}

func TestEmptyID_RejectedBeforeRepository(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.FindTodo(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.UpdateTodo(ctx, "", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	err = svc.DeleteTodo(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	assert.Zero(t, repo.calls)
}

func TestUpdateTodo_PassesIDAndText(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)

	updated, err := svc.UpdateTodo(context.Background(), "abc", "new text")

	require.NoError(t, err)
	assert.Equal(t, "abc", repo.updatedID)
	assert.Equal(t, "new text", repo.updatedText)
	assert.Equal(t, &domain.Todo{ID: "abc", Title: "new text"}, updated)
}

func TestNotFound_PropagatesUnchanged(t *testing.T) {
	repo := &mockRepo{err: fmt.Errorf("%w: abc", domain.ErrTodoNotFound)}
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.FindTodo(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)

	_, err = svc.UpdateTodo(ctx, "abc", "x")
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)

	err = svc.DeleteTodo(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "ok"},
		{"not found", fmt.Errorf("%w: x", domain.ErrTodoNotFound), "not_found"},
		{"conflict", fmt.Errorf("%w: x", domain.ErrTodoConflict), "conflict"},
		{"invalid id", domain.ErrInvalidID, "invalid"},
		{"other", errors.New("boom"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, outcome(tt.err))
		})
	}
}

func TestOperationsCounter(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	repo := &mockRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.CreateTodo(ctx, "a")
	require.NoError(t, err)
	_, err = svc.CreateTodo(ctx, "b")
	require.NoError(t, err)

	repo.err = domain.ErrTodoNotFound
	_ = svc.DeleteTodo(ctx, "missing")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	counts := map[[2]string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "todo.operations" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				op, _ := dp.Attributes.Value(attribute.Key("operation"))
				out, _ := dp.Attributes.Value(attribute.Key("outcome"))
				counts[[2]string{op.AsString(), out.AsString()}] = dp.Value
			}
		}
	}

	assert.Equal(t, int64(2), counts[[2]string{OpCreate, "ok"}])
	assert.Equal(t, int64(1), counts[[2]string{OpDelete, "not_found"}])
}
