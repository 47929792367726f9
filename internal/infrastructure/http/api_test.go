package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/todo/internal/application/todo"
	httpserver "github.com/rezkam/todo/internal/infrastructure/http"
	"github.com/rezkam/todo/internal/infrastructure/http/handler"
	"github.com/rezkam/todo/internal/infrastructure/persistence/sqlite"
)

// TestServer holds a running HTTP server backed by a real SQLite database.
type TestServer struct {
	URL     string
	Store   *sqlite.Store
	Cleanup func()
}

// SetupTestServer wires store, service, router and APIServer exactly as the binary does.
func SetupTestServer(t *testing.T) *TestServer {
	t.Helper()

	store, err := sqlite.NewStoreWithConfig(context.Background(), sqlite.DBConfig{
		DSN:            filepath.Join(t.TempDir(), "todo.db"),
		MaxConns:       5,
		AcquireTimeout: 3 * time.Second,
		AutoMigrate:    true,
	})
	require.NoError(t, err)

	svc := todo.NewService(store)
	api := httpserver.NewAPIServer(handler.NewRouter(svc), svc, httpserver.ServerConfig{})
	srv := httptest.NewServer(api.Handler())

	return &TestServer{
		URL:   srv.URL,
		Store: store,
		Cleanup: func() {
			srv.Close()
			_ = store.Close()
		},
	}
}

type apiResponse struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (ts *TestServer) call(t *testing.T, method, path, body string) (int, apiResponse) {
	t.Helper()

	req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestTodoLifecycle(t *testing.T) {
	ts := SetupTestServer(t)
	defer ts.Cleanup()

	status, resp := ts.call(t, http.MethodPost, "/todos", `{"text":"water plants"}`)
	require.Equal(t, http.StatusCreated, status)
	var created struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	assert.Equal(t, "Todo Created with ID : "+created.ID, resp.Message)

	status, resp = ts.call(t, http.MethodPatch, "/todo/"+created.ID, `{"text":"water all plants"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Successfull Updated", resp.Message)

	status, resp = ts.call(t, http.MethodGet, "/todo/"+created.ID, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, fmt.Sprintf(`{"id":%q,"title":"water all plants"}`, created.ID), string(resp.Data))

	status, resp = ts.call(t, http.MethodDelete, "/todo/"+created.ID, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Deleted Successfully", resp.Message)

	status, resp = ts.call(t, http.MethodGet, "/todo/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, resp.Error)

	status, resp = ts.call(t, http.MethodGet, "/todos", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(resp.Data))
}

func TestConcurrentCreatesWithinPoolLimit(t *testing.T) {
	ts := SetupTestServer(t)
	defer ts.Cleanup()

	const workers = 20

	var wg sync.WaitGroup
	statuses := make([]int, workers)
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req, err := http.NewRequest(http.MethodPost, ts.URL+"/todos",
				strings.NewReader(fmt.Sprintf(`{"text":"task %d"}`, i)))
			if err != nil {
				return
			}
			req.Header.Set("Content-Type", "application/json")
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return
			}
			statuses[i] = resp.StatusCode
			_ = resp.Body.Close()
		}(i)
	}
	wg.Wait()

	for i, status := range statuses {
		assert.Equal(t, http.StatusCreated, status, "request %d", i)
	}

	_, resp := ts.call(t, http.MethodGet, "/todos", "")
	var listed []json.RawMessage
	require.NoError(t, json.Unmarshal(resp.Data, &listed))
	assert.Len(t, listed, workers)
}

func TestUnknownRouteThroughFullStack(t *testing.T) {
	ts := SetupTestServer(t)
	defer ts.Cleanup()

	status, resp := ts.call(t, http.MethodGet, "/nope", "")

	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}
