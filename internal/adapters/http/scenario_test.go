package http_test

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"
	"sync"
	"testing"

	adapthttp "github.com/jsamuelsen11/todo-partiql-service/internal/adapters/http"
	"github.com/jsamuelsen11/todo-partiql-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/todo-partiql-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/todo-partiql-service/internal/domain"
	"github.com/jsamuelsen11/todo-partiql-service/internal/domain/todo"
	"github.com/jsamuelsen11/todo-partiql-service/internal/ports"
	"github.com/jsamuelsen11/todo-partiql-service/mocks"
)

// tableStore keeps items keyed by name, like the DynamoDB table: inserting
// an existing name fails and deleting a missing one is a no-op.
type tableStore struct {
	mu    sync.Mutex
	items map[string]todo.Item
	order []string
}

var _ ports.TodoStore = (*tableStore)(nil)

func newTableStore() *tableStore {
	return &tableStore{items: make(map[string]todo.Item)}
}

func (s *tableStore) Create(_ context.Context, item todo.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[item.Name]; ok {
		return &domain.StoreError{Op: "insert", Code: "DuplicateItemException", Err: errors.New("duplicate primary key")}
	}
	s.items[item.Name] = item
	s.order = append(s.order, item.Name)
	return nil
}

func (s *tableStore) List(_ context.Context, f todo.Filter) ([]todo.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []todo.Item{}
	for _, name := range s.order {
		if f.IsZero() || f.Name == name {
			out = append(out, s.items[name])
		}
	}
	return out, nil
}

func (s *tableStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, name)
	s.order = slices.DeleteFunc(s.order, func(n string) bool { return n == name })
	return nil
}

func TestRouter_TodoLifecycle(t *testing.T) {
	t.Parallel()

	store := newTableStore()
	router := adapthttp.NewRouter(
		handlers.NewTodoHandler(store),
		handlers.NewHealthHandler(mocks.NewMockHealthRegistry(t)),
		middleware.ParseJSON(),
	)

	steps := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{"empty table", http.MethodGet, "/api/todo", "", http.StatusOK, `[]`},
		{"create milk", http.MethodPost, "/api/todo", `{"name":"milk","description":"buy milk"}`, http.StatusOK, "success"},
		{"list shows milk", http.MethodGet, "/api/todo", "", http.StatusOK, `[{"name":"milk","description":"buy milk"}]`},
		{"short name rejected", http.MethodPost, "/api/todo", `{"name":"ab","description":"buy eggs"}`, http.StatusBadRequest, "Invalid body"},
		{"short description rejected", http.MethodPost, "/api/todo", `{"name":"eggs","description":"no"}`, http.StatusBadRequest, "Invalid body"},
		{"rejected posts created nothing", http.MethodGet, "/api/todo", "", http.StatusOK, `[{"name":"milk","description":"buy milk"}]`},
		{"duplicate name fails in store", http.MethodPost, "/api/todo", `{"name":"milk","description":"again"}`, http.StatusInternalServerError, "insertion went wrong"},
		{"create bread", http.MethodPost, "/api/todo", `{"name":"bread","description":"rye loaf"}`, http.StatusOK, "success"},
		{"filter by name", http.MethodGet, "/api/todo?name=bread", "", http.StatusOK, `[{"name":"bread","description":"rye loaf"}]`},
		{"empty filter lists all", http.MethodGet, "/api/todo?name=", "", http.StatusOK, `[{"name":"milk","description":"buy milk"},{"name":"bread","description":"rye loaf"}]`},
		{"short delete rejected", http.MethodDelete, "/api/todo", `{"name":"mi"}`, http.StatusBadRequest, "Invalid Request Body"},
		{"rejected delete removed nothing", http.MethodGet, "/api/todo?name=milk", "", http.StatusOK, `[{"name":"milk","description":"buy milk"}]`},
		{"delete milk", http.MethodDelete, "/api/todo", `{"name":"milk"}`, http.StatusOK, "success"},
		{"milk gone", http.MethodGet, "/api/todo?name=milk", "", http.StatusOK, `[]`},
		{"bread kept", http.MethodGet, "/api/todo", "", http.StatusOK, `[{"name":"bread","description":"rye loaf"}]`},
	}

	for _, step := range steps {
		rec := serve(router, step.method, step.path, step.body)

		if rec.Code != step.wantStatus {
			t.Fatalf("%s: status = %d, want %d (body %q)", step.name, rec.Code, step.wantStatus, rec.Body.String())
		}
		if got := strings.TrimSpace(rec.Body.String()); got != step.wantBody {
			t.Fatalf("%s: body = %s, want %s", step.name, got, step.wantBody)
		}
	}
}
