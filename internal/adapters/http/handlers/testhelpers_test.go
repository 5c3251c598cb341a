package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jsamuelsen11/todo-partiql-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/todo-partiql-service/internal/domain/todo"
)

func validItem() todo.Item {
	return todo.Item{Name: "Buy groceries", Description: "Milk, eggs, bread"}
}

// withBody stores an already parsed body on the request, the way ParseJSON
// does in the router.
func withBody(r *http.Request, body map[string]any) *http.Request {
	return r.WithContext(middleware.WithBody(r.Context(), body))
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return result
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}

func requireBody(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	if got := rec.Body.String(); got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
}
