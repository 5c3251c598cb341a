package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jsamuelsen11/todo-partiql-service/internal/adapters/http/middleware"
)

// captureBody runs ParseJSON and returns the stored body, or nil when the
// next handler was not reached.
func captureBody(t *testing.T, req *http.Request) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var got map[string]any
	handler := middleware.ParseJSON()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = middleware.BodyFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return got, rec
}

func jsonRequest(method, body string) *http.Request {
	req := httptest.NewRequest(method, "/api/todo", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestParseJSON_Object(t *testing.T) {
	t.Parallel()

	body, rec := captureBody(t, jsonRequest(http.MethodPost, `{"name":"milk","description":"buy it"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if body["name"] != "milk" || body["description"] != "buy it" {
		t.Errorf("body = %v", body)
	}
}

func TestParseJSON_ContentTypeWithCharset(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/api/todo", strings.NewReader(`{"name":"milk"}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	body, _ := captureBody(t, req)
	if body["name"] != "milk" {
		t.Errorf("body = %v, want name=milk", body)
	}
}

func TestParseJSON_EmptyBodies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  *http.Request
	}{
		{name: "no body", req: httptest.NewRequest(http.MethodGet, "/api/todo", http.NoBody)},
		{name: "empty json body", req: jsonRequest(http.MethodPost, "")},
		{name: "json null", req: jsonRequest(http.MethodPost, "null")},
		{
			name: "non-json content type",
			req: func() *http.Request {
				r := httptest.NewRequest(http.MethodPost, "/api/todo", strings.NewReader(`{"name":"milk"}`))
				r.Header.Set("Content-Type", "text/plain")
				return r
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			body, rec := captureBody(t, tt.req)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
			}
			if body == nil || len(body) != 0 {
				t.Errorf("body = %v, want empty map", body)
			}
		})
	}
}

func TestParseJSON_RejectsMalformed(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{`{"name":`, `[1,2,3]`, `"text"`, `{"a":1} {"b":2}`} {
		t.Run(raw, func(t *testing.T) {
			t.Parallel()

			body, rec := captureBody(t, jsonRequest(http.MethodPost, raw))
			if body != nil {
				t.Error("next handler reached for malformed body")
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			if got := rec.Body.String(); got != "Invalid JSON body" {
				t.Errorf("body = %q, want %q", got, "Invalid JSON body")
			}
		})
	}
}

func TestParseJSON_RejectsOversized(t *testing.T) {
	t.Parallel()

	big := `{"name":"` + strings.Repeat("a", 1<<20) + `"}`
	body, rec := captureBody(t, jsonRequest(http.MethodPost, big))

	if body != nil {
		t.Error("next handler reached for oversized body")
	}
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusRequestEntityTooLarge)
	}
}

func TestBodyFromContext_Missing(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	if body := middleware.BodyFromContext(req.Context()); body == nil || len(body) != 0 {
		t.Errorf("BodyFromContext() = %v, want empty map", body)
	}
}

func TestParseJSON_ReadOnlyMethodsSkipBody(t *testing.T) {
	t.Parallel()

	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		body, rec := captureBody(t, jsonRequest(method, `{"name":`))

		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want %d", method, rec.Code, http.StatusOK)
		}
		if body == nil || len(body) != 0 {
			t.Errorf("%s: body = %v, want empty map", method, body)
		}
	}
}
