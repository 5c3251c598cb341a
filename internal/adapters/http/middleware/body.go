package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/jsamuelsen11/todo-partiql-service/internal/adapters/http/dto"
)

// maxJSONBodyBytes is the maximum allowed size for a JSON request body (1 MB).
const maxJSONBodyBytes = 1 << 20

type bodyKey struct{}

// WithBody returns a new context carrying the parsed request body.
func WithBody(ctx context.Context, body map[string]any) context.Context {
	return context.WithValue(ctx, bodyKey{}, body)
}

// BodyFromContext returns the body stored by ParseJSON. It never returns
// nil; a request without a JSON body yields an empty map.
func BodyFromContext(ctx context.Context) map[string]any {
	if body, ok := ctx.Value(bodyKey{}).(map[string]any); ok && body != nil {
		return body
	}
	return map[string]any{}
}

// ParseJSON returns middleware that decodes an application/json request body
// into a map stored on the request context. GET, HEAD and OPTIONS bodies are
// never read. Requests with another content type, or with no body, carry an
// empty map. Malformed JSON, a body that is
// not a single JSON object, or trailing data is rejected with 400; a body
// over 1 MB is rejected with 413.
func ParseJSON() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !carriesBody(r.Method) || r.Body == nil || r.Body == http.NoBody || !isJSON(r.Header.Get("Content-Type")) {
				next.ServeHTTP(w, r.WithContext(WithBody(r.Context(), map[string]any{})))
				return
			}

			body, err := decodeObject(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes))
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					dto.WriteText(w, http.StatusRequestEntityTooLarge, dto.MsgBodyTooLarge)
					return
				}
				dto.WriteText(w, http.StatusBadRequest, dto.MsgInvalidJSON)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithBody(r.Context(), body)))
		})
	}
}

func carriesBody(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

// decodeObject reads exactly one JSON object (or null) from rd.
func decodeObject(rd io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(rd)

	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after JSON object")
		}
		return nil, err
	}

	if body == nil {
		body = map[string]any{}
	}
	return body, nil
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json"
}
