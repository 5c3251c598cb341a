package middleware

import (
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"strings"
)

const redacted = "[REDACTED]"

// credentialHeaders are canonical header names whose values never reach the
// log. X-Amz-Security-Token shows up when callers proxy signed AWS requests.
var credentialHeaders = []string{
	"Authorization",
	"Cookie",
	"Proxy-Authorization",
	"Set-Cookie",
	"X-Amz-Security-Token",
	"X-Api-Key",
}

// RedactHeaders renders headers as log attributes in name order, masking
// credential headers. Repeated values are joined with ",".
func RedactHeaders(h http.Header) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(h))
	for _, name := range slices.Sorted(maps.Keys(h)) {
		value := strings.Join(h[name], ",")
		if slices.Contains(credentialHeaders, http.CanonicalHeaderKey(name)) {
			value = redacted
		}
		attrs = append(attrs, slog.String(name, value))
	}
	return attrs
}
