package middleware

import "net/http"

// Chain composes middleware into one. The first argument is the outermost,
// so the request passes through them in argument order:
//
//	Chain(Recovery(l), ParseJSON(), RateLimit(lim, opts))(h)
//	== Recovery(l)(ParseJSON()(RateLimit(lim, opts)(h)))
func Chain(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(handler http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			handler = middlewares[i](handler)
		}
		return handler
	}
}
