// Package middleware holds the inbound request pipeline of the todo service.
//
// cmd/server installs the global stack in this order:
//
//	Recovery, RequestID, CorrelationID, OpenTelemetry, Logging, Timeout,
//	ParseJSON, RateLimit
//
// and the router adds Validate per route. Every middleware has the shape
// func(http.Handler) http.Handler and composes with Chain.
package middleware
