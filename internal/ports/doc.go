// Package ports defines the interfaces between the HTTP adapter and the
// outbound adapters (store, rate limiter, health checks). Handlers depend on
// these interfaces only; concrete implementations are wired in cmd/server.
package ports
