// Package ratelimit provides fixed-window implementations of
// [ports.RateLimiter]: an in-process counter for single instances and a
// Redis-backed counter shared across instances.
package ratelimit
