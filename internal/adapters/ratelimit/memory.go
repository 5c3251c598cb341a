package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/jsamuelsen11/todo-partiql-service/internal/ports"
)

// Compile-time interface check.
var _ ports.RateLimiter = (*Memory)(nil)

// Memory is a fixed-window limiter held in process memory. Counts are not
// shared between instances.
type Memory struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
	now     func() time.Time
}

type window struct {
	count   int
	resetAt time.Time
}

// MemoryOption configures a Memory limiter.
type MemoryOption func(*Memory)

// WithClock replaces time.Now. Intended for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

// NewMemory creates a limiter allowing limit requests per key in each period.
func NewMemory(limit int, period time.Duration, opts ...MemoryOption) *Memory {
	m := &Memory{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Allow counts one request for key. A key's window starts at its first
// request and its count resets once the window has elapsed.
func (m *Memory) Allow(_ context.Context, key string) (ports.RateDecision, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(m.period)}
		m.windows[key] = w
	}
	w.count++

	return decide(w.count, m.limit, w.resetAt), nil
}

// Cleanup drops every window that has already elapsed.
func (m *Memory) Cleanup() {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	for k, w := range m.windows {
		if !now.Before(w.resetAt) {
			delete(m.windows, k)
		}
	}
}

// StartJanitor runs Cleanup every interval until ctx is cancelled. A
// non-positive interval disables the janitor.
func (m *Memory) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	t := time.NewTicker(interval)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				m.Cleanup()
			}
		}
	}()
}

// size reports the number of tracked keys.
func (m *Memory) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.windows)
}

func decide(count, limit int, resetAt time.Time) ports.RateDecision {
	return ports.RateDecision{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: max(limit-count, 0),
		ResetAt:   resetAt,
	}
}
