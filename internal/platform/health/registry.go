// Package health runs the readiness checks: the store transport's circuit
// breaker and the Redis rate limit backend when one is configured.
package health

import (
	"context"
	"sync"
	"time"

	"github.com/jsamuelsen11/todo-partiql-service/internal/ports"
)

const defaultCheckTimeout = 2 * time.Second

var _ ports.HealthRegistry = (*Registry)(nil)

type Option func(*Registry)

// WithCheckTimeout sets the deadline given to each checker. Zero or less
// leaves the caller's context untouched.
func WithCheckTimeout(d time.Duration) Option {
	return func(r *Registry) { r.timeout = d }
}

// Registry is safe for concurrent Register and CheckAll calls.
type Registry struct {
	mu       sync.RWMutex
	checkers []ports.HealthChecker
	timeout  time.Duration
}

func New(opts ...Option) *Registry {
	r := &Registry{timeout: defaultCheckTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) Register(checker ports.HealthChecker) {
	r.mu.Lock()
	r.checkers = append(r.checkers, checker)
	r.mu.Unlock()
}

// CheckAll runs every checker concurrently, so a slow Redis PING does not
// delay the breaker check. When two checkers share a name the one
// registered last is reported.
func (r *Registry) CheckAll(ctx context.Context) map[string]error {
	r.mu.RLock()
	checkers := append([]ports.HealthChecker(nil), r.checkers...)
	r.mu.RUnlock()

	errs := make([]error, len(checkers))
	var wg sync.WaitGroup
	for i, c := range checkers {
		wg.Go(func() { errs[i] = r.run(ctx, c) })
	}
	wg.Wait()

	results := make(map[string]error, len(checkers))
	for i, c := range checkers {
		results[c.Name()] = errs[i]
	}
	return results
}

func (r *Registry) run(ctx context.Context, c ports.HealthChecker) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return c.HealthCheck(ctx)
}
