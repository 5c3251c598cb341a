package ports

import (
	"context"
	"time"
)

// RateDecision is the outcome of counting one request against a client's
// current window.
type RateDecision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RateLimiter counts requests per client key inside a fixed window.
type RateLimiter interface {
	// Allow records one request for key and reports whether it fits in the
	// current window. The increment and the comparison against the limit
	// happen as one atomic step.
	Allow(ctx context.Context, key string) (RateDecision, error)
}
