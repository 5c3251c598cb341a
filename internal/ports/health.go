package ports

import "context"

// HealthChecker is a dependency that the readiness check consults: the
// store transport's circuit breaker and, when configured, the Redis
// limiter. Name keys the checker in the readiness response.
type HealthChecker interface {
	Name() string
	HealthCheck(ctx context.Context) error
}

// HealthRegistry collects checkers at startup. CheckAll maps each checker
// name to its result, nil meaning ready.
type HealthRegistry interface {
	Register(checker HealthChecker)
	CheckAll(ctx context.Context) map[string]error
}
