package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jsamuelsen11/todo-partiql-service/internal/ports"
)

// Compile-time interface check.
var _ ports.RateLimiter = (*Redis)(nil)

// fixedWindowScript increments the key's counter, starts the window expiry
// on the first hit, and returns the count and the window's remaining TTL in
// milliseconds. The script runs atomically on the server.
var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// Redis is a fixed-window limiter whose counters live in Redis, so every
// instance behind a load balancer shares one count per client.
type Redis struct {
	rdb    redis.UniversalClient
	prefix string
	limit  int
	period time.Duration
	now    func() time.Time
}

// NewRedis creates a Redis-backed limiter. Keys are stored as
// "<prefix>:<client key>".
func NewRedis(rdb redis.UniversalClient, prefix string, limit int, period time.Duration) *Redis {
	return &Redis{
		rdb:    rdb,
		prefix: prefix,
		limit:  limit,
		period: period,
		now:    time.Now,
	}
}

// Allow counts one request for key in Redis.
func (r *Redis) Allow(ctx context.Context, key string) (ports.RateDecision, error) {
	res, err := fixedWindowScript.Run(ctx, r.rdb, []string{r.prefix + ":" + key}, r.period.Milliseconds()).Int64Slice()
	if err != nil {
		return ports.RateDecision{}, fmt.Errorf("rate limit script: %w", err)
	}
	if len(res) != 2 {
		return ports.RateDecision{}, fmt.Errorf("rate limit script: unexpected reply length %d", len(res))
	}

	resetAt := r.now().Add(time.Duration(res[1]) * time.Millisecond)
	return decide(int(res[0]), r.limit, resetAt), nil
}

// Name identifies the limiter in readiness checks.
func (r *Redis) Name() string {
	return "redis"
}

// HealthCheck pings the Redis server.
func (r *Redis) HealthCheck(ctx context.Context) error {
	if err := r.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	return nil
}
