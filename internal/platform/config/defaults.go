package config

const (
	defaultServerPort = 3000

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1

	defaultRateLimitMax = 100
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":          "0.0.0.0",
		"server.port":          defaultServerPort,
		"server.read_timeout":  "5s",
		"server.write_timeout": "10s",
		"server.idle_timeout":  "120s",

		"server.request_timeout": "8s",

		"log.level":  "info",
		"log.format": "json",

		"store.table_name":                      "",
		"store.region":                          "us-east-1",
		"store.endpoint":                        "",
		"store.timeout":                         "5s",
		"store.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"store.circuit_breaker.timeout":         "30s",
		"store.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"store.rate_limit.requests_per_second":  0,
		"store.rate_limit.burst_size":           0,

		"rate_limit.enabled":             true,
		"rate_limit.path_prefix":         "/api",
		"rate_limit.window":              "15m",
		"rate_limit.max":                 defaultRateLimitMax,
		"rate_limit.backend":             "memory",
		"rate_limit.trust_forwarded_for": false,
		"rate_limit.redis.addr":          "localhost:6379",
		"rate_limit.redis.password":      "",
		"rate_limit.redis.db":            0,
		"rate_limit.redis.key_prefix":    "todo:ratelimit",

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "todo-partiql-service",
	}
}
