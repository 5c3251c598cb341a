// Package config provides configuration loading and validation for the service.
// Configuration is loaded with a layered system:
// defaults -> base.yaml -> {profile}.yaml -> APP_ env vars -> TABLE_NAME/PORT.
package config

import "time"

// Config holds all configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Store     StoreConfig     `koanf:"store"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`

	// RequestTimeout bounds each request, including the store round trip.
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// StoreConfig holds settings for the DynamoDB table accessed through PartiQL.
type StoreConfig struct {
	TableName      string               `koanf:"table_name"`
	Region         string               `koanf:"region"`
	Endpoint       string               `koanf:"endpoint"`
	Timeout        time.Duration        `koanf:"timeout"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
	RateLimit      ClientRateConfig     `koanf:"rate_limit"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// ClientRateConfig throttles outbound store calls. A zero RequestsPerSecond
// disables throttling.
type ClientRateConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	BurstSize         int     `koanf:"burst_size"`
}

// RateLimitConfig holds the inbound per-client rate limiter settings.
type RateLimitConfig struct {
	Enabled           bool          `koanf:"enabled"`
	PathPrefix        string        `koanf:"path_prefix"`
	Window            time.Duration `koanf:"window"`
	Max               int           `koanf:"max"`
	Backend           string        `koanf:"backend"`
	TrustForwardedFor bool          `koanf:"trust_forwarded_for"`
	Redis             RedisConfig   `koanf:"redis"`
}

// RedisConfig holds connection settings for the shared rate limit backend.
type RedisConfig struct {
	Addr      string `koanf:"addr"`
	Password  string `koanf:"password"`
	DB        int    `koanf:"db"`
	KeyPrefix string `koanf:"key_prefix"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}
