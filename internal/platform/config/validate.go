package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Log.validate(),
		c.Store.validate(),
		c.RateLimit.validate(),
		c.Telemetry.validate(),
	)
}

func (s *ServerConfig) validate() error {
	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}
	if s.RequestTimeout <= 0 {
		errs = append(errs, errors.New("server.request_timeout must be positive"))
	}
	// The 504 must be written before the connection's write deadline.
	if s.WriteTimeout > 0 && s.RequestTimeout >= s.WriteTimeout {
		errs = append(errs, fmt.Errorf("server.request_timeout (%s) must be below server.write_timeout (%s)",
			s.RequestTimeout, s.WriteTimeout))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
		// Valid levels.
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
		// Valid formats.
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (s *StoreConfig) validate() error {
	var errs []error

	if strings.TrimSpace(s.TableName) == "" {
		errs = append(errs, errors.New("store.table_name must not be empty (set TABLE_NAME)"))
	}
	if strings.ContainsRune(s.TableName, '"') {
		errs = append(errs, fmt.Errorf("store.table_name must not contain double quotes, got %q", s.TableName))
	}
	if s.Region == "" {
		errs = append(errs, errors.New("store.region must not be empty"))
	}
	if s.Timeout <= 0 {
		errs = append(errs, errors.New("store.timeout must be positive"))
	}
	if s.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("store.circuit_breaker.max_failures must be >= 1, got %d",
			s.CircuitBreaker.MaxFailures))
	}
	if s.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("store.rate_limit.requests_per_second must not be negative, got %f",
			s.RateLimit.RequestsPerSecond))
	}
	if s.RateLimit.RequestsPerSecond > 0 && s.RateLimit.BurstSize < 1 {
		errs = append(errs, fmt.Errorf("store.rate_limit.burst_size must be >= 1 when throttling, got %d",
			s.RateLimit.BurstSize))
	}

	return errors.Join(errs...)
}

func (r *RateLimitConfig) validate() error {
	if !r.Enabled {
		return nil
	}

	var errs []error

	if !strings.HasPrefix(r.PathPrefix, "/") {
		errs = append(errs, fmt.Errorf("rate_limit.path_prefix must start with /, got %q", r.PathPrefix))
	}
	if r.Window <= 0 {
		errs = append(errs, errors.New("rate_limit.window must be positive"))
	}
	if r.Max < 1 {
		errs = append(errs, fmt.Errorf("rate_limit.max must be >= 1, got %d", r.Max))
	}

	switch r.Backend {
	case "memory":
		// No extra settings.
	case "redis":
		if r.Redis.Addr == "" {
			errs = append(errs, errors.New("rate_limit.redis.addr must not be empty when backend is redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("rate_limit.backend must be one of: memory, redis; got %q", r.Backend))
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
		// Valid exporters.
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}
	if t.ServiceName == "" {
		errs = append(errs, errors.New("telemetry.service_name must not be empty when telemetry is enabled"))
	}

	return errors.Join(errs...)
}
