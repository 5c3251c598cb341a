// Package httpclient provides the instrumented HTTP client that carries the
// AWS SDK's requests to the store. It adds a circuit breaker, an optional
// outbound throttle, OpenTelemetry tracing, metrics, and header injection.
//
// The client applies middleware-like processing in this order:
//
//	Circuit Breaker → Rate Limiter → Header Injection → OTEL Span → HTTP
//
// There is no retry stage: a failed call is reported to the caller as-is.
//
// Construction and use as the SDK transport:
//
//	client := httpclient.New(&cfg.Store, "dynamodb", metrics, logger)
//	ddb := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
//		o.HTTPClient = client
//	})
//
// Context propagation for header injection (set by inbound middleware):
//
//	ctx = httpclient.WithRequestID(ctx, "req-123")
//	ctx = httpclient.WithCorrelationID(ctx, "corr-456")
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/jsamuelsen11/todo-partiql-service/internal/domain"
	"github.com/jsamuelsen11/todo-partiql-service/internal/platform/config"
	"github.com/jsamuelsen11/todo-partiql-service/internal/platform/telemetry"
)

// Context key types for request metadata propagation.
type (
	requestIDKey     struct{}
	correlationIDKey struct{}
)

// WithRequestID returns a new context with the given request ID stored in it.
// Inbound middleware should call this to propagate request IDs to outbound calls.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// WithCorrelationID returns a new context with the given correlation ID stored
// in it. Inbound middleware should call this to propagate correlation IDs to
// outbound calls.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// errServerStatus marks a 5xx response inside the breaker so it counts as a
// failure. It never escapes Do: the response itself is handed back so the
// SDK can decode the service error.
var errServerStatus = errors.New("server error status")

// Client is an instrumented HTTP client with circuit breaker, rate limiting,
// header injection, and OpenTelemetry tracing for outbound store requests.
// It satisfies the AWS SDK's HTTPClient interface.
type Client struct {
	httpClient  *http.Client
	serviceName string
	breaker     *gobreaker.CircuitBreaker[*http.Response]
	limiter     *rate.Limiter // nil when throttling is disabled
	metrics     *telemetry.Metrics
	logger      *slog.Logger
}

// New creates an instrumented HTTP client from the store settings.
//
// The serviceName identifies the downstream service in traces, metrics, and
// health results (e.g., "dynamodb"). If metrics is nil, metric recording is
// skipped.
func New(cfg *config.StoreConfig, serviceName string, metrics *telemetry.Metrics, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cb := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        serviceName,
		MaxRequests: toUint32(cfg.CircuitBreaker.HalfOpenLimit),
		Timeout:     cfg.CircuitBreaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cfg.CircuitBreaker.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	var limiter *rate.Limiter
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.BurstSize)
	}

	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		serviceName: serviceName,
		breaker:     cb,
		limiter:     limiter,
		metrics:     metrics,
		logger:      logger,
	}
}

// Do executes an HTTP request through the pipeline:
// Circuit Breaker → Rate Limiter → Header Injection → OTEL Span → HTTP.
//
// The request's context is used for cancellation, tracing, and to extract
// Request-ID and Correlation-ID for header propagation.
//
// A response with a 5xx status is returned with a nil error (and an open
// body) but counts as a breaker failure. When the breaker rejects the call
// the error wraps both gobreaker.ErrOpenState (or ErrTooManyRequests) and
// domain.ErrUnavailable, and resp is nil.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	start := time.Now()
	op := operation(req)

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		if err := c.waitForRateLimit(ctx); err != nil {
			return nil, err
		}

		c.injectHeaders(ctx, req)

		spanCtx, span := c.startSpan(ctx, req)
		defer span.End()

		r, err := c.httpClient.Do(req.WithContext(spanCtx))
		c.finishSpan(span, r, err)
		if err != nil {
			return nil, err
		}
		if r.StatusCode >= http.StatusInternalServerError {
			return r, errServerStatus
		}
		return r, nil
	})

	c.recordMetrics(ctx, op, start, resp, err)

	switch {
	case errors.Is(err, errServerStatus):
		return resp, nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return nil, fmt.Errorf("%s: %w: %w", c.serviceName, domain.ErrUnavailable, err)
	case err != nil:
		return nil, err
	}
	return resp, nil
}

// Name returns the downstream service identifier (e.g., "dynamodb").
// Together with HealthCheck, this method lets Client satisfy the
// ports.HealthChecker interface via structural typing.
func (c *Client) Name() string {
	return c.serviceName
}

// HealthCheck reports the store's availability based on the circuit breaker
// state. No network call is made.
//
// State mapping:
//   - "closed": the store is answering normally; returns nil.
//   - "half-open": the breaker is probing recovery; returns a descriptive
//     error indicating degraded state.
//   - "open": the breaker is rejecting requests; returns a
//     descriptive error indicating failure.
func (c *Client) HealthCheck(_ context.Context) error {
	state := c.breaker.State()
	switch state {
	case gobreaker.StateClosed:
		return nil
	case gobreaker.StateHalfOpen:
		return fmt.Errorf("%s: degraded (circuit breaker half-open)", c.serviceName)
	case gobreaker.StateOpen:
		return fmt.Errorf("%s: failing (circuit breaker open)", c.serviceName)
	default:
		return fmt.Errorf("%s: unknown circuit breaker state %v", c.serviceName, state)
	}
}

// waitForRateLimit blocks until the rate limiter allows the request or the
// context is canceled. Returns nil immediately when throttling is disabled.
func (c *Client) waitForRateLimit(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// injectHeaders adds Request-ID and Correlation-ID headers to the outbound
// request if present in the context. The SDK has already signed the request;
// these headers are not part of the signature.
func (c *Client) injectHeaders(ctx context.Context, req *http.Request) {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		req.Header.Set("X-Request-ID", id)
	}
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok && id != "" {
		req.Header.Set("X-Correlation-ID", id)
	}
}

// startSpan opens a client span named after the store operation and
// injects W3C trace context into the outbound headers.
func (c *Client) startSpan(ctx context.Context, req *http.Request) (context.Context, trace.Span) {
	op := operation(req)

	ctx, span := otel.Tracer("httpclient").Start(ctx, c.serviceName+" "+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			telemetry.AttrHTTPMethod.String(req.Method),
			telemetry.AttrPeerService.String(c.serviceName),
			telemetry.AttrRPCMethod.String(op),
			attribute.String("server.address", req.URL.Hostname()),
		),
	)

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	return ctx, span
}

// operation extracts the API name from the SDK's X-Amz-Target header
// ("DynamoDB_20120810.ExecuteStatement" yields "ExecuteStatement"). Requests
// without the header fall back to the HTTP method.
func operation(req *http.Request) string {
	target := req.Header.Get("X-Amz-Target")
	if target == "" {
		return req.Method
	}
	if i := strings.LastIndexByte(target, '.'); i >= 0 {
		return target[i+1:]
	}
	return target
}

func (c *Client) finishSpan(span trace.Span, resp *http.Response, err error) {
	if resp != nil {
		span.SetAttributes(telemetry.AttrHTTPStatus.Int(resp.StatusCode))
		if resp.StatusCode >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
		}
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// recordMetrics runs outside the breaker so rejected calls are counted too.
func (c *Client) recordMetrics(ctx context.Context, op string, start time.Time, resp *http.Response, err error) {
	if c.metrics == nil {
		return
	}

	duration := time.Since(start).Seconds()

	statusCode := 0
	result := "error"
	if resp != nil {
		statusCode = resp.StatusCode
		if statusCode < http.StatusBadRequest {
			result = "success"
		}
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		result = "circuit_open"
	}

	attrs := metric.WithAttributes(
		telemetry.AttrRPCMethod.String(op),
		telemetry.AttrHTTPStatus.Int(statusCode),
		telemetry.AttrPeerService.String(c.serviceName),
		telemetry.AttrResult.String(result),
	)

	c.metrics.ClientRequestDuration.Record(ctx, duration, attrs)
	c.metrics.ClientRequestTotal.Add(ctx, 1, attrs)
}

// toUint32 safely converts a non-negative int to uint32, clamping at the
// uint32 maximum. Negative values are treated as zero.
func toUint32(v int) uint32 {
	if v <= 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
