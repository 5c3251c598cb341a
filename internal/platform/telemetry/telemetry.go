// Package telemetry installs the OpenTelemetry tracer and meter providers of
// the todo service and owns the instruments and attribute keys shared by the
// inbound middleware, the rate limiter and the store transport.
//
//	providers, err := telemetry.Setup(ctx, cfg.Telemetry)
//	defer providers.Shutdown(ctx)
//	providers.Metrics.ServerRequestTotal.Add(ctx, 1, ...)
//
// When telemetry is disabled Setup returns empty Providers whose Metrics is
// nil; every consumer treats nil Metrics as "do not record".
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"

	"github.com/jsamuelsen11/todo-partiql-service/internal/platform/config"
)

// Supported exporter names.
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

var errEmptyEndpoint = errors.New("otlp exporter requires an endpoint")

// Attribute keys for spans and metric labels.
var (
	AttrHTTPMethod  = attribute.Key("http.request.method")
	AttrHTTPStatus  = attribute.Key("http.response.status_code")
	AttrHTTPRoute   = attribute.Key("http.route")
	AttrPeerService = attribute.Key("peer.service")
	AttrRPCMethod   = attribute.Key("rpc.method")
	AttrResult      = attribute.Key("result")
	AttrBackend     = attribute.Key("ratelimit.backend")
)

// Metrics holds the service's metric instruments.
type Metrics struct {
	ServerRequestDuration metric.Float64Histogram
	ServerRequestTotal    metric.Int64Counter
	ClientRequestDuration metric.Float64Histogram
	ClientRequestTotal    metric.Int64Counter
	RateLimitRejected     metric.Int64Counter
}

// Providers owns the SDK providers installed by Setup. All fields are nil
// when telemetry is disabled.
type Providers struct {
	Tracer  *sdktrace.TracerProvider
	Meter   *sdkmetric.MeterProvider
	Metrics *Metrics
}

// Setup installs global tracer and meter providers as cfg describes and
// registers the service instruments on the meter.
func Setup(ctx context.Context, cfg config.TelemetryConfig) (*Providers, error) {
	if !cfg.Enabled {
		return &Providers{}, nil
	}

	tp, err := InitTracer(ctx, cfg.ServiceName, cfg.Exporter, cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := InitMeter(ctx, cfg.ServiceName, cfg.Exporter, cfg.Endpoint)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("init meter: %w", err), tp.Shutdown(ctx))
	}

	metrics, err := NewMetrics(mp, cfg.ServiceName)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("creating metrics: %w", err), tp.Shutdown(ctx), mp.Shutdown(ctx))
	}

	return &Providers{Tracer: tp, Meter: mp, Metrics: metrics}, nil
}

// Shutdown flushes and stops both providers. Safe on the zero value.
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	if p.Tracer != nil {
		if err := p.Tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if p.Meter != nil {
		if err := p.Meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

// InitTracer creates a TracerProvider exporting through exporter ("stdout"
// or "otlp") and installs it with the W3C trace-context and baggage
// propagators.
func InitTracer(ctx context.Context, serviceName, exporter, endpoint string) (*sdktrace.TracerProvider, error) {
	res, err := newResource(serviceName)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	spanExporter, err := newSpanExporter(ctx, exporter, endpoint)
	if err != nil {
		return nil, fmt.Errorf("creating span exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(spanExporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp, nil
}

// InitMeter creates a MeterProvider with a periodic reader over exporter
// and installs it globally.
func InitMeter(ctx context.Context, serviceName, exporter, endpoint string) (*sdkmetric.MeterProvider, error) {
	res, err := newResource(serviceName)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	metricExporter, err := newMetricExporter(ctx, exporter, endpoint)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	return mp, nil
}

// NewMetrics registers the service instruments on a meter named scope.
func NewMetrics(mp metric.MeterProvider, scope string) (*Metrics, error) {
	meter := mp.Meter(scope)
	var errs []error

	seconds := func(name, desc string) metric.Float64Histogram {
		h, err := meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit("s"))
		if err != nil {
			errs = append(errs, fmt.Errorf("creating %s: %w", name, err))
		}
		return h
	}
	requests := func(name, desc string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit("{request}"))
		if err != nil {
			errs = append(errs, fmt.Errorf("creating %s: %w", name, err))
		}
		return c
	}

	m := &Metrics{
		ServerRequestDuration: seconds("http.server.request.duration", "Duration of todo API requests"),
		ServerRequestTotal:    requests("http.server.request.total", "Todo API requests served"),
		ClientRequestDuration: seconds("http.client.request.duration", "Duration of DynamoDB HTTP calls"),
		ClientRequestTotal:    requests("http.client.request.total", "DynamoDB HTTP calls made"),
		RateLimitRejected:     requests("ratelimit.rejected.total", "Requests rejected by the per-client rate limiter"),
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return m, nil
}

func newResource(serviceName string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
}

func newSpanExporter(ctx context.Context, exporter, endpoint string) (sdktrace.SpanExporter, error) {
	switch exporter {
	case ExporterOTLP:
		host, secure, err := otlpTarget(endpoint)
		if err != nil {
			return nil, err
		}
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(host)}
		if !secure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		return otlptracehttp.New(ctx, opts...)
	case ExporterStdout:
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	default:
		return nil, fmt.Errorf("unsupported exporter %q", exporter)
	}
}

func newMetricExporter(ctx context.Context, exporter, endpoint string) (sdkmetric.Exporter, error) {
	switch exporter {
	case ExporterOTLP:
		host, secure, err := otlpTarget(endpoint)
		if err != nil {
			return nil, err
		}
		opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(host)}
		if !secure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		return otlpmetrichttp.New(ctx, opts...)
	case ExporterStdout:
		return stdoutmetric.New()
	default:
		return nil, fmt.Errorf("unsupported exporter %q", exporter)
	}
}

// otlpTarget splits a collector URL such as "http://otel-collector:4318"
// into the host:port the exporters expect and whether TLS is used. A bare
// host:port is accepted as plain HTTP.
func otlpTarget(endpoint string) (string, bool, error) {
	if endpoint == "" {
		return "", false, errEmptyEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return endpoint, false, nil
	}
	return u.Host, u.Scheme == "https", nil
}
