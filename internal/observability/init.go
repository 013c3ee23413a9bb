package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "reloadstats"

// Providers holds the initialized observability providers.
type Providers struct {
	Tracer trace.Tracer
	Meter  metric.Meter
	Logger *slog.Logger

	// Registry backs the metrics file. Nil unless Config.MetricsFile is set.
	Registry *prometheus.Registry

	// Shutdown flushes exporters and writes the metrics file. Call it once
	// before the process exits.
	Shutdown func(ctx context.Context) error
}

// teardown runs the registered flushers in reverse order of registration.
type teardown []func(context.Context) error

func (td *teardown) push(fn func(context.Context) error) { *td = append(*td, fn) }

func (td teardown) run(ctx context.Context) error {
	var errs []error

	for i := len(td) - 1; i >= 0; i-- {
		errs = append(errs, td[i](ctx))
	}

	return errors.Join(errs...)
}

// Init sets up tracing, metrics, and logging and installs the global OTel
// providers. With no OTLP endpoint and no metrics file both providers are
// no-ops. The trace sampler follows OTEL_TRACES_SAMPLER when it is set.
func Init(cfg Config) (Providers, error) {
	ctx := context.Background()

	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultServiceName
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	res, err := resource.New(ctx, resource.WithAttributes(resourceAttrs(cfg)...))
	if err != nil {
		return Providers{}, fmt.Errorf("build otel resource: %w", err)
	}

	var td teardown

	var tp trace.TracerProvider = nooptrace.NewTracerProvider()

	var mp metric.MeterProvider = noopmetric.NewMeterProvider()

	var readers []sdkmetric.Option

	if cfg.OTLPEndpoint != "" {
		sdkTP, reader, exportErr := otlpPipeline(ctx, cfg, res)
		if exportErr != nil {
			return Providers{}, exportErr
		}

		tp = sdkTP
		td.push(sdkTP.Shutdown)

		readers = append(readers, sdkmetric.WithReader(reader))
	}

	var registry *prometheus.Registry

	if cfg.MetricsFile != "" {
		reg, reader, promErr := NewPrometheusReader()
		if promErr != nil {
			return Providers{}, errors.Join(promErr, td.run(ctx))
		}

		registry = reg
		readers = append(readers, sdkmetric.WithReader(reader))
	}

	if len(readers) > 0 {
		sdkMP := sdkmetric.NewMeterProvider(append(readers, sdkmetric.WithResource(res))...)
		mp = sdkMP
		td.push(sdkMP.Shutdown)
	}

	// Pushed last so it runs first, before the meter provider shuts down.
	if registry != nil {
		td.push(func(context.Context) error { return WriteTextfile(cfg.MetricsFile, registry) })
	}

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return Providers{
		Tracer:   tp.Tracer(instrumentationName),
		Meter:    mp.Meter(instrumentationName),
		Logger:   NewLogger(os.Stderr, cfg),
		Registry: registry,
		Shutdown: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
			defer cancel()

			return td.run(ctx)
		},
	}, nil
}

func resourceAttrs(cfg Config) []attribute.KeyValue {
	attrs := []attribute.KeyValue{semconv.ServiceName(cfg.ServiceName)}

	if cfg.ServiceVersion != "" {
		attrs = append(attrs, semconv.ServiceVersion(cfg.ServiceVersion))
	}

	if cfg.Environment != "" {
		attrs = append(attrs, semconv.DeploymentEnvironment(cfg.Environment))
	}

	return attrs
}

// otlpPipeline creates the gRPC trace and metric exporters for
// cfg.OTLPEndpoint.
func otlpPipeline(ctx context.Context, cfg Config, res *resource.Resource) (*sdktrace.TracerProvider, sdkmetric.Reader, error) {
	traceOpts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint)}
	metricOpts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint)}

	if cfg.OTLPInsecure {
		traceOpts = append(traceOpts, otlptracegrpc.WithInsecure())
		metricOpts = append(metricOpts, otlpmetricgrpc.WithInsecure())
	}

	if len(cfg.OTLPHeaders) > 0 {
		traceOpts = append(traceOpts, otlptracegrpc.WithHeaders(cfg.OTLPHeaders))
		metricOpts = append(metricOpts, otlpmetricgrpc.WithHeaders(cfg.OTLPHeaders))
	}

	traceExp, err := otlptracegrpc.New(ctx, traceOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("create trace exporter: %w", err)
	}

	metricExp, err := otlpmetricgrpc.New(ctx, metricOpts...)
	if err != nil {
		return nil, nil, errors.Join(fmt.Errorf("create metric exporter: %w", err), traceExp.Shutdown(ctx))
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(traceExp), sdktrace.WithResource(res))

	return tp, sdkmetric.NewPeriodicReader(metricExp), nil
}

// ParseOTLPHeaders parses the OTEL_EXPORTER_OTLP_HEADERS form
// "key=value,key=value". Pairs without "=" are skipped; nil when none remain.
func ParseOTLPHeaders(raw string) map[string]string {
	var headers map[string]string

	for pair := range strings.SplitSeq(raw, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}

		if headers == nil {
			headers = make(map[string]string)
		}

		headers[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}

	return headers
}
