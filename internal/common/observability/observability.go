// Package observability wires OpenTelemetry meters onto the Prometheus registry and,
// when a collector endpoint is configured, exports traces to Jaeger.
package observability

import (
	"context"
	"fmt"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type Config struct {
	ServiceName    string
	ServiceVersion string
	JaegerEndpoint string
	SampleRatio    float64
	// Registerer defaults to the Prometheus default registry.
	Registerer promclient.Registerer
}

type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	jobCounter     otelmetric.Int64Counter
	jobDuration    otelmetric.Float64Histogram
}

// New builds the providers. Metric setup failures are returned; the caller decides whether
// to run without them.
func New(cfg Config) (*Observability, error) {
	if cfg.Registerer == nil {
		cfg.Registerer = promclient.DefaultRegisterer
	}
	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.ServiceVersion),
	)

	exporter, err := otelprom.New(otelprom.WithRegisterer(cfg.Registerer))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}
	provider := metric.NewMeterProvider(metric.WithReader(exporter), metric.WithResource(res))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(cfg.ServiceName)
	jobCounter, err := meter.Int64Counter(
		"jobs.processed",
		otelmetric.WithDescription("Number of jobs processed"),
	)
	if err != nil {
		return nil, fmt.Errorf("create job counter: %w", err)
	}
	jobDuration, err := meter.Float64Histogram(
		"jobs.duration",
		otelmetric.WithDescription("Job processing duration"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create job histogram: %w", err)
	}

	o := &Observability{
		meterProvider: provider,
		jobCounter:    jobCounter,
		jobDuration:   jobDuration,
	}

	if cfg.JaegerEndpoint != "" {
		traceExporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(cfg.JaegerEndpoint)))
		if err != nil {
			return nil, fmt.Errorf("create jaeger exporter: %w", err)
		}
		ratio := cfg.SampleRatio
		if ratio <= 0 {
			ratio = 1
		}
		o.tracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(traceExporter),
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
		)
		otel.SetTracerProvider(o.tracerProvider)
	} else {
		otel.SetTracerProvider(noop.NewTracerProvider())
	}

	return o, nil
}

func (o *Observability) TracingEnabled() bool {
	return o.tracerProvider != nil
}

func (o *Observability) RecordJobProcessed(ctx context.Context, taskType, status string) {
	o.jobCounter.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("task_type", taskType),
		attribute.String("status", status),
	))
}

func (o *Observability) RecordJobDuration(ctx context.Context, taskType string, duration time.Duration, status string) {
	o.jobDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
		attribute.String("task_type", taskType),
		attribute.String("status", status),
	))
}

// ObserveJob records a finished job on both OpenTelemetry instruments. Its signature matches
// metrics.JobObserver.
func (o *Observability) ObserveJob(taskType, status string, duration time.Duration) {
	ctx := context.Background()
	o.RecordJobProcessed(ctx, taskType, status)
	o.RecordJobDuration(ctx, taskType, duration, status)
}

func (o *Observability) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var firstErr error
	if o.tracerProvider != nil {
		if err := o.tracerProvider.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}
	if o.meterProvider != nil {
		if err := o.meterProvider.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
