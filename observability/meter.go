package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/amalfi/logger"
	"github.com/kbukum/amalfi/version"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "0.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter builds a meter provider exporting over OTLP HTTP and installs
// it globally. The caller shuts it down on exit.
func InitMeter(ctx context.Context, config MeterConfig, log *logger.Logger) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	log.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns the step meter from mp, or from the global provider when
// mp is nil.
func Meter(mp metric.MeterProvider) metric.Meter {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	return mp.Meter(InstrumentationName, metric.WithInstrumentationVersion(version.Library()))
}

// Metric names.
const (
	MetricStepTotal    = "amalfi.step.total"
	MetricStepDuration = "amalfi.step.duration"
	MetricStepErrors   = "amalfi.step.errors"
	MetricFanOutItems  = "amalfi.fanout.items"
)

// StepMetrics holds the instruments recorded for each step invocation.
type StepMetrics struct {
	stepTotal    metric.Int64Counter
	stepDuration metric.Float64Histogram
	stepErrors   metric.Int64Counter
	fanOutItems  metric.Int64Histogram
}

// NewStepMetrics creates the step instruments on meter.
func NewStepMetrics(meter metric.Meter) (*StepMetrics, error) {
	stepTotal, err := meter.Int64Counter(MetricStepTotal,
		metric.WithDescription("Total number of step invocations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricStepTotal, err)
	}

	stepDuration, err := meter.Float64Histogram(MetricStepDuration,
		metric.WithDescription("Duration of step invocations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricStepDuration, err)
	}

	stepErrors, err := meter.Int64Counter(MetricStepErrors,
		metric.WithDescription("Failed step invocations by error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricStepErrors, err)
	}

	fanOutItems, err := meter.Int64Histogram(MetricFanOutItems,
		metric.WithDescription("Number of items processed per fan-out"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricFanOutItems, err)
	}

	return &StepMetrics{
		stepTotal:    stepTotal,
		stepDuration: stepDuration,
		stepErrors:   stepErrors,
		fanOutItems:  fanOutItems,
	}, nil
}

// RecordStep records a completed invocation.
func (m *StepMetrics) RecordStep(ctx context.Context, step, kind, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("step", step),
		attribute.String("kind", kind),
		attribute.String("status", status),
	)
	m.stepTotal.Add(ctx, 1, attrs)
	m.stepDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("step", step),
		attribute.String("kind", kind),
	))
}

// RecordError records a failed invocation by error code.
func (m *StepMetrics) RecordError(ctx context.Context, step, code string) {
	m.stepErrors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("step", step),
		attribute.String("code", code),
	))
}

// RecordFanOut records how many items a fan-out produced.
func (m *StepMetrics) RecordFanOut(ctx context.Context, step string, items int) {
	m.fanOutItems.Record(ctx, int64(items), metric.WithAttributes(
		attribute.String("step", step),
	))
}
