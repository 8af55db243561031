package instrument

import (
	"context"
	stderrors "errors"

	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/kbukum/amalfi/logger"
	"github.com/kbukum/amalfi/observability"
)

// Telemetry bundles the logger and providers built by Setup.
type Telemetry struct {
	Logger         *logger.Logger
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider

	shutdowns []func(context.Context) error
}

// Setup builds the logger and, when enabled, the OTLP tracer and meter
// providers described by cfg. Disabled exporters get no-op providers.
func Setup(ctx context.Context, cfg *Config) (*Telemetry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logger.New(&cfg.Logging, cfg.Name)
	tel := &Telemetry{
		Logger:         log,
		TracerProvider: tracenoop.NewTracerProvider(),
		MeterProvider:  metricnoop.NewMeterProvider(),
	}

	if cfg.Tracing.Enabled {
		tp, err := observability.InitTracer(ctx, observability.TracerConfig{
			ServiceName:    cfg.Name,
			ServiceVersion: cfg.Version,
			Environment:    cfg.Environment,
			Endpoint:       cfg.Tracing.Endpoint,
			Insecure:       cfg.Tracing.Insecure,
			SampleRate:     cfg.Tracing.SampleRate,
		}, log)
		if err != nil {
			return nil, err
		}
		tel.TracerProvider = tp
		tel.shutdowns = append(tel.shutdowns, tp.Shutdown)
	}

	if cfg.Metrics.Enabled {
		mp, err := observability.InitMeter(ctx, observability.MeterConfig{
			ServiceName:    cfg.Name,
			ServiceVersion: cfg.Version,
			Environment:    cfg.Environment,
			Endpoint:       cfg.Metrics.Endpoint,
			Insecure:       cfg.Metrics.Insecure,
			Interval:       cfg.Metrics.Interval,
		}, log)
		if err != nil {
			return nil, stderrors.Join(err, tel.Shutdown(ctx))
		}
		tel.MeterProvider = mp
		tel.shutdowns = append(tel.shutdowns, mp.Shutdown)
	}

	return tel, nil
}

// Options returns decorator options bound to the telemetry.
func (t *Telemetry) Options() []Option {
	return []Option{
		WithLogger(t.Logger),
		WithTracerProvider(t.TracerProvider),
		WithMeterProvider(t.MeterProvider),
	}
}

// Shutdown flushes and stops every provider Setup started.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(t.shutdowns) - 1; i >= 0; i-- {
		if err := t.shutdowns[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	t.shutdowns = nil
	return stderrors.Join(errs...)
}
