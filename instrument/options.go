package instrument

import (
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/amalfi/logger"
	"github.com/kbukum/amalfi/observability"
)

type options struct {
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	log            *logger.Logger
	newID          func() string
	stepErrors     bool
	async          bool
}

// Option configures a decorator.
type Option func(*options)

// WithTracerProvider sets the provider spans are created on. The global
// provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// WithMeterProvider sets the provider metrics are recorded on. The global
// provider is used otherwise.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meterProvider = mp }
}

// WithLogger sets the logger for debug output. Nothing is logged otherwise.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithIDGenerator replaces the uuid invocation id generator.
func WithIDGenerator(gen func() string) Option {
	return func(o *options) { o.newID = gen }
}

// WithStepErrors wraps every error a step returns in a STEP_FAILED
// *errors.Error naming the step. errors.Is still finds the original error.
func WithStepErrors() Option {
	return func(o *options) { o.stepErrors = true }
}

// WithAsync makes Step return an async step for sync input, so the span is
// parented on the caller's context instead of starting a new trace.
func WithAsync() Option {
	return func(o *options) { o.async = true }
}

func resolve(opts []Option) options {
	o := options{newID: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// recorder is the resolved instrumentation for one named step.
type recorder struct {
	name    string
	kind    string
	tracer  trace.Tracer
	metrics *observability.StepMetrics
	log     *logger.Logger
	newID   func() string
	wrap    bool
}

func newRecorder(name, kind string, opts []Option) *recorder {
	o := resolve(opts)
	log := o.log
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("instrument").WithFields(logger.Fields(
		logger.FieldStep, name,
		logger.FieldStepKind, kind,
	))
	p := &recorder{
		name:   name,
		kind:   kind,
		tracer: observability.Tracer(o.tracerProvider),
		log:    log,
		newID:  o.newID,
		wrap:   o.stepErrors,
	}
	metrics, err := observability.NewStepMetrics(observability.Meter(o.meterProvider))
	if err != nil {
		log.Warn("step metrics disabled", logger.MergeWithError(nil, err))
	} else {
		p.metrics = metrics
	}
	return p
}
