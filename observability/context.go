package observability

import (
	"context"
	stderrors "errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/amalfi/errors"
)

// StepRun holds observability state for one step invocation.
type StepRun struct {
	Step         string
	Kind         string
	InvocationID string
	StartTime    time.Time
	Metrics      *StepMetrics
}

// NewStepRun creates a run starting now.
// If metrics is nil, metric recording is silently skipped.
func NewStepRun(step, kind, invocationID string, metrics *StepMetrics) *StepRun {
	return &StepRun{
		Step:         step,
		Kind:         kind,
		InvocationID: invocationID,
		StartTime:    time.Now(),
		Metrics:      metrics,
	}
}

type stepRunKey struct{}

// WithStepRun stores r in the context.
func WithStepRun(ctx context.Context, r *StepRun) context.Context {
	return context.WithValue(ctx, stepRunKey{}, r)
}

// StepRunFromContext retrieves the innermost StepRun from context, or nil.
func StepRunFromContext(ctx context.Context) *StepRun {
	if r, ok := ctx.Value(stepRunKey{}).(*StepRun); ok {
		return r
	}
	return nil
}

// RecordItems notes how many items the step running in ctx produced, on
// its span and in the fan-out histogram. It is a no-op outside a step.
func RecordItems(ctx context.Context, items int) {
	r := StepRunFromContext(ctx)
	if r == nil {
		return
	}
	SetSpanAttribute(ctx, AttrItems, items)
	if r.Metrics != nil {
		r.Metrics.RecordFanOut(ctx, r.Step, items)
	}
}

// Start opens the step span on tracer and stores r in the returned context.
func (r *StepRun) Start(ctx context.Context, tracer trace.Tracer) (context.Context, trace.Span) {
	ctx, span := tracer.Start(ctx, r.Step, trace.WithAttributes(
		attribute.String(AttrStepName, r.Step),
		attribute.String(AttrStepKind, r.Kind),
		attribute.String(AttrInvocationID, r.InvocationID),
	))
	return WithStepRun(ctx, r), span
}

// End closes span and records the invocation. It returns the status
// recorded.
func (r *StepRun) End(ctx context.Context, span trace.Span, err error) string {
	duration := time.Since(r.StartTime)
	status := StatusOK
	if err != nil {
		status = StatusError
		code := ErrorCode(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String(AttrErrorCode, code))
		if r.Metrics != nil {
			r.Metrics.RecordError(ctx, r.Step, code)
		}
	}

	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	if r.Metrics != nil {
		r.Metrics.RecordStep(ctx, r.Step, r.Kind, status, duration)
	}
	return status
}

// Duration returns the elapsed time since the run started.
func (r *StepRun) Duration() time.Duration {
	return time.Since(r.StartTime)
}

// ErrorCode classifies err for telemetry: the amalfi error code when there
// is one, CANCELED or DEADLINE for context errors, USER otherwise.
func ErrorCode(err error) string {
	if e, ok := errors.As(err); ok {
		return string(e.Code)
	}
	switch {
	case stderrors.Is(err, context.Canceled):
		return "CANCELED"
	case stderrors.Is(err, context.DeadlineExceeded):
		return "DEADLINE"
	default:
		return "USER"
	}
}
