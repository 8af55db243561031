package instrument

import (
	"context"
	"iter"

	"github.com/rs/zerolog"

	"github.com/kbukum/amalfi/errors"
	"github.com/kbukum/amalfi/fn"
	"github.com/kbukum/amalfi/logger"
	"github.com/kbukum/amalfi/observability"
)

// Step wraps s so every call is traced, measured and logged under name.
// The zero (identity) step is returned unchanged. A sync step stays sync
// and its spans start from context.Background, unless WithAsync is given.
func Step[I, O any](name string, s fn.Step[I, O], opts ...Option) fn.Step[I, O] {
	switch s.Kind() {
	case fn.KindSync:
		if resolve(opts).async {
			return fn.Async(Async(name, s.Async(), opts...))
		}
		f, _ := s.Func()
		return fn.Sync(Func(name, f, opts...))
	case fn.KindAsync:
		return fn.Async(Async(name, s.Async(), opts...))
	default:
		return s
	}
}

// Func wraps a sync function. It has no caller context, so each call starts
// a root span; use Step with WithAsync inside async pipelines.
func Func[I, O any](name string, f fn.Func[I, O], opts ...Option) fn.Func[I, O] {
	p := newRecorder(name, fn.KindSync.String(), opts)
	return func(in I) (O, error) {
		return observe(context.Background(), p, func(context.Context) (O, error) { return f(in) })
	}
}

// Async wraps an async function. The step span becomes the parent of any
// span f starts from its context.
func Async[I, O any](name string, f fn.AsyncFunc[I, O], opts ...Option) fn.AsyncFunc[I, O] {
	p := newRecorder(name, fn.KindAsync.String(), opts)
	return func(ctx context.Context, in I) (O, error) {
		return observe(ctx, p, func(ctx context.Context) (O, error) { return f(ctx, in) })
	}
}

// FanOut wraps a materializing fan-out such as ops.AMap and additionally
// records how many items it produced.
func FanOut[I, O any](name string, f fn.AsyncFunc[iter.Seq[I], []O], opts ...Option) fn.AsyncFunc[iter.Seq[I], []O] {
	p := newRecorder(name, fn.KindAsync.String(), opts)
	return func(ctx context.Context, in iter.Seq[I]) ([]O, error) {
		return observe(ctx, p, func(ctx context.Context) ([]O, error) {
			out, err := f(ctx, in)
			observability.RecordItems(ctx, len(out))
			return out, err
		})
	}
}

func observe[O any](ctx context.Context, p *recorder, call func(context.Context) (O, error)) (O, error) {
	run := observability.NewStepRun(p.name, p.kind, p.newID(), p.metrics)
	ctx, span := run.Start(ctx, p.tracer)

	debug := p.log.Enabled(zerolog.DebugLevel)
	var log *logger.Logger
	if debug {
		log = p.log.WithContext(ctx).WithFields(logger.Fields(logger.FieldInvocation, run.InvocationID))
		log.Debug("step started")
	}

	out, err := call(ctx)
	status := run.End(ctx, span, err)

	var errFields map[string]any
	if err != nil {
		errFields = logger.ErrorFields(observability.ErrorCode(err), err)
		if e, ok := errors.As(err); ok && errors.IsCallerCode(e.Code) {
			p.log.WithContext(ctx).Warn("step misused", errFields)
		}
	}
	if debug {
		fields := logger.DurationFields(run.Duration())
		fields[logger.FieldStatus] = status
		log.Debug("step finished", fields, errFields)
	}

	if err != nil && p.wrap {
		err = errors.StepFailed(p.name, err)
	}
	return out, err
}
