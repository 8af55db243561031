package pipeline

import (
	"context"

	"github.com/kbukum/amalfi/fn"
)

// Async is a chain from I to O in the asynchronous calling convention.
type Async[I, O any] struct {
	input I
	fn    fn.AsyncFunc[I, O]
}

// NewAsync creates an async pipeline with the identity function.
func NewAsync[T any](input T) *Async[T, T] {
	return OfAsync(input, fn.Identity[T]())
}

// OfAsync creates an async pipeline from an input and a step. Sync steps are
// normalized.
func OfAsync[I, O any](input I, s fn.Step[I, O]) *Async[I, O] {
	return &Async[I, O]{input: input, fn: s.Async()}
}

// FromSync converts a synchronous pipeline, keeping its input.
func FromSync[I, O any](p *Pipeline[I, O]) *Async[I, O] {
	return &Async[I, O]{input: p.input, fn: fn.AsAsync(p.fn)}
}

// ThenAsync appends an infallible synchronous step.
func ThenAsync[I, O, U any](p *Async[I, O], f func(O) U) *Async[I, U] {
	return StepAsync(p, fn.Pure(f))
}

// StepAsync appends a sync or async step. The context is checked before the
// step runs, so cancellation stops the chain at the next boundary.
func StepAsync[I, O, U any](p *Async[I, O], s fn.Step[O, U]) *Async[I, U] {
	return &Async[I, U]{input: p.input, fn: then(p.fn, s.Async())}
}

// AwaitAsync appends an async function as a step.
func AwaitAsync[I, O, U any](p *Async[I, O], f fn.AsyncFunc[O, U]) *Async[I, U] {
	return StepAsync(p, fn.Async(f))
}

// ConcatAsync feeds p's output into other's function. other's input is
// ignored; the result keeps p's input.
func ConcatAsync[I, O, U any](p *Async[I, O], other *Async[O, U]) *Async[I, U] {
	return &Async[I, U]{input: p.input, fn: then(p.fn, other.fn)}
}

func then[I, O, U any](prev fn.AsyncFunc[I, O], next fn.AsyncFunc[O, U]) fn.AsyncFunc[I, U] {
	return func(ctx context.Context, v I) (U, error) {
		var zero U
		mid, err := prev(ctx, v)
		if err != nil {
			return zero, err
		}
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		return next(ctx, mid)
	}
}

// Run executes the chain against the stored input.
func (p *Async[I, O]) Run(ctx context.Context) (O, error) {
	return p.Call(ctx, p.input)
}

// Call executes the chain against in without touching the stored input.
func (p *Async[I, O]) Call(ctx context.Context, in I) (O, error) {
	if err := ctx.Err(); err != nil {
		var zero O
		return zero, err
	}
	return p.fn(ctx, in)
}

// Input returns the stored input.
func (p *Async[I, O]) Input() I { return p.input }

// Func returns the composed function.
func (p *Async[I, O]) Func() fn.AsyncFunc[I, O] { return p.fn }

// WithInput replaces the stored input in place and returns p.
func (p *Async[I, O]) WithInput(v I) *Async[I, O] {
	p.input = v
	return p
}
