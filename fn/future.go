package fn

import "context"

// Future is a value that becomes available later.
type Future[T any] interface {
	Await(ctx context.Context) (T, error)
}

type ready[T any] struct {
	val T
	err error
}

func (r ready[T]) Await(context.Context) (T, error) { return r.val, r.err }

// Ready returns an already-resolved future.
func Ready[T any](v T) Future[T] { return ready[T]{val: v} }

// Failed returns a future that resolves to err.
func Failed[T any](err error) Future[T] { return ready[T]{err: err} }

type promise[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func (p *promise[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.val, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Go starts f(ctx, in) on a new goroutine and returns its future.
// A panic in f resolves the future with a PANIC error.
func Go[I, O any](ctx context.Context, f AsyncFunc[I, O], in I) Future[O] {
	p := &promise[O]{done: make(chan struct{})}
	call := Protect(f)
	go func() {
		defer close(p.done)
		p.val, p.err = call(ctx, in)
	}()
	return p
}
