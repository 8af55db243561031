package seq

import (
	"context"
	"iter"
)

type asyncSliceIter[T any] struct {
	sliceIter[T]
}

func (it *asyncSliceIter[T]) Next(ctx context.Context) (T, bool, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, false, err
	}
	return it.sliceIter.Next()
}

// AsyncFromSlice iterates over items once, checking ctx before each item.
func AsyncFromSlice[T any](items []T) AsyncIterator[T] {
	return &asyncSliceIter[T]{sliceIter[T]{items: items}}
}

// channelIter reads values from a channel until it is closed.
type channelIter[T any] struct {
	ch   <-chan T
	done bool
}

func (it *channelIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.done {
		return zero, false, nil
	}
	select {
	case v, open := <-it.ch:
		if !open {
			it.done = true
			return zero, false, nil
		}
		return v, true, nil
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

func (it *channelIter[T]) Close() error {
	it.done = true
	return nil
}

// AsyncFromChannel receives from ch until it is closed. Close does not drain
// or close ch; the producer owns it.
func AsyncFromChannel[T any](ch <-chan T) AsyncIterator[T] {
	return &channelIter[T]{ch: ch}
}

type asyncFuncIter[T any] struct {
	fn     func(ctx context.Context) (T, bool, error)
	closer func() error
	done   bool
}

func (it *asyncFuncIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.done {
		return zero, false, nil
	}
	val, ok, err := it.fn(ctx)
	if err != nil || !ok {
		it.done = true
		return zero, false, err
	}
	return val, true, nil
}

func (it *asyncFuncIter[T]) Close() error {
	it.done = true
	if it.closer != nil {
		c := it.closer
		it.closer = nil
		return c()
	}
	return nil
}

// AsyncFromFunc builds an async iterator from a next function and an optional
// closer. The iterator ends after fn reports false or an error.
func AsyncFromFunc[T any](fn func(ctx context.Context) (T, bool, error), closer func() error) AsyncIterator[T] {
	return &asyncFuncIter[T]{fn: fn, closer: closer}
}

// AsyncRange yields the integers in [lo, hi), checking ctx before each one.
func AsyncRange(lo, hi int) AsyncIterator[int] {
	return ToAsync(Range(lo, hi))
}

type liftedIter[T any] struct {
	src Iterator[T]
}

func (it *liftedIter[T]) Next(ctx context.Context) (T, bool, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, false, err
	}
	return it.src.Next()
}

func (it *liftedIter[T]) Close() error { return it.src.Close() }

// ToAsync lifts a synchronous iterator into the async calling convention.
func ToAsync[T any](src Iterator[T]) AsyncIterator[T] {
	return &liftedIter[T]{src: src}
}

// AsyncAll adapts it to a range-over-func sequence bound to ctx. Iteration
// stops at the first error, which is yielded with a zero value. The iterator
// is closed when the loop ends.
func AsyncAll[T any](ctx context.Context, it AsyncIterator[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		defer it.Close()
		for {
			val, ok, err := it.Next(ctx)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !ok || !yield(val, nil) {
				return
			}
		}
	}
}
