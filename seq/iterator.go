package seq

import (
	"context"
	"iter"
)

// Iterator provides synchronous pull-based access to a sequence of values.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next() (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// AsyncIterator provides pull-based access to a sequence whose values may
// take time to produce.
type AsyncIterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// --- Sync sources ---

type sliceIter[T any] struct {
	items []T
	index int
}

func (it *sliceIter[T]) Next() (T, bool, error) {
	if it.index >= len(it.items) {
		var zero T
		return zero, false, nil
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *sliceIter[T]) Close() error {
	it.index = len(it.items)
	return nil
}

// FromSlice iterates over items once.
func FromSlice[T any](items []T) Iterator[T] {
	return &sliceIter[T]{items: items}
}

type pullIter[T any] struct {
	src  iter.Seq[T]
	next func() (T, bool)
	stop func()
	done bool
}

func (it *pullIter[T]) Next() (T, bool, error) {
	if it.done {
		var zero T
		return zero, false, nil
	}
	if it.next == nil {
		it.next, it.stop = iter.Pull(it.src)
	}
	val, ok := it.next()
	if !ok {
		it.done = true
		it.stop()
	}
	return val, ok, nil
}

func (it *pullIter[T]) Close() error {
	it.done = true
	if it.stop != nil {
		it.stop()
	}
	return nil
}

// FromSeq pulls from src. The sequence is not started until the first Next,
// and is stopped on exhaustion or Close.
func FromSeq[T any](src iter.Seq[T]) Iterator[T] {
	return &pullIter[T]{src: src}
}

type funcIter[T any] struct {
	fn     func() (T, bool, error)
	closer func() error
	done   bool
}

func (it *funcIter[T]) Next() (T, bool, error) {
	var zero T
	if it.done {
		return zero, false, nil
	}
	val, ok, err := it.fn()
	if err != nil || !ok {
		it.done = true
		return zero, false, err
	}
	return val, true, nil
}

func (it *funcIter[T]) Close() error {
	it.done = true
	if it.closer != nil {
		c := it.closer
		it.closer = nil
		return c()
	}
	return nil
}

// FromFunc builds an iterator from a next function and an optional closer.
// The iterator ends after fn reports false or an error.
func FromFunc[T any](fn func() (T, bool, error), closer func() error) Iterator[T] {
	return &funcIter[T]{fn: fn, closer: closer}
}

// Range yields the integers in [lo, hi).
func Range(lo, hi int) Iterator[int] {
	n := lo
	return FromFunc(func() (int, bool, error) {
		if n >= hi {
			return 0, false, nil
		}
		n++
		return n - 1, true, nil
	}, nil)
}

// All adapts it to a range-over-func sequence. Iteration stops at the first
// error, which is yielded with a zero value. The iterator is closed when the
// loop ends.
func All[T any](it Iterator[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		defer it.Close()
		for {
			val, ok, err := it.Next()
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
