package ops

import (
	"context"
	"iter"

	"github.com/kbukum/amalfi/fn"
)

// Tap calls f for its side effect and returns the value unchanged.
func Tap[T any](f func(T)) func(T) T {
	return func(v T) T {
		f(v)
		return v
	}
}

// ATap is Tap with an async side effect. An error from f propagates.
func ATap[T any](f func(context.Context, T) error) fn.AsyncFunc[T, T] {
	return func(ctx context.Context, v T) (T, error) {
		if err := f(ctx, v); err != nil {
			var zero T
			return zero, err
		}
		return v, nil
	}
}

// TapEach applies Tap(f) to every item and materializes the result.
func TapEach[T any](f func(T)) func(iter.Seq[T]) []T {
	tap := Tap(f)
	return func(src iter.Seq[T]) []T {
		var out []T
		for v := range src {
			out = append(out, tap(v))
		}
		return out
	}
}
