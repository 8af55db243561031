package ops

import (
	"context"
	"iter"
	"slices"

	"github.com/kbukum/amalfi/fn"
	"github.com/kbukum/amalfi/seq"
)

// Collect turns an iterator-producing function into one returning a slice.
func Collect[I, O any](f func(I) iter.Seq[O]) func(I) []O {
	return func(in I) []O {
		return slices.Collect(f(in))
	}
}

// ACollect turns an async-iterator-producing function into one returning a
// slice. The iterator is closed once drained.
func ACollect[I, O any](f func(I) seq.AsyncIterator[O]) fn.AsyncFunc[I, []O] {
	return func(ctx context.Context, in I) ([]O, error) {
		var out []O
		for v, err := range seq.AsyncAll(ctx, f(in)) {
			if err != nil {
				return out, err
			}
			out = append(out, v)
		}
		return out, nil
	}
}

// ToSlice drains a sequence.
func ToSlice[T any]() func(iter.Seq[T]) []T {
	return slices.Collect[T]
}

// TryCollect drains a fallible sequence, returning what was collected before
// the first error along with it.
func TryCollect[T any]() fn.Func[iter.Seq2[T, error], []T] {
	return func(src iter.Seq2[T, error]) ([]T, error) {
		var out []T
		for v, err := range src {
			if err != nil {
				return out, err
			}
			out = append(out, v)
		}
		return out, nil
	}
}

// Values adapts a slice back into a sequence, for chaining after operators
// that materialize.
func Values[T any]() func([]T) iter.Seq[T] {
	return func(items []T) iter.Seq[T] {
		return slices.Values(items)
	}
}
