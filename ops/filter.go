package ops

import (
	"context"
	"iter"
	"slices"

	"github.com/kbukum/amalfi/fn"
)

// Filter returns a lazy transform keeping values for which pred is true.
// A nil pred keeps only truthy values (see fn.Truthy).
func Filter[T any](pred func(T) bool) func(iter.Seq[T]) iter.Seq[T] {
	if pred == nil {
		pred = func(v T) bool { return fn.Truthy(v) }
	}
	return func(src iter.Seq[T]) iter.Seq[T] {
		return func(yield func(T) bool) {
			for v := range src {
				if pred(v) && !yield(v) {
					return
				}
			}
		}
	}
}

// Narrow returns a lazy transform keeping the values guard accepts, as the
// narrower type S.
func Narrow[T, S any](guard func(T) (S, bool)) func(iter.Seq[T]) iter.Seq[S] {
	return func(src iter.Seq[T]) iter.Seq[S] {
		return func(yield func(S) bool) {
			for v := range src {
				if s, ok := guard(v); ok && !yield(s) {
					return
				}
			}
		}
	}
}

// OfType keeps the values whose dynamic type is S.
//
//	strs := ops.OfType[string, any]()(mixed)
func OfType[S, T any]() func(iter.Seq[T]) iter.Seq[S] {
	return Narrow(func(v T) (S, bool) {
		s, ok := any(v).(S)
		return s, ok
	})
}

// AFilter returns a transform that evaluates pred on every item concurrently
// and keeps, in input order, the items whose result is true. The first
// error aborts the call.
func AFilter[T any](pred fn.AsyncFunc[T, bool]) fn.AsyncFunc[iter.Seq[T], []T] {
	return func(ctx context.Context, src iter.Seq[T]) ([]T, error) {
		items := slices.Collect(src)
		keep, err := fanOut(ctx, items, pred)
		if err != nil {
			return nil, err
		}
		out := make([]T, 0, len(items))
		for i, item := range items {
			if keep[i] {
				out = append(out, item)
			}
		}
		return out, nil
	}
}

// AFilterSafe is AFilter where an item whose predicate failed is kept with
// the error attached, instead of aborting the call.
func AFilterSafe[T any](pred fn.AsyncFunc[T, bool]) fn.AsyncFunc[iter.Seq[T], []Result[T]] {
	return func(ctx context.Context, src iter.Seq[T]) ([]Result[T], error) {
		items := slices.Collect(src)
		keep := fanOutSafe(ctx, items, pred)
		out := make([]Result[T], 0, len(items))
		for i, item := range items {
			switch {
			case keep[i].Err != nil:
				out = append(out, Result[T]{Value: item, Err: keep[i].Err})
			case keep[i].Value:
				out = append(out, Result[T]{Value: item})
			}
		}
		return out, nil
	}
}
