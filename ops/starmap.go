package ops

import (
	"context"
	"iter"

	"github.com/kbukum/amalfi/fn"
)

// Starmap returns a lazy transform calling f with each item's tuple values
// as positional arguments. A non-tuple item yields a SHAPE error and ends
// the sequence, as does any error from f.
func Starmap[T, O any](f fn.VFunc[O]) func(iter.Seq[T]) iter.Seq2[O, error] {
	return func(src iter.Seq[T]) iter.Seq2[O, error] {
		return func(yield func(O, error) bool) {
			for v := range src {
				args, err := fn.Unpack(v)
				if err != nil {
					var zero O
					yield(zero, err)
					return
				}
				out, err := f(args...)
				if !yield(out, err) || err != nil {
					return
				}
			}
		}
	}
}

// Starmap2 is the statically typed Starmap for pairs.
func Starmap2[A, B, O any](f func(A, B) O) func(iter.Seq[fn.Pair[A, B]]) iter.Seq[O] {
	return Map(func(p fn.Pair[A, B]) O { return f(p.First, p.Second) })
}

// unpackAll validates every item up front so a shape error is reported
// before any call is started.
func unpackAll[T any](src iter.Seq[T]) ([][]any, error) {
	var all [][]any
	for v := range src {
		args, err := fn.Unpack(v)
		if err != nil {
			return nil, err
		}
		all = append(all, args)
	}
	return all, nil
}

func spread[O any](f fn.AsyncVFunc[O]) fn.AsyncFunc[[]any, O] {
	return func(ctx context.Context, args []any) (O, error) {
		return f(ctx, args...)
	}
}

// AStarmap is the concurrent Starmap. Shape errors are reported before any
// call starts; the first error from f aborts the call.
func AStarmap[T, O any](f fn.AsyncVFunc[O]) fn.AsyncFunc[iter.Seq[T], []O] {
	return func(ctx context.Context, src iter.Seq[T]) ([]O, error) {
		args, err := unpackAll(src)
		if err != nil {
			return nil, err
		}
		return fanOut(ctx, args, spread(f))
	}
}

// AStarmapSafe is AStarmap where errors from f are stored in their slot.
// Shape errors still fail the whole call.
func AStarmapSafe[T, O any](f fn.AsyncVFunc[O]) fn.AsyncFunc[iter.Seq[T], []Result[O]] {
	return func(ctx context.Context, src iter.Seq[T]) ([]Result[O], error) {
		args, err := unpackAll(src)
		if err != nil {
			return nil, err
		}
		return fanOutSafe(ctx, args, spread(f)), nil
	}
}
