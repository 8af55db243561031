package ops

import (
	"context"
	"iter"
	"slices"

	"github.com/kbukum/amalfi/fn"
)

// Map returns a lazy transform yielding f(v) for each v.
func Map[I, O any](f func(I) O) func(iter.Seq[I]) iter.Seq[O] {
	return func(src iter.Seq[I]) iter.Seq[O] {
		return func(yield func(O) bool) {
			for v := range src {
				if !yield(f(v)) {
					return
				}
			}
		}
	}
}

// TryMap returns a lazy transform yielding f(v) for each v. The first error
// is yielded with a zero value and ends the sequence.
func TryMap[I, O any](f fn.Func[I, O]) func(iter.Seq[I]) iter.Seq2[O, error] {
	return func(src iter.Seq[I]) iter.Seq2[O, error] {
		return func(yield func(O, error) bool) {
			for v := range src {
				out, err := f(v)
				if !yield(out, err) || err != nil {
					return
				}
			}
		}
	}
}

// AMap returns a transform that calls f on every item concurrently and
// returns the results in input order. The first error aborts the call.
func AMap[I, O any](f fn.AsyncFunc[I, O]) fn.AsyncFunc[iter.Seq[I], []O] {
	return func(ctx context.Context, src iter.Seq[I]) ([]O, error) {
		return fanOut(ctx, slices.Collect(src), f)
	}
}

// AMapSafe is AMap where each failing call's error is stored in its slot
// instead of aborting the call.
func AMapSafe[I, O any](f fn.AsyncFunc[I, O]) fn.AsyncFunc[iter.Seq[I], []Result[O]] {
	return func(ctx context.Context, src iter.Seq[I]) ([]Result[O], error) {
		return fanOutSafe(ctx, slices.Collect(src), f), nil
	}
}
