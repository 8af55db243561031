package ops

import (
	"context"
	"iter"

	"github.com/kbukum/amalfi/fn"
)

// Reduce returns a left fold of f over a sequence, starting from initial.
func Reduce[T, R any](f func(R, T) R, initial R) func(iter.Seq[T]) R {
	return func(src iter.Seq[T]) R {
		acc := initial
		for v := range src {
			acc = f(acc, v)
		}
		return acc
	}
}

// AReduce is Reduce with an async reducer. Steps run one after another,
// since each depends on the previous accumulator.
func AReduce[T, R any](f fn.AsyncReducer[R, T], initial R) fn.AsyncFunc[iter.Seq[T], R] {
	return func(ctx context.Context, src iter.Seq[T]) (R, error) {
		acc := initial
		for v := range src {
			if err := ctx.Err(); err != nil {
				return acc, err
			}
			next, err := f(ctx, acc, v)
			if err != nil {
				return acc, err
			}
			acc = next
		}
		return acc, nil
	}
}
