package ops

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/kbukum/amalfi/fn"
)

// fanOut calls f on every item concurrently and returns the results in input
// order. The first error is returned and cancels the context passed to the
// remaining calls; calls already running are waited for but not interrupted.
func fanOut[I, O any](ctx context.Context, items []I, f fn.AsyncFunc[I, O]) ([]O, error) {
	out := make([]O, len(items))
	g, gctx := errgroup.WithContext(ctx)
	call := fn.Protect(f)
	for i, item := range items {
		g.Go(func() error {
			v, err := call(gctx, item)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// fanOutSafe calls f on every item concurrently and records each outcome in
// its slot. It never fails.
func fanOutSafe[I, O any](ctx context.Context, items []I, f fn.AsyncFunc[I, O]) []Result[O] {
	out := make([]Result[O], len(items))
	var g errgroup.Group
	call := fn.Protect(f)
	for i, item := range items {
		g.Go(func() error {
			v, err := call(ctx, item)
			out[i] = Result[O]{Value: v, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return out
}
