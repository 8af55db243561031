// Package ops provides curried operators usable as pipeline and stream steps.
//
// Each operator is a factory: it takes its configuration (a mapper, a
// predicate, a reducer) and returns a one-argument function.
//
// Lazy (no work until the result is ranged over):
//
//   - Map, TryMap: transform each value
//   - Filter, Narrow, OfType: keep matching values
//   - Starmap, Starmap2: unpack tuples into positional arguments
//
// Materializing:
//
//   - Collect, ACollect, ToSlice, TryCollect: drain into a slice
//   - Reduce, AReduce: left fold
//   - TapEach: per-item side effect, returned as a slice
//
// Fan-out (one goroutine per item, joined before returning, order preserved):
//
//   - AMap, AMapSafe
//   - AFilter, AFilterSafe
//   - AStarmap, AStarmapSafe
//
// The Safe variants turn per-item errors into data (Result) instead of
// failing the whole call.
//
// # Usage
//
//	p := pipeline.New(slices.Values([]int{1, 2, 3, 4}))
//	evens := pipeline.Then(p, ops.Filter(isEven))
//	total := pipeline.Then(evens, ops.Reduce(add, 0))
//	n, _ := total.Run() // 6
package ops
