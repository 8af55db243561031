// Package astream provides Stream, the async counterpart of stream.Stream.
//
// Steps are fn.Step values, so a combinator accepts a plain sync function,
// a fallible one or a context-aware async one interchangeably. Items are
// processed one at a time in order; the context passed to a terminal flows
// through every step and is checked between items.
//
//	s := astream.FromSlice([]string{"a", "b"})
//	up := astream.Map(s, fn.Async(fetch)).Filter(fn.Pure(nonEmpty))
//	out, err := up.Collect(ctx)
//
// For concurrent per-item work use ops.AMap as a pipeline step instead.
package astream
