// Package fn defines the function kinds every amalfi pipeline and stream is
// built from, and the normalizer that unifies them.
//
// A synchronous function is a Func (or a plain func(I) O lifted with Pure).
// An asynchronous function is an AsyncFunc: it receives a context and may
// block. Step is a sealed tagged union over the two, chosen once when the
// step is registered rather than inspected on every call:
//
//	double := fn.Pure(func(n int) int { return n * 2 })
//	fetch := fn.Async(func(ctx context.Context, id string) (User, error) { ... })
//	both := fn.Compose(parse, fetch) // async, because fetch is
//
// The zero Step is the identity variant and passes its input through.
package fn
