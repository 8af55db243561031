package fn

import "context"

// Kind tags the variant of a Step.
type Kind uint8

const (
	// KindIdentity is the pass-through variant and the zero value.
	KindIdentity Kind = iota
	// KindSync wraps a Func.
	KindSync
	// KindAsync wraps an AsyncFunc.
	KindAsync
)

func (k Kind) String() string {
	switch k {
	case KindSync:
		return "sync"
	case KindAsync:
		return "async"
	default:
		return "identity"
	}
}

// Step is a unary transformation tagged as identity, synchronous or
// asynchronous at construction. Steps are immutable values.
type Step[I, O any] struct {
	kind  Kind
	sync  Func[I, O]
	async AsyncFunc[I, O]
}

// Identity returns the pass-through step.
func Identity[T any]() Step[T, T] {
	return Step[T, T]{}
}

// Pure creates a synchronous step from an infallible function.
// A nil f yields the identity step.
func Pure[I, O any](f func(I) O) Step[I, O] {
	if f == nil {
		return Step[I, O]{}
	}
	return Sync(Lift(f))
}

// Sync creates a synchronous step. A nil f yields the identity step.
func Sync[I, O any](f Func[I, O]) Step[I, O] {
	if f == nil {
		return Step[I, O]{}
	}
	return Step[I, O]{kind: KindSync, sync: f}
}

// Async creates an asynchronous step. A nil f yields the identity step.
func Async[I, O any](f AsyncFunc[I, O]) Step[I, O] {
	if f == nil {
		return Step[I, O]{}
	}
	return Step[I, O]{kind: KindAsync, async: f}
}

// Kind returns the variant tag.
func (s Step[I, O]) Kind() Kind { return s.kind }

// IsZero reports whether s is the identity variant.
func (s Step[I, O]) IsZero() bool { return s.kind == KindIdentity }

// Func returns the synchronous form of s. It reports false for async steps.
func (s Step[I, O]) Func() (Func[I, O], bool) {
	switch s.kind {
	case KindSync:
		return s.sync, true
	case KindAsync:
		return nil, false
	default:
		return passThrough[I, O], true
	}
}

// Async returns s normalized to the asynchronous calling convention.
func (s Step[I, O]) Async() AsyncFunc[I, O] {
	switch s.kind {
	case KindAsync:
		return s.async
	case KindSync:
		return AsAsync(s.sync)
	default:
		return AsAsync(passThrough[I, O])
	}
}

// Call invokes s on in.
func (s Step[I, O]) Call(ctx context.Context, in I) (O, error) {
	switch s.kind {
	case KindAsync:
		return s.async(ctx, in)
	case KindSync:
		return s.sync(in)
	default:
		return passThrough[I, O](in)
	}
}

// Compose returns g after f. The result is synchronous when neither part is
// asynchronous; otherwise it is asynchronous and checks ctx between the two.
func Compose[A, B, C any](f Step[A, B], g Step[B, C]) Step[A, C] {
	if f.kind == KindIdentity && g.kind == KindIdentity {
		return Step[A, C]{}
	}
	if f.kind != KindAsync && g.kind != KindAsync {
		ff, _ := f.Func()
		gg, _ := g.Func()
		return Sync(func(a A) (C, error) {
			b, err := ff(a)
			if err != nil {
				var zero C
				return zero, err
			}
			return gg(b)
		})
	}
	ff, gg := f.Async(), g.Async()
	return Async(func(ctx context.Context, a A) (C, error) {
		var zero C
		b, err := ff(ctx, a)
		if err != nil {
			return zero, err
		}
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		return gg(ctx, b)
	})
}
