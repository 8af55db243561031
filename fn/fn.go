package fn

import (
	"context"
	"reflect"

	"github.com/kbukum/amalfi/errors"
)

// Func is a synchronous unary function that may fail.
type Func[I, O any] func(in I) (O, error)

// AsyncFunc is an asynchronous unary function. It may block and should
// honour ctx cancellation.
type AsyncFunc[I, O any] func(ctx context.Context, in I) (O, error)

// Reducer folds one item into an accumulator.
type Reducer[R, T any] func(acc R, item T) R

// AsyncReducer folds one item into an accumulator asynchronously.
type AsyncReducer[R, T any] func(ctx context.Context, acc R, item T) (R, error)

// VFunc is a synchronous variadic function, the target of starmap.
type VFunc[O any] func(args ...any) (O, error)

// AsyncVFunc is an asynchronous variadic function, the target of astarmap.
type AsyncVFunc[O any] func(ctx context.Context, args ...any) (O, error)

// Lift turns an infallible function into a Func.
func Lift[I, O any](f func(I) O) Func[I, O] {
	return func(in I) (O, error) {
		return f(in), nil
	}
}

// AsAsync wraps a synchronous function into the asynchronous calling
// convention. The wrapped function is invoked directly; ctx is not consulted.
func AsAsync[I, O any](f Func[I, O]) AsyncFunc[I, O] {
	return func(_ context.Context, in I) (O, error) {
		return f(in)
	}
}

// Async lifts r into the asynchronous calling convention.
func (r Reducer[R, T]) Async() AsyncReducer[R, T] {
	return func(_ context.Context, acc R, item T) (R, error) {
		return r(acc, item), nil
	}
}

// Protect returns f with panics recovered into a PANIC error. Used where f
// runs on a goroutine the caller does not own.
func Protect[I, O any](f AsyncFunc[I, O]) AsyncFunc[I, O] {
	return func(ctx context.Context, in I) (out O, err error) {
		defer func() {
			if r := recover(); r != nil {
				var zero O
				out, err = zero, errors.Panic(r)
			}
		}()
		return f(ctx, in)
	}
}

// passThrough returns in as an O, failing when the dynamic type does not fit.
func passThrough[I, O any](in I) (O, error) {
	v := any(in)
	if v == nil {
		var zero O
		return zero, nil
	}
	if out, ok := v.(O); ok {
		return out, nil
	}
	var zero O
	return zero, errors.IdentityMismatch(in, reflect.TypeFor[O]().String())
}

// IsNil reports whether v is nil or a nil pointer, interface, map, slice,
// channel or func.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map,
		reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// Truthy reports whether v counts as true when no predicate is given:
// non-nil, non-zero numbers, true, non-empty strings and containers.
// Structs are truthy unless they are the zero value.
func Truthy(v any) bool {
	if IsNil(v) {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.UnsafePointer:
		return true
	}
	return !rv.IsZero()
}
