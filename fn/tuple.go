package fn

import "github.com/kbukum/amalfi/errors"

// Tuple is a fixed-arity group of values that starmap can unpack into
// positional arguments.
type Tuple interface {
	Values() []any
}

// Pair is a 2-tuple.
type Pair[A, B any] struct {
	First  A
	Second B
}

// PairOf builds a Pair.
func PairOf[A, B any](a A, b B) Pair[A, B] { return Pair[A, B]{First: a, Second: b} }

// Values implements Tuple.
func (p Pair[A, B]) Values() []any { return []any{p.First, p.Second} }

// Triple is a 3-tuple.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// TripleOf builds a Triple.
func TripleOf[A, B, C any](a A, b B, c C) Triple[A, B, C] {
	return Triple[A, B, C]{First: a, Second: b, Third: c}
}

// Values implements Tuple.
func (t Triple[A, B, C]) Values() []any { return []any{t.First, t.Second, t.Third} }

// Unpack returns the positional values of item, or a SHAPE error naming
// item's type when it is not a Tuple.
func Unpack(item any) ([]any, error) {
	if t, ok := item.(Tuple); ok {
		return t.Values(), nil
	}
	return nil, errors.NotTuple(item)
}
