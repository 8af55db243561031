package stream

import (
	"github.com/kbukum/amalfi/errors"
	"github.com/kbukum/amalfi/fn"
	"github.com/kbukum/amalfi/ops"
	"github.com/kbukum/amalfi/seq"
)

// Map transforms each value with f.
func Map[T, U any](s *Stream[T], f func(T) U) *Stream[U] {
	return TryMap(s, fn.Lift(f))
}

// TryMap transforms each value with f. The first error ends the stream;
// values already produced stay valid.
func TryMap[T, U any](s *Stream[T], f fn.Func[T, U]) *Stream[U] {
	return FromIterator[U](&mapIter[T, U]{source: s, fn: f})
}

// Filter keeps values for which pred is true. A nil pred drops nil values.
func (s *Stream[T]) Filter(pred func(T) bool) *Stream[T] {
	if pred == nil {
		pred = func(v T) bool { return !fn.IsNil(v) }
	}
	return FromIterator[T](&filterIter[T]{source: s, fn: pred})
}

// Take yields at most the first n values. The upstream is never pulled past
// the n-th value.
func (s *Stream[T]) Take(n int) *Stream[T] {
	return FromIterator[T](&takeIter[T]{source: s, n: n})
}

// TakeWhile yields values until pred first fails. The failing value is not
// yielded.
func (s *Stream[T]) TakeWhile(pred func(T) bool) *Stream[T] {
	return FromIterator[T](&takeWhileIter[T]{source: s, fn: pred})
}

// Default yields v alone when s is empty and passes s through otherwise.
func (s *Stream[T]) Default(v T) *Stream[T] {
	return FromIterator[T](&defaultIter[T]{source: s, def: v})
}

// Tap calls f on each value as it passes.
func (s *Stream[T]) Tap(f func(T)) *Stream[T] {
	return Map(s, ops.Tap(f))
}

// Starmap calls f with each value's tuple elements as arguments. A value
// that is not a fn.Tuple ends the stream with a SHAPE error.
func Starmap[T, O any](s *Stream[T], f fn.VFunc[O]) *Stream[O] {
	return TryMap(s, func(v T) (O, error) {
		args, err := fn.Unpack(v)
		if err != nil {
			var zero O
			return zero, err
		}
		return f(args...)
	})
}

// Starmap2 is the statically typed Starmap for pairs.
func Starmap2[A, B, O any](s *Stream[fn.Pair[A, B]], f func(A, B) O) *Stream[O] {
	return Map(s, func(p fn.Pair[A, B]) O { return f(p.First, p.Second) })
}

// Chunk groups consecutive values into slices of size; the last may be
// shorter. It panics with a MISUSE error if size is not positive.
func Chunk[T any](s *Stream[T], size int) *Stream[[]T] {
	if size <= 0 {
		panic(errors.InvalidChunkSize(size))
	}
	return FromIterator[[]T](&chunkIter[T]{source: s, size: size})
}

// ChunkAll collects the whole stream into a single chunk. An empty stream
// yields one empty chunk.
func ChunkAll[T any](s *Stream[T]) *Stream[[]T] {
	return FromIterator[[]T](&chunkIter[T]{source: s})
}

// MapZip pairs each value with f applied to it.
func MapZip[T, U any](s *Stream[T], f func(T) U) *Stream[fn.Pair[T, U]] {
	return Map(s, func(v T) fn.Pair[T, U] { return fn.PairOf(v, f(v)) })
}

// ZipWith pairs values from s and other by position, stopping when either
// runs out.
func ZipWith[T, U any](s *Stream[T], other *Stream[U]) *Stream[fn.Pair[T, U]] {
	return FromIterator[fn.Pair[T, U]](&zipIter[T, U]{left: s, right: other})
}

// Reduce folds s into a single-value stream.
func Reduce[T, R any](s *Stream[T], f func(R, T) R, initial R) *Stream[R] {
	return FromIterator[R](&reduceIter[T, R]{source: s, acc: initial, fn: f})
}

// --- Iterator implementations ---

type mapIter[T, U any] struct {
	source seq.Iterator[T]
	fn     fn.Func[T, U]
	done   bool
}

func (it *mapIter[T, U]) Next() (result U, ok bool, err error) {
	var zero U
	if it.done {
		return zero, false, nil
	}
	val, ok, err := it.source.Next()
	if err != nil || !ok {
		it.done = true
		return zero, false, err
	}
	out, err := it.fn(val)
	if err != nil {
		it.done = true
		return zero, false, err
	}
	return out, true, nil
}

func (it *mapIter[T, U]) Close() error { return it.source.Close() }

type filterIter[T any] struct {
	source seq.Iterator[T]
	fn     func(T) bool
	done   bool
}

func (it *filterIter[T]) Next() (result T, ok bool, err error) {
	var zero T
	if it.done {
		return zero, false, nil
	}
	for {
		val, ok, err := it.source.Next()
		if err != nil || !ok {
			it.done = true
			return zero, false, err
		}
		if it.fn(val) {
			return val, true, nil
		}
	}
}

func (it *filterIter[T]) Close() error { return it.source.Close() }

type takeIter[T any] struct {
	source seq.Iterator[T]
	n      int
	count  int
	done   bool
}

func (it *takeIter[T]) Next() (result T, ok bool, err error) {
	var zero T
	if it.done || it.count >= it.n {
		return zero, false, nil
	}
	val, ok, err := it.source.Next()
	if err != nil || !ok {
		it.done = true
		return zero, false, err
	}
	it.count++
	return val, true, nil
}

func (it *takeIter[T]) Close() error { return it.source.Close() }

type takeWhileIter[T any] struct {
	source seq.Iterator[T]
	fn     func(T) bool
	done   bool
}

func (it *takeWhileIter[T]) Next() (result T, ok bool, err error) {
	var zero T
	if it.done {
		return zero, false, nil
	}
	val, ok, err := it.source.Next()
	if err != nil || !ok {
		it.done = true
		return zero, false, err
	}
	if !it.fn(val) {
		it.done = true
		return zero, false, nil
	}
	return val, true, nil
}

func (it *takeWhileIter[T]) Close() error { return it.source.Close() }

type defaultIter[T any] struct {
	source  seq.Iterator[T]
	def     T
	started bool
	done    bool
}

func (it *defaultIter[T]) Next() (result T, ok bool, err error) {
	if it.done {
		var zero T
		return zero, false, nil
	}
	val, ok, err := it.source.Next()
	if !it.started {
		it.started = true
		if err == nil && !ok {
			it.done = true
			return it.def, true, nil
		}
	}
	if err != nil || !ok {
		it.done = true
		var zero T
		return zero, false, err
	}
	return val, true, nil
}

func (it *defaultIter[T]) Close() error { return it.source.Close() }

type chunkIter[T any] struct {
	source seq.Iterator[T]
	size   int // 0 means the whole stream
	done   bool
}

func (it *chunkIter[T]) Next() (result []T, ok bool, err error) {
	if it.done {
		return nil, false, nil
	}
	var chunk []T
	for it.size == 0 || len(chunk) < it.size {
		val, ok, err := it.source.Next()
		if err != nil {
			it.done = true
			return nil, false, err
		}
		if !ok {
			it.done = true
			if len(chunk) > 0 || it.size == 0 {
				if chunk == nil {
					chunk = []T{}
				}
				return chunk, true, nil
			}
			return nil, false, nil
		}
		chunk = append(chunk, val)
	}
	return chunk, true, nil
}

func (it *chunkIter[T]) Close() error { return it.source.Close() }

type zipIter[T, U any] struct {
	left  seq.Iterator[T]
	right seq.Iterator[U]
	done  bool
}

func (it *zipIter[T, U]) Next() (result fn.Pair[T, U], ok bool, err error) {
	var zero fn.Pair[T, U]
	if it.done {
		return zero, false, nil
	}
	a, ok, err := it.left.Next()
	if err != nil || !ok {
		it.done = true
		return zero, false, err
	}
	b, ok, err := it.right.Next()
	if err != nil || !ok {
		it.done = true
		return zero, false, err
	}
	return fn.PairOf(a, b), true, nil
}

func (it *zipIter[T, U]) Close() error {
	lerr := it.left.Close()
	rerr := it.right.Close()
	if lerr != nil {
		return lerr
	}
	return rerr
}

type reduceIter[T, R any] struct {
	source seq.Iterator[T]
	acc    R
	fn     func(R, T) R
	done   bool
}

func (it *reduceIter[T, R]) Next() (result R, ok bool, err error) {
	if it.done {
		var zero R
		return zero, false, nil
	}
	for {
		val, ok, err := it.source.Next()
		if err != nil {
			it.done = true
			var zero R
			return zero, false, err
		}
		if !ok {
			it.done = true
			return it.acc, true, nil
		}
		it.acc = it.fn(it.acc, val)
	}
}

func (it *reduceIter[T, R]) Close() error { return it.source.Close() }
