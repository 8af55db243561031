package astream

import (
	"context"

	"github.com/kbukum/amalfi/errors"
	"github.com/kbukum/amalfi/fn"
	"github.com/kbukum/amalfi/ops"
	"github.com/kbukum/amalfi/seq"
)

// Map transforms each value with step. The first error ends the stream.
func Map[T, U any](s *Stream[T], step fn.Step[T, U]) *Stream[U] {
	return From[U](&mapIter[T, U]{source: s, fn: step.Async()})
}

// Filter keeps values for which pred reports true. A zero pred drops nil
// values. fn.Identity[bool]() is also the zero step, so on a Stream[bool]
// it keeps false values too; pass an explicit predicate to drop them.
func (s *Stream[T]) Filter(pred fn.Step[T, bool]) *Stream[T] {
	f := pred.Async()
	if pred.IsZero() {
		f = func(_ context.Context, v T) (bool, error) { return !fn.IsNil(v), nil }
	}
	return From[T](&filterIter[T]{source: s, fn: f})
}

// Take yields at most the first n values without pulling past the n-th.
func (s *Stream[T]) Take(n int) *Stream[T] {
	return From[T](&takeIter[T]{source: s, n: n})
}

// TakeWhile yields values until pred first reports false.
func (s *Stream[T]) TakeWhile(pred fn.Step[T, bool]) *Stream[T] {
	return From[T](&takeWhileIter[T]{source: s, fn: pred.Async()})
}

// Default yields v alone when s is empty and passes s through otherwise.
func (s *Stream[T]) Default(v T) *Stream[T] {
	return From[T](&defaultIter[T]{source: s, def: v})
}

// Tap calls f on each value as it passes. An error from f ends the stream.
func (s *Stream[T]) Tap(f func(context.Context, T) error) *Stream[T] {
	return Map(s, fn.Async(ops.ATap(f)))
}

// Reduce folds s into a single-value stream, one step at a time.
func Reduce[T, R any](s *Stream[T], f fn.AsyncReducer[R, T], initial R) *Stream[R] {
	return From[R](&reduceIter[T, R]{source: s, acc: initial, fn: f})
}

// Starmap calls f with each value's tuple elements as arguments. A value
// that is not a fn.Tuple ends the stream with a SHAPE error.
func Starmap[T, O any](s *Stream[T], f fn.AsyncVFunc[O]) *Stream[O] {
	return Map(s, fn.Async(func(ctx context.Context, v T) (O, error) {
		args, err := fn.Unpack(v)
		if err != nil {
			var zero O
			return zero, err
		}
		return f(ctx, args...)
	}))
}

// Chunk groups consecutive values into slices of size; the last may be
// shorter. It panics with a MISUSE error if size is not positive.
func Chunk[T any](s *Stream[T], size int) *Stream[[]T] {
	if size <= 0 {
		panic(errors.InvalidChunkSize(size))
	}
	return From[[]T](&chunkIter[T]{source: s, size: size})
}

// ChunkAll collects the whole stream into a single chunk. An empty stream
// yields one empty chunk.
func ChunkAll[T any](s *Stream[T]) *Stream[[]T] {
	return From[[]T](&chunkIter[T]{source: s})
}

// MapZip pairs each value with step applied to it.
func MapZip[T, U any](s *Stream[T], step fn.Step[T, U]) *Stream[fn.Pair[T, U]] {
	f := step.Async()
	return Map(s, fn.Async(func(ctx context.Context, v T) (fn.Pair[T, U], error) {
		out, err := f(ctx, v)
		if err != nil {
			return fn.Pair[T, U]{}, err
		}
		return fn.PairOf(v, out), nil
	}))
}

// ZipWith pairs values from s and other by position, stopping when either
// runs out.
func ZipWith[T, U any](s *Stream[T], other *Stream[U]) *Stream[fn.Pair[T, U]] {
	return From[fn.Pair[T, U]](&zipIter[T, U]{left: s, right: other})
}

// Await resolves each future in order.
func Await[T any](s *Stream[fn.Future[T]]) *Stream[T] {
	return Map(s, fn.Async(func(ctx context.Context, f fn.Future[T]) (T, error) {
		return f.Await(ctx)
	}))
}

// --- Iterator implementations ---

type mapIter[T, U any] struct {
	source seq.AsyncIterator[T]
	fn     fn.AsyncFunc[T, U]
	done   bool
}

func (it *mapIter[T, U]) Next(ctx context.Context) (result U, ok bool, err error) {
	var zero U
	if it.done {
		return zero, false, nil
	}
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		it.done = true
		return zero, false, err
	}
	out, err := it.fn(ctx, val)
	if err != nil {
		it.done = true
		return zero, false, err
	}
	return out, true, nil
}

func (it *mapIter[T, U]) Close() error { return it.source.Close() }

type filterIter[T any] struct {
	source seq.AsyncIterator[T]
	fn     fn.AsyncFunc[T, bool]
	done   bool
}

func (it *filterIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	var zero T
	if it.done {
		return zero, false, nil
	}
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			it.done = true
			return zero, false, err
		}
		keep, err := it.fn(ctx, val)
		if err != nil {
			it.done = true
			return zero, false, err
		}
		if keep {
			return val, true, nil
		}
	}
}

func (it *filterIter[T]) Close() error { return it.source.Close() }

type takeIter[T any] struct {
	source seq.AsyncIterator[T]
	n      int
	count  int
	done   bool
}

func (it *takeIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	var zero T
	if it.done || it.count >= it.n {
		return zero, false, nil
	}
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		it.done = true
		return zero, false, err
	}
	it.count++
	return val, true, nil
}

func (it *takeIter[T]) Close() error { return it.source.Close() }

type takeWhileIter[T any] struct {
	source seq.AsyncIterator[T]
	fn     fn.AsyncFunc[T, bool]
	done   bool
}

func (it *takeWhileIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	var zero T
	if it.done {
		return zero, false, nil
	}
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		it.done = true
		return zero, false, err
	}
	keep, err := it.fn(ctx, val)
	if err != nil {
		it.done = true
		return zero, false, err
	}
	if !keep {
		it.done = true
		return zero, false, nil
	}
	return val, true, nil
}

func (it *takeWhileIter[T]) Close() error { return it.source.Close() }

type defaultIter[T any] struct {
	source  seq.AsyncIterator[T]
	def     T
	started bool
	done    bool
}

func (it *defaultIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	if it.done {
		var zero T
		return zero, false, nil
	}
	val, ok, err := it.source.Next(ctx)
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

type reduceIter[T, R any] struct {
	source seq.AsyncIterator[T]
	acc    R
	fn     fn.AsyncReducer[R, T]
	done   bool
}

func (it *reduceIter[T, R]) Next(ctx context.Context) (result R, ok bool, err error) {
	var zero R
	if it.done {
		return zero, false, nil
	}
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil {
			it.done = true
			return zero, false, err
		}
		if !ok {
			it.done = true
			return it.acc, true, nil
		}
		if it.acc, err = it.fn(ctx, it.acc, val); err != nil {
			it.done = true
			return zero, false, err
		}
	}
}

func (it *reduceIter[T, R]) Close() error { return it.source.Close() }

type chunkIter[T any] struct {
	source seq.AsyncIterator[T]
	size   int // 0 means the whole stream
	done   bool
}

func (it *chunkIter[T]) Next(ctx context.Context) (result []T, ok bool, err error) {
	if it.done {
		return nil, false, nil
	}

	var chunk []T
	for it.size == 0 || len(chunk) < it.size {
		val, ok, err := it.source.Next(ctx)
		if err != nil {
			it.done = true
			return nil, false, err
		}
		if !ok {
			it.done = true
			if it.size == 0 {
				return append([]T{}, chunk...), true, nil
			}
			if len(chunk) > 0 {
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
	left  seq.AsyncIterator[T]
	right seq.AsyncIterator[U]
	done  bool
}

func (it *zipIter[T, U]) Next(ctx context.Context) (result fn.Pair[T, U], ok bool, err error) {
	var zero fn.Pair[T, U]
	if it.done {
		return zero, false, nil
	}
	a, ok, err := it.left.Next(ctx)
	if err != nil || !ok {
		it.done = true
		return zero, false, err
	}
	b, ok, err := it.right.Next(ctx)
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
