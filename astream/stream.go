package astream

import (
	"context"
	"iter"
	"slices"

	"github.com/kbukum/amalfi/pipeline"
	"github.com/kbukum/amalfi/seq"
	"github.com/kbukum/amalfi/stream"
)

// Stream is a lazy, single-pass async sequence of T. It implements
// seq.AsyncIterator.
type Stream[T any] struct {
	it seq.AsyncIterator[T]
}

// --- Constructors ---

// From wraps an existing async iterator.
func From[T any](it seq.AsyncIterator[T]) *Stream[T] {
	return &Stream[T]{it: it}
}

// FromSlice streams items, checking the context before each one.
func FromSlice[T any](items []T) *Stream[T] {
	return From(seq.AsyncFromSlice(items))
}

// Of streams its arguments.
func Of[T any](items ...T) *Stream[T] {
	return FromSlice(items)
}

// FromSeq pulls from src lazily.
func FromSeq[T any](src iter.Seq[T]) *Stream[T] {
	return From(seq.ToAsync(seq.FromSeq(src)))
}

// FromChannel receives from ch until it is closed or the context ends.
func FromChannel[T any](ch <-chan T) *Stream[T] {
	return From(seq.AsyncFromChannel(ch))
}

// FromFunc streams values produced by next until it reports false or an
// error. closer may be nil.
func FromFunc[T any](next func(context.Context) (T, bool, error), closer func() error) *Stream[T] {
	return From(seq.AsyncFromFunc(next, closer))
}

// FromStream lifts a sync stream into an async one.
func FromStream[T any](s *stream.Stream[T]) *Stream[T] {
	return From(seq.ToAsync[T](s))
}

// --- seq.AsyncIterator ---

// Next pulls the next value.
func (s *Stream[T]) Next(ctx context.Context) (T, bool, error) { return s.it.Next(ctx) }

// Close releases the stream and everything upstream of it.
func (s *Stream[T]) Close() error { return s.it.Close() }

// --- Terminals ---

// Collect drains the stream into a slice. On error it returns the values
// produced before the failure along with the error.
func (s *Stream[T]) Collect(ctx context.Context) ([]T, error) {
	defer s.Close()
	var result []T
	for {
		val, ok, err := s.Next(ctx)
		if err != nil {
			return result, err
		}
		if !ok {
			return result, nil
		}
		result = append(result, val)
	}
}

// CollectInto drains s and passes the slice to into.
func CollectInto[T, R any](ctx context.Context, s *Stream[T], into func([]T) R) (R, error) {
	items, err := s.Collect(ctx)
	if err != nil {
		var zero R
		return zero, err
	}
	return into(items), nil
}

// All returns a range-over-func view of s bound to ctx. A failure is
// yielded as the final pair. The stream is closed when the loop ends.
func (s *Stream[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return seq.AsyncAll[T](ctx, s)
}

// ToPipe drains s and seeds a pipeline with the collected values.
func (s *Stream[T]) ToPipe(ctx context.Context) (*pipeline.Pipeline[iter.Seq[T], iter.Seq[T]], error) {
	items, err := s.Collect(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.New(slices.Values(items)), nil
}

// ToAPipe drains s and seeds an async pipeline with the collected values.
func (s *Stream[T]) ToAPipe(ctx context.Context) (*pipeline.Async[iter.Seq[T], iter.Seq[T]], error) {
	items, err := s.Collect(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.NewAsync(slices.Values(items)), nil
}
