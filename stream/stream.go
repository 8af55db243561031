package stream

import (
	"iter"
	"slices"

	"github.com/kbukum/amalfi/pipeline"
	"github.com/kbukum/amalfi/seq"
)

// Stream is a lazy, single-pass sequence of T. It implements seq.Iterator.
type Stream[T any] struct {
	it seq.Iterator[T]
}

// --- Constructors ---

// FromIterator wraps an existing iterator.
func FromIterator[T any](it seq.Iterator[T]) *Stream[T] {
	return &Stream[T]{it: it}
}

// From pulls from src lazily.
func From[T any](src iter.Seq[T]) *Stream[T] {
	return FromIterator(seq.FromSeq(src))
}

// FromSlice streams items.
func FromSlice[T any](items []T) *Stream[T] {
	return FromIterator(seq.FromSlice(items))
}

// Of streams its arguments.
func Of[T any](items ...T) *Stream[T] {
	return FromSlice(items)
}

// FromString streams the runes of s.
func FromString(s string) *Stream[rune] {
	return From(func(yield func(rune) bool) {
		for _, r := range s {
			if !yield(r) {
				return
			}
		}
	})
}

// FromBytes streams the bytes of b.
func FromBytes(b []byte) *Stream[byte] {
	return FromSlice(b)
}

// --- seq.Iterator ---

// Next pulls the next value.
func (s *Stream[T]) Next() (T, bool, error) { return s.it.Next() }

// Close releases the stream and everything upstream of it.
func (s *Stream[T]) Close() error { return s.it.Close() }

// --- Terminals ---

// Collect drains the stream into a slice. On error it returns the values
// produced before the failure along with the error.
func (s *Stream[T]) Collect() ([]T, error) {
	defer s.Close()
	var result []T
	for {
		val, ok, err := s.Next()
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
//
//	set, err := stream.CollectInto(s, toSet)
//	p, err := stream.CollectInto(s, pipeline.New[[]int])
func CollectInto[T, R any](s *Stream[T], into func([]T) R) (R, error) {
	items, err := s.Collect()
	if err != nil {
		var zero R
		return zero, err
	}
	return into(items), nil
}

// All returns a range-over-func view of s. A failure is yielded as the
// final pair. The stream is closed when the loop ends.
func (s *Stream[T]) All() iter.Seq2[T, error] {
	return seq.All[T](s)
}

// ToPipe drains s and seeds a pipeline with the collected values.
func (s *Stream[T]) ToPipe() (*pipeline.Pipeline[iter.Seq[T], iter.Seq[T]], error) {
	items, err := s.Collect()
	if err != nil {
		return nil, err
	}
	return pipeline.New(slices.Values(items)), nil
}

// ToAPipe drains s and seeds an async pipeline with the collected values.
func (s *Stream[T]) ToAPipe() (*pipeline.Async[iter.Seq[T], iter.Seq[T]], error) {
	items, err := s.Collect()
	if err != nil {
		return nil, err
	}
	return pipeline.NewAsync(slices.Values(items)), nil
}
