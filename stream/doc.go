// Package stream provides Stream, a lazy single-pass sequence with a fluent
// set of combinators.
//
// Every combinator returns a new Stream that pulls from the previous one on
// demand. Nothing runs until a terminal (Collect, CollectInto, All, ToPipe)
// pulls values. Streams are not replayable: once drained, collecting the
// same Stream again yields nothing. Re-source from the underlying container
// to iterate twice.
//
//	s := stream.FromSlice([]int{1, 2, 3, 4})
//	evens := stream.Map(s, addOne).Filter(isEven)
//	out, err := evens.Collect() // [2 4]
//
// Combinators that keep the element type are methods; the ones that change
// it are functions, since Go methods cannot declare type parameters.
package stream
