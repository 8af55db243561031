// Package seq provides the single-pass pull iterators that streams are built
// on, plus sources for slices, iter.Seq, channels and generator functions.
//
// Iterators are not restartable. Once Next reports false (or Close has been
// called) every later call returns (zero, false, nil).
package seq
