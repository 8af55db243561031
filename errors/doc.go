// Package errors provides the structured error type returned by amalfi
// operators and pipelines.
//
// User errors raised by mappers, predicates and reducers are never wrapped in
// this type; they propagate unchanged. Error is reserved for failures the
// library itself detects: shape mismatches (starmap over a non-tuple),
// misuse (chunk with a non-positive size), recovered panics from fan-out
// goroutines, and invalid instrumentation configuration.
//
//	if errors.IsCode(err, errors.ErrCodeShape) {
//	    // an item was not a tuple
//	}
package errors
