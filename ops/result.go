package ops

// Result holds the outcome of one fan-out call: a value or the error the
// call returned.
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the call succeeded.
func (r Result[T]) OK() bool { return r.Err == nil }

// Unwrap returns the value and error.
func (r Result[T]) Unwrap() (T, error) { return r.Value, r.Err }

// Partition splits results into successful values and errors, keeping order
// within each.
func Partition[T any](results []Result[T]) ([]T, []error) {
	vals := make([]T, 0, len(results))
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
			continue
		}
		vals = append(vals, r.Value)
	}
	return vals, errs
}
