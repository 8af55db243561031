package pipeline

import "github.com/kbukum/amalfi/fn"

// Pipeline is a synchronous chain from an input of type I to an output of
// type O.
type Pipeline[I, O any] struct {
	input I
	fn    fn.Func[I, O]
}

// New creates a pipeline with the identity function.
func New[T any](input T) *Pipeline[T, T] {
	return &Pipeline[T, T]{
		input: input,
		fn:    func(v T) (T, error) { return v, nil },
	}
}

// Of creates a pipeline from an input and an existing function.
func Of[I, O any](input I, f fn.Func[I, O]) *Pipeline[I, O] {
	return &Pipeline[I, O]{input: input, fn: f}
}

// Then appends an infallible step.
func Then[I, O, U any](p *Pipeline[I, O], f func(O) U) *Pipeline[I, U] {
	return Step(p, fn.Lift(f))
}

// Step appends a step that may fail. The first error ends the run.
func Step[I, O, U any](p *Pipeline[I, O], f fn.Func[O, U]) *Pipeline[I, U] {
	prev := p.fn
	return &Pipeline[I, U]{
		input: p.input,
		fn: func(v I) (U, error) {
			mid, err := prev(v)
			if err != nil {
				var zero U
				return zero, err
			}
			return f(mid)
		},
	}
}

// Concat feeds p's output into other's function. other's input is ignored;
// the result keeps p's input.
func Concat[I, O, U any](p *Pipeline[I, O], other *Pipeline[O, U]) *Pipeline[I, U] {
	return Step(p, other.fn)
}

// Run executes the chain against the stored input.
func (p *Pipeline[I, O]) Run() (O, error) {
	return p.fn(p.input)
}

// Call executes the chain against in without touching the stored input.
func (p *Pipeline[I, O]) Call(in I) (O, error) {
	return p.fn(in)
}

// Input returns the stored input.
func (p *Pipeline[I, O]) Input() I { return p.input }

// Func returns the composed function.
func (p *Pipeline[I, O]) Func() fn.Func[I, O] { return p.fn }

// WithInput replaces the stored input in place and returns p.
func (p *Pipeline[I, O]) WithInput(v I) *Pipeline[I, O] {
	p.input = v
	return p
}

// ToAsync returns the equivalent Async pipeline sharing p's input.
func (p *Pipeline[I, O]) ToAsync() *Async[I, O] {
	return FromSync(p)
}
