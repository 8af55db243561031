// Package pipeline provides single-value composition chains.
//
// A Pipeline pairs an input with a composed function. Each Then/Step call
// returns a new Pipeline wrapping the previous function in a closure; nothing
// runs until Run.
//
//	p := pipeline.New(3)
//	p2 := pipeline.Then(p, func(n int) int { return n + 1 })
//	p3 := pipeline.Then(p2, func(n int) int { return n * 2 })
//	out, _ := p3.Run() // 8
//
// Async is the same chain in the asynchronous calling convention. Its steps
// are fn.Step values, so sync and async functions mix freely; Run checks the
// context at every step boundary.
//
//	ap := pipeline.StepAsync(pipeline.NewAsync("bob"), fn.Async(lookupUser))
//	user, err := ap.Run(ctx)
//
// # Reuse
//
// WithInput replaces the stored input in place, so a built chain can be run
// against new values. Run does not cache results.
package pipeline
