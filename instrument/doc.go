// Package instrument decorates steps with tracing, metrics and debug logs.
//
// The combinator packages stay silent; wrap the steps you want to observe:
//
//	tel, err := instrument.Setup(ctx, cfg)
//	defer tel.Shutdown(ctx)
//
//	parse := instrument.Step("parse", fn.Sync(parseLine), tel.Options()...)
//	s := astream.Map(lines, parse)
//
// Every invocation opens a span named after the step, tags it with a fresh
// invocation id, records amalfi.step.* metrics and logs start and finish at
// debug level.
package instrument
