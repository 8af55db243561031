// Package observability provides OpenTelemetry tracing and metrics for step
// execution.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("ingest"), log)
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("ingest"), log)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewStepMetrics(observability.Meter(mp))
//
// Per-invocation bookkeeping:
//
//	run := observability.NewStepRun("parse", "sync", id, metrics)
//	ctx, span := run.Start(ctx, observability.Tracer(tp))
//	out, err := parse(ctx, in)
//	run.End(ctx, span, err)
package observability
