package logger

import (
	"time"
)

// Standard field key constants for structured logging.
const (
	FieldComponent  = "component"
	FieldTraceID    = "trace_id"
	FieldSpanID     = "span_id"
	FieldStep       = "step"
	FieldStepKind   = "step_kind"
	FieldInvocation = "invocation_id"
	FieldStatus     = "status"
	FieldError      = "error"
	FieldErrorCode  = "error_code"
	FieldDuration   = "duration_ms"
	FieldItems      = "items"
)

// Fields builds a map[string]any from alternating key-value pairs.
//
//	log.Debug("step done", logger.Fields("step", "parse", "items", 42))
func Fields(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for a failed step: the error text and its
// classification code.
func ErrorFields(code string, err error) map[string]any {
	return map[string]any{
		FieldError:     err.Error(),
		FieldErrorCode: code,
	}
}

// DurationFields creates fields for a timed step.
func DurationFields(d time.Duration) map[string]any {
	return map[string]any{
		FieldDuration: d.Milliseconds(),
	}
}

// MergeWithError adds an error field to an existing map.
func MergeWithError(fields map[string]any, err error) map[string]any {
	if fields == nil {
		fields = make(map[string]any)
	}
	fields[FieldError] = err.Error()
	return fields
}
