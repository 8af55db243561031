package errors

import (
	stderrors "errors"
	"fmt"
)

// Error is the structured error type produced by the library.
type Error struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same code.
// errors.Is(err, &Error{Code: ErrCodeShape}) matches any shape error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new Error.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// --- Constructors ---

// NotTuple creates a shape error for a starmap item that is not a tuple.
func NotTuple(item any) *Error {
	typ := fmt.Sprintf("%T", item)
	return &Error{
		Code:    ErrCodeShape,
		Message: fmt.Sprintf("expected a tuple, got %s", typ),
		Details: map[string]any{"type": typ},
	}
}

// InvalidChunkSize creates a misuse error for a non-positive chunk size.
func InvalidChunkSize(size int) *Error {
	return &Error{
		Code:    ErrCodeMisuse,
		Message: fmt.Sprintf("chunk size must be positive (got: %d)", size),
		Details: map[string]any{"size": size},
	}
}

// IdentityMismatch creates a misuse error for an identity step whose input
// value cannot be returned as the declared output type.
func IdentityMismatch(in any, out string) *Error {
	return &Error{
		Code:    ErrCodeMisuse,
		Message: fmt.Sprintf("identity step cannot pass %T through as %s", in, out),
	}
}

// Panic wraps a value recovered from a panicking user function.
func Panic(recovered any) *Error {
	e := &Error{
		Code:    ErrCodePanic,
		Message: fmt.Sprintf("user function panicked: %v", recovered),
		Details: map[string]any{"value": recovered},
	}
	if err, ok := recovered.(error); ok {
		e.Cause = err
	}
	return e
}

// StepFailed wraps the error returned by a named step.
func StepFailed(step string, cause error) *Error {
	return &Error{
		Code:    ErrCodeStepFailed,
		Message: fmt.Sprintf("step %q failed", step),
		Details: map[string]any{"step": step},
		Cause:   cause,
	}
}

// InvalidConfig creates an error for configuration that failed validation.
func InvalidConfig(message string) *Error {
	return &Error{Code: ErrCodeInvalidConfig, Message: message}
}

// --- Helpers ---

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsCode returns true if err's chain contains an *Error with the given code.
func IsCode(err error, code ErrorCode) bool {
	e, ok := As(err)
	return ok && e.Code == code
}
