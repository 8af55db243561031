package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Data errors
const (
	// ErrCodeShape indicates an item did not have the shape an operator requires.
	ErrCodeShape ErrorCode = "SHAPE"
)

// Caller errors
const (
	// ErrCodeMisuse indicates an operator was configured with an invalid argument.
	ErrCodeMisuse ErrorCode = "MISUSE"
	// ErrCodeInvalidConfig indicates configuration failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Execution errors
const (
	// ErrCodePanic indicates a user function panicked inside a fan-out goroutine.
	ErrCodePanic ErrorCode = "PANIC"
	// ErrCodeStepFailed indicates a named, instrumented step returned an error.
	ErrCodeStepFailed ErrorCode = "STEP_FAILED"
)

var callerCodes = map[ErrorCode]bool{
	ErrCodeMisuse:        true,
	ErrCodeInvalidConfig: true,
}

// IsCallerCode returns true if the code indicates a programming or
// configuration mistake rather than a data-dependent failure.
func IsCallerCode(code ErrorCode) bool {
	return callerCodes[code]
}
