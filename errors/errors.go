package errors

import (
	stderrors "errors"
	"fmt"
)

// Error is the unified library error type.
type Error struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Exit is the process exit code. Only meaningful for COMMAND_FAILED.
	Exit int `json:"exit,omitempty"`
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

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *Error) WithDetails(details map[string]any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
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

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// --- Common Error Constructors ---

// OS creates a new Error for a syscall-level failure. op names the
// operation that failed ("pipe", "open /tmp/x", "spawn cat").
func OS(op string, cause error) *Error {
	return &Error{
		Code: ErrCodeOS, Message: fmt.Sprintf("%s failed", op),
		Details: map[string]any{"op": op}, Cause: cause,
	}
}

// Usage creates a new Error for a violated library invariant.
func Usage(reason string) *Error {
	return &Error{Code: ErrCodeUsage, Message: reason}
}

// CommandExit creates a new Error for a pipeline whose last process
// exited with a non-zero status.
func CommandExit(code int) *Error {
	return &Error{
		Code: ErrCodeCommandFailed, Message: fmt.Sprintf("command exited with code %d", code),
		Exit:    code,
		Details: map[string]any{"exit_code": code},
	}
}

// --- Inspection helpers ---

// As converts an error to an *Error if possible.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsOS reports whether err is an OS-level failure.
func IsOS(err error) bool {
	e, ok := As(err)
	return ok && e.Code == ErrCodeOS
}

// IsUsage reports whether err is a usage error.
func IsUsage(err error) bool {
	e, ok := As(err)
	return ok && e.Code == ErrCodeUsage
}

// IsCommand reports whether err is a non-zero command exit.
func IsCommand(err error) bool {
	e, ok := As(err)
	return ok && e.Code == ErrCodeCommandFailed
}

// ExitCode extracts the process exit code from a command error.
// The second return is false when err is not a command error.
func ExitCode(err error) (int, bool) {
	e, ok := As(err)
	if !ok || e.Code != ErrCodeCommandFailed {
		return 0, false
	}
	return e.Exit, true
}
