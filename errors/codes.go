package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// OS-level failures
const (
	// ErrCodeOS indicates a syscall-level failure: spawn, pipe, open,
	// close, read, write, or wait returned an error.
	ErrCodeOS ErrorCode = "OS_ERROR"
)

// Usage failures
const (
	// ErrCodeUsage indicates a programming mistake in the calling code,
	// such as linking an already-linked descriptor or waiting on a
	// process that was never executed.
	ErrCodeUsage ErrorCode = "USAGE_ERROR"
)

// Command failures
const (
	// ErrCodeCommandFailed indicates the last process of a pipeline
	// exited with a non-zero status.
	ErrCodeCommandFailed ErrorCode = "COMMAND_FAILED"
)
