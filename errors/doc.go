// Package errors provides unified error handling for the subprocess library.
// It implements structured error types with error codes covering the three
// failure kinds a pipeline can hit: OS errors, usage errors, and command
// errors.
package errors
