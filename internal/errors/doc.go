// Package errors provides error handling conventions for the somno
// bootstrap engine and the somnoset CLI.
//
// This package defines sentinel errors for the document load/write
// taxonomy, an ExitError type for CLI exit code handling, and exit code
// constants following standard Unix conventions.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [errors.Is]:
//
//	if errors.Is(err, somnoerrors.ErrNotFound) {
//	    // try the next candidate
//	}
//
// ErrNotFound, ErrMalformed, ErrSchemaInvalid and ErrUnreadable are all
// recoverable during bootstrap: the resolver absorbs them and moves to
// the next candidate. ErrDirUnwritable is terminal for a run.
//
// # Exit Codes
//
// The package defines standard exit codes for CLI applications:
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, configuration, etc.)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion for CLI applications. It supports error unwrapping via
// [errors.Unwrap] and [errors.As].
package errors
