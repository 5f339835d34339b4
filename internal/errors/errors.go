package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, configuration, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, permissions, etc.).
	ExitSystem = 2
)

// Sentinel errors for the document load/write taxonomy. Callers classify
// with errors.Is; every sentinel survives wrapping.
var (
	// ErrNotFound indicates no file exists at the candidate path.
	// Expected during bootstrap; drives fallthrough to the next candidate.
	ErrNotFound = errors.New("document not found")

	// ErrUnreadable indicates the file exists but cannot be read
	// (permissions or I/O failure). Recoverable, but worth a loud log.
	ErrUnreadable = errors.New("document unreadable")

	// ErrMalformed indicates the file content is not well-formed
	// structured data.
	ErrMalformed = errors.New("document malformed")

	// ErrSchemaInvalid indicates well-formed content missing required
	// keys or carrying wrong value shapes.
	ErrSchemaInvalid = errors.New("document schema invalid")

	// ErrDirUnwritable indicates the destination directory cannot be
	// created or written. Fatal for a bootstrap run.
	ErrDirUnwritable = errors.New("directory unwritable")
)

// ExitError wraps an error with an exit code and optional suggestion for
// CLI applications. It implements the error interface and supports
// unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewConfigError creates an ExitError with ExitUser code and a standard suggestion.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: "Run: somnoset status",
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}
