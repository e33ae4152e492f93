// Package errclass defines the stable, machine-readable error classes
// returned by tmpdir operations.
package errclass

import "fmt"

// Error is a stable, machine-readable error class.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code
}

// WithMessage returns a new Error with the same Code but a specific message.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{Code: e.Code, Message: msg}
}

// WithMessagef returns a new Error with a formatted message.
func (e *Error) WithMessagef(format string, args ...any) *Error {
	return &Error{Code: e.Code, Message: fmt.Sprintf(format, args...)}
}

// All stable error classes.
var (
	// ErrCreateExhausted means every candidate name collided with an
	// existing entry; no directory was created.
	ErrCreateExhausted = &Error{Code: "E_CREATE_EXHAUSTED"}

	// ErrCreateFailed means directory creation failed for a reason other
	// than a name collision (permissions, missing base, disk full).
	ErrCreateFailed = &Error{Code: "E_CREATE_FAILED"}

	// ErrCleanupFailed means one or more entries under the owned path
	// could not be removed.
	ErrCleanupFailed = &Error{Code: "E_CLEANUP_FAILED"}

	// ErrPathEscape means a delete was refused because the target path is
	// not contained in the expected base directory.
	ErrPathEscape = &Error{Code: "E_PATH_ESCAPE"}

	// ErrNameInvalid means a prefix or name was rejected by a CLI-level
	// safety check.
	ErrNameInvalid = &Error{Code: "E_NAME_INVALID"}
)
