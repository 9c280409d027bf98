package apperr

import "errors"

// ErrInvalidInput is returned when a user-supplied value fails validation,
// such as a macro name that is not a C identifier.
var ErrInvalidInput = errors.New("invalid input")

// ErrQueryFailed wraps any failure of the version-control describe query:
// git missing, not a repository, timeout, or a non-zero exit.
var ErrQueryFailed = errors.New("version query failed")

// ErrFallback is returned by strict commands when a repository resolved to
// the sentinel version instead of real version-control metadata.
var ErrFallback = errors.New("version fell back to sentinel")
