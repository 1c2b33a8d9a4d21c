package authz

import "errors"

var (
	// ErrUnauthenticated means the bearer token was missing, malformed, or
	// failed verification.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden means the caller is authenticated but is neither the
	// owner nor a member of the startup.
	ErrForbidden = errors.New("access denied")

	// ErrStartupNotFound means the target startup does not exist.
	ErrStartupNotFound = errors.New("startup not found")
)
