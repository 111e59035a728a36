package profile

import "errors"

var (
	// ErrProfileNotFound is returned when no profile exists for the user.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrMissingUserID is returned when a profile operation lacks a user ID.
	ErrMissingUserID = errors.New("user id is required")

	// ErrStoreUnavailable marks repository I/O failures. Callers may retry;
	// the merge pipeline must propagate it instead of fabricating an empty
	// profile.
	ErrStoreUnavailable = errors.New("profile store unavailable")
)
