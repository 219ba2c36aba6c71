package service

import "errors"

var (
	// ErrNotAuthenticated is returned by Private and Shared operations while
	// the session has no current user.
	ErrNotAuthenticated = errors.New("no authenticated user")
	// ErrDanglingReference is returned when a cascade relationship points at
	// a record that is not in the cache.
	ErrDanglingReference = errors.New("relationship target not found")

	ErrRemoteUnavailable = errors.New("remote store unavailable")
	ErrNoAccount         = errors.New("no remote account")
	ErrAccountRestricted = errors.New("remote account restricted")
	ErrIndeterminate     = errors.New("remote account status indeterminate")

	ErrPartialPushFailure = errors.New("some pushed records were not confirmed")
	ErrPartialPullFailure = errors.New("pull stopped before the last page")

	ErrInvalidNotification = errors.New("notification names no valid scope")
)
