package sentinel

import "errors"

// Sentinel dependency errors. Stores should return these (optionally wrapped)
// so services can translate them into domain errors exactly once.
var (
	ErrNotFound    = errors.New("not found")
	ErrAlreadyUsed = errors.New("already used")
	// ErrUnavailable marks a dependency that is down rather than a record
	// that is missing or taken.
	ErrUnavailable = errors.New("unavailable")
)
