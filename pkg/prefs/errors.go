package prefs

import "errors"

var (
	// ErrNotFound is returned by Store.Get when no preference record
	// exists for the user.
	ErrNotFound = errors.New("prefs: preference record not found")

	// ErrInvalidPreference is returned when a preference blob fails shape
	// validation at the read or write boundary.
	ErrInvalidPreference = errors.New("prefs: invalid preference record")
)
