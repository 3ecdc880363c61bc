package identity

import "errors"

var (
	// ErrNoEmail is returned when a user has no email address on file.
	ErrNoEmail = errors.New("identity: no email address for user")
)
