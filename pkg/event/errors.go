package event

import "errors"

var (
	// ErrInvalidEvent is returned when a raw event is missing its type.
	// Nothing is persisted for an event rejected at normalization.
	ErrInvalidEvent = errors.New("event: invalid event")
)
