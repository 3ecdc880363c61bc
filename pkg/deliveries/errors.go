package deliveries

import "errors"

var (
	// ErrDuplicateEvent is returned when an event record with the same ID
	// was already persisted. Events are write-once.
	ErrDuplicateEvent = errors.New("deliveries: event already recorded")

	// ErrInvalidRecord is returned when a delivery record is missing a
	// required field.
	ErrInvalidRecord = errors.New("deliveries: invalid delivery record")
)
