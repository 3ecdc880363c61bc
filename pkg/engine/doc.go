// Package engine orchestrates notification event distribution.
//
// ProcessEvent drives one event through a fixed pipeline: normalize the
// raw payload, persist the canonical record, resolve the recipient set,
// select channels per recipient, dispatch every (recipient, channel) unit
// through a bounded worker pool, and persist one delivery record per unit.
// The returned Summary lists every outcome; partial delivery failure is
// expected steady state, not an error.
//
// Only three failures abort processing: an invalid event (missing type,
// nothing persisted), a failed event-record write, and a failed recipient
// resolution (the event row is kept for audit and the error is returned
// with zero deliveries).
//
// The engine also exposes the preference read/write surface and delivery
// history queries so hosts wire one component, not four.
package engine
