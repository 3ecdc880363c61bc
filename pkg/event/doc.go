// Package event defines the canonical notification event record and its
// normalization from loosely-structured producer payloads.
//
// Producers across the application (ticketing, monitoring, kiosks) submit a
// RawEvent with at minimum a type. Normalize validates the payload, fills
// every remaining field with a defined default, and assigns a fresh unique
// ID, so downstream components never deal with partially-populated records.
//
// # Usage
//
//	e, err := event.Normalize(event.RawEvent{
//	    Module:   "ticketing",
//	    Type:     "assigned",
//	    Priority: "high",
//	    Title:    "Ticket #42 assigned to you",
//	})
//	if err != nil {
//	    // errors.Is(err, event.ErrInvalidEvent)
//	}
package event
