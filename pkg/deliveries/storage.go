package deliveries

import (
	"context"

	"github.com/itristenx/nova-notify/pkg/event"
)

// DefaultListLimit bounds ListDeliveries when the caller provides none.
const DefaultListLimit = 50

// Storage persists canonical events and their delivery records.
//
// CreateEvent runs exactly once per event, before any dispatch begins.
// CreateDelivery appends one record per (event, user, channel) attempt and
// is safe for concurrent use from multiple dispatch workers. Neither rows
// nor events are ever updated or deleted through this interface.
type Storage interface {
	CreateEvent(ctx context.Context, ev event.Event) error
	CreateDelivery(ctx context.Context, rec Record) error
	ListDeliveries(ctx context.Context, opts ListOptions) ([]Record, error)
}

// ListOptions filters and bounds a delivery history query.
type ListOptions struct {
	UserID string // when non-empty, only this user's records
	Limit  int    // maximum records to return; DefaultListLimit when <= 0
}

func (o ListOptions) limit() int {
	if o.Limit <= 0 {
		return DefaultListLimit
	}
	return o.Limit
}
