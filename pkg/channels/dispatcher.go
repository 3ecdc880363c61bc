package channels

import (
	"context"
	"log/slog"

	"github.com/itristenx/nova-notify/pkg/event"
)

// Dispatcher routes a (channel, user, event) triple to the registered
// sender for that channel. Channels without a registered sender succeed as
// no-ops, which keeps the engine forward-compatible with channels that a
// future routing table will implement.
type Dispatcher struct {
	senders map[string]Sender
	logger  *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDispatcherLogger sets the logger for the Dispatcher.
func WithDispatcherLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDispatcher creates a dispatcher over the given senders. Registering
// two senders for the same channel keeps the last one.
func NewDispatcher(senders []Sender, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		senders: make(map[string]Sender, len(senders)),
		logger:  slog.Default(),
	}
	for _, s := range senders {
		d.senders[s.Channel()] = s
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register adds or replaces the sender for its channel.
func (d *Dispatcher) Register(s Sender) {
	d.senders[s.Channel()] = s
}

// Send delivers the event to the user over the named channel.
func (d *Dispatcher) Send(ctx context.Context, channel, userID string, ev event.Event) error {
	s, ok := d.senders[channel]
	if !ok {
		d.logger.LogAttrs(ctx, slog.LevelDebug, "no sender for channel, skipping",
			slog.String("channel", channel),
			slog.String("event_id", ev.ID),
		)
		return nil
	}
	return s.Send(ctx, userID, ev)
}
