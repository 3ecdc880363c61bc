package channels

import (
	"context"

	"github.com/itristenx/nova-notify/pkg/event"
)

// Well-known channel names. The dispatcher accepts any name; unrecognized
// channels succeed as no-ops so preference data can reference channels
// before their sender ships.
const (
	ChannelInApp   = "in_app"
	ChannelEmail   = "email"
	ChannelPush    = "push"
	ChannelSlack   = "slack"
	ChannelTeams   = "teams"
	ChannelWebhook = "webhook"
)

// Sender delivers one event to one user over a single channel.
// Implementations must be safe for concurrent use: the orchestrator calls
// Send from multiple dispatch workers at once.
type Sender interface {
	// Channel returns the channel name this sender serves.
	Channel() string

	// Send attempts delivery. An error marks the single (user, channel)
	// unit failed and never affects sibling units.
	Send(ctx context.Context, userID string, ev event.Event) error
}
