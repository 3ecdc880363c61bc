package channels

import (
	"context"

	"github.com/itristenx/nova-notify/pkg/event"
)

// StubSender reports success without delivering anything. push, slack and
// teams ship as stubs: the channel names are reserved so preference data
// written today keeps working when the real integrations land.
type StubSender struct {
	channel string
}

// NewStubSender creates a no-op sender for the named channel.
func NewStubSender(channel string) *StubSender {
	return &StubSender{channel: channel}
}

func (s *StubSender) Channel() string { return s.channel }

func (s *StubSender) Send(ctx context.Context, userID string, ev event.Event) error {
	return nil
}
