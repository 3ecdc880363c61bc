package channels

import (
	"context"
	"fmt"

	"github.com/itristenx/nova-notify/pkg/event"
)

// InAppSender pushes events to a live connection registry.
type InAppSender struct {
	registry Registry
}

// NewInAppSender creates the in_app channel sender over the registry.
func NewInAppSender(registry Registry) *InAppSender {
	return &InAppSender{registry: registry}
}

func (s *InAppSender) Channel() string { return ChannelInApp }

func (s *InAppSender) Send(ctx context.Context, userID string, ev event.Event) error {
	msg := InAppMessage{
		EventID:   ev.ID,
		Module:    ev.Module,
		Type:      ev.Type,
		Priority:  ev.Priority,
		Title:     ev.Title,
		Message:   ev.Message,
		Actions:   ev.Actions,
		Metadata:  ev.Metadata,
		Timestamp: ev.Timestamp.UnixMilli(),
	}
	if err := s.registry.Publish(ctx, userID, msg); err != nil {
		return fmt.Errorf("channels: in_app publish: %w", err)
	}
	return nil
}
