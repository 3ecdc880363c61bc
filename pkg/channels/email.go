package channels

import (
	"context"
	"fmt"
	"html"

	"github.com/itristenx/nova-notify/pkg/event"
	"github.com/itristenx/nova-notify/pkg/identity"
	"github.com/itristenx/nova-notify/pkg/mailer"
)

// EmailSender delivers events over transactional email. The user's address
// comes from the identity collaborator; a user without one fails this
// channel only, never the event as a whole.
type EmailSender struct {
	lookup identity.EmailLookup
	sender mailer.Sender
}

// NewEmailSender creates the email channel sender.
func NewEmailSender(lookup identity.EmailLookup, sender mailer.Sender) *EmailSender {
	return &EmailSender{lookup: lookup, sender: sender}
}

func (s *EmailSender) Channel() string { return ChannelEmail }

func (s *EmailSender) Send(ctx context.Context, userID string, ev event.Event) error {
	addr, err := s.lookup.Email(ctx, userID)
	if err != nil {
		return fmt.Errorf("channels: email lookup: %w", err)
	}

	subject := ev.Title
	if subject == "" {
		subject = fmt.Sprintf("[%s] %s", ev.Module, ev.Type)
	}

	msg := mailer.Message{
		To:       addr,
		Subject:  subject,
		BodyHTML: renderBody(ev),
		Tag:      "notification",
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("channels: email send: %w", err)
	}
	return nil
}

// renderBody wraps the event message in minimal markup. Rich templating is
// a host concern; the engine only guarantees a readable default.
func renderBody(ev event.Event) string {
	title := html.EscapeString(ev.Title)
	if title == "" {
		title = html.EscapeString(ev.Type)
	}
	return fmt.Sprintf("<h2>%s</h2><p>%s</p>", title, html.EscapeString(ev.Message))
}
