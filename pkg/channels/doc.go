// Package channels implements per-channel delivery for the distribution
// engine.
//
// A Sender delivers one event to one user over a single channel; the
// Dispatcher holds one sender per channel name and routes each
// (channel, user, event) unit to the right one. Every unit is independent:
// a failing send marks that unit failed and nothing else.
//
// Shipped senders:
//
//   - in_app: pushes a structured message to live client sessions through
//     a connection Registry. Offline users are a successful no-op.
//   - email: resolves the user's address via the identity collaborator and
//     delegates to a mailer.Sender with minimal HTML markup.
//   - webhook: optional HMAC-signed HTTP POST sender for hosts with an
//     endpoint; otherwise the channel stays a stub.
//   - push, slack, teams: reserved stubs reporting success, so stored
//     preferences referencing them keep working until real integrations
//     replace them.
//
// Channels with no registered sender succeed as no-ops. That leniency is
// deliberate forward compatibility, not error swallowing: failures inside
// a registered sender are still surfaced per unit.
package channels
