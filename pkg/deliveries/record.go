package deliveries

import "time"

// Status is the outcome of one delivery attempt.
type Status string

const (
	StatusSent   Status = "sent"
	StatusFailed Status = "failed"
)

// Record is one immutable delivery outcome for a single
// (event, user, channel) attempt. History is append-only: correcting a
// record means writing a new one, never mutating an old one.
type Record struct {
	ID        string    `json:"id"`
	EventID   string    `json:"eventId"`
	UserID    string    `json:"userId"`
	Channel   string    `json:"channel"`
	Status    Status    `json:"status"`
	Error     string    `json:"error,omitempty"` // set only when Status is failed
	CreatedAt time.Time `json:"createdAt"`
}
