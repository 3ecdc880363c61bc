package event

import (
	"time"
)

// Priority represents the urgency of a notification event.
// It drives the default channel matrix when a user has no explicit
// preference override.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityNormal   Priority = "normal"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Valid reports whether p is one of the recognized priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Action represents a call-to-action attached to an event.
type Action struct {
	Label string `json:"label"`
	URL   string `json:"url"`
	Style string `json:"style,omitempty"` // primary, secondary, danger
}

// Event is the canonical, fully-populated notification event record.
// It is immutable once produced by Normalize: downstream components may
// read any field without nil or zero-value checks.
type Event struct {
	ID             string         `json:"id"`
	Module         string         `json:"module"`
	Type           string         `json:"type"`
	Priority       Priority       `json:"priority"`
	Title          string         `json:"title"`
	Message        string         `json:"message"`
	Timestamp      time.Time      `json:"timestamp"`
	RecipientRoles []string       `json:"recipientRoles"`
	RecipientUsers []string       `json:"recipientUsers"`
	Actions        []Action       `json:"actions"`
	Metadata       map[string]any `json:"metadata"`
}

// RawEvent is the loosely-structured inbound payload accepted by Normalize.
// Only Type is required; every other field has a defined default.
type RawEvent struct {
	Module         string         `json:"module,omitempty"`
	Type           string         `json:"type"`
	Priority       string         `json:"priority,omitempty"`
	Title          string         `json:"title,omitempty"`
	Message        string         `json:"message,omitempty"`
	Timestamp      time.Time      `json:"timestamp,omitempty"`
	RecipientRoles []string       `json:"recipientRoles,omitempty"`
	RecipientUsers []string       `json:"recipientUsers,omitempty"`
	Actions        []Action       `json:"actions,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}
