package event

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultModule tags events whose producer did not identify itself.
const DefaultModule = "system"

// Normalize validates a raw event and fills in defaults, producing a
// canonical Event with a fresh unique ID. Two calls with the same payload
// yield two distinct records; deduplication is a caller concern.
//
// Type is the only required input field because it drives all downstream
// channel-selection lookups. A missing type returns ErrInvalidEvent.
func Normalize(raw RawEvent) (Event, error) {
	typ := strings.TrimSpace(raw.Type)
	if typ == "" {
		return Event{}, fmt.Errorf("%w: type is required", ErrInvalidEvent)
	}

	e := Event{
		ID:             uuid.New().String(),
		Module:         raw.Module,
		Type:           typ,
		Priority:       Priority(raw.Priority),
		Title:          raw.Title,
		Message:        raw.Message,
		Timestamp:      raw.Timestamp,
		RecipientRoles: raw.RecipientRoles,
		RecipientUsers: raw.RecipientUsers,
		Actions:        raw.Actions,
		Metadata:       raw.Metadata,
	}

	if e.Module == "" {
		e.Module = DefaultModule
	}
	if !e.Priority.Valid() {
		e.Priority = PriorityNormal
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	if e.RecipientRoles == nil {
		e.RecipientRoles = []string{}
	}
	if e.RecipientUsers == nil {
		e.RecipientUsers = []string{}
	}
	if e.Actions == nil {
		e.Actions = []Action{}
	}
	if e.Metadata == nil {
		e.Metadata = map[string]any{}
	}

	return e, nil
}
