package event_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itristenx/nova-notify/pkg/event"
)

func TestNormalize_Defaults(t *testing.T) {
	t.Parallel()

	e, err := event.Normalize(event.RawEvent{Type: "x"})
	require.NoError(t, err)

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "system", e.Module)
	assert.Equal(t, "x", e.Type)
	assert.Equal(t, event.PriorityNormal, e.Priority)
	assert.Empty(t, e.Title)
	assert.Empty(t, e.Message)
	assert.WithinDuration(t, time.Now(), e.Timestamp, time.Second)
	assert.Empty(t, e.RecipientRoles)
	assert.NotNil(t, e.RecipientRoles)
	assert.Empty(t, e.RecipientUsers)
	assert.NotNil(t, e.RecipientUsers)
	assert.Empty(t, e.Actions)
	assert.NotNil(t, e.Actions)
	assert.Empty(t, e.Metadata)
	assert.NotNil(t, e.Metadata)
}

func TestNormalize_FreshIDPerCall(t *testing.T) {
	t.Parallel()

	raw := event.RawEvent{Type: "x"}

	first, err := event.Normalize(raw)
	require.NoError(t, err)
	second, err := event.Normalize(raw)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Module, second.Module)
	assert.Equal(t, first.Priority, second.Priority)
	assert.Equal(t, first.Message, second.Message)
}

func TestNormalize_MissingType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  event.RawEvent
	}{
		{name: "empty payload", raw: event.RawEvent{}},
		{name: "whitespace type", raw: event.RawEvent{Type: "   "}},
		{name: "other fields set", raw: event.RawEvent{Module: "ticketing", Title: "hello"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := event.Normalize(tt.raw)
			require.ErrorIs(t, err, event.ErrInvalidEvent)
		})
	}
}

func TestNormalize_PreservesExplicitFields(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	raw := event.RawEvent{
		Module:         "monitoring",
		Type:           "monitor.down",
		Priority:       "critical",
		Title:          "Monitor down",
		Message:        "api-gateway stopped responding",
		Timestamp:      ts,
		RecipientRoles: []string{"oncall"},
		RecipientUsers: []string{"u1"},
		Actions:        []event.Action{{Label: "Acknowledge", URL: "/ack"}},
		Metadata:       map[string]any{"monitorId": "m-7"},
	}

	e, err := event.Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, "monitoring", e.Module)
	assert.Equal(t, "monitor.down", e.Type)
	assert.Equal(t, event.PriorityCritical, e.Priority)
	assert.Equal(t, ts, e.Timestamp)
	assert.Equal(t, []string{"oncall"}, e.RecipientRoles)
	assert.Equal(t, []string{"u1"}, e.RecipientUsers)
	assert.Len(t, e.Actions, 1)
	assert.Equal(t, "m-7", e.Metadata["monitorId"])
}

func TestNormalize_UnknownPriorityCoercedToNormal(t *testing.T) {
	t.Parallel()

	e, err := event.Normalize(event.RawEvent{Type: "x", Priority: "shouting"})
	require.NoError(t, err)
	assert.Equal(t, event.PriorityNormal, e.Priority)
}
