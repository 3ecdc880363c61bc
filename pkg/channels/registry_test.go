package channels_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itristenx/nova-notify/pkg/channels"
	"github.com/itristenx/nova-notify/pkg/event"
)

func TestMemoryRegistry_PublishReachesAllSessions(t *testing.T) {
	t.Parallel()

	r := channels.NewMemoryRegistry(4)
	ctx := context.Background()

	a := r.Subscribe(ctx, "u1")
	b := r.Subscribe(ctx, "u1")
	other := r.Subscribe(ctx, "u2")

	msg := channels.InAppMessage{EventID: "e1", Title: "hello"}
	require.NoError(t, r.Publish(ctx, "u1", msg))

	select {
	case got := <-a.Receive():
		assert.Equal(t, "e1", got.EventID)
	case <-time.After(time.Second):
		t.Fatal("session a did not receive the message")
	}
	select {
	case got := <-b.Receive():
		assert.Equal(t, "e1", got.EventID)
	case <-time.After(time.Second):
		t.Fatal("session b did not receive the message")
	}

	select {
	case <-other.Receive():
		t.Fatal("u2 must not receive u1's message")
	default:
	}
}

func TestMemoryRegistry_PublishToOfflineUserSucceeds(t *testing.T) {
	t.Parallel()

	r := channels.NewMemoryRegistry(1)
	err := r.Publish(context.Background(), "nobody", channels.InAppMessage{EventID: "e1"})
	require.NoError(t, err)
}

func TestMemoryRegistry_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	t.Parallel()

	r := channels.NewMemoryRegistry(1)
	ctx := context.Background()
	sess := r.Subscribe(ctx, "u1")

	require.NoError(t, r.Publish(ctx, "u1", channels.InAppMessage{EventID: "e1"}))

	done := make(chan struct{})
	go func() {
		// Buffer is full; this must not block.
		_ = r.Publish(ctx, "u1", channels.InAppMessage{EventID: "e2"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full session buffer")
	}

	got := <-sess.Receive()
	assert.Equal(t, "e1", got.EventID)
}

func TestMemoryRegistry_UnsubscribeClosesSession(t *testing.T) {
	t.Parallel()

	r := channels.NewMemoryRegistry(1)
	sess := r.Subscribe(context.Background(), "u1")
	r.Unsubscribe("u1", sess)

	_, open := <-sess.Receive()
	assert.False(t, open)

	// Publishing after unsubscribe is still a success.
	require.NoError(t, r.Publish(context.Background(), "u1", channels.InAppMessage{EventID: "e1"}))
}

func TestMemoryRegistry_ContextCancellationCleansUp(t *testing.T) {
	t.Parallel()

	r := channels.NewMemoryRegistry(1)
	ctx, cancel := context.WithCancel(context.Background())
	sess := r.Subscribe(ctx, "u1")

	cancel()

	require.Eventually(t, func() bool {
		select {
		case _, open := <-sess.Receive():
			return !open
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

func TestInAppSender_BuildsStructuredMessage(t *testing.T) {
	t.Parallel()

	r := channels.NewMemoryRegistry(4)
	s := channels.NewInAppSender(r)
	require.Equal(t, channels.ChannelInApp, s.Channel())

	ctx := context.Background()
	sess := r.Subscribe(ctx, "u1")

	ts := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	ev := event.Event{
		ID:        "e1",
		Module:    "ticketing",
		Type:      "assigned",
		Priority:  event.PriorityHigh,
		Title:     "Ticket assigned",
		Message:   "see #42",
		Timestamp: ts,
		Actions:   []event.Action{{Label: "Open", URL: "/tickets/42"}},
		Metadata:  map[string]any{"ticketId": "42"},
	}
	require.NoError(t, s.Send(ctx, "u1", ev))

	got := <-sess.Receive()
	assert.Equal(t, "e1", got.EventID)
	assert.Equal(t, "ticketing", got.Module)
	assert.Equal(t, "assigned", got.Type)
	assert.Equal(t, event.PriorityHigh, got.Priority)
	assert.Equal(t, ts.UnixMilli(), got.Timestamp)
	assert.Len(t, got.Actions, 1)
	assert.Equal(t, "42", got.Metadata["ticketId"])
}
