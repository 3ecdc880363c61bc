package prefs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/itristenx/nova-notify/pkg/event"
	"github.com/itristenx/nova-notify/pkg/prefs"
)

// MockStore for testing the engine against store failures.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, userID string) (prefs.UserPreference, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(prefs.UserPreference), args.Error(1)
}

func (m *MockStore) Set(ctx context.Context, pref prefs.UserPreference) error {
	args := m.Called(ctx, pref)
	return args.Error(0)
}

func TestEngine_OverrideWinsCompletely(t *testing.T) {
	t.Parallel()

	store := prefs.NewMemoryStore()
	engine := prefs.NewEngine(store)

	pref := prefs.DefaultPreference("u1")
	pref.Channels = map[string]map[string][]string{
		"ticketing": {"assigned": {"webhook"}},
	}
	require.NoError(t, store.Set(context.Background(), pref))

	// Critical priority would normally select the full matrix; the
	// explicit override must win verbatim, not merge.
	ev := event.Event{Module: "ticketing", Type: "assigned", Priority: event.PriorityCritical}
	channels, err := engine.ChannelsFor(context.Background(), "u1", ev)
	require.NoError(t, err)
	assert.Equal(t, []string{"webhook"}, channels)
}

func TestEngine_DefaultMatrix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		priority event.Priority
		want     []string
	}{
		{event.PriorityCritical, []string{"push", "email", "in_app"}},
		{event.PriorityHigh, []string{"push", "email", "in_app"}},
		{event.PriorityNormal, []string{"in_app"}},
		{event.PriorityLow, []string{"in_app"}},
		{event.Priority("unknown"), []string{"in_app"}},
	}

	engine := prefs.NewEngine(prefs.NewMemoryStore())

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.priority), func(t *testing.T) {
			t.Parallel()

			ev := event.Event{Module: "system", Type: "x", Priority: tt.priority}
			channels, err := engine.ChannelsFor(context.Background(), "u1", ev)
			require.NoError(t, err)
			assert.Equal(t, tt.want, channels)
		})
	}
}

func TestEngine_EmptyOverrideFallsThrough(t *testing.T) {
	t.Parallel()

	store := prefs.NewMemoryStore()
	engine := prefs.NewEngine(store)

	pref := prefs.DefaultPreference("u1")
	pref.Channels = map[string]map[string][]string{
		"ticketing": {"assigned": {}},
	}
	require.NoError(t, store.Set(context.Background(), pref))

	ev := event.Event{Module: "ticketing", Type: "assigned", Priority: event.PriorityNormal}
	channels, err := engine.ChannelsFor(context.Background(), "u1", ev)
	require.NoError(t, err)
	assert.Equal(t, []string{"in_app"}, channels)
}

func TestEngine_OverrideForDifferentTypeIgnored(t *testing.T) {
	t.Parallel()

	store := prefs.NewMemoryStore()
	engine := prefs.NewEngine(store)

	pref := prefs.DefaultPreference("u1")
	pref.Channels = map[string]map[string][]string{
		"ticketing": {"closed": {"email"}},
	}
	require.NoError(t, store.Set(context.Background(), pref))

	ev := event.Event{Module: "ticketing", Type: "assigned", Priority: event.PriorityHigh}
	channels, err := engine.ChannelsFor(context.Background(), "u1", ev)
	require.NoError(t, err)
	assert.Equal(t, []string{"push", "email", "in_app"}, channels)
}

func TestEngine_GetSynthesizesDefault(t *testing.T) {
	t.Parallel()

	store := prefs.NewMemoryStore()
	engine := prefs.NewEngine(store)

	pref, err := engine.Get(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, "u1", pref.UserID)
	assert.Empty(t, pref.Channels)
	assert.Equal(t, prefs.DigestDaily, pref.Digest.Frequency)
	assert.Equal(t, []string{"email"}, pref.Digest.Channels)
	assert.False(t, pref.DND.Enabled)

	// Read-time default only: the store must still be empty.
	_, err = store.Get(context.Background(), "u1")
	assert.ErrorIs(t, err, prefs.ErrNotFound)
}

func TestEngine_SetFullReplace(t *testing.T) {
	t.Parallel()

	store := prefs.NewMemoryStore()
	engine := prefs.NewEngine(store)

	first := prefs.UserPreference{
		Channels: map[string]map[string][]string{
			"ticketing": {"assigned": {"email"}},
		},
	}
	_, err := engine.Set(context.Background(), "u1", first)
	require.NoError(t, err)

	second := prefs.UserPreference{
		Channels: map[string]map[string][]string{
			"monitoring": {"monitor.down": {"push"}},
		},
	}
	saved, err := engine.Set(context.Background(), "u1", second)
	require.NoError(t, err)

	// Last write wins: nothing from the first blob survives.
	_, hasOld := saved.Channels["ticketing"]
	assert.False(t, hasOld)

	got, err := engine.Get(context.Background(), "u1")
	require.NoError(t, err)
	_, hasOld = got.Channels["ticketing"]
	assert.False(t, hasOld)
	assert.Equal(t, []string{"push"}, got.Channels["monitoring"]["monitor.down"])
}

func TestEngine_SetRequiresUserID(t *testing.T) {
	t.Parallel()

	engine := prefs.NewEngine(prefs.NewMemoryStore())

	_, err := engine.Set(context.Background(), "", prefs.UserPreference{})
	require.ErrorIs(t, err, prefs.ErrInvalidPreference)
}

func TestEngine_StoreFailurePropagates(t *testing.T) {
	t.Parallel()

	store := new(MockStore)
	store.On("Get", mock.Anything, "u1").
		Return(prefs.UserPreference{}, errors.New("connection refused"))

	engine := prefs.NewEngine(store)

	_, err := engine.ChannelsFor(context.Background(), "u1", event.Event{Type: "x"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, prefs.ErrNotFound)
}

func TestDefaultPreference_FreshPerCall(t *testing.T) {
	t.Parallel()

	a := prefs.DefaultPreference("u1")
	b := prefs.DefaultPreference("u1")

	a.Channels["ticketing"] = map[string][]string{"assigned": {"email"}}
	// No shared mutable state between synthesized defaults.
	assert.Empty(t, b.Channels)
}
