package prefs

import (
	"context"
	"errors"
	"fmt"

	"github.com/itristenx/nova-notify/pkg/event"
)

// defaultMatrix maps event priority to the ordered default channel list
// applied when the user has no explicit override for the event's
// module/type pair.
var defaultMatrix = map[event.Priority][]string{
	event.PriorityCritical: {"push", "email", "in_app"},
	event.PriorityHigh:     {"push", "email", "in_app"},
	event.PriorityNormal:   {"in_app"},
	event.PriorityLow:      {"in_app"},
}

// fallbackChannels serves any priority outside the matrix.
var fallbackChannels = []string{"in_app"}

// DefaultChannels returns the matrix channel list for a priority without
// consulting any store. Callers use it when preference data is
// unreachable and a recipient still has to be notified.
func DefaultChannels(p event.Priority) []string {
	if channels, ok := defaultMatrix[p]; ok {
		return append([]string(nil), channels...)
	}
	return append([]string(nil), fallbackChannels...)
}

// Engine selects delivery channels for a user and event by combining
// stored per-user overrides with the priority default matrix.
type Engine struct {
	store Store
}

// NewEngine creates a preference engine over the given store.
func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// ChannelsFor returns the ordered, never-empty channel list for the user
// and event. An explicit override for the event's module and type wins
// completely; otherwise the priority default matrix applies. A missing
// preference record falls through to the matrix without being persisted.
//
// DND is deliberately not consulted here. When suppression semantics are
// settled (all channels vs. non-critical only) this is the place to apply
// them, after the override lookup and before returning.
func (e *Engine) ChannelsFor(ctx context.Context, userID string, ev event.Event) ([]string, error) {
	pref, err := e.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if channels, ok := pref.Override(ev.Module, ev.Type); ok {
		return append([]string(nil), channels...), nil
	}

	return DefaultChannels(ev.Priority), nil
}

// Get returns the user's stored preference, or a freshly-synthesized
// default when no record exists. The default is read-time only.
func (e *Engine) Get(ctx context.Context, userID string) (UserPreference, error) {
	pref, err := e.store.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return DefaultPreference(userID), nil
	}
	if err != nil {
		return UserPreference{}, fmt.Errorf("prefs: load preference: %w", err)
	}
	pref.UserID = userID
	if pref.Channels == nil {
		pref.Channels = map[string]map[string][]string{}
	}
	return pref, nil
}

// Set fully replaces the user's stored preference blob (last write wins).
func (e *Engine) Set(ctx context.Context, userID string, pref UserPreference) (UserPreference, error) {
	if userID == "" {
		return UserPreference{}, fmt.Errorf("%w: user ID is required", ErrInvalidPreference)
	}
	pref.UserID = userID
	if pref.Channels == nil {
		pref.Channels = map[string]map[string][]string{}
	}
	if pref.Digest.Frequency == "" {
		pref.Digest.Frequency = DigestDaily
	}
	if pref.Digest.Channels == nil {
		pref.Digest.Channels = []string{}
	}
	if err := e.store.Set(ctx, pref); err != nil {
		return UserPreference{}, fmt.Errorf("prefs: store preference: %w", err)
	}
	return pref, nil
}
