package prefs

import "context"

// Store persists per-user preference blobs.
//
// Get returns ErrNotFound when no record exists; callers decide whether to
// synthesize a default. Set fully replaces any existing record.
type Store interface {
	Get(ctx context.Context, userID string) (UserPreference, error)
	Set(ctx context.Context, pref UserPreference) error
}
