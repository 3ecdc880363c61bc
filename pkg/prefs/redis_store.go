package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists preference blobs in Redis, one JSON value per user.
// SET semantics match the store contract exactly: a write fully replaces
// the previous blob, last write wins.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix overrides the default "notify:prefs:" key prefix.
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.keyPrefix = prefix
		}
	}
}

// NewRedisStore creates a Redis-backed preference store.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client:    client,
		keyPrefix: "notify:prefs:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) Get(ctx context.Context, userID string) (UserPreference, error) {
	data, err := s.client.Get(ctx, s.keyPrefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return UserPreference{}, ErrNotFound
	}
	if err != nil {
		return UserPreference{}, fmt.Errorf("prefs: redis get: %w", err)
	}

	var pref UserPreference
	if err := json.Unmarshal(data, &pref); err != nil {
		// Shape validation at the read boundary: a corrupt blob is
		// surfaced, never silently replaced by a default.
		return UserPreference{}, fmt.Errorf("%w: %v", ErrInvalidPreference, err)
	}
	return pref, nil
}

func (s *RedisStore) Set(ctx context.Context, pref UserPreference) error {
	data, err := json.Marshal(pref)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPreference, err)
	}
	if err := s.client.Set(ctx, s.keyPrefix+pref.UserID, data, 0).Err(); err != nil {
		return fmt.Errorf("prefs: redis set: %w", err)
	}
	return nil
}
