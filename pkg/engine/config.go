package engine

import "time"

// Config holds orchestrator settings loaded from the environment.
type Config struct {
	// MaxConcurrentSends bounds the dispatch worker pool. One worker
	// handles one (recipient, channel) unit at a time; the bound keeps a
	// large fan-out from overwhelming downstream providers.
	MaxConcurrentSends int `env:"NOTIFY_MAX_CONCURRENT_SENDS" envDefault:"16"`

	// SessionBufferSize is the per-session buffer of the in-app
	// connection registry.
	SessionBufferSize int `env:"NOTIFY_SESSION_BUFFER_SIZE" envDefault:"16"`

	// RoleCacheTTL bounds the staleness of cached role membership.
	// Zero disables the cache.
	RoleCacheTTL time.Duration `env:"NOTIFY_ROLE_CACHE_TTL" envDefault:"0s"`
}
