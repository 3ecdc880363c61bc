package recipients

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/itristenx/nova-notify/pkg/identity"
)

// CachedRoleSource wraps a RoleSource with a short per-query TTL cache.
// Role membership changes become visible to the engine no later than one
// TTL after they land in the underlying store; that window is the only
// staleness this wrapper introduces. Errors are never cached.
//
// Entries are keyed by the sorted role set of a query, so the resolver's
// single-lookup contract is preserved on hits and misses alike.
type CachedRoleSource struct {
	source identity.RoleSource
	ttl    time.Duration
	now    func() time.Time

	entries map[string]cachedMembers
	mu      sync.Mutex
}

type cachedMembers struct {
	members   []string
	expiresAt time.Time
}

// CachedRoleSourceOption configures a CachedRoleSource.
type CachedRoleSourceOption func(*CachedRoleSource)

// WithClock overrides the time source. Intended for tests that need to
// step past the invalidation window without sleeping.
func WithClock(now func() time.Time) CachedRoleSourceOption {
	return func(c *CachedRoleSource) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCachedRoleSource wraps source with a TTL cache. A non-positive ttl
// disables caching entirely and every call passes through.
func NewCachedRoleSource(source identity.RoleSource, ttl time.Duration, opts ...CachedRoleSourceOption) *CachedRoleSource {
	c := &CachedRoleSource{
		source:  source,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cachedMembers),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *CachedRoleSource) RoleMembers(ctx context.Context, roles []string) ([]string, error) {
	if c.ttl <= 0 {
		return c.source.RoleMembers(ctx, roles)
	}

	key := cacheKey(roles)

	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok && c.now().Before(entry.expiresAt) {
		members := append([]string(nil), entry.members...)
		c.mu.Unlock()
		return members, nil
	}
	c.mu.Unlock()

	members, err := c.source.RoleMembers(ctx, roles)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cachedMembers{
		members:   append([]string(nil), members...),
		expiresAt: c.now().Add(c.ttl),
	}
	c.mu.Unlock()

	return append([]string(nil), members...), nil
}

// Invalidate drops all cached entries, forcing the next lookup through to
// the underlying source. Hosts call this when they know membership changed.
func (c *CachedRoleSource) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

func cacheKey(roles []string) string {
	sorted := append([]string(nil), roles...)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x00")
}
