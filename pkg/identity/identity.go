package identity

import (
	"context"
	"fmt"
	"sync"
)

// RoleSource resolves role names to the identifiers of their current
// members. Implementations are typically backed by the host application's
// identity store.
type RoleSource interface {
	// RoleMembers returns the union of member user IDs for the given roles.
	// Unknown roles contribute no members and are not an error; a failure
	// to reach the underlying store is.
	RoleMembers(ctx context.Context, roles []string) ([]string, error)
}

// EmailLookup resolves a user identifier to an email address.
type EmailLookup interface {
	// Email returns the address on file for the user, or an error wrapping
	// ErrNoEmail when none is known.
	Email(ctx context.Context, userID string) (string, error)
}

// Directory combines both lookups a host usually serves from one store.
type Directory interface {
	RoleSource
	EmailLookup
}

// MemoryDirectory is an in-memory Directory. Suitable for development,
// testing, and small single-node deployments.
type MemoryDirectory struct {
	roles  map[string][]string // role name -> member user IDs
	emails map[string]string   // user ID -> email address
	mu     sync.RWMutex
}

// NewMemoryDirectory creates an empty in-memory directory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{
		roles:  make(map[string][]string),
		emails: make(map[string]string),
	}
}

// SetRole replaces the member list for a role.
func (d *MemoryDirectory) SetRole(role string, members ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.roles[role] = append([]string(nil), members...)
}

// SetEmail records the email address for a user.
func (d *MemoryDirectory) SetEmail(userID, address string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.emails[userID] = address
}

func (d *MemoryDirectory) RoleMembers(ctx context.Context, roles []string) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var members []string
	for _, role := range roles {
		members = append(members, d.roles[role]...)
	}
	return members, nil
}

func (d *MemoryDirectory) Email(ctx context.Context, userID string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	addr, ok := d.emails[userID]
	if !ok || addr == "" {
		return "", fmt.Errorf("%w: %s", ErrNoEmail, userID)
	}
	return addr, nil
}
