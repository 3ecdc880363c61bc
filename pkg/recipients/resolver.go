package recipients

import (
	"context"
	"fmt"
	"sort"

	"github.com/itristenx/nova-notify/pkg/event"
	"github.com/itristenx/nova-notify/pkg/identity"
)

// Resolver expands an event's role references and explicit user references
// into a deduplicated set of target users.
type Resolver struct {
	roles identity.RoleSource
}

// NewResolver creates a resolver backed by the given role source.
func NewResolver(roles identity.RoleSource) *Resolver {
	return &Resolver{roles: roles}
}

// Resolve returns the sorted, deduplicated target user IDs for the event.
// Explicit recipients are taken verbatim; roles are expanded through the
// role source in a single lookup and unioned in.
//
// A role-source failure fails the whole resolution atomically: silently
// dropping a subset of recipients would be worse than failing loudly. The
// returned error wraps ErrRecipientResolution.
func (r *Resolver) Resolve(ctx context.Context, e event.Event) ([]string, error) {
	seen := make(map[string]struct{}, len(e.RecipientUsers))
	for _, id := range e.RecipientUsers {
		if id != "" {
			seen[id] = struct{}{}
		}
	}

	if len(e.RecipientRoles) > 0 {
		members, err := r.roles.RoleMembers(ctx, e.RecipientRoles)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRecipientResolution, err)
		}
		for _, id := range members {
			if id != "" {
				seen[id] = struct{}{}
			}
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	// Deterministic order keeps dispatch and logs reproducible; delivery
	// ordering guarantees still come from the tracker, not from here.
	sort.Strings(ids)
	return ids, nil
}
