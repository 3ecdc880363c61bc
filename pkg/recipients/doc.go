// Package recipients expands an event's target references into the final
// set of users to notify.
//
// The Resolver starts from the event's explicit user list and unions in
// the members of every referenced role, obtained from an identity
// RoleSource in a single lookup. The result has set semantics: a user
// reachable both explicitly and through two roles appears exactly once.
//
// Role expansion is all-or-nothing. If the role source is unavailable the
// resolution fails as a whole rather than notifying a silent subset.
//
// CachedRoleSource adds an optional, bounded staleness window on top of a
// RoleSource for hosts whose identity store is expensive to query.
package recipients
