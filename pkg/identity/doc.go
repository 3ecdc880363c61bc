// Package identity defines the directory collaborators the distribution
// engine consumes: role-membership expansion and user email lookup.
//
// The engine never owns identity data. Hosts supply a RoleSource and an
// EmailLookup backed by their own user store; MemoryDirectory and
// LoadDirectory cover development, tests, and config-provisioned setups.
package identity
