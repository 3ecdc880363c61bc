// Package deliveries persists canonical notification events and their
// per-(user, channel) delivery outcomes.
//
// The store is deliberately append-only. An event row is written exactly
// once before dispatch starts; each dispatch unit then appends one
// immutable Record with its outcome. History is never updated or deleted,
// and ListDeliveries orders explicitly by creation time descending because
// concurrent workers give insertion order no meaning.
//
// MemoryStorage backs development and tests; PostgresStorage (pgx pool,
// goose-managed schema) backs production.
package deliveries
