// Package prefs stores per-user notification preferences and selects the
// delivery channels for each (user, event) pair.
//
// Channel selection resolves in strict precedence order:
//
//  1. The user's explicit override for the event's module and type, taken
//     verbatim when present and non-empty.
//  2. The priority default matrix: critical and high events go to
//     [push, email, in_app]; everything else to [in_app].
//
// A user with no stored record is served a synthesized default that is
// never persisted, so the matrix applies until the user writes their own
// preferences. The result is never empty.
//
// Two Store implementations ship with the package: MemoryStore for
// development and tests, and RedisStore for deployments that keep
// preference blobs in Redis.
package prefs
