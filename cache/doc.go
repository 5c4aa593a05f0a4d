// Package cache defines the caching contract shared by every repository in
// the SDK: a byte-oriented Store with TTL semantics, deterministic key
// derivation, and a generic read-through helper.
//
// # Key derivation
//
// Keys are namespaced by resource so repositories sharing one Store never
// collide:
//
//	user:usr_123                          entity read
//	user:find_by_email:email=a@b.com      query read
//
// Query parameters are serialized with sorted map keys, so two logically
// identical parameter sets always share a cache slot regardless of insertion
// order.
//
// # Read-through caching
//
// GetOrFetch checks the Store first and only invokes the loader on a miss.
// The loader runs at most once per call and its error is never cached, so a
// transient remote failure does not poison subsequent reads.
//
// # Invalidation
//
// Store.DeletePattern clears keys by wildcard pattern ("*" matches one
// segment, a trailing "*" matches the rest). Repositories use it to clear
// direct, composite, and derived keys for an entity when it changes.
//
// Backends are provided for in-process memory (go-cache), Redis, and sturdyc;
// see NewStore.
package cache
