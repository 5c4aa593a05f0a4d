// Package repository provides the generic entity-access core every domain
// repository in the SDK is a configuration of. A Core is parameterized by an
// endpoint and a resource name; those two values are the entirety of what
// distinguishes one domain repository from another at this level.
//
// # Responsibilities
//
// The Core is the single choke point for remote reads and writes, applying
// four cross-cutting concerns exactly once:
//
//   - cached reads via CachedOrExecute (read-through, loader-once, no
//     negative caching)
//   - cache invalidation on every mutation, completed before the call returns
//   - success-only event emission ("{resource}.created", ".updated", ...)
//   - metrics-wrapped execution and consistent error translation
//
// # Read semantics
//
// FindByID translates a remote 404 into (nil, nil): absence is an expected
// outcome, surfaced as a nil entity rather than an error. Any other non-2xx
// becomes an apierror.RemoteError carrying the original status code. A 2xx
// whose body cannot be parsed becomes an apierror.DecodeError.
//
// # Write semantics
//
// Update and Delete invalidate the direct key ("resource:{id}"), composite
// keys ("resource:*:{id}"), and derived keys ("resource:related:{id}:*",
// "resource:history:{id}:*") before returning, giving read-after-write
// consistency against the SDK's own cache. Delete is idempotent: a remote
// 404 reports success. Bulk operations batch items into one call and report
// partial failure as a single aggregate error; per-item outcomes belong to
// the remote service.
//
// # What the Core does not do
//
// No retries (the Gateway owns retry policy), no locking (the shared Store
// and Sink are concurrency-safe by contract), no background work: every
// method is one synchronous round trip.
package repository
