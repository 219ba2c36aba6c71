// Package cache holds the in-memory view of synchronized records.
//
// A ScopedCache indexes the records of one scope together with the two
// pending-push sets of that scope. A UserCache bundles the Public, Private and
// Shared caches seen by one user; the Public cache is the same instance for
// every user. LocalCacheCoordinator creates user caches lazily, hydrates them
// from a store.LocalPersistence and keeps them for the process lifetime.
//
// Cache maps are not safe for concurrent use. Callers serialize every access
// through a workers.SerialQueue.
package cache
