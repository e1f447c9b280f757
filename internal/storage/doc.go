// Package storage provides SimStore, a tiny thread-safe, single-versioned
// key-value store used to generate self-consistent synthetic histories
// (internal/fixtures): every Get returns whatever the store actually
// holds for that key, so a client replaying operations against SimStore
// produces a history whose reads are guaranteed to match some write,
// rather than a history assembled from an ad hoc side map.
//
// # Overview
//
// SimStore is a minimal, real instance of the single-versioned
// key-value store these histories describe clients transacting
// against. It exists purely to drive internal/fixtures.GenerateRandom;
// it is not a component of the checker itself and never appears on the
// decision path of SerCheck/PrefixCheck/SiCheck.
//
// # Architecture
//
//	┌───────────────────────────┐
//	│        SimStore[K,V]      │
//	├───────────────────────────┤
//	│  mu:   sync.RWMutex       │
//	│  data: map[K]V            │
//	├───────────────────────────┤
//	│  Put(k,v)   ── Lock ──────│──▶ data[k] = v
//	│  Get(k)     ── RLock ─────│──▶ data[k], ok
//	│  GetOrZero(k) ─────────────│──▶ Get, or zero V on miss
//	└───────────────────────────┘
//
// # Concurrency Model
//
// All access goes through a sync.RWMutex: Put takes the write lock,
// Get and GetOrZero take the read lock. This only matters because
// internal/fixtures.GenerateRandom is cheap to call from a fuzzing
// loop that a caller might choose to parallelize; nothing in this
// module actually calls SimStore from more than one goroutine today.
//
// # Performance Characteristics
//
// Get, GetOrZero, and Put are all O(1) map operations under the lock.
//
// # Usage Example
//
//	store := storage.NewSimStore[string, int]()
//	store.Put("x", 1)
//	v := store.GetOrZero("x") // 1
//	v = store.GetOrZero("y")  // 0, never written
//
// # Limitations and Future Work
//
// Single-versioned by design: Put overwrites, with no history of prior
// values. A multi-versioned variant would let internal/fixtures
// generate histories that exercise stale-read anomalies more directly,
// but nothing in this module currently needs one.
//
// # See Also
//
// Related packages:
//   - internal/fixtures: the only caller of SimStore
//   - internal/history: the Op/Transaction types SimStore-backed
//     generation assembles into a History
package storage
