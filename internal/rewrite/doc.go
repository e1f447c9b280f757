// Package rewrite implements the two pure history transformations that
// reduce prefix consistency and snapshot isolation checks to a plain
// serializability check.
//
// # Overview
//
// Neither isolation level this package supports is checked directly:
// both are defined in terms of what a rewritten version of the history
// must look like under plain serializability. This package owns that
// rewriting; internal/search never knows it is checking anything but
// SER.
//
// # Architecture
//
//	┌────────────────────────────────────────────────────┐
//	│                     rewrite                         │
//	├────────────────────────────────────────────────────┤
//	│  Split(h)      ──▶  every Tx → (reads, writes)      │
//	│                     doubled client transaction count│
//	├────────────────────────────────────────────────────┤
//	│  ValidateGuard(h, guard)  ──▶  error | nil           │
//	│       checks guard(k,i) never collides with a real  │
//	│       key or another guard(k',i') before rewriting  │
//	├────────────────────────────────────────────────────┤
//	│  SIEncode(h, guard, abnormal)                       │
//	│       for every Set(k,_) in a write-half:           │
//	│         reads  += Set(guard(k,i), zero)   (reserve)  │
//	│         writes += Set(guard(k,c), abnormal) for      │
//	│                   every other writer c of k          │
//	│         writes += Get(guard(k,i), zero)   (self-     │
//	│                   check, if i also writes k)         │
//	└────────────────────────────────────────────────────┘
//
//   - Split doubles every transaction into a read-only half followed by
//     a write-only half, surfacing any PC violation as a SER violation
//     of the doubled history.
//   - SIEncode adds synthetic guard reads/writes so that SER over the
//     encoded history holds iff SI holds over the original: every
//     writer of a key stamps the guards of every other writer of that
//     key, and checks its own guard is still unstamped.
//
// # Concurrency Model
//
// Both Split and SIEncode are pure functions of their input history:
// neither mutates h, both allocate and return a new one. They carry no
// shared state and are safe to call from any number of goroutines on
// independent histories.
//
// # Failure Handling
//
// ValidateGuard returns ErrGuardCollision rather than panicking, since
// a colliding guard function is a caller-supplied configuration error
// detectable before any rewriting happens. SIEncode itself panics if it
// ever finds a Set with no recorded writer for its own key — a state
// ValidateGuard having already run should make unreachable — rather
// than silently producing a wrong encoding.
//
// # Usage Example
//
//	if err := rewrite.ValidateGuard(h, guardFn); err != nil {
//	    return err
//	}
//	encoded := rewrite.SIEncode(h, guardFn, abnormalValue)
//	ok := search.New(encoded.PreInit()).Check(ctx)
//
// # See Also
//
// Related packages:
//   - internal/history: the Transaction.Split this package's Split
//     builds on, and the GuardFunc/WritersByKey SIEncode consumes
//   - internal/search: runs the SER check these rewrites reduce to
package rewrite
