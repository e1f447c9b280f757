// Package search implements the backtracking engine that decides
// serializability of a pre-initialized history against its observed
// reads.
//
// # Overview
//
// Engine is the one stateful, non-trivial algorithm in this module: it
// searches the space of client-order-respecting interleavings of a
// history's transactions for one that reproduces every recorded read.
// Everything else in the repository — the reverse index, the PC/SI
// rewrites, the public façade — exists to feed Engine a history and
// interpret its yes/no answer.
//
// # Architecture
//
//	┌──────────────────────────────────────────────┐
//	│                   Engine[K,V]                 │
//	├──────────────────────────────────────────────┤
//	│  h:      history.History[K,V]  (read-only)    │
//	│  idx:    *index.Reverse[K,V]   (built once)   │
//	│  totals: []int                 (per-client    │
//	│                                  tx counts)   │
//	│  memo:   map[string]bool       (frontier →    │
//	│                                  outcome)     │
//	├──────────────────────────────────────────────┤
//	│  Check(ctx) ──▶ extend(ctx, zero frontier)    │
//	│                      │                        │
//	│            ┌─────────┴─────────┐              │
//	│            ▼                   ▼              │
//	│      readFeasible      wouldStrandAWrite       │
//	│     (can t be read     (would placing t        │
//	│      right now?)        break a pending read?) │
//	│            │                   │              │
//	│            └─────────┬─────────┘              │
//	│                       ▼                        │
//	│              advance + memoize + recurse        │
//	└──────────────────────────────────────────────┘
//
// # Frontier
//
// The search state is a frontier: one counter per client, counting how
// many of that client's transactions have been placed in the partial
// serialization under exploration. A transaction can only be considered
// next for client i when it sits exactly at F[i]; placing it advances
// F[i] by one. The frontier is terminal when every client's counter
// equals that client's transaction count.
//
// # Pruning
//
// Two filters decide whether a candidate transaction can legally be the
// next step from the current frontier:
//
//   - read-feasibility: every value the candidate transaction reads
//     must have a writer that is already placed (strictly behind the
//     frontier).
//   - write-conflict: placing the candidate must not strand a read, by
//     a not-yet-placed transaction, of a key the candidate writes, when
//     every writer of that read's (key, value) pair is already placed.
//
// # Concurrency Model
//
// An Engine is built for, and consumed by, exactly one Check call on
// one goroutine; it holds no internal locking because nothing in this
// package shares an Engine across goroutines. Callers who want to check
// many histories concurrently build one Engine per history (the root
// isocheck package's CheckBatch does exactly this, via errgroup) rather
// than sharing one Engine's memo cache.
//
// # Performance Characteristics
//
// Both pruning filters make the search tractable, but memoizing failed
// and successful frontiers by their stable string encoding is what
// makes it terminate quickly: every frontier is fully explored at most
// once, turning what would otherwise be an exponential retry into a
// single pass over the frontier lattice. Memory is proportional to the
// number of distinct frontiers visited, which in the worst case is the
// product of each client's transaction count plus one.
//
// # Failure Handling
//
// Check never itself errors: it returns false both for "provably
// unserializable" and for "ctx was cancelled before an answer was
// found." Callers that need to tell these apart check ctx.Err()
// themselves after a false result.
//
// # Usage Example
//
//	e := search.New(preInitedHistory, search.WithWitness[string, int](true))
//	if e.Check(ctx) {
//	    fmt.Println("serializable, order:", e.Witness())
//	}
//
// # Limitations and Future Work
//
//   - The recursive implementation is not converted to an explicit
//     stack; at the scale this checker targets (test-sized histories,
//     not production transaction logs) the recursion depth is bounded
//     by the total transaction count and has not been a problem.
//   - The memo cache is never evicted; a single Check call's lifetime
//     is short enough that this has not mattered in practice.
//
// # See Also
//
// Related packages:
//   - internal/index: the reverse index Engine prunes against
//   - internal/rewrite: produces the histories Engine is run over for
//     PC and SI checks
//   - isocheck: the public façade that owns an Engine's lifecycle
package search
