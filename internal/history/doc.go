// Package history defines the immutable data model shared by every other
// checker package: operations, transactions, client sessions, and the
// multi-client history they compose into.
//
// # Overview
//
// A history is a recording, not a request log: every Get already carries
// the value that was observed, and every Set the value that was written.
// Nothing in this package executes anything against a live store — it is
// pure data plus the two structural queries the search engine and the
// rewriters need (Writes and Split).
//
// # Architecture
//
//	History
//	  └── []ClientSession        (program order per client)
//	        └── []Transaction    (placed atomically by the search engine)
//	              └── []Op       (Get or Set, in the order they occurred)
//
// Position{Client, Offset} addresses one Transaction within this tree;
// it is the vocabulary internal/index and internal/search's frontier
// are expressed in.
//
// # Keys and Values
//
// K and V are caller-supplied comparable types. The checker asks nothing
// more of them than equality — no ordering, no serialization. A default
// (zero) value of V seeds the synthetic initializing transaction (see
// PreInit); an explicit "abnormal" value, supplied by the caller at
// Checker construction, poisons SI guard keys.
//
// # Concurrency Model
//
// Every type in this package is an immutable value once constructed:
// Split and PreInit return new values rather than mutating the
// receiver, so a single History can be read from any number of
// goroutines without synchronization, which is exactly what
// isocheck.CheckBatch relies on when it fans checks of several
// histories out across workers.
//
// # Performance Characteristics
//
//   - Writes(k): O(ops in the transaction).
//   - WritersByKey(): O(total ops in the history); built once per
//     check, not per candidate transaction.
//   - PreInit(): O(total ops in the history), to collect its keys;
//     appends one client,
//     so it does not disturb the offsets of any existing client.
//
// # Usage Example
//
//	h := history.History[string, int]{Clients: []history.ClientSession[string, int]{
//	    {Transactions: []history.Transaction[string, int]{
//	        {Ops: []history.Op[string, int]{history.Set("x", 1)}},
//	    }},
//	}}
//	initialized := h.PreInit()
//
// # See Also
//
// Related packages:
//   - internal/index: builds its reverse index from WritersByKey-shaped
//     scans over a History
//   - internal/rewrite: produces new Historys from Split and SIEncode
//   - internal/search: walks a pre-initialized History's Positions
package history
