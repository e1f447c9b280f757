package history

import "golang.org/x/exp/maps"

// Position identifies a transaction by client index and offset within
// that client's session. It is also the vocabulary the search engine's
// frontier is expressed in.
type Position struct {
	Client int
	Offset int
}

// Op is a single observed operation within a transaction. Kind selects
// which of Key/Val is meaningful; Get.Val is the value that was read,
// Set.Val is the value that was written. There is deliberately no
// separate Get/Set struct hierarchy — a tagged struct is simpler in Go
// and just as exhaustive to switch over.
type Op[K, V comparable] struct {
	Kind OpKind
	Key  K
	Val  V
}

// OpKind tags an Op as a read or a write.
type OpKind uint8

const (
	OpGet OpKind = iota
	OpSet
)

func (k OpKind) String() string {
	if k == OpGet {
		return "get"
	}
	return "set"
}

// Get builds a read operation with its observed value.
func Get[K, V comparable](key K, val V) Op[K, V] { return Op[K, V]{Kind: OpGet, Key: key, Val: val} }

// Set builds a write operation with the value it wrote.
func Set[K, V comparable](key K, val V) Op[K, V] { return Op[K, V]{Kind: OpSet, Key: key, Val: val} }

// Transaction is an ordered, indivisible sequence of operations. The
// search engine only ever places a whole Transaction as one step.
type Transaction[K, V comparable] struct {
	Ops []Op[K, V]
}

// Writes reports whether t contains any Set of k, regardless of value.
func (t Transaction[K, V]) Writes(k K) bool {
	for _, op := range t.Ops {
		if op.Kind == OpSet && op.Key == k {
			return true
		}
	}
	return false
}

// Split partitions t's operations into a read-only prefix and a
// write-only suffix, preserving relative order within each class. The
// concatenation of the two is a permutation of t.Ops that groups every
// read before every write.
func (t Transaction[K, V]) Split() (reads, writes Transaction[K, V]) {
	for _, op := range t.Ops {
		if op.Kind == OpGet {
			reads.Ops = append(reads.Ops, op)
		} else {
			writes.Ops = append(writes.Ops, op)
		}
	}
	return reads, writes
}

// ClientSession is one client's transactions in program order. Any
// admissible serialization must respect this order.
type ClientSession[K, V comparable] struct {
	Transactions []Transaction[K, V]
}

// History is the full multi-client recording under test.
type History[K, V comparable] struct {
	Clients []ClientSession[K, V]
}

// Len returns the number of transactions in client c, or 0 if c is out
// of range (used by the search engine's frontier bookkeeping).
func (h History[K, V]) Len(c int) int {
	if c < 0 || c >= len(h.Clients) {
		return 0
	}
	return len(h.Clients[c].Transactions)
}

// At returns the transaction at position p. Callers must ensure p is
// in bounds; an out-of-bounds access is a search-engine bug, not a
// recoverable condition, so it panics rather than returning an error.
func (h History[K, V]) At(p Position) Transaction[K, V] {
	return h.Clients[p.Client].Transactions[p.Offset]
}

// Keys returns the set of every key read or written anywhere in h, used
// by PreInit and by the SI rewrite's guard validation
// (rewrite.ValidateGuard).
func (h History[K, V]) Keys() map[K]struct{} {
	keys := make(map[K]struct{})
	for _, c := range h.Clients {
		for _, t := range c.Transactions {
			for _, op := range t.Ops {
				keys[op.Key] = struct{}{}
			}
		}
	}
	return keys
}

// WritersByKey returns, for every key written anywhere in h, the set of
// client indices containing at least one transaction that writes it.
// Every writer is recorded unconditionally, including the first one
// seen for a given key.
func (h History[K, V]) WritersByKey() map[K]map[int]struct{} {
	writers := make(map[K]map[int]struct{})
	for c, client := range h.Clients {
		for _, t := range client.Transactions {
			for _, op := range t.Ops {
				if op.Kind != OpSet {
					continue
				}
				if writers[op.Key] == nil {
					writers[op.Key] = make(map[int]struct{})
				}
				writers[op.Key][c] = struct{}{}
			}
		}
	}
	return writers
}

// PreInit returns a copy of h with one additional client appended: a
// single-transaction session that Sets every key in h.Keys() to the
// zero value of V. This makes every Get(k, zero-value) satisfiable by
// reading from the synthetic origin.
//
// The synthetic transaction is appended as a new client, not prepended
// to an existing one, because the search engine is free to schedule any
// client's next transaction first — it does not need to be literally
// first in program order to be scheduled first.
func (h History[K, V]) PreInit() History[K, V] {
	keys := maps.Keys(h.Keys())
	var zero V
	ops := make([]Op[K, V], 0, len(keys))
	for _, k := range keys {
		ops = append(ops, Set(k, zero))
	}
	out := History[K, V]{Clients: make([]ClientSession[K, V], len(h.Clients), len(h.Clients)+1)}
	copy(out.Clients, h.Clients)
	out.Clients = append(out.Clients, ClientSession[K, V]{
		Transactions: []Transaction[K, V]{{Ops: ops}},
	})
	return out
}

// GuardFunc derives a synthetic guard key for key k belonging to
// client index i, a writer of k, for use by the SI rewrite
// (internal/rewrite). It
// must satisfy: guard(k,i) != guard(k,j) for i != j, and guard(k,i) is
// never equal to any key that appears elsewhere in the history. The
// caller supplies this instead of the checker inferring one, because
// only the caller knows a namespacing scheme that cannot collide with
// real keys of type K.
type GuardFunc[K comparable] func(k K, i int) K
