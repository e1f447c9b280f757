package index

import "github.com/dreamware/isocheck/internal/history"

// kv is the (key, value) pair a Set wrote; it is the index's map key.
type kv[K, V comparable] struct {
	Key K
	Val V
}

// Reverse maps (key, value) to the set of positions that wrote it.
// Duplicate writes of the same pair from different transactions
// coexist in the set.
type Reverse[K, V comparable] struct {
	writers map[kv[K, V]]map[history.Position]struct{}
}

// Build scans every Set in h and indexes its writer position. Called
// once at the start of a SER check; the result is read-only thereafter.
func Build[K, V comparable](h history.History[K, V]) *Reverse[K, V] {
	r := &Reverse[K, V]{writers: make(map[kv[K, V]]map[history.Position]struct{})}
	for c, client := range h.Clients {
		for d, t := range client.Transactions {
			for _, op := range t.Ops {
				if op.Kind != history.OpSet {
					continue
				}
				key := kv[K, V]{Key: op.Key, Val: op.Val}
				if r.writers[key] == nil {
					r.writers[key] = make(map[history.Position]struct{})
				}
				r.writers[key][history.Position{Client: c, Offset: d}] = struct{}{}
			}
		}
	}
	return r
}

// Writers returns the positions that wrote (k, v). ok is false when no
// transaction ever wrote this pair — the caller (the search engine's
// read-feasibility filter) treats that as an unsatisfiable read.
func (r *Reverse[K, V]) Writers(k K, v V) (positions []history.Position, ok bool) {
	set, found := r.writers[kv[K, V]{Key: k, Val: v}]
	if !found || len(set) == 0 {
		return nil, false
	}
	positions = make([]history.Position, 0, len(set))
	for p := range set {
		positions = append(positions, p)
	}
	return positions, true
}

// Len reports how many distinct (key, value) pairs were indexed, for
// logging/diagnostics only.
func (r *Reverse[K, V]) Len() int { return len(r.writers) }
