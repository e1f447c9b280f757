package rewrite

import (
	"errors"
	"fmt"

	"github.com/dreamware/isocheck/internal/history"
)

// ErrGuardCollision is returned by ValidateGuard when a caller-supplied
// GuardFunc produces a key that collides with either a real key in the
// history or with another guard key.
var ErrGuardCollision = errors.New("rewrite: guard function collides with a real or another guard key")

// Split returns a copy of h in which every transaction has been
// replaced by its (reads, writes) pair, doubling every client's
// transaction count while preserving per-client order — the prefix
// consistency reduction to a serializability check.
func Split[K, V comparable](h history.History[K, V]) history.History[K, V] {
	out := history.History[K, V]{Clients: make([]history.ClientSession[K, V], len(h.Clients))}
	for c, client := range h.Clients {
		txs := make([]history.Transaction[K, V], 0, len(client.Transactions)*2)
		for _, t := range client.Transactions {
			reads, writes := t.Split()
			txs = append(txs, reads, writes)
		}
		out.Clients[c] = history.ClientSession[K, V]{Transactions: txs}
	}
	return out
}

// ValidateGuard checks for two guard-related programmer errors that
// must be caught before a search runs: a guard key colliding with a
// real key, or two distinct (key, writer-index) pairs producing the
// same guard key. It must be called before SIEncode; SIEncode itself
// assumes a valid guard and does not check it.
func ValidateGuard[K, V comparable](h history.History[K, V], guard history.GuardFunc[K]) error {
	keys := h.Keys()
	n := len(h.Clients)
	seen := make(map[K]struct{}, len(keys)*n)
	for k := range keys {
		for i := 0; i < n; i++ {
			g := guard(k, i)
			if _, isRealKey := keys[g]; isRealKey {
				return fmt.Errorf("%w: guard(%v, %d) equals real key %v", ErrGuardCollision, k, i, g)
			}
			if _, dup := seen[g]; dup {
				return fmt.Errorf("%w: guard(%v, %d) collides with another guard key", ErrGuardCollision, k, i)
			}
			seen[g] = struct{}{}
		}
	}
	return nil
}

// SIEncode returns a copy of h rewritten so that SER over the result
// holds iff SI holds over h — the snapshot isolation reduction to a
// serializability check.
//
// For every transaction T in client i with split (Tr, Tw), and for
// every Set(k, _) in Tw (in order): Tr gains a synthetic
// Set(guard(k,i), zero-value) reserving i's own guard slot, and for
// every client c' that writes k anywhere in h, Tw gains either
// Set(guard(k,c'), abnormal) (c' != i: stamp the other writer's guard)
// or Get(guard(k,c'), zero-value) (c' == i: read back its own,
// expecting it still unstamped).
//
// Callers must run ValidateGuard first; SIEncode panics if it finds a
// key with no recorded writer for one of its own Set ops, which cannot
// happen for a valid guard and a self-consistent history.
func SIEncode[K, V comparable](h history.History[K, V], guard history.GuardFunc[K], abnormal V) history.History[K, V] {
	writersByKey := h.WritersByKey()
	var zero V

	out := history.History[K, V]{Clients: make([]history.ClientSession[K, V], len(h.Clients))}
	for i, client := range h.Clients {
		txs := make([]history.Transaction[K, V], 0, len(client.Transactions)*2)
		for _, t := range client.Transactions {
			reads, writes := t.Split()

			for _, op := range writes.Ops {
				clients, ok := writersByKey[op.Key]
				if !ok {
					panic(fmt.Sprintf("rewrite: key %v has a Set with no recorded writer", op.Key))
				}

				reads.Ops = append(reads.Ops, history.Set(guard(op.Key, i), zero))

				for c := range clients {
					if c != i {
						writes.Ops = append(writes.Ops, history.Set(guard(op.Key, c), abnormal))
					}
				}
				if _, self := clients[i]; self {
					writes.Ops = append(writes.Ops, history.Get(guard(op.Key, i), zero))
				}
			}

			txs = append(txs, reads, writes)
		}
		out.Clients[i] = history.ClientSession[K, V]{Transactions: txs}
	}
	return out
}
