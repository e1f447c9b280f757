package fixtures

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/dreamware/isocheck/internal/history"
	"github.com/dreamware/isocheck/internal/storage"
)

// Scenario is a named end-to-end example history paired with its
// expected outcome under each isolation level, for use as a
// table-driven test fixture.
type Scenario struct {
	Name       string
	History    history.History[string, string]
	WantSER    bool
	WantPrefix bool
	WantSI     bool
}

func tx(ops ...history.Op[string, string]) history.Transaction[string, string] {
	return history.Transaction[string, string]{Ops: ops}
}

func client(ops ...history.Op[string, string]) history.ClientSession[string, string] {
	return history.ClientSession[string, string]{Transactions: []history.Transaction[string, string]{tx(ops...)}}
}

// Canonical returns six hand-built histories covering the anomalies and
// borderline-acceptable cases an isolation checker is expected to
// distinguish: a dirty-anti-dependency cycle, lost update, long fork,
// write skew, a trivially serial history, and a write nobody reads.
func Canonical() []Scenario {
	return []Scenario{
		{
			Name: "dirty-anti-dependency-cycle",
			History: history.History[string, string]{Clients: []history.ClientSession[string, string]{
				client(history.Set("x", "1"), history.Set("y", "1")),
				client(history.Get("x", "1"), history.Get("y", "1"), history.Set("x", "2")),
				client(history.Get("x", "1"), history.Get("y", "1"), history.Set("y", "2")),
			}},
			WantSER: false, WantPrefix: true, WantSI: true,
		},
		{
			Name: "lost-update",
			History: history.History[string, string]{Clients: []history.ClientSession[string, string]{
				client(history.Get("x", "0"), history.Set("x", "1")),
				client(history.Get("x", "0"), history.Set("x", "2")),
			}},
			WantSER: false, WantPrefix: true, WantSI: false,
		},
		{
			Name: "long-fork",
			History: history.History[string, string]{Clients: []history.ClientSession[string, string]{
				client(history.Get("x", "0"), history.Set("x", "1")),
				client(history.Get("y", "0"), history.Set("y", "1")),
				client(history.Get("x", "1"), history.Get("y", "0")),
				client(history.Get("x", "0"), history.Get("y", "1")),
			}},
			WantSER: false, WantPrefix: false, WantSI: false,
		},
		{
			Name: "write-skew",
			History: history.History[string, string]{Clients: []history.ClientSession[string, string]{
				client(history.Get("x", "0"), history.Get("y", "0"), history.Set("x", "1")),
				client(history.Get("x", "0"), history.Get("y", "0"), history.Set("y", "1")),
			}},
			WantSER: false, WantPrefix: true, WantSI: true,
		},
		{
			Name: "trivially-serial",
			History: history.History[string, string]{Clients: []history.ClientSession[string, string]{
				{Transactions: []history.Transaction[string, string]{
					tx(history.Set("x", "1")),
					tx(history.Get("x", "1"), history.Set("x", "2")),
				}},
			}},
			WantSER: true, WantPrefix: true, WantSI: true,
		},
		{
			Name: "unread-write",
			History: history.History[string, string]{Clients: []history.ClientSession[string, string]{
				client(history.Set("x", "5")),
				client(history.Get("x", "")),
			}},
			WantSER: true, WantPrefix: true, WantSI: true,
		},
	}
}

// Synthetic is a randomly generated history paired with the uuid it was
// tagged with, so a fuzz run can report which seed/tag produced a given
// result.
type Synthetic struct {
	ID      string
	History history.History[string, string]
}

// GenerateRandom builds numClients client sessions of up to maxTxPerClient
// transactions each, reading and writing from a small shared key space,
// using rng for all randomness so callers control reproducibility. Every
// op is replayed against a backing SimStore, so a generated Get always
// returns whatever that store actually holds for the key at the moment
// it runs (a locally-consistent, not necessarily globally serializable,
// generation strategy — the point is to produce varied fuzz input, not
// valid-by-construction traces).
func GenerateRandom(rng *rand.Rand, numClients, maxTxPerClient, numKeys int) Synthetic {
	keys := make([]string, numKeys)
	for i := range keys {
		keys[i] = fmt.Sprintf("k%d", i)
	}
	store := storage.NewSimStore[string, string]()

	h := history.History[string, string]{Clients: make([]history.ClientSession[string, string], numClients)}
	for c := 0; c < numClients; c++ {
		numTx := 1 + rng.Intn(maxTxPerClient)
		txs := make([]history.Transaction[string, string], numTx)
		for d := 0; d < numTx; d++ {
			numOps := 1 + rng.Intn(3)
			ops := make([]history.Op[string, string], 0, numOps)
			for o := 0; o < numOps; o++ {
				k := keys[rng.Intn(len(keys))]
				if rng.Intn(2) == 0 {
					ops = append(ops, history.Get(k, store.GetOrZero(k)))
				} else {
					v := fmt.Sprintf("v%d", rng.Intn(1000))
					store.Put(k, v)
					ops = append(ops, history.Set(k, v))
				}
			}
			txs[d] = history.Transaction[string, string]{Ops: ops}
		}
		h.Clients[c] = history.ClientSession[string, string]{Transactions: txs}
	}

	return Synthetic{ID: uuid.New().String(), History: h}
}
