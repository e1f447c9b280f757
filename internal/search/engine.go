package search

import (
	"context"

	"github.com/dreamware/isocheck/internal/history"
	"github.com/dreamware/isocheck/internal/index"
	"github.com/dreamware/isocheck/internal/obslog"
)

// Engine runs one serializability search over a fixed, pre-initialized
// history. It is not reusable across histories: reverse index, frontier
// and memo cache are all owned by a single Check call and make sense
// only for the history they were built from.
//
// Thread Safety: an Engine is not safe for concurrent use. It carries
// no lock because it is never shared across goroutines by anything in
// this module — isocheck.CheckBatch builds one Engine per history
// inside each worker goroutine instead of sharing one.
//
// Memory: dominated by the memo map, which holds one entry per
// distinct frontier visited — at most the product of each client's
// transaction count plus one, though pruning keeps real histories far
// below that bound.
type Engine[K, V comparable] struct {
	h   history.History[K, V]
	idx *index.Reverse[K, V]
	log *obslog.Logger

	totals []int
	memo   map[string]bool

	recordWitness bool
	witness       []int
}

// Option configures an Engine at construction.
type Option[K, V comparable] func(*Engine[K, V])

// WithLogger attaches a logger for frontier tracing. The default is a
// no-op logger.
func WithLogger[K, V comparable](l *obslog.Logger) Option[K, V] {
	return func(e *Engine[K, V]) { e.log = l }
}

// WithWitness enables recording the client index chosen on every
// successful descent, retrievable via Witness after a successful
// Check.
func WithWitness[K, V comparable](enabled bool) Option[K, V] {
	return func(e *Engine[K, V]) { e.recordWitness = enabled }
}

// New builds an Engine over h, constructing the reverse index once.
func New[K, V comparable](h history.History[K, V], opts ...Option[K, V]) *Engine[K, V] {
	e := &Engine[K, V]{
		h:    h,
		idx:  index.Build(h),
		log:  obslog.Nop(),
		memo: make(map[string]bool),
	}
	e.totals = make([]int, len(h.Clients))
	for c := range h.Clients {
		e.totals[c] = h.Len(c)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Check runs the search to completion and reports whether a legal
// serialization exists. ctx is checked between descents only (the
// search itself has no suspension points); a cancelled ctx makes Check
// return false promptly without claiming the history is
// unserializable — callers that care about the distinction should
// check ctx.Err() themselves.
func (e *Engine[K, V]) Check(ctx context.Context) bool {
	frontier := make(Frontier, len(e.totals))
	return e.extend(ctx, frontier)
}

// Witness returns the serialization order recorded by the most recent
// successful Check, as a sequence of client indices — one per placed
// transaction, in the order they were scheduled. Empty unless
// WithWitness(true) was set and Check returned true.
func (e *Engine[K, V]) Witness() []int {
	return e.witness
}

func (e *Engine[K, V]) extend(ctx context.Context, f Frontier) bool {
	if err := ctx.Err(); err != nil {
		return false
	}
	if f.Terminal(e.totals) {
		return true
	}

	for i := 0; i < len(e.totals); i++ {
		if f[i] >= e.totals[i] {
			continue
		}
		t := e.h.At(history.Position{Client: i, Offset: f[i]})
		e.log.Frontier("considering transaction", i, f.Clone())

		if !e.readFeasible(f, t) {
			continue
		}
		if e.wouldStrandAWrite(f, i, t) {
			continue
		}

		f[i]++
		key := f.key()
		if cached, ok := e.memo[key]; ok {
			if cached {
				return true
			}
			f[i]--
			continue
		}

		if e.recordWitness {
			e.witness = append(e.witness, i)
		}
		ok := e.extend(ctx, f)
		e.memo[f.key()] = ok
		if ok {
			return true
		}
		if e.recordWitness {
			e.witness = e.witness[:len(e.witness)-1]
		}
		f[i]--
	}
	return false
}

// readFeasible reports whether every value t reads already has an
// available writer: some Set of that exact (key, value) pair placed
// strictly before the current frontier. A read whose pair was never
// written at all, or whose only candidate writers are all still ahead
// of the frontier, makes t unplaceable right now.
func (e *Engine[K, V]) readFeasible(f Frontier, t history.Transaction[K, V]) bool {
	for _, op := range t.Ops {
		if op.Kind != history.OpGet {
			continue
		}
		writers, ok := e.idx.Writers(op.Key, op.Val)
		if !ok {
			return false
		}
		if allAhead(writers, f) {
			return false
		}
	}
	return true
}

// allAhead reports whether every writer position is still at or ahead
// of the frontier (d' >= f[c']) — i.e. none of them has been placed
// yet. The comparison is intentionally >=, not >, even for a writer in
// the same client as the transaction under consideration: that
// correctly forbids a transaction from reading a value only it itself
// (or something later) writes.
func allAhead(writers []history.Position, f Frontier) bool {
	for _, w := range writers {
		if w.Offset < f[w.Client] {
			return false
		}
	}
	return true
}

// wouldStrandAWrite reports whether placing candidate (client i, t) next
// would strand a pending read, by checking every not-yet-placed transaction U (from any
// client, with U itself excluded when it's t): if t writes a key that
// some such U reads, and every writer of U's exact (key, value) is
// already placed, then U's read is already anchored to a prior write
// and scheduling t now would sit between that writer and U — illegally
// intruding on an existing read-from edge.
func (e *Engine[K, V]) wouldStrandAWrite(f Frontier, i int, t history.Transaction[K, V]) bool {
	for c := 0; c < len(e.totals); c++ {
		bottom := f[c]
		if c == i {
			bottom++
		}
		for d := bottom; d < e.totals[c]; d++ {
			u := e.h.At(history.Position{Client: c, Offset: d})
			for _, op := range u.Ops {
				if op.Kind != history.OpGet {
					continue
				}
				if !t.Writes(op.Key) {
					continue
				}
				writers, ok := e.idx.Writers(op.Key, op.Val)
				if !ok {
					continue
				}
				if allPlaced(writers, f) {
					return true
				}
			}
		}
	}
	return false
}

// allPlaced reports whether every writer position lies strictly behind
// the frontier, i.e. has already been placed.
func allPlaced(writers []history.Position, f Frontier) bool {
	for _, w := range writers {
		if w.Offset >= f[w.Client] {
			return false
		}
	}
	return true
}

