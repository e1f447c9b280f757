// Package isocheck decides, offline, whether a recorded multi-client
// transactional history satisfies serializability (SER), snapshot
// isolation (SI), or prefix consistency (PC) over a single-versioned
// key-value store.
//
// # Overview
//
// A Checker is configured once with a guard-key derivation function and
// an SI abnormal value, then reused across any number of histories via
// SerCheck, PrefixCheck, SiCheck, or the concurrent CheckBatch. Each
// individual check is a synchronous, single-threaded search (internal/
// search); CheckBatch is the only concurrency surface, sharding
// independent histories across goroutines rather than parallelizing
// inside one search.
//
// # Architecture
//
//	┌─────────────────────────────────────────────────────┐
//	│                   Checker[K,V]                       │
//	├─────────────────────────────────────────────────────┤
//	│  guard: history.GuardFunc[K]   abnormal: V           │
//	│  log:   *obslog.Logger         recordWitness: bool   │
//	├─────────────────────────────────────────────────────┤
//	│  SerCheck(h)    = run(h.PreInit())                   │
//	│  PrefixCheck(h) = run(rewrite.Split(h).PreInit())    │
//	│  SiCheck(h)     = ValidateGuard(h, guard)            │
//	│                   then run(rewrite.SIEncode(...))    │
//	├─────────────────────────────────────────────────────┤
//	│  run(h) = search.New(h, ...).Check(ctx) → Outcome    │
//	└─────────────────────────────────────────────────────┘
//	            │                    │                  │
//	       internal/history    internal/rewrite    internal/search
//
// # Concurrency Model
//
// A Checker holds no per-history state, and every check builds its own
// search engine over a fresh copy of the history, so it is safe to call
// SerCheck/PrefixCheck/SiCheck concurrently from different goroutines,
// on different histories or on the same one. CheckBatch wraps that in a
// bounded worker pool for checking several histories at once.
//
// # Failure Handling
//
// NewChecker validates what it can at construction time
// (ErrBadAbnormalValue); SiCheck validates the rest per-history
// (ErrGuardCollision), since a guard function's disjointness from a
// history's real keys can only be checked once that history is known.
// Internal "impossible" states inside internal/search and
// internal/rewrite panic rather than return a silently wrong answer.
//
// # Usage Example
//
//	c, err := isocheck.NewChecker[string, int](guardFn, -1)
//	if err != nil {
//	    return err
//	}
//	outcome := c.SerCheck(ctx, h)
//	fmt.Println("serializable:", outcome.OK)
//
// # See Also
//
// Related packages:
//   - internal/history: the data model every check operates on
//   - internal/rewrite: the PC/SI reductions PrefixCheck/SiCheck apply
//   - internal/search: the SER decision procedure every check bottoms
//     out in
package isocheck

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/dreamware/isocheck/internal/history"
	"github.com/dreamware/isocheck/internal/obslog"
	"github.com/dreamware/isocheck/internal/rewrite"
	"github.com/dreamware/isocheck/internal/search"
)

// ErrBadAbnormalValue is returned by NewChecker when the supplied
// abnormal value equals V's zero value, which would make SI guard
// stamps indistinguishable from an unstamped guard.
var ErrBadAbnormalValue = errors.New("isocheck: abnormal value must differ from the zero value")

// Mode selects which isolation level CheckBatch evaluates.
type Mode int

const (
	ModeSER Mode = iota
	ModePrefix
	ModeSI
)

// Outcome is the result of one check: whether an admissible
// serialization exists and, optionally, the order it found one in.
type Outcome struct {
	OK      bool
	Witness []int // client index per placed transaction; only set when requested and OK
}

// Checker decides isolation levels for histories over key type K and
// value type V. It holds no per-history state and is safe to reuse,
// including concurrently (see CheckBatch).
type Checker[K, V comparable] struct {
	guard         history.GuardFunc[K]
	abnormal      V
	log           *obslog.Logger
	recordWitness bool
}

// Opt configures a Checker at construction.
type Opt[K, V comparable] func(*Checker[K, V])

// WithLogger attaches a logger for frontier-level debug tracing.
func WithLogger[K, V comparable](l *obslog.Logger) Opt[K, V] {
	return func(c *Checker[K, V]) { c.log = l }
}

// WithWitness enables recording a serialization witness on success,
// retrievable via Outcome.Witness.
func WithWitness[K, V comparable](enabled bool) Opt[K, V] {
	return func(c *Checker[K, V]) { c.recordWitness = enabled }
}

// NewChecker builds a Checker. guard must satisfy the disjointness
// invariants of history.GuardFunc for every history it is later run
// against; that is checked per-history by SiCheck, not here, since a
// single Checker can be reused across many histories with different key
// sets. abnormal must differ from V's zero value.
func NewChecker[K, V comparable](guard history.GuardFunc[K], abnormal V, opts ...Opt[K, V]) (*Checker[K, V], error) {
	var zero V
	if abnormal == zero {
		return nil, ErrBadAbnormalValue
	}
	c := &Checker[K, V]{guard: guard, abnormal: abnormal, log: obslog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SerCheck reports whether h admits a total order of transactions that
// is compatible with per-client order and reproduces every observed
// read.
func (c *Checker[K, V]) SerCheck(ctx context.Context, h history.History[K, V]) Outcome {
	return c.run(ctx, h.PreInit())
}

// PrefixCheck reports whether h is admissible under prefix consistency:
// every transaction is split into a read-only prefix and a write-only
// suffix, and the doubled history is checked for serializability.
func (c *Checker[K, V]) PrefixCheck(ctx context.Context, h history.History[K, V]) Outcome {
	return c.run(ctx, rewrite.Split(h).PreInit())
}

// SiCheck reports whether h is admissible under snapshot isolation, by
// applying the guard encoding and checking the result for
// serializability. It returns an error if the Checker's guard function
// collides with a real key or another guard key in h, instead of
// silently producing a wrong answer.
func (c *Checker[K, V]) SiCheck(ctx context.Context, h history.History[K, V]) (Outcome, error) {
	if err := rewrite.ValidateGuard(h, c.guard); err != nil {
		return Outcome{}, fmt.Errorf("isocheck: %w", err)
	}
	encoded := rewrite.SIEncode(h, c.guard, c.abnormal)
	return c.run(ctx, encoded.PreInit()), nil
}

func (c *Checker[K, V]) run(ctx context.Context, h history.History[K, V]) Outcome {
	e := search.New(h, search.WithLogger[K, V](c.log), search.WithWitness[K, V](c.recordWitness))
	ok := e.Check(ctx)
	out := Outcome{OK: ok}
	if ok && c.recordWitness {
		out.Witness = append([]int(nil), e.Witness()...)
	}
	return out
}

// CheckBatch runs mode against every history in hs concurrently,
// bounded by GOMAXPROCS goroutines, and returns one Outcome per input
// in the same order. Each individual check remains internally serial;
// this is the sharding-across-workers concurrency model the core
// search engine itself deliberately does not provide.
func (c *Checker[K, V]) CheckBatch(ctx context.Context, mode Mode, hs []history.History[K, V]) ([]Outcome, error) {
	out := make([]Outcome, len(hs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, runtime.GOMAXPROCS(0)))

	for i, h := range hs {
		i, h := i, h
		g.Go(func() error {
			switch mode {
			case ModeSER:
				out[i] = c.SerCheck(gctx, h)
			case ModePrefix:
				out[i] = c.PrefixCheck(gctx, h)
			case ModeSI:
				outcome, err := c.SiCheck(gctx, h)
				if err != nil {
					return fmt.Errorf("history %d: %w", i, err)
				}
				out[i] = outcome
			default:
				return fmt.Errorf("history %d: unknown mode %v", i, mode)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
