package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dreamware/isocheck/internal/history"
)

func tx(ops ...history.Op[string, int]) history.Transaction[string, int] {
	return history.Transaction[string, int]{Ops: ops}
}

func client(txs ...history.Transaction[string, int]) history.ClientSession[string, int] {
	return history.ClientSession[string, int]{Transactions: txs}
}

// preInited builds a history and applies PreInit, mirroring what the
// façade does before handing a history to the search engine.
func preInited(clients ...history.ClientSession[string, int]) history.History[string, int] {
	return history.History[string, int]{Clients: clients}.PreInit()
}

func TestCheckDirtyAntiDependencyCycleIsUnserializable(t *testing.T) {
	// dirty anti-dependency cycle: no single writer saw the other's write.
	t1 := client(tx(history.Set("x", 1), history.Set("y", 1)))
	t2 := client(tx(history.Get("x", 1), history.Get("y", 1), history.Set("x", 2)))
	t3 := client(tx(history.Get("x", 1), history.Get("y", 1), history.Set("y", 2)))

	h := preInited(t1, t2, t3)
	e := New(h)
	assert.False(t, e.Check(context.Background()))
}

func TestCheckLostUpdateIsUnserializable(t *testing.T) {
	// lost update: both clients read the same stale value and overwrite it.
	t1 := client(tx(history.Get("x", 0), history.Set("x", 1)))
	t2 := client(tx(history.Get("x", 0), history.Set("x", 2)))

	h := preInited(t1, t2)
	e := New(h)
	assert.False(t, e.Check(context.Background()))
}

func TestCheckTriviallySerialIsSerializable(t *testing.T) {
	// a single client acting twice in program order.
	h := preInited(client(
		tx(history.Set("x", 1)),
		tx(history.Get("x", 1), history.Set("x", 2)),
	))

	e := New(h)
	assert.True(t, e.Check(context.Background()))
}

func TestCheckUnreadWriteIsSerializable(t *testing.T) {
	// default V0=0 makes the unread write moot.
	h := preInited(
		client(tx(history.Set("x", 5))),
		client(tx(history.Get("x", 0))),
	)

	e := New(h)
	assert.True(t, e.Check(context.Background()))
}

func TestCheckUnsatisfiableReadIsUnserializable(t *testing.T) {
	h := history.History[string, int]{Clients: []history.ClientSession[string, int]{
		client(tx(history.Get("x", 42))),
	}}.PreInit()

	e := New(h)
	assert.False(t, e.Check(context.Background()))
}

func TestCheckRecordsWitnessOnSuccess(t *testing.T) {
	h := preInited(client(
		tx(history.Set("x", 1)),
		tx(history.Get("x", 1), history.Set("x", 2)),
	))

	e := New(h, WithWitness[string, int](true))
	ok := e.Check(context.Background())
	assert.True(t, ok)
	assert.NotEmpty(t, e.Witness())
}

func TestCheckContextCancellationStopsSearch(t *testing.T) {
	h := preInited(client(
		tx(history.Set("x", 1)),
		tx(history.Get("x", 1), history.Set("x", 2)),
	))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := New(h)
	assert.False(t, e.Check(ctx))
}
