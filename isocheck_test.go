package isocheck

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/isocheck/internal/history"
)

func guard(k string, i int) string {
	return "__guard__" + string(rune('0'+i)) + "__" + k
}

func mustChecker(t *testing.T) *Checker[string, int] {
	t.Helper()
	c, err := NewChecker[string, int](guard, -1)
	require.NoError(t, err)
	return c
}

func tx(ops ...history.Op[string, int]) history.Transaction[string, int] {
	return history.Transaction[string, int]{Ops: ops}
}

func oneTxClient(ops ...history.Op[string, int]) history.ClientSession[string, int] {
	return history.ClientSession[string, int]{Transactions: []history.Transaction[string, int]{tx(ops...)}}
}

func TestNewCheckerRejectsZeroAbnormalValue(t *testing.T) {
	_, err := NewChecker[string, int](guard, 0)
	assert.ErrorIs(t, err, ErrBadAbnormalValue)
}

// Scenario 1: dirty anti-dependency cycle.
func TestScenarioDirtyAntiDependencyCycle(t *testing.T) {
	c := mustChecker(t)
	h := history.History[string, int]{Clients: []history.ClientSession[string, int]{
		oneTxClient(history.Set("x", 1), history.Set("y", 1)),
		oneTxClient(history.Get("x", 1), history.Get("y", 1), history.Set("x", 2)),
		oneTxClient(history.Get("x", 1), history.Get("y", 1), history.Set("y", 2)),
	}}

	out := c.SerCheck(context.Background(), h)
	assert.False(t, out.OK)
}

// Scenario 2: lost update.
func TestScenarioLostUpdate(t *testing.T) {
	c := mustChecker(t)
	h := history.History[string, int]{Clients: []history.ClientSession[string, int]{
		oneTxClient(history.Get("x", 0), history.Set("x", 1)),
		oneTxClient(history.Get("x", 0), history.Set("x", 2)),
	}}

	assert.False(t, c.SerCheck(context.Background(), h).OK)

	si, err := c.SiCheck(context.Background(), h)
	require.NoError(t, err)
	assert.False(t, si.OK)

	assert.True(t, c.PrefixCheck(context.Background(), h).OK)
}

// Scenario 3: long fork.
func TestScenarioLongFork(t *testing.T) {
	c := mustChecker(t)
	h := history.History[string, int]{Clients: []history.ClientSession[string, int]{
		oneTxClient(history.Get("x", 0), history.Set("x", 1)),
		oneTxClient(history.Get("y", 0), history.Set("y", 1)),
		oneTxClient(history.Get("x", 1), history.Get("y", 0)),
		oneTxClient(history.Get("x", 0), history.Get("y", 1)),
	}}

	assert.False(t, c.SerCheck(context.Background(), h).OK)

	si, err := c.SiCheck(context.Background(), h)
	require.NoError(t, err)
	assert.False(t, si.OK)

	assert.False(t, c.PrefixCheck(context.Background(), h).OK)
}

// Scenario 4: write skew.
func TestScenarioWriteSkew(t *testing.T) {
	c := mustChecker(t)
	h := history.History[string, int]{Clients: []history.ClientSession[string, int]{
		oneTxClient(history.Get("x", 0), history.Get("y", 0), history.Set("x", 1)),
		oneTxClient(history.Get("x", 0), history.Get("y", 0), history.Set("y", 1)),
	}}

	assert.False(t, c.SerCheck(context.Background(), h).OK)

	si, err := c.SiCheck(context.Background(), h)
	require.NoError(t, err)
	assert.True(t, si.OK)

	assert.True(t, c.PrefixCheck(context.Background(), h).OK)
}

// Scenario 5: trivially serial.
func TestScenarioTriviallySerial(t *testing.T) {
	c := mustChecker(t)
	h := history.History[string, int]{Clients: []history.ClientSession[string, int]{
		{Transactions: []history.Transaction[string, int]{
			tx(history.Set("x", 1)),
			tx(history.Get("x", 1), history.Set("x", 2)),
		}},
	}}

	assert.True(t, c.SerCheck(context.Background(), h).OK)
	assert.True(t, c.PrefixCheck(context.Background(), h).OK)
	si, err := c.SiCheck(context.Background(), h)
	require.NoError(t, err)
	assert.True(t, si.OK)
}

// Scenario 6: unread write, default V0 = 0 supplies the read.
func TestScenarioUnreadWrite(t *testing.T) {
	c := mustChecker(t)
	h := history.History[string, int]{Clients: []history.ClientSession[string, int]{
		oneTxClient(history.Set("x", 5)),
		oneTxClient(history.Get("x", 0)),
	}}

	assert.True(t, c.SerCheck(context.Background(), h).OK)
	assert.True(t, c.PrefixCheck(context.Background(), h).OK)
	si, err := c.SiCheck(context.Background(), h)
	require.NoError(t, err)
	assert.True(t, si.OK)
}

func TestSiCheckRejectsCollidingGuard(t *testing.T) {
	c, err := NewChecker[string, int](func(k string, i int) string { return k }, -1)
	require.NoError(t, err)

	h := history.History[string, int]{Clients: []history.ClientSession[string, int]{
		oneTxClient(history.Set("x", 1)),
	}}

	_, err = c.SiCheck(context.Background(), h)
	assert.Error(t, err)
}

func TestCheckBatchRunsEveryHistoryAndPreservesOrder(t *testing.T) {
	c := mustChecker(t)

	serializable := history.History[string, int]{Clients: []history.ClientSession[string, int]{
		oneTxClient(history.Set("x", 1)),
	}}
	unserializable := history.History[string, int]{Clients: []history.ClientSession[string, int]{
		oneTxClient(history.Get("x", 0), history.Set("x", 1)),
		oneTxClient(history.Get("x", 0), history.Set("x", 2)),
	}}

	outs, err := c.CheckBatch(context.Background(), ModeSER, []history.History[string, int]{serializable, unserializable, serializable})
	require.NoError(t, err)
	require.Len(t, outs, 3)
	assert.True(t, outs[0].OK)
	assert.False(t, outs[1].OK)
	assert.True(t, outs[2].OK)
}

func TestCheckBatchPropagatesSiGuardError(t *testing.T) {
	c, err := NewChecker[string, int](func(k string, i int) string { return k }, -1)
	require.NoError(t, err)

	h := history.History[string, int]{Clients: []history.ClientSession[string, int]{
		oneTxClient(history.Set("x", 1)),
	}}

	_, err = c.CheckBatch(context.Background(), ModeSI, []history.History[string, int]{h})
	assert.Error(t, err)
}

func TestWitnessIsPopulatedOnSuccessWhenRequested(t *testing.T) {
	c, err := NewChecker[string, int](guard, -1, WithWitness[string, int](true))
	require.NoError(t, err)

	h := history.History[string, int]{Clients: []history.ClientSession[string, int]{
		{Transactions: []history.Transaction[string, int]{
			tx(history.Set("x", 1)),
			tx(history.Get("x", 1), history.Set("x", 2)),
		}},
	}}

	out := c.SerCheck(context.Background(), h)
	require.True(t, out.OK)
	assert.NotEmpty(t, out.Witness)
}
