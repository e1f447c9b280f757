package history

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionWrites(t *testing.T) {
	tx := Transaction[string, int]{Ops: []Op[string, int]{
		Get("x", 0),
		Set("y", 1),
	}}

	assert.True(t, tx.Writes("y"))
	assert.False(t, tx.Writes("x"))
	assert.False(t, tx.Writes("z"))
}

func TestTransactionSplitPreservesOrderWithinClass(t *testing.T) {
	tx := Transaction[string, int]{Ops: []Op[string, int]{
		Get("x", 0),
		Set("x", 1),
		Get("y", 0),
		Set("y", 2),
	}}

	reads, writes := tx.Split()

	require.Len(t, reads.Ops, 2)
	assert.Equal(t, "x", reads.Ops[0].Key)
	assert.Equal(t, "y", reads.Ops[1].Key)

	require.Len(t, writes.Ops, 2)
	assert.Equal(t, 1, writes.Ops[0].Val)
	assert.Equal(t, 2, writes.Ops[1].Val)

	for _, op := range reads.Ops {
		assert.Equal(t, OpGet, op.Kind)
	}
	for _, op := range writes.Ops {
		assert.Equal(t, OpSet, op.Kind)
	}
}

func TestHistoryKeysUnion(t *testing.T) {
	h := History[string, int]{Clients: []ClientSession[string, int]{
		{Transactions: []Transaction[string, int]{{Ops: []Op[string, int]{Get("x", 0)}}}},
		{Transactions: []Transaction[string, int]{{Ops: []Op[string, int]{Set("y", 1)}}}},
	}}

	keys := h.Keys()
	assert.Len(t, keys, 2)
	_, okX := keys["x"]
	_, okY := keys["y"]
	assert.True(t, okX)
	assert.True(t, okY)
}

func TestHistoryWritersByKeyIncludesFirstWriter(t *testing.T) {
	// Guards against an off-by-one where the very first writer of a
	// key gets skipped because an entry only gets recorded once the
	// key's writer set already exists.
	h := History[string, int]{Clients: []ClientSession[string, int]{
		{Transactions: []Transaction[string, int]{{Ops: []Op[string, int]{Set("x", 1)}}}},
		{Transactions: []Transaction[string, int]{{Ops: []Op[string, int]{Set("x", 2)}}}},
	}}

	writers := h.WritersByKey()
	require.Contains(t, writers, "x")
	clients := make([]int, 0, len(writers["x"]))
	for c := range writers["x"] {
		clients = append(clients, c)
	}
	sort.Ints(clients)
	assert.Equal(t, []int{0, 1}, clients)
}

func TestPreInitAppendsSyntheticClient(t *testing.T) {
	h := History[string, int]{Clients: []ClientSession[string, int]{
		{Transactions: []Transaction[string, int]{{Ops: []Op[string, int]{Get("x", 0), Set("y", 5)}}}},
	}}

	pi := h.PreInit()

	require.Len(t, pi.Clients, 2)
	// Original client untouched.
	assert.Equal(t, h.Clients[0], pi.Clients[0])

	synthetic := pi.Clients[1]
	require.Len(t, synthetic.Transactions, 1)

	written := make(map[string]int)
	for _, op := range synthetic.Transactions[0].Ops {
		require.Equal(t, OpSet, op.Kind)
		written[op.Key] = op.Val
	}
	assert.Equal(t, map[string]int{"x": 0, "y": 0}, written)
}

func TestHistoryAtAndLen(t *testing.T) {
	h := History[string, int]{Clients: []ClientSession[string, int]{
		{Transactions: []Transaction[string, int]{
			{Ops: []Op[string, int]{Set("x", 1)}},
			{Ops: []Op[string, int]{Set("x", 2)}},
		}},
	}}

	assert.Equal(t, 2, h.Len(0))
	assert.Equal(t, 0, h.Len(5))
	assert.Equal(t, 2, h.At(Position{Client: 0, Offset: 1}).Ops[0].Val)
}
