// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainscan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nsdchain/nsd/chaincfg/chainhash"
	"github.com/nsdchain/nsd/wire"
)

// fakeSource is a fixed-length chain of blocks, one name-bearing tx apiece.
type fakeSource struct {
	blocks []*wire.MsgBlock
}

func (s *fakeSource) BlockByHeight(height int32) (*wire.MsgBlock, chainhash.Hash, error) {
	b := s.blocks[height]
	return b, b.BlockHash(), nil
}

func (s *fakeSource) Tip() int32 {
	return int32(len(s.blocks) - 1)
}

func blockWithName(name string) *wire.MsgBlock {
	nameHash := chainhash.HashH([]byte(name))
	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxOut(&wire.TxOut{
		Value:    1000,
		Covenant: &wire.Covenant{Type: wire.CovenantOpen, Items: [][]byte{nameHash[:], []byte(name)}},
	})
	return &wire.MsgBlock{Transactions: []*wire.MsgTx{tx}}
}

func TestDriverRunVisitsEveryBlockInOrder(t *testing.T) {
	source := &fakeSource{blocks: []*wire.MsgBlock{
		blockWithName("alice"),
		blockWithName("bob"),
		blockWithName("carol"),
	}}

	d := NewDriver(source, 0, nil)

	var seen []int32
	err := d.Run(func(entry Entry, txs []*wire.MsgTx) Reply {
		seen = append(seen, entry.Height)
		return Reply{Signal: Next}
	})
	require.NoError(t, err)
	require.Equal(t, []int32{0, 1, 2}, seen)
	require.Equal(t, int32(3), d.Index())
}

func TestDriverFiltersTransactionsByWatchSet(t *testing.T) {
	source := &fakeSource{blocks: []*wire.MsgBlock{
		blockWithName("alice"),
		blockWithName("bob"),
	}}

	aliceHash := chainhash.HashH([]byte("alice"))
	d := NewDriver(source, 0, []chainhash.Hash{aliceHash})

	var matches int
	err := d.Run(func(entry Entry, txs []*wire.MsgTx) Reply {
		matches += len(txs)
		return Reply{Signal: Next}
	})
	require.NoError(t, err)
	require.Equal(t, 1, matches) // only the "alice" block matches
}

func TestDriverRepeatRedeliversSameEntry(t *testing.T) {
	source := &fakeSource{blocks: []*wire.MsgBlock{blockWithName("alice")}}
	d := NewDriver(source, 0, nil)

	calls := 0
	err := d.Run(func(entry Entry, txs []*wire.MsgTx) Reply {
		calls++
		if calls < 3 {
			return Reply{Signal: Repeat}
		}
		return Reply{Signal: Next}
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestDriverRepeatAddGrowsFilterAndRedelivers(t *testing.T) {
	source := &fakeSource{blocks: []*wire.MsgBlock{blockWithName("alice")}}
	d := NewDriver(source, 0, nil)

	aliceHash := chainhash.HashH([]byte("alice"))
	calls := 0
	err := d.Run(func(entry Entry, txs []*wire.MsgTx) Reply {
		calls++
		if calls == 1 {
			require.Empty(t, txs)
			return Reply{Signal: RepeatAdd, Items: []chainhash.Hash{aliceHash}}
		}
		require.Len(t, txs, 1)
		return Reply{Signal: Next}
	})
	require.NoError(t, err)
	require.Equal(t, 2, calls)
	require.Equal(t, []chainhash.Hash{aliceHash}, d.Filter())
}

func TestDriverRepeatSetReplacesFilter(t *testing.T) {
	source := &fakeSource{blocks: []*wire.MsgBlock{blockWithName("bob")}}
	bobHash := chainhash.HashH([]byte("bob"))
	aliceHash := chainhash.HashH([]byte("alice"))

	d := NewDriver(source, 0, []chainhash.Hash{aliceHash})

	calls := 0
	err := d.Run(func(entry Entry, txs []*wire.MsgTx) Reply {
		calls++
		if calls == 1 {
			require.Empty(t, txs)
			return Reply{Signal: RepeatSet, Filter: []chainhash.Hash{bobHash}}
		}
		require.Len(t, txs, 1)
		return Reply{Signal: Next}
	})
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}

func TestDriverAbortStopsWithErrAborted(t *testing.T) {
	source := &fakeSource{blocks: []*wire.MsgBlock{blockWithName("alice"), blockWithName("bob")}}
	d := NewDriver(source, 0, nil)

	err := d.Run(func(entry Entry, txs []*wire.MsgTx) Reply {
		return Reply{Signal: Abort}
	})
	require.ErrorIs(t, err, ErrAborted)
	require.Equal(t, int32(0), d.Index()) // aborted scan does not advance
}
