// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package names

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nsdchain/nsd/chaincfg/chainhash"
	"github.com/nsdchain/nsd/wire"
)

type memStore struct {
	names map[chainhash.Hash]*NameState
}

func newMemStore() *memStore {
	return &memStore{names: make(map[chainhash.Hash]*NameState)}
}

func (m *memStore) GetName(hash chainhash.Hash) (*NameState, error) {
	return m.names[hash], nil
}

func (m *memStore) PutName(state *NameState) error {
	m.names[state.NameHash] = state
	return nil
}

func (m *memStore) DeleteName(hash chainhash.Hash) error {
	delete(m.names, hash)
	return nil
}

func TestConnectDisconnectBlockIsNoOp(t *testing.T) {
	params := simParams()
	store := newMemStore()

	cov, hash := openCovenant(t, "roundtrip")
	outputs := []CovenantOutput{
		{Outpoint: wire.OutPoint{Index: 0}, Covenant: cov, Value: 0},
	}

	result, err := ConnectBlock(store, outputs, 0, params)
	require.NoError(t, err)
	require.Equal(t, 1, result.Opens)
	require.NotNil(t, store.names[hash])

	require.NoError(t, DisconnectBlock(store, result))
	require.Nil(t, store.names[hash])
}

func TestConnectBlockRejectsDuplicateNameInBlock(t *testing.T) {
	params := simParams()
	store := newMemStore()

	covA, hash := openCovenant(t, "dup")
	covB := &wire.Covenant{Type: wire.CovenantOpen, Items: [][]byte{hash[:], []byte("dup")}}

	outputs := []CovenantOutput{
		{Outpoint: wire.OutPoint{Index: 0}, Covenant: covA},
		{Outpoint: wire.OutPoint{Index: 1}, Covenant: covB},
	}

	_, err := ConnectBlock(store, outputs, 0, params)
	require.Error(t, err)
}
