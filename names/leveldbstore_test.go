// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package names

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nsdchain/nsd/chaincfg/chainhash"
)

func openTestStore(t *testing.T) *LevelDBStore {
	dir := t.TempDir()
	s, err := OpenLevelDBStore(filepath.Join(dir, "names"), 64)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLevelDBStoreGetNameMissingReturnsNil(t *testing.T) {
	s := openTestStore(t)

	got, err := s.GetName(chainhash.HashH([]byte("nothing")))
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestLevelDBStorePutGetDeleteRoundTrip(t *testing.T) {
	s := openTestStore(t)

	state := &NameState{
		Name:     "example",
		NameHash: chainhash.HashH([]byte("example")),
		Height:   10,
	}
	require.NoError(t, s.PutName(state))

	got, err := s.GetName(state.NameHash)
	require.NoError(t, err)
	require.Equal(t, state.Name, got.Name)
	require.Equal(t, state.Height, got.Height)

	require.NoError(t, s.DeleteName(state.NameHash))
	got, err = s.GetName(state.NameHash)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestLevelDBStoreNameByLabel(t *testing.T) {
	s := openTestStore(t)

	state := &NameState{
		Name:     "example",
		NameHash: nameHashForLabel("example"),
	}
	require.NoError(t, s.PutName(state))

	got, err := s.NameByLabel("example")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, state.NameHash, got.NameHash)

	got, err = s.NameByLabel("nowhere")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestLevelDBStoreHeightPersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "names")

	s, err := OpenLevelDBStore(path, 64)
	require.NoError(t, err)
	require.Equal(t, int32(0), s.Height())
	require.NoError(t, s.SetHeight(42))
	require.NoError(t, s.Close())

	s2, err := OpenLevelDBStore(path, 64)
	require.NoError(t, err)
	defer s2.Close()
	require.Equal(t, int32(42), s2.Height())
}
