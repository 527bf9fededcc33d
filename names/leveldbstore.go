// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package names

import (
	"encoding/binary"
	"errors"
	"sync/atomic"

	"github.com/decred/dcrd/lru"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/nsdchain/nsd/chaincfg/chainhash"
)

// nameKeyPrefix namespaces name records within a database shared with
// other chain state, namespacing keys by prefix rather than opening one
// database per concern.
var nameKeyPrefix = []byte("name:")

// heightKey holds the chain height this store was last synced to, read
// once at open and kept in memory from then on; Query.Height() callers
// (the resolver, wallets) need it far more often than ConnectBlock writes
// it.
var heightKey = []byte("name:tip-height")

func nameKey(hash chainhash.Hash) []byte {
	key := make([]byte, 0, len(nameKeyPrefix)+chainhash.HashSize)
	key = append(key, nameKeyPrefix...)
	return append(key, hash[:]...)
}

// nameHashForLabel derives the nameHash a label's OPEN covenant would
// have carried, the same convention names.Query implementations key
// their lookups by.
func nameHashForLabel(label string) chainhash.Hash {
	return chainhash.HashH([]byte(label))
}

// LevelDBStore is the concrete Store backend. Most lookups during an
// active auction are for names that were opened and then never touched
// again (losing REDEEMs aside); absentCache remembers the nameHashes a
// prior GetName already proved have no record at all, so a resolver
// fielding a flood of NXDOMAIN queries for unregistered names doesn't hit
// LevelDB for each one.
type LevelDBStore struct {
	db          *leveldb.DB
	absentCache *lru.Cache
	height      atomic.Int32
}

// OpenLevelDBStore opens (creating if necessary) a LevelDB database at
// path, with a bounded negative-lookup cache sized to cacheSize entries.
func OpenLevelDBStore(path string, cacheSize uint) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	s := &LevelDBStore{
		db:          db,
		absentCache: lru.New(cacheSize),
	}

	raw, err := db.Get(heightKey, nil)
	if err != nil && !errors.Is(err, leveldb.ErrNotFound) {
		return nil, err
	}
	if len(raw) == 4 {
		s.height.Store(int32(binary.LittleEndian.Uint32(raw)))
	}

	return s, nil
}

// Close releases the underlying database handle.
func (s *LevelDBStore) Close() error {
	return s.db.Close()
}

// GetName implements Store.
func (s *LevelDBStore) GetName(hash chainhash.Hash) (*NameState, error) {
	if s.absentCache.Contains(hash) {
		return nil, nil
	}

	raw, err := s.db.Get(nameKey(hash), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		s.absentCache.Add(hash)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return DeserializeNameState(raw)
}

// PutName implements Store.
func (s *LevelDBStore) PutName(state *NameState) error {
	raw, err := state.Serialize()
	if err != nil {
		return err
	}
	if err := s.db.Put(nameKey(state.NameHash), raw, nil); err != nil {
		return err
	}
	s.absentCache.Delete(state.NameHash)
	return nil
}

// DeleteName implements Store.
func (s *LevelDBStore) DeleteName(hash chainhash.Hash) error {
	if err := s.db.Delete(nameKey(hash), nil); err != nil {
		return err
	}
	s.absentCache.Add(hash)
	return nil
}

// Name implements Query, identically to GetName.
func (s *LevelDBStore) Name(hash chainhash.Hash) (*NameState, error) {
	return s.GetName(hash)
}

// NameByLabel implements Query by deriving the label's nameHash the same
// way an OPEN covenant's own hash is computed.
func (s *LevelDBStore) NameByLabel(label string) (*NameState, error) {
	return s.GetName(nameHashForLabel(label))
}

// Height implements Query.
func (s *LevelDBStore) Height() int32 {
	return s.height.Load()
}

// SetHeight records the height this store is synced to, for Query.Height
// callers; ConnectBlock/DisconnectBlock callers update it alongside their
// own PutName/DeleteName calls.
func (s *LevelDBStore) SetHeight(height int32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(height))
	if err := s.db.Put(heightKey, buf[:], nil); err != nil {
		return err
	}
	s.height.Store(height)
	return nil
}
