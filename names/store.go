// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package names

import "github.com/nsdchain/nsd/chaincfg/chainhash"

// Store is the persistence contract the validator and resolver read
// through. A concrete Store is a thin LRU-cached wrapper over a
// key/value backend; this package never assumes a particular one.
type Store interface {
	// GetName returns the current NameState for hash, or nil if one has
	// never existed.
	GetName(hash chainhash.Hash) (*NameState, error)

	// PutName persists state, overwriting any prior record for its
	// NameHash.
	PutName(state *NameState) error

	// DeleteName removes the record for hash entirely, used only when an
	// undo unwinds a name back past its very first OPEN.
	DeleteName(hash chainhash.Hash) error
}

// Batch groups a set of Store writes so a block's worth of name updates
// commits atomically, matching the backend's own batch/transaction API
// (e.g. goleveldb's *leveldb.Batch) rather than issuing one write per
// covenant.
type Batch interface {
	PutName(state *NameState)
	DeleteName(hash chainhash.Hash)
}

// Subscriber is the chain-to-wallet notification contract (§9): wallets
// and other chain-state consumers register to learn about name updates as
// blocks connect and disconnect, rather than polling Store directly.
type Subscriber interface {
	// NameUpdated is called once per touched name as a block connects,
	// after the covenant's Apply has already landed in the Store.
	NameUpdated(height int32, state *NameState)

	// NameReverted is called once per touched name as a block
	// disconnects, after Undo has already restored the Store entry.
	NameReverted(height int32, state *NameState)
}

// Query is the read-only half of the chain-to-wallet contract: the
// lookups a wallet needs to decide what action, if any, to take on a
// name it's watching.
type Query interface {
	Name(hash chainhash.Hash) (*NameState, error)
	NameByLabel(name string) (*NameState, error)
	Height() int32
}
