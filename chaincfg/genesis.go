// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"time"

	"github.com/nsdchain/nsd/chaincfg/chainhash"
	"github.com/nsdchain/nsd/wire"
)

// genesisCoinbaseTx is the coinbase transaction for the main network genesis
// block: a single unspendable, zero-value output carrying a timestamp
// message, matching the no-premine convention of a pure proof-of-work
// launch.
var genesisCoinbaseTx = wire.MsgTx{
	Version: 1,
	TxIn: []*wire.TxIn{
		{
			PreviousOutPoint: wire.OutPoint{
				Hash:  chainhash.Hash{},
				Index: 0xffffffff,
			},
			SignatureScript: []byte("nsd genesis: a name is a right, not a rental"),
			Sequence:        0xffffffff,
		},
	},
	TxOut: []*wire.TxOut{
		{
			Value:    0,
			PkScript: []byte{0x6a}, // OP_RETURN equivalent marker, unspendable
		},
	},
	LockTime: 0,
}

// genesisBlock is the genesis block of the main network.
var genesisBlock = wire.MsgBlock{
	Header: wire.BlockHeader{
		Version:    1,
		PrevBlock:  chainhash.Hash{},
		MerkleRoot: genesisCoinbaseTx.TxHash(),
		TreeRoot:   chainhash.Hash{},
		Timestamp:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Unix(),
		Bits:       0x1d00ffff,
		Nonce:      0,
	},
	Transactions: []*wire.MsgTx{&genesisCoinbaseTx},
}

var genesisHash = genesisBlock.BlockHash()

// simNetGenesisCoinbaseTx is the genesis coinbase for the simulation
// network.
var simNetGenesisCoinbaseTx = wire.MsgTx{
	Version: 1,
	TxIn: []*wire.TxIn{
		{
			PreviousOutPoint: wire.OutPoint{
				Hash:  chainhash.Hash{},
				Index: 0xffffffff,
			},
			SignatureScript: []byte("nsd simnet genesis"),
			Sequence:        0xffffffff,
		},
	},
	TxOut: []*wire.TxOut{
		{
			Value:    0,
			PkScript: []byte{0x6a},
		},
	},
	LockTime: 0,
}

var simNetGenesisBlock = wire.MsgBlock{
	Header: wire.BlockHeader{
		Version:    1,
		PrevBlock:  chainhash.Hash{},
		MerkleRoot: simNetGenesisCoinbaseTx.TxHash(),
		TreeRoot:   chainhash.Hash{},
		Timestamp:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Unix(),
		Bits:       0x207fffff,
		Nonce:      0,
	},
	Transactions: []*wire.MsgTx{&simNetGenesisCoinbaseTx},
}

var simNetGenesisHash = simNetGenesisBlock.BlockHash()
