// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import (
	"encoding/binary"

	"github.com/nsdchain/nsd/chaincfg/chainhash"
	"github.com/nsdchain/nsd/mempool"
	"github.com/nsdchain/nsd/wire"
)

// maxCoinbaseFlags bounds the arbitrary tag miners attach to their
// coinbase, per §4.4.
const maxCoinbaseFlags = 20

// newCoinbaseSkeleton builds the coinbase transaction's fixed shape:
// locktime committing to height, a single placeholder input carrying
// coinbase flags and two random nonces, and a reward output whose value
// the assembler fills in once fees are known.
func newCoinbaseSkeleton(height int32, rewardScript []byte) *wire.MsgTx {
	tx := wire.NewMsgTx(wire.TxVersion)
	tx.LockTime = uint32(height)

	flags := []byte("nsd")
	if len(flags) > maxCoinbaseFlags {
		flags = flags[:maxCoinbaseFlags]
	}

	tx.AddTxIn(&wire.TxIn{
		PreviousOutPoint: wire.OutPoint{Index: ^uint32(0)},
		Witness:          [][]byte{flags, randomEight(height, 1), randomEight(height, 2)},
		Sequence:         wire.MaxTxInSequenceNum,
	})

	tx.AddTxOut(&wire.TxOut{
		Value:    0,
		PkScript: rewardScript,
	})

	return tx
}

// randomEight derives an 8-byte nonce deterministically from height and a
// salt. A real miner overwrites this before proof-of-work search; the
// assembler only needs a placeholder of the right size, and avoiding an
// actual random source here keeps template assembly reproducible for
// testing.
func randomEight(height int32, salt byte) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[:4], uint32(height))
	buf[4] = salt
	return buf[:]
}

// appendClaim appends one reserved-name claim to the coinbase: an input
// carrying the proof blob in its witness, and an output whose covenant is
// CLAIM(nameHash, name, flags, commitHash, commitHeight). Flags bit 0
// encodes weak.
func appendClaim(coinbase *wire.MsgTx, c *mempool.ClaimDesc) {
	coinbase.AddTxIn(&wire.TxIn{
		PreviousOutPoint: wire.OutPoint{Index: ^uint32(0)},
		Witness:          [][]byte{c.ProofBlob},
		Sequence:         wire.MaxTxInSequenceNum,
	})

	var flags [1]byte
	if c.Weak {
		flags[0] = 1
	}
	var heightBytes [4]byte
	binary.LittleEndian.PutUint32(heightBytes[:], uint32(c.CommitHeight))

	coinbase.AddTxOut(&wire.TxOut{
		Value: 0,
		Covenant: &wire.Covenant{
			Type: wire.CovenantClaim,
			Items: [][]byte{
				c.NameHash[:],
				[]byte(c.Name),
				flags[:],
				c.CommitHash[:],
				heightBytes[:],
			},
		},
	})
}

// appendAirdrop appends one airdrop redemption to the coinbase: an input
// carrying the proof blob, and an output at the proof-declared address
// for proof.value - proof.fee.
func appendAirdrop(coinbase *wire.MsgTx, a *mempool.AirdropDesc) {
	var indexBytes [4]byte
	binary.LittleEndian.PutUint32(indexBytes[:], a.Index)

	coinbase.AddTxIn(&wire.TxIn{
		PreviousOutPoint: wire.OutPoint{Hash: chainhash.HashH(indexBytes[:]), Index: ^uint32(0)},
		Witness:          [][]byte{a.ProofBlob, indexBytes[:]},
		Sequence:         wire.MaxTxInSequenceNum,
	})

	coinbase.AddTxOut(&wire.TxOut{
		Value:    a.Value - a.Fee,
		PkScript: a.Address,
	})
}
