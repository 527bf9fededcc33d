// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mempool defines the contract the block assembler depends on for
// pending transactions, claims, and airdrops. The mempool implementation
// itself — acceptance policy, orphan pool, eviction — is an external
// collaborator; this package only fixes the shape the assembler consumes.
package mempool

import (
	"github.com/btcsuite/btcd/btcutil"

	"github.com/nsdchain/nsd/chaincfg/chainhash"
	"github.com/nsdchain/nsd/wire"
)

// TxDesc describes one candidate transaction along with the scoring
// inputs the assembler's priority/rate queue needs.
type TxDesc struct {
	Tx *wire.MsgTx

	// Fee is the transaction's total fee in atomic units.
	Fee btcutil.Amount

	// Added is the height at which the transaction entered the pool,
	// used by the priority comparator (older unconfirmed coins score
	// higher).
	Added int32

	// StartingPriority is the coin-age priority computed when the
	// transaction was accepted; the assembler adds the entry's age in
	// blocks to it rather than recomputing coin age from scratch.
	StartingPriority float64
}

// ClaimDesc describes one pending reserved-name claim, rate-ordered for
// the assembler's claim max-heap.
type ClaimDesc struct {
	NameHash     chainhash.Hash
	Name         string
	Rate         float64
	ProofBlob    []byte
	CommitHash   chainhash.Hash
	CommitHeight int32
	Weak         bool
}

// AirdropDesc describes one pending airdrop redemption, rate-ordered for
// the assembler's airdrop max-heap.
type AirdropDesc struct {
	Index     uint32
	Rate      float64
	ProofBlob []byte
	Address   []byte
	Value     btcutil.Amount
	Fee       btcutil.Amount
}

// TxSource is everything the assembler needs from the mempool: the three
// independent candidate pools (ordinary transactions, claims, airdrops)
// plus the ability to look up an input's previous output without the
// assembler needing its own UTXO view.
type TxSource interface {
	MiningDescs() []*TxDesc
	PendingClaims() []*ClaimDesc
	PendingAirdrops() []*AirdropDesc

	// FetchUtxo returns the output op refers to, or nil if it doesn't
	// exist or is already spent against the current tip.
	FetchUtxo(op wire.OutPoint) (*wire.TxOut, error)

	// LastUpdated reports when the source's view was last refreshed,
	// letting the assembler decide whether to re-snapshot before
	// building a template.
	LastUpdated() int64
}
