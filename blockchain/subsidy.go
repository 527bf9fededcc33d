// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"github.com/btcsuite/btcd/btcutil"

	"github.com/nsdchain/nsd/chaincfg"
	"github.com/nsdchain/nsd/wire"
)

// maxHalvings bounds the halving loop; beyond this the subsidy is
// indistinguishable from zero in int64 arithmetic.
const maxHalvings = 64

// CalcBlockSubsidy returns the block subsidy for the given height, the
// chain's InitialSubsidy halved once per SubsidyReductionInterval blocks.
func CalcBlockSubsidy(height int32, params *chaincfg.Params) btcutil.Amount {
	if params.SubsidyReductionInterval == 0 {
		return params.InitialSubsidy
	}

	halvings := height / params.SubsidyReductionInterval
	if halvings >= maxHalvings {
		return 0
	}

	return params.InitialSubsidy >> uint(halvings)
}

// IsCoinBaseTx reports whether tx is a coinbase transaction.
func IsCoinBaseTx(tx *wire.MsgTx) bool {
	return tx.IsCoinBase()
}
