// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package names

import (
	"github.com/btcsuite/btcd/btcutil"

	"github.com/nsdchain/nsd/blockchain"
	"github.com/nsdchain/nsd/chaincfg"
	"github.com/nsdchain/nsd/chaincfg/chainhash"
	"github.com/nsdchain/nsd/wire"
)

// CovenantOutput pairs one covenant-bearing transaction output with the
// outpoint it will create, the single piece of per-output context Apply
// needs beyond the block height and the name's current state.
type CovenantOutput struct {
	Outpoint wire.OutPoint
	Covenant *wire.Covenant
	Value    btcutil.Amount
}

// BlockResult is everything ConnectBlock produced: the cap counts an
// assembler must have already enforced before calling it, and the undo
// log DisconnectBlock needs to invert every change in one pass.
type BlockResult struct {
	Opens    int
	Updates  int
	Renewals int
	UndoLog  []*UndoEntry
}

// ConnectBlock applies every covenant output in block-and-transaction
// order against store, enforcing that no two outputs in the same block
// target the same nameHash (a consensus rule distinct from the
// per-output phase check Apply already makes, since two OPENs for the
// same name could each individually be legal against the pre-block state
// but not both against each other). It stops and returns an error on the
// first invalid covenant; callers must not apply a partial UndoLog.
func ConnectBlock(store Store, outputs []CovenantOutput, height int32, params *chaincfg.Params) (*BlockResult, error) {
	result := &BlockResult{}
	seen := make(map[chainhash.Hash]bool, len(outputs))

	for _, out := range outputs {
		cov := out.Covenant
		if cov == nil || cov.Type == wire.CovenantNone {
			continue
		}

		rawHash := cov.NameHash()
		if rawHash == nil {
			return nil, blockchain.PolicyError{Reason: "names: covenant carries no nameHash"}
		}
		var nameHash chainhash.Hash
		copy(nameHash[:], rawHash)

		if seen[nameHash] {
			return nil, blockchain.RuleError{
				Code:        blockchain.ErrDuplicateName,
				Description: "two covenants in the same block target the same name",
			}
		}
		seen[nameHash] = true

		state, err := store.GetName(nameHash)
		if err != nil {
			return nil, err
		}

		next, undo, err := Apply(cov, state, ApplyContext{
			Height:   height,
			Outpoint: out.Outpoint,
			Value:    out.Value,
			Params:   params,
		})
		if err != nil {
			return nil, err
		}

		if err := store.PutName(next); err != nil {
			return nil, err
		}
		result.UndoLog = append(result.UndoLog, undo)

		switch cov.Type {
		case wire.CovenantOpen:
			result.Opens++
		case wire.CovenantUpdate:
			result.Updates++
		case wire.CovenantRenew:
			result.Renewals++
		}
	}

	log.Debugf("connected %d covenant outputs at height %d (%d opens, %d updates, %d renewals)",
		len(result.UndoLog), height, result.Opens, result.Updates, result.Renewals)

	return result, nil
}

// DisconnectBlock inverts a BlockResult's UndoLog in reverse order,
// restoring every touched NameState (or deleting it entirely if it did
// not exist before the block connected).
func DisconnectBlock(store Store, result *BlockResult) error {
	log.Debugf("disconnecting %d covenant outputs", len(result.UndoLog))
	for i := len(result.UndoLog) - 1; i >= 0; i-- {
		undo := result.UndoLog[i]
		prior := Undo(undo)
		if prior == nil {
			if err := store.DeleteName(undo.NameHash); err != nil {
				return err
			}
			continue
		}
		if err := store.PutName(prior); err != nil {
			return err
		}
	}
	return nil
}
