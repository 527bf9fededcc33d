// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package names

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/nsdchain/nsd/chaincfg/chainhash"
	"github.com/nsdchain/nsd/wire"
)

// Action is one covenant-bearing output a wallet wants to produce: the
// covenant to attach, the recipient script, and the value to carry. A
// wallet builds a batch of Actions against its own Query view, then hands
// them to BuildBatch to become a single transaction's outputs, letting a
// user queue e.g. a RENEW for every name about to lapse in one broadcast
// instead of one transaction per name.
type Action struct {
	Covenant  wire.Covenant
	Recipient []byte
	Value     btcutil.Amount
}

// BuildBatch turns a set of Actions queued against the same Query view
// into the TxOuts of a single transaction. Each action's target name must
// actually exist in q (or the action is an OPEN/CLAIM, which doesn't
// require one) — this is a cheap existence check, not a substitute for
// the authoritative phase-permission check Apply runs at connect time.
func BuildBatch(q Query, actions []Action) ([]*wire.TxOut, error) {
	outs := make([]*wire.TxOut, 0, len(actions))
	for i, a := range actions {
		cov := a.Covenant
		rawHash := cov.NameHash()
		if rawHash == nil {
			return nil, fmt.Errorf("names: action %d carries no nameHash", i)
		}

		var hash chainhash.Hash
		copy(hash[:], rawHash)

		if cov.Type != wire.CovenantOpen && cov.Type != wire.CovenantClaim {
			state, err := q.Name(hash)
			if err != nil {
				return nil, fmt.Errorf("names: action %d: %w", i, err)
			}
			if state == nil {
				return nil, fmt.Errorf("names: action %d: name %x does not exist", i, hash[:])
			}
		}

		outs = append(outs, &wire.TxOut{
			Value:    a.Value,
			PkScript: a.Recipient,
			Covenant: &cov,
		})
	}
	return outs, nil
}
