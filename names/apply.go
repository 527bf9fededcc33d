// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package names

import (
	"errors"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/nsdchain/nsd/blockchain"
	"github.com/nsdchain/nsd/chaincfg"
	"github.com/nsdchain/nsd/chaincfg/chainhash"
	"github.com/nsdchain/nsd/wire"
)

var errEmptyCovenant = errors.New("names: covenant carries no items")

// ApplyContext carries the block-connect-time facts a covenant's effect
// depends on beyond the covenant's own items and the name's current state.
type ApplyContext struct {
	// Height is the height of the block connecting this covenant.
	Height int32

	// Outpoint is the coin carrying the covenant, the new Owner on any
	// covenant that changes ownership.
	Outpoint wire.OutPoint

	// Value is the value of the output carrying the covenant. For REVEAL
	// this is the bid amount itself; the actual amount is never placed in
	// the covenant's items because BID must not leak it.
	Value btcutil.Amount

	Params *chaincfg.Params
}

// UndoEntry is the information Undo needs to invert one Apply call. Prior
// is a full snapshot of the NameState before Apply ran, nil if the name did
// not exist yet (the covenant was an OPEN or CLAIM against PhaseAbsent).
type UndoEntry struct {
	NameHash chainhash.Hash
	Prior    *NameState
}

// Apply is the total function over (current NameState, covenant) that
// connect-block validation calls for every covenant-bearing output: total
// in the sense that it is defined for every (phase, covenant type) pair
// Permits allows, and rejects every pair it doesn't. It never mutates
// state in place; it returns the next NameState (nil only for NONE, which
// Apply refuses) along with the undo record needed to invert the change.
func Apply(cov *wire.Covenant, state *NameState, ctx ApplyContext) (*NameState, *UndoEntry, error) {
	if cov.Type == wire.CovenantNone {
		return nil, nil, blockchain.PolicyError{Reason: "names: NONE carries no state transition"}
	}

	phase := state.Phase(ctx.Height, ctx.Params)
	if !Permits(phase, cov.Type) {
		return nil, nil, blockchain.RuleError{
			Code:        blockchain.ErrBadNameState,
			Description: cov.Type.String() + " not permitted in current name phase",
		}
	}

	nameHash, err := covenantNameHash(cov)
	if err != nil {
		return nil, nil, blockchain.RuleError{Code: blockchain.ErrMalformedCovenant, Description: err.Error()}
	}
	undo := &UndoEntry{NameHash: nameHash, Prior: state.Clone()}

	next, err := applyByType(cov, state, ctx)
	if err != nil {
		return nil, nil, err
	}
	return next, undo, nil
}

// Undo reverts the effect of the Apply call that produced entry, returning
// the NameState to restore (nil meaning the name reverts to PhaseAbsent).
// Because Apply always snapshots the full prior state before mutating,
// Undo(Apply(s, c)) == s unconditionally.
func Undo(entry *UndoEntry) *NameState {
	return entry.Prior.Clone()
}

func applyByType(cov *wire.Covenant, state *NameState, ctx ApplyContext) (*NameState, error) {
	switch cov.Type {
	case wire.CovenantOpen:
		data, err := DecodeOpen(cov)
		if err != nil {
			return nil, blockchain.RuleError{Code: blockchain.ErrMalformedCovenant, Description: err.Error()}
		}
		return &NameState{
			Name:     data.Name,
			NameHash: data.NameHash,
			Height:   ctx.Height,
			Owner:    ctx.Outpoint,
		}, nil

	case wire.CovenantBid:
		// BID locks funds against a blind commitment; the auction ledger
		// lives in the UTXO set, not in NameState, so the name record is
		// untouched until REVEAL.
		if _, err := DecodeBid(cov); err != nil {
			return nil, blockchain.RuleError{Code: blockchain.ErrMalformedCovenant, Description: err.Error()}
		}
		return state.Clone(), nil

	case wire.CovenantReveal:
		if _, err := DecodeReveal(cov); err != nil {
			return nil, blockchain.RuleError{Code: blockchain.ErrMalformedCovenant, Description: err.Error()}
		}
		next := state.Clone()
		switch {
		case ctx.Value > next.Value:
			// New leading bid: the old leader's value becomes the
			// second-price floor, earlier equal-value reveals having
			// already failed this branch and so never displaced it.
			next.Highest = next.Value
			next.Value = ctx.Value
			next.Owner = ctx.Outpoint
		case ctx.Value > next.Highest:
			next.Highest = ctx.Value
		}
		return next, nil

	case wire.CovenantRedeem:
		if _, err := singleNameCovenant(cov, wire.CovenantRedeem); err != nil {
			return nil, blockchain.RuleError{Code: blockchain.ErrMalformedCovenant, Description: err.Error()}
		}
		return state.Clone(), nil

	case wire.CovenantRegister:
		data, err := DecodeRegister(cov)
		if err != nil {
			return nil, blockchain.RuleError{Code: blockchain.ErrMalformedCovenant, Description: err.Error()}
		}
		next := state.Clone()
		next.Data = data.Data
		next.Registered = true
		next.Renewal = ctx.Height
		next.Owner = ctx.Outpoint
		return next, nil

	case wire.CovenantUpdate:
		data, err := DecodeUpdate(cov)
		if err != nil {
			return nil, blockchain.RuleError{Code: blockchain.ErrMalformedCovenant, Description: err.Error()}
		}
		next := state.Clone()
		next.Data = data.Data
		next.Owner = ctx.Outpoint
		return next, nil

	case wire.CovenantRenew:
		if _, err := singleNameCovenant(cov, wire.CovenantRenew); err != nil {
			return nil, blockchain.RuleError{Code: blockchain.ErrMalformedCovenant, Description: err.Error()}
		}
		if !state.InRenewalGrace(ctx.Height, ctx.Params) {
			return nil, blockchain.PolicyError{Reason: "names: RENEW sent outside the trailing renewal window"}
		}
		next := state.Clone()
		next.Renewal = ctx.Height
		next.Owner = ctx.Outpoint
		return next, nil

	case wire.CovenantTransfer:
		data, err := DecodeTransfer(cov)
		if err != nil {
			return nil, blockchain.RuleError{Code: blockchain.ErrMalformedCovenant, Description: err.Error()}
		}
		next := state.Clone()
		next.Transfer = ctx.Height
		next.PendingRecipient = append([]byte(nil), data.Recipient...)
		next.Owner = ctx.Outpoint
		return next, nil

	case wire.CovenantFinalize:
		if _, err := singleNameCovenant(cov, wire.CovenantFinalize); err != nil {
			return nil, blockchain.RuleError{Code: blockchain.ErrMalformedCovenant, Description: err.Error()}
		}
		if ctx.Height-state.Transfer < ctx.Params.TransferLockup {
			return nil, blockchain.RuleError{
				Code:        blockchain.ErrTransferLockup,
				Description: "names: FINALIZE sent before TransferLockup elapsed",
			}
		}
		next := state.Clone()
		next.Transfer = 0
		next.PendingRecipient = nil
		next.Owner = ctx.Outpoint
		return next, nil

	case wire.CovenantCancel:
		if _, err := singleNameCovenant(cov, wire.CovenantCancel); err != nil {
			return nil, blockchain.RuleError{Code: blockchain.ErrMalformedCovenant, Description: err.Error()}
		}
		next := state.Clone()
		next.Transfer = 0
		next.PendingRecipient = nil
		next.Owner = ctx.Outpoint
		return next, nil

	case wire.CovenantRevoke:
		if _, err := singleNameCovenant(cov, wire.CovenantRevoke); err != nil {
			return nil, blockchain.RuleError{Code: blockchain.ErrMalformedCovenant, Description: err.Error()}
		}
		next := state.Clone()
		next.Revoked = ctx.Height
		next.Data = nil
		next.Transfer = 0
		next.PendingRecipient = nil
		next.Owner = ctx.Outpoint
		return next, nil

	case wire.CovenantClaim:
		data, err := DecodeClaim(cov)
		if err != nil {
			return nil, blockchain.RuleError{Code: blockchain.ErrMalformedCovenant, Description: err.Error()}
		}
		return &NameState{
			Name:       data.Name,
			NameHash:   data.NameHash,
			Height:     ctx.Height,
			Renewal:    ctx.Height,
			Owner:      ctx.Outpoint,
			Claimed:    true,
			Weak:       data.Weak,
			Registered: true,
		}, nil

	default:
		return nil, blockchain.RuleError{Code: blockchain.ErrMalformedCovenant, Description: "names: unknown covenant type"}
	}
}

// covenantNameHash extracts Items[0] without requiring the caller to know
// the variant's full layout, used only to key the undo record.
func covenantNameHash(cov *wire.Covenant) (chainhash.Hash, error) {
	if len(cov.Items) == 0 {
		return chainhash.Hash{}, errEmptyCovenant
	}
	return nameHashFromItem(cov.Items[0])
}
