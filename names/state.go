// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package names implements the per-name state machine: the phases a name
// moves through from OPEN to REGISTER, RENEW, TRANSFER, and REVOKE, and the
// covenant-to-phase permission table that the auction validator enforces.
package names

import (
	"github.com/btcsuite/btcd/btcutil"

	"github.com/nsdchain/nsd/chaincfg"
	"github.com/nsdchain/nsd/chaincfg/chainhash"
	"github.com/nsdchain/nsd/wire"
)

// Phase is the derived lifecycle stage of a name, computed from its
// NameState and the current height against the network's auction windows.
type Phase int

const (
	// PhaseAbsent means no NameState exists for the hash at all. A name
	// that once existed but has lapsed reports PhaseReopenable instead,
	// so callers can tell "never opened" from "opened, now available
	// again" without a second lookup.
	PhaseAbsent Phase = iota
	PhaseOpening
	PhaseBidding
	PhaseReveal
	PhaseClosedUnregistered
	PhaseClosedRegistered
	PhaseTransferring
	PhaseRevoked
	PhaseReopenable
)

// NameState is the chain's per-name record. It is never deleted once
// created; a re-OPENed name overwrites the fields below but keeps its
// NameHash identity.
type NameState struct {
	Name     string
	NameHash chainhash.Hash

	// Height is the block height at which OPEN was mined.
	Height int32

	// Renewal is the height of the last renewal (or registration).
	Renewal int32

	// Owner is the outpoint of the coin currently carrying the name.
	Owner wire.OutPoint

	// Value is the winning bid amount after REVEAL.
	Value btcutil.Amount

	// Highest is the second-highest bid amount after REVEAL, the amount
	// the winner actually pays under second-price rules.
	Highest btcutil.Amount

	// Data is the last registered resource blob, possibly empty.
	Data []byte

	// Transfer is the height at which a TRANSFER covenant was posted, or
	// 0 if no transfer is in progress.
	Transfer int32

	// PendingRecipient is the output script TRANSFER proposed as the name's
	// next owner. It is only meaningful while Transfer != 0 and is cleared
	// by FINALIZE or CANCEL.
	PendingRecipient []byte

	// Revoked is the height of REVOKE, or 0 if the name has never been
	// revoked (or has since been re-OPENed, which clears it).
	Revoked int32

	// Claimed marks a name created via the reserved-name CLAIM path
	// rather than a normal auction.
	Claimed bool

	// Weak distinguishes a weak ownership proof (CLAIM path only) from a
	// strong one; weak claims carry additional consensus constraints.
	Weak bool

	// Registered is set on the name's first REGISTER.
	Registered bool
}

// Phase derives the name's lifecycle stage at the given height.
func (s *NameState) Phase(height int32, p *chaincfg.Params) Phase {
	if s == nil {
		return PhaseAbsent
	}

	if s.Revoked != 0 {
		if height >= s.Revoked+p.AuctionMaturity {
			return PhaseReopenable
		}
		return PhaseRevoked
	}

	if s.Claimed {
		return PhaseClosedRegistered
	}

	if !s.Registered {
		elapsed := height - s.Height
		switch {
		case elapsed < p.TreeInterval:
			// OPEN must sit for one tree interval before bidding starts,
			// so names opened within the same interval all enter BIDDING
			// together instead of leaking their relative open order.
			return PhaseOpening
		case elapsed < p.TreeInterval+p.BiddingPeriod:
			return PhaseBidding
		case elapsed < p.TreeInterval+p.BiddingPeriod+p.RevealPeriod:
			return PhaseReveal
		case elapsed < p.TreeInterval+p.BiddingPeriod+p.RevealPeriod+p.RenewalWindow:
			// The winner may REGISTER for a full RenewalWindow after
			// reveal closes before the name lapses; this mirrors the
			// registered case's own renewal grace instead of expiring
			// an unclaimed win instantly.
			return PhaseClosedUnregistered
		default:
			return PhaseReopenable
		}
	}

	if s.Transfer != 0 {
		return PhaseTransferring
	}

	if height >= s.Renewal+p.RenewalWindow {
		return PhaseReopenable
	}

	return PhaseClosedRegistered
}

// InRenewalGrace reports whether height falls within the trailing grace
// window of the renewal period during which a RENEW is accepted. Sending a
// RENEW earlier than this is a policy error: it would let an owner reset
// the renewal clock indefinitely and never let the window matter.
func (s *NameState) InRenewalGrace(height int32, p *chaincfg.Params) bool {
	graceStart := s.Renewal + p.RenewalWindow - p.RenewalWindow/p.RenewalWindowGraceDivisor
	return height >= graceStart && height < s.Renewal+p.RenewalWindow
}

// Clone returns a deep copy of the NameState, used to snapshot prior state
// into an undo record before a covenant mutates it in place.
func (s *NameState) Clone() *NameState {
	if s == nil {
		return nil
	}
	clone := *s
	if s.Data != nil {
		clone.Data = append([]byte(nil), s.Data...)
	}
	if s.PendingRecipient != nil {
		clone.PendingRecipient = append([]byte(nil), s.PendingRecipient...)
	}
	return &clone
}
