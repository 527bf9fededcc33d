// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package names

import "github.com/nsdchain/nsd/wire"

// Permits reports whether covenant is allowed to spend a name coin
// currently in phase. This is the gate Apply checks before touching any
// NameState; every rejection maps to blockchain.ErrBadNameState in the
// caller.
func Permits(phase Phase, covenant wire.CovenantType) bool {
	switch covenant {
	case wire.CovenantOpen:
		return phase == PhaseAbsent || phase == PhaseReopenable

	case wire.CovenantBid:
		return phase == PhaseBidding

	case wire.CovenantReveal:
		return phase == PhaseReveal

	case wire.CovenantRedeem:
		// Valid once the reveal window has closed, win or lose, for as
		// long as the losing coin sits unspent.
		switch phase {
		case PhaseClosedUnregistered, PhaseClosedRegistered, PhaseTransferring, PhaseRevoked, PhaseReopenable:
			return true
		default:
			return false
		}

	case wire.CovenantRegister:
		return phase == PhaseClosedUnregistered

	case wire.CovenantUpdate:
		return phase == PhaseClosedRegistered

	case wire.CovenantRenew:
		return phase == PhaseClosedRegistered

	case wire.CovenantTransfer:
		return phase == PhaseClosedRegistered

	case wire.CovenantFinalize:
		return phase == PhaseTransferring

	case wire.CovenantCancel:
		return phase == PhaseTransferring

	case wire.CovenantRevoke:
		switch phase {
		case PhaseClosedRegistered, PhaseTransferring:
			return true
		default:
			return false
		}

	case wire.CovenantClaim:
		return phase == PhaseAbsent || phase == PhaseReopenable

	default:
		return false
	}
}
