// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package names

import (
	"reflect"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/nsdchain/nsd/blockchain"
	"github.com/nsdchain/nsd/chaincfg"
	"github.com/nsdchain/nsd/chaincfg/chainhash"
	"github.com/nsdchain/nsd/wire"
)

func simParams() *chaincfg.Params {
	return &chaincfg.SimNetParams
}

func openCovenant(t *testing.T, name string) (*wire.Covenant, chainhash.Hash) {
	t.Helper()
	hash := chainhash.HashH([]byte(name))
	return &wire.Covenant{
		Type:  wire.CovenantOpen,
		Items: [][]byte{hash[:], []byte(name)},
	}, hash
}

func TestAuctionHappyPath(t *testing.T) {
	params := simParams()
	cov, hash := openCovenant(t, "example")

	openHeight := int32(100)
	next, undo, err := Apply(cov, nil, ApplyContext{Height: openHeight, Params: params})
	require.NoError(t, err)
	require.Nil(t, undo.Prior)
	require.Equal(t, hash, next.NameHash)
	require.Equal(t, PhaseOpening, next.Phase(openHeight, params))

	bidHeight := openHeight + params.TreeInterval
	require.Equal(t, PhaseBidding, next.Phase(bidHeight, params))

	blind := chainhash.HashH([]byte("blind"))
	bidCov := &wire.Covenant{Type: wire.CovenantBid, Items: [][]byte{hash[:], blind[:]}}
	state, _, err := Apply(bidCov, next, ApplyContext{Height: bidHeight, Params: params})
	require.NoError(t, err)
	require.Equal(t, btcutil.Amount(0), state.Value)

	revealHeight := bidHeight + params.BiddingPeriod
	nonce := chainhash.HashH([]byte("nonce"))
	revealCov := &wire.Covenant{Type: wire.CovenantReveal, Items: [][]byte{hash[:], nonce[:]}}
	state, _, err = Apply(revealCov, state, ApplyContext{Height: revealHeight, Value: 500, Params: params})
	require.NoError(t, err)
	require.Equal(t, btcutil.Amount(500), state.Value)
	require.Equal(t, btcutil.Amount(0), state.Highest)

	// A second, lower reveal should not move Value but should raise
	// Highest, the second-price floor the winner actually pays.
	revealCov2 := &wire.Covenant{Type: wire.CovenantReveal, Items: [][]byte{hash[:], nonce[:]}}
	state, _, err = Apply(revealCov2, state, ApplyContext{Height: revealHeight, Value: 200, Params: params})
	require.NoError(t, err)
	require.Equal(t, btcutil.Amount(500), state.Value)
	require.Equal(t, btcutil.Amount(200), state.Highest)

	registerHeight := revealHeight + params.RevealPeriod
	require.Equal(t, PhaseClosedUnregistered, state.Phase(registerHeight, params))

	regCov := &wire.Covenant{Type: wire.CovenantRegister, Items: [][]byte{hash[:], []byte("data")}}
	state, _, err = Apply(regCov, state, ApplyContext{Height: registerHeight, Params: params})
	require.NoError(t, err)
	require.True(t, state.Registered)
	require.Equal(t, PhaseClosedRegistered, state.Phase(registerHeight, params))
}

func TestReopenBeforeRegistration(t *testing.T) {
	params := simParams()
	cov, hash := openCovenant(t, "lapsed")
	state, _, err := Apply(cov, nil, ApplyContext{Height: 0, Params: params})
	require.NoError(t, err)

	lapseHeight := params.TreeInterval + params.BiddingPeriod + params.RevealPeriod + params.RenewalWindow
	require.Equal(t, PhaseReopenable, state.Phase(lapseHeight, params))

	reopenCov, reopenHash := openCovenant(t, "lapsed")
	require.Equal(t, hash, reopenHash)
	_, _, err = Apply(reopenCov, state, ApplyContext{Height: lapseHeight, Params: params})
	require.NoError(t, err)
}

func TestDuplicateOpenRejected(t *testing.T) {
	params := simParams()
	cov, _ := openCovenant(t, "taken")
	state, _, err := Apply(cov, nil, ApplyContext{Height: 0, Params: params})
	require.NoError(t, err)

	_, _, err = Apply(cov, state, ApplyContext{Height: 1, Params: params})
	require.Error(t, err)
	ruleErr, ok := err.(blockchain.RuleError)
	require.True(t, ok)
	require.Equal(t, blockchain.ErrBadNameState, ruleErr.Code)
}

func TestTransferFinalizeRevoke(t *testing.T) {
	params := simParams()
	cov, hash := openCovenant(t, "owned")
	state, _, err := Apply(cov, nil, ApplyContext{Height: 0, Params: params})
	require.NoError(t, err)
	state.Registered = true
	state.Renewal = 0

	xferCov := &wire.Covenant{Type: wire.CovenantTransfer, Items: [][]byte{hash[:], []byte("recipient-script")}}
	state, _, err = Apply(xferCov, state, ApplyContext{Height: 10, Params: params})
	require.NoError(t, err)
	require.Equal(t, PhaseTransferring, state.Phase(10, params))

	finCov := &wire.Covenant{Type: wire.CovenantFinalize, Items: [][]byte{hash[:]}}
	_, _, err = Apply(finCov, state, ApplyContext{Height: 10, Params: params})
	require.Error(t, err, "FINALIZE before TransferLockup elapses must fail")

	finHeight := int32(10) + params.TransferLockup
	state, _, err = Apply(finCov, state, ApplyContext{Height: finHeight, Params: params})
	require.NoError(t, err)
	require.Equal(t, int32(0), state.Transfer)
	require.Nil(t, state.PendingRecipient)

	revCov := &wire.Covenant{Type: wire.CovenantRevoke, Items: [][]byte{hash[:]}}
	state, _, err = Apply(revCov, state, ApplyContext{Height: finHeight + 1, Params: params})
	require.NoError(t, err)
	require.Equal(t, finHeight+1, state.Revoked)
	require.Nil(t, state.Data)
}

// TestApplyUndoInvertible checks the invertibility property for OPEN over
// random names and heights: undoing an Apply against an absent (nil) prior
// state must reproduce that nil state.
// TestApplyUndoRestoresPriorReopenableState checks invertibility against
// a non-nil prior state (reopening a lapsed name), using spew.Sdump for a
// readable diff if the restored state doesn't match byte-for-byte —
// NameState carries enough nested fields that testify's default %v
// output is hard to read on a mismatch.
func TestApplyUndoRestoresPriorReopenableState(t *testing.T) {
	params := simParams()
	cov, hash := openCovenant(t, "example")

	openHeight := int32(100)
	prior, _, err := Apply(cov, nil, ApplyContext{Height: openHeight, Params: params})
	require.NoError(t, err)

	lapseHeight := openHeight + params.TreeInterval + params.BiddingPeriod + params.RevealPeriod + params.RenewalWindow
	require.Equal(t, PhaseReopenable, prior.Phase(lapseHeight, params))

	reopenCov, reopenHash := openCovenant(t, "example")
	require.Equal(t, hash, reopenHash)

	next, undo, err := Apply(reopenCov, prior, ApplyContext{Height: lapseHeight, Params: params})
	require.NoError(t, err)
	require.NotNil(t, next)

	restored := Undo(undo)
	if !reflect.DeepEqual(prior, restored) {
		t.Fatalf("undo did not restore prior state:\nprior:\n%s\nrestored:\n%s", spew.Sdump(prior), spew.Sdump(restored))
	}
}

func TestApplyUndoInvertible(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		params := simParams()
		cov, _ := openCovenant(t, rapid.StringMatching(`[a-z]{1,10}`).Draw(rt, "name"))
		height := rapid.Int32Range(0, 1000).Draw(rt, "height")

		var prior *NameState
		next, undo, err := Apply(cov, prior, ApplyContext{Height: height, Params: params})
		if err != nil {
			return
		}
		require.NotNil(rt, next)
		restored := Undo(undo)
		require.Nil(rt, restored)
	})
}
