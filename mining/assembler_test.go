// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import (
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/require"

	"github.com/nsdchain/nsd/chaincfg"
	"github.com/nsdchain/nsd/chaincfg/chainhash"
	"github.com/nsdchain/nsd/mempool"
	"github.com/nsdchain/nsd/wire"
)

type fakeSource struct {
	descs    []*mempool.TxDesc
	claims   []*mempool.ClaimDesc
	airdrops []*mempool.AirdropDesc
}

func (f *fakeSource) MiningDescs() []*mempool.TxDesc           { return f.descs }
func (f *fakeSource) PendingClaims() []*mempool.ClaimDesc      { return f.claims }
func (f *fakeSource) PendingAirdrops() []*mempool.AirdropDesc  { return f.airdrops }
func (f *fakeSource) FetchUtxo(wire.OutPoint) (*wire.TxOut, error) { return nil, nil }
func (f *fakeSource) LastUpdated() int64                       { return 0 }

func TestNewBlockTemplateEmptyMempool(t *testing.T) {
	cfg := &Config{
		ChainParams:    &chaincfg.SimNetParams,
		TxSource:       &fakeSource{},
		BestHeight:     0,
		BestHash:       chainhash.Hash{},
		MedianTimePast: 0,
		PrevBits:       chaincfg.SimNetParams.PowLimitBits,
		RewardScript:   []byte{0x51},
	}

	tmpl, err := NewBlockTemplate(cfg)
	require.NoError(t, err)
	require.Len(t, tmpl.Block.Transactions, 1)
	require.True(t, tmpl.Block.Transactions[0].IsCoinBase())
	require.Equal(t, int32(1), tmpl.Height)
}

// openTx builds a one-output transaction carrying an OPEN covenant for a
// distinct name, the minimal shape countCovenants needs to tally it.
func openTx(name string) *wire.MsgTx {
	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxIn(&wire.TxIn{PreviousOutPoint: wire.OutPoint{Index: 0}, Sequence: wire.MaxTxInSequenceNum})
	nameHash := chainhash.HashH([]byte(name))
	tx.AddTxOut(&wire.TxOut{
		Value: 1000,
		Covenant: &wire.Covenant{
			Type:  wire.CovenantOpen,
			Items: [][]byte{nameHash[:], []byte(name)},
		},
	})
	return tx
}

// TestNewBlockTemplateEnforcesOpenCap checks §4.3's per-covenant cap: a
// template never includes more OPENs than the active params allow, even
// when more are available, and includes exactly the cap when that many
// are offered.
func TestNewBlockTemplateEnforcesOpenCap(t *testing.T) {
	params := chaincfg.SimNetParams
	params.MaxBlockOpens = 2

	build := func(n int) *Template {
		descs := make([]*mempool.TxDesc, n)
		for i := 0; i < n; i++ {
			descs[i] = &mempool.TxDesc{Tx: openTx(string(rune('a' + i))), Fee: 100, Added: 0, StartingPriority: 0}
		}
		cfg := &Config{
			ChainParams:  &params,
			TxSource:     &fakeSource{descs: descs},
			BestHeight:   0,
			PrevBits:     params.PowLimitBits,
			RewardScript: []byte{0x51},
		}
		tmpl, err := NewBlockTemplate(cfg)
		require.NoError(t, err)
		return tmpl
	}

	atCap := build(2)
	require.Equal(t, 2, atCap.Opens)
	require.Len(t, atCap.Block.Transactions, 3) // coinbase + 2 OPENs

	overCap := build(3)
	require.Equal(t, 2, overCap.Opens)
	require.Len(t, overCap.Block.Transactions, 3) // coinbase + 2 OPENs, third skipped
}

// multiOpenTx builds a tx carrying OPEN covenants for every name given, one
// output per name — the shape needed to exercise a partial-duplicate
// rejection within a single candidate transaction.
func multiOpenTx(names ...string) *wire.MsgTx {
	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxIn(&wire.TxIn{PreviousOutPoint: wire.OutPoint{Index: 0}, Sequence: wire.MaxTxInSequenceNum})
	for _, name := range names {
		nameHash := chainhash.HashH([]byte(name))
		tx.AddTxOut(&wire.TxOut{
			Value: 1000,
			Covenant: &wire.Covenant{
				Type:  wire.CovenantOpen,
				Items: [][]byte{nameHash[:], []byte(name)},
			},
		})
	}
	return tx
}

// TestNewBlockTemplateRejectedDuplicateDoesNotPoisonFreshName checks that a
// candidate rejected for colliding with an already-included name doesn't
// also block a later, unrelated candidate for a name it merely happened to
// carry alongside the collision: only nameHashes from transactions actually
// added to the block may be marked seen.
func TestNewBlockTemplateRejectedDuplicateDoesNotPoisonFreshName(t *testing.T) {
	params := chaincfg.SimNetParams

	claimsAlice := openTx("alice")
	aliceAndBob := multiOpenTx("alice", "bob")
	claimsBob := openTx("bob")

	descs := []*mempool.TxDesc{
		{Tx: claimsAlice, Fee: 300, Added: 0, StartingPriority: 0},
		{Tx: aliceAndBob, Fee: 200, Added: 0, StartingPriority: 0},
		{Tx: claimsBob, Fee: 100, Added: 0, StartingPriority: 0},
	}

	cfg := &Config{
		ChainParams:  &params,
		TxSource:     &fakeSource{descs: descs},
		BestHeight:   0,
		PrevBits:     params.PowLimitBits,
		RewardScript: []byte{0x51},
	}

	tmpl, err := NewBlockTemplate(cfg)
	require.NoError(t, err)

	// coinbase + claimsAlice + claimsBob; aliceAndBob rejected whole for
	// colliding with claimsAlice, but that must not cost claimsBob its slot.
	require.Len(t, tmpl.Block.Transactions, 3)
	require.Equal(t, 2, tmpl.Opens)
}

func TestNewBlockTemplateIncludesCandidateTx(t *testing.T) {
	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxIn(&wire.TxIn{PreviousOutPoint: wire.OutPoint{Index: 0}, Sequence: wire.MaxTxInSequenceNum})
	tx.AddTxOut(&wire.TxOut{Value: 1000})

	cfg := &Config{
		ChainParams: &chaincfg.SimNetParams,
		TxSource: &fakeSource{
			descs: []*mempool.TxDesc{{Tx: tx, Fee: 100, Added: 0, StartingPriority: 0}},
		},
		BestHeight:   0,
		PrevBits:     chaincfg.SimNetParams.PowLimitBits,
		RewardScript: []byte{0x51},
	}

	tmpl, err := NewBlockTemplate(cfg)
	require.NoError(t, err)
	require.Len(t, tmpl.Block.Transactions, 2)
}

// TestNewBlockTemplateDropsClaimsWithBadProofs checks that an
// AllocationKey filters out claims whose ProofBlob doesn't verify,
// leaving only the genuine one embedded in the coinbase.
func TestNewBlockTemplateDropsClaimsWithBadProofs(t *testing.T) {
	priv, err := btcec.NewPrivateKey()
	require.NoError(t, err)

	good := signedClaim(t, priv, "alice")
	bad := &mempool.ClaimDesc{Name: "bob", NameHash: chainhash.HashH([]byte("bob")), ProofBlob: []byte("forged")}

	cfg := &Config{
		ChainParams:   &chaincfg.SimNetParams,
		TxSource:      &fakeSource{claims: []*mempool.ClaimDesc{good, bad}},
		BestHeight:    0,
		PrevBits:      chaincfg.SimNetParams.PowLimitBits,
		RewardScript:  []byte{0x51},
		AllocationKey: priv.PubKey(),
	}

	tmpl, err := NewBlockTemplate(cfg)
	require.NoError(t, err)
	require.Len(t, tmpl.Block.Transactions[0].TxIn, 2) // coinbase placeholder + one claim
}
