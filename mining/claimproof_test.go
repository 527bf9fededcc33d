// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import (
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/stretchr/testify/require"

	"github.com/nsdchain/nsd/chaincfg/chainhash"
	"github.com/nsdchain/nsd/mempool"
)

func signedClaim(t *testing.T, priv *btcec.PrivateKey, name string) *mempool.ClaimDesc {
	c := &mempool.ClaimDesc{
		NameHash:   chainhash.HashH([]byte(name)),
		Name:       name,
		CommitHash: chainhash.HashH([]byte(name + "-commit")),
	}
	hash := claimSigningHash(c)
	c.ProofBlob = ecdsa.Sign(priv, hash[:]).Serialize()
	return c
}

func TestVerifyClaimProofNilKeyAcceptsEverything(t *testing.T) {
	c := &mempool.ClaimDesc{Name: "alice"}
	require.True(t, verifyClaimProof(nil, c))
}

func TestVerifyClaimProofAcceptsValidSignature(t *testing.T) {
	priv, err := btcec.NewPrivateKey()
	require.NoError(t, err)

	c := signedClaim(t, priv, "alice")
	require.True(t, verifyClaimProof(priv.PubKey(), c))
}

func TestVerifyClaimProofRejectsWrongKey(t *testing.T) {
	priv, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	other, err := btcec.NewPrivateKey()
	require.NoError(t, err)

	c := signedClaim(t, priv, "alice")
	require.False(t, verifyClaimProof(other.PubKey(), c))
}

func TestVerifyClaimProofRejectsProofForDifferentClaim(t *testing.T) {
	priv, err := btcec.NewPrivateKey()
	require.NoError(t, err)

	c := signedClaim(t, priv, "alice")
	c.Name = "bob"
	c.NameHash = chainhash.HashH([]byte("bob"))
	require.False(t, verifyClaimProof(priv.PubKey(), c))
}

func TestVerifyClaimProofRejectsMalformedBlob(t *testing.T) {
	priv, err := btcec.NewPrivateKey()
	require.NoError(t, err)

	c := &mempool.ClaimDesc{Name: "alice", ProofBlob: []byte("not a signature")}
	require.False(t, verifyClaimProof(priv.PubKey(), c))
}
