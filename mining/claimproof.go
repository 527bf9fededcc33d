// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"github.com/nsdchain/nsd/chaincfg/chainhash"
	"github.com/nsdchain/nsd/mempool"
)

// claimSigningHash is what a CLAIM proof signs over: the name and the
// commitment it's redeeming, the same pair appendClaim commits into the
// coinbase's covenant, so a proof forged for one claim can never verify
// against another.
func claimSigningHash(c *mempool.ClaimDesc) chainhash.Hash {
	buf := make([]byte, 0, 2*chainhash.HashSize)
	buf = append(buf, c.NameHash[:]...)
	buf = append(buf, c.CommitHash[:]...)
	return chainhash.HashH(buf)
}

// verifyClaimProof reports whether c.ProofBlob is a DER-encoded ECDSA
// signature over claimSigningHash(c) under key, the allocation-proving
// signature a CLAIM covenant assumes exists without spec.md mandating a
// concrete scheme for it. A nil key (no external allocation configured)
// accepts every claim, since a chain running with no reserved-name set
// has nothing to check proofs against.
func verifyClaimProof(key *btcec.PublicKey, c *mempool.ClaimDesc) bool {
	if key == nil {
		return true
	}
	sig, err := ecdsa.ParseDERSignature(c.ProofBlob)
	if err != nil {
		return false
	}
	hash := claimSigningHash(c)
	return sig.Verify(hash[:], key)
}
