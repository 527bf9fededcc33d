// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"io"
	"math"

	"github.com/nsdchain/nsd/chaincfg/chainhash"
	"github.com/nsdchain/nsd/wire"
)

// nextPowerOfTwo returns the next highest power of two from n, or n itself
// if it is already a power of two.
func nextPowerOfTwo(n int) int {
	if n&(n-1) == 0 {
		return n
	}
	exponent := uint(math.Log2(float64(n))) + 1
	return 1 << exponent
}

// HashMerkleBranches hashes the concatenation of two tree nodes.
func HashMerkleBranches(left, right *chainhash.Hash) chainhash.Hash {
	var buf [chainhash.HashSize * 2]byte
	copy(buf[:chainhash.HashSize], left[:])
	copy(buf[chainhash.HashSize:], right[:])

	return chainhash.DoubleHashRaw(func(w io.Writer) error {
		_, err := w.Write(buf[:])
		return err
	})
}

// buildMerkleTreeStore builds a Merkle tree over the given leaves, stored as
// a linear array where the root is always the final element. Missing right
// children are handled by duplicating the left child, the standard
// odd-leaf-count convention.
func buildMerkleTreeStore(leaves []chainhash.Hash) []*chainhash.Hash {
	nextPoT := nextPowerOfTwo(len(leaves))
	arraySize := nextPoT*2 - 1
	merkles := make([]*chainhash.Hash, arraySize)

	for i := range leaves {
		h := leaves[i]
		merkles[i] = &h
	}

	offset := nextPoT
	for i := 0; i < arraySize-1; i += 2 {
		switch {
		case merkles[i] == nil:
			merkles[offset] = nil
		case merkles[i+1] == nil:
			newHash := HashMerkleBranches(merkles[i], merkles[i])
			merkles[offset] = &newHash
		default:
			newHash := HashMerkleBranches(merkles[i], merkles[i+1])
			merkles[offset] = &newHash
		}
		offset++
	}

	return merkles
}

// calcMerkleRoot computes the Merkle root of a set of leaves. An empty leaf
// set has a root of the zero hash.
func calcMerkleRoot(leaves []chainhash.Hash) chainhash.Hash {
	if len(leaves) == 0 {
		return chainhash.Hash{}
	}
	if len(leaves) == 1 {
		return leaves[0]
	}
	tree := buildMerkleTreeStore(leaves)
	return *tree[len(tree)-1]
}

// CalcMerkleRoot computes the block's non-witness Merkle root over its
// transactions' base hashes, coinbase first.
func CalcMerkleRoot(transactions []*wire.MsgTx) chainhash.Hash {
	leaves := make([]chainhash.Hash, len(transactions))
	for i, tx := range transactions {
		leaves[i] = tx.TxHash()
	}
	return calcMerkleRoot(leaves)
}

// CalcWitnessRoot computes the block's witness Merkle root. The coinbase's
// leaf is defined as the zero hash, matching the convention that a
// coinbase's own witness data cannot be committed to by the very
// transaction carrying the commitment.
func CalcWitnessRoot(transactions []*wire.MsgTx) chainhash.Hash {
	leaves := make([]chainhash.Hash, len(transactions))
	for i, tx := range transactions {
		if i == 0 {
			leaves[i] = chainhash.Hash{}
			continue
		}
		leaves[i] = tx.WitnessHash()
	}
	return calcMerkleRoot(leaves)
}
