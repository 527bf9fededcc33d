// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math/big"

	"github.com/nsdchain/nsd/chaincfg/chainhash"
	"github.com/nsdchain/nsd/wire"
)

// CompactToBig expands a block header's Bits field into the full target
// it represents, using the same base-256 floating-point-like encoding
// every btcd-derived chain's "compact bits" has always used: the low 23
// bits are a mantissa, bit 23 is a sign bit, and the high byte is an
// exponent measured in bytes.
func CompactToBig(compact uint32) *big.Int {
	mantissa := compact & 0x007fffff
	exponent := uint(compact >> 24)

	var bn *big.Int
	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		bn = big.NewInt(int64(mantissa))
	} else {
		bn = big.NewInt(int64(mantissa))
		bn.Lsh(bn, 8*(exponent-3))
	}

	if compact&0x00800000 != 0 {
		bn = bn.Neg(bn)
	}

	return bn
}

// BigToCompact is the inverse of CompactToBig.
func BigToCompact(n *big.Int) uint32 {
	if n.Sign() == 0 {
		return 0
	}

	var mantissa uint32
	exponent := uint(len(n.Bytes()))
	if exponent <= 3 {
		mantissa = uint32(n.Bits()[0])
		mantissa <<= 8 * (3 - exponent)
	} else {
		tn := new(big.Int).Set(n)
		mantissa = uint32(tn.Rsh(tn, 8*(exponent-3)).Bits()[0])
	}

	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		exponent++
	}

	compact := uint32(exponent<<24) | mantissa
	if n.Sign() < 0 {
		compact |= 0x00800000
	}
	return compact
}

// HashToBig interprets a hash's bytes as a big-endian integer, reversing
// the little-endian byte order chainhash.Hash stores internally — the
// same convention btcd's own difficulty comparison uses.
func HashToBig(hash chainhash.Hash) *big.Int {
	var reversed chainhash.Hash
	for i := range hash {
		reversed[chainhash.HashSize-1-i] = hash[i]
	}
	return new(big.Int).SetBytes(reversed[:])
}

// ValidatePoW reports whether header's proof-of-work hash satisfies its
// own Bits target, per §4.4: "powHash = shareHash XOR mask <= target".
func ValidatePoW(header *wire.BlockHeader) bool {
	target := CompactToBig(header.Bits)
	if target.Sign() <= 0 {
		return false
	}
	return HashToBig(header.PowHash()).Cmp(target) <= 0
}
