// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/nsdchain/nsd/chaincfg/chainhash"
	"github.com/nsdchain/nsd/wire"
)

func TestCompactBigRoundTrip(t *testing.T) {
	cases := []uint32{0x1d00ffff, 0x207fffff, 0x1b0404cb}
	for _, compact := range cases {
		n := CompactToBig(compact)
		require.Equal(t, compact, BigToCompact(n))
	}
}

func TestCompactToBigRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		// Only canonical encodings round-trip: a mantissa below 0x008000
		// (including zero) has a shorter encoding BigToCompact prefers.
		exponent := rapid.UintRange(3, 32).Draw(rt, "exponent")
		mantissa := rapid.Uint32Range(0x008000, 0x007fffff).Draw(rt, "mantissa")
		compact := uint32(exponent<<24) | mantissa

		n := CompactToBig(compact)
		require.Equal(rt, compact, BigToCompact(n))
	})
}

// headerWithPow builds a header whose PowHash is exactly pow, by picking
// Mask = ShareHash XOR pow.
func headerWithPow(bits uint32, pow chainhash.Hash) *wire.BlockHeader {
	h := &wire.BlockHeader{Bits: bits}
	share := h.ShareHash()
	for i := range h.Mask {
		h.Mask[i] = share[i] ^ pow[i]
	}
	return h
}

func TestValidatePoWAcceptsHashBelowTarget(t *testing.T) {
	var low chainhash.Hash
	low[chainhash.HashSize-1] = 1 // HashToBig reads this as 2^248, below the target

	h := headerWithPow(0x207fffff, low) // a wide-open target
	require.True(t, ValidatePoW(h))
	require.True(t, HashToBig(h.PowHash()).Cmp(CompactToBig(h.Bits)) <= 0)
}

func TestValidatePoWRejectsHashAboveTarget(t *testing.T) {
	var high chainhash.Hash
	for i := range high {
		high[i] = 0xff
	}

	h := headerWithPow(0x03000001, high) // target == 1, the smallest positive target
	require.False(t, ValidatePoW(h))
}

func TestValidatePoWRejectsNonPositiveTarget(t *testing.T) {
	var zero chainhash.Hash
	h := headerWithPow(0, zero)
	require.False(t, ValidatePoW(h))
}

func TestHashToBigReversesByteOrder(t *testing.T) {
	var h chainhash.Hash
	h[0] = 0x01
	got := HashToBig(h)
	want := big.NewInt(1) // h[0] is the least significant byte
	require.Equal(t, 0, got.Cmp(want))
}
