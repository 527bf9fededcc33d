// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainhash provides the Blake2b-256 hash type used throughout the
// chain: block and transaction identifiers, the name-state tree root, and
// the mining header's share/pow hashes.
package chainhash

import (
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
)

// HashSize is the number of bytes in the preferred hash, Blake2b-256.
const HashSize = 32

// MaxHashStringSize is the maximum length of a Hash hash string.
const MaxHashStringSize = HashSize * 2

// ErrHashStrSize describes an error that indicates the caller specified a
// hash string that has too many characters.
var ErrHashStrSize = fmt.Errorf("max hash string length is %v bytes", MaxHashStringSize)

// Hash is used in several of the chain's data structures to identify
// blocks, transactions, and name records.
type Hash [HashSize]byte

// String returns the Hash as the hexadecimal string of the byte-reversed
// hash, matching btcd chainhash's big-endian display convention.
func (hash Hash) String() string {
	var reversed Hash
	for i, b := range hash[:HashSize/2] {
		reversed[i], reversed[HashSize-1-i] = hash[HashSize-1-i], b
	}
	return hex.EncodeToString(reversed[:])
}

// CloneBytes returns a copy of the bytes which represent the hash as a byte
// slice.
func (hash *Hash) CloneBytes() []byte {
	newHash := make([]byte, HashSize)
	copy(newHash, hash[:])
	return newHash
}

// SetBytes sets the bytes which represent the hash. An error is returned if
// the number of bytes passed in is not HashSize.
func (hash *Hash) SetBytes(newHash []byte) error {
	if len(newHash) != HashSize {
		return fmt.Errorf("invalid hash length of %v, want %v", len(newHash), HashSize)
	}
	copy(hash[:], newHash)
	return nil
}

// IsEqual returns true if target is the same as hash.
func (hash *Hash) IsEqual(target *Hash) bool {
	if hash == nil && target == nil {
		return true
	}
	if hash == nil || target == nil {
		return false
	}
	return *hash == *target
}

// NewHash returns a new Hash from a byte slice.
func NewHash(newHash []byte) (*Hash, error) {
	var sh Hash
	err := sh.SetBytes(newHash)
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

// NewHashFromStr creates a Hash from a hash string, which is the
// byte-reversed hexadecimal string.
func NewHashFromStr(hash string) (*Hash, error) {
	ret := new(Hash)
	err := Decode(ret, hash)
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// Decode decodes the byte-reversed hexadecimal string encoding of a Hash to
// a destination.
func Decode(dst *Hash, src string) error {
	if len(src) > MaxHashStringSize {
		return ErrHashStrSize
	}

	var srcBytes []byte
	if len(src)%2 == 0 {
		srcBytes = []byte(src)
	} else {
		srcBytes = make([]byte, 1+len(src))
		srcBytes[0] = '0'
		copy(srcBytes[1:], src)
	}

	var reversedHash Hash
	_, err := hex.Decode(reversedHash[HashSize-hex.DecodedLen(len(srcBytes)):], srcBytes)
	if err != nil {
		return err
	}

	for i, b := range reversedHash[:HashSize/2] {
		dst[i], dst[HashSize-1-i] = reversedHash[HashSize-1-i], b
	}
	return nil
}

// HashB calculates Blake2b-256(b) and returns the resulting bytes.
func HashB(b []byte) []byte {
	sum := blake2b.Sum256(b)
	return sum[:]
}

// HashH calculates Blake2b-256(b) and returns the resulting bytes as a Hash.
func HashH(b []byte) Hash {
	return Hash(blake2b.Sum256(b))
}

// DoubleHashB calculates Blake2b-256(Blake2b-256(b)) and returns the
// resulting bytes. Block and transaction identifiers use a single round of
// Blake2b-256, but the mining-header share hash is fed through a second
// round before the XOR mask is applied, so both primitives live here
// together.
func DoubleHashB(b []byte) []byte {
	first := blake2b.Sum256(b)
	second := blake2b.Sum256(first[:])
	return second[:]
}

// DoubleHashH calculates Blake2b-256(Blake2b-256(b)) and returns the
// resulting bytes as a Hash.
func DoubleHashH(b []byte) Hash {
	return Hash(DoubleHashB(b))
}

// DoubleHashRaw calculates Blake2b-256(Blake2b-256(w)), where w is written
// into the hash via the given write callback, avoiding an intermediate
// allocation for merkle-branch concatenation.
func DoubleHashRaw(f func(w io.Writer) error) Hash {
	h1, _ := blake2b.New256(nil)
	// The write callback is expected not to fail for an in-memory hash.Hash.
	_ = f(h1)
	sum1 := h1.Sum(nil)
	return Hash(blake2b.Sum256(sum1))
}

