// Copyright (c) 2013-2024 The btcsuite developers
// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"fmt"
	"io"

	"github.com/nsdchain/nsd/chaincfg/chainhash"
)

// MaxBlockHeaderPayload is the fixed size, in bytes, of the mining header:
// version(4) + prev(32) + merkle(32) + witness(32) + tree(32) +
// reserved(32) + time(8) + bits(4) + nonce(4) + extraNonce(24) + mask(32).
const MaxBlockHeaderPayload = 4 + 32 + 32 + 32 + 32 + 32 + 8 + 4 + 4 + 24 + 32

// ExtraNonceSize is the width of the header's extra-nonce field.
const ExtraNonceSize = 24

// BlockHeader defines the fixed 236-byte mining header. Unlike upstream
// Bitcoin's 80-byte header, this chain commits separately to the witness
// Merkle root and to the name-state tree root so that a light client can
// verify a name proof against the header alone.
type BlockHeader struct {
	// Version is the block version, used for soft-fork signaling.
	Version int32

	// PrevBlock is the hash of the previous block in the chain.
	PrevBlock chainhash.Hash

	// MerkleRoot commits to the block's non-witness transaction hashes.
	MerkleRoot chainhash.Hash

	// WitnessRoot commits to the block's witness-inclusive transaction
	// hashes.
	WitnessRoot chainhash.Hash

	// TreeRoot commits to the name-state tree as of this block.
	TreeRoot chainhash.Hash

	// ReservedRoot is unused by consensus today and reserved for a future
	// commitment (e.g. a second authenticated tree).
	ReservedRoot chainhash.Hash

	// Timestamp is the block's creation time, seconds since the epoch.
	Timestamp int64

	// Bits is the compact-form difficulty target.
	Bits uint32

	// Nonce is the miner-adjustable field searched during mining.
	Nonce uint32

	// ExtraNonce gives the miner additional search space beyond Nonce and
	// the coinbase, without needing to rebuild the Merkle tree.
	ExtraNonce [ExtraNonceSize]byte

	// Mask is combined with the share hash via XOR to produce the
	// proof-of-work hash, letting a pool issue shares whose hash differs
	// from the final header hash without revealing the template early.
	Mask chainhash.Hash
}

// shareBytes returns everything except Mask: the part that is double
// Blake2b-256 hashed to produce the share hash.
func (h *BlockHeader) shareBytes() []byte {
	var buf bytes.Buffer
	buf.Grow(MaxBlockHeaderPayload - chainhash.HashSize)
	_ = writeElement(&buf, h.Version)
	buf.Write(h.PrevBlock[:])
	buf.Write(h.MerkleRoot[:])
	buf.Write(h.WitnessRoot[:])
	buf.Write(h.TreeRoot[:])
	buf.Write(h.ReservedRoot[:])
	_ = writeElement(&buf, h.Timestamp)
	_ = writeElement(&buf, h.Bits)
	_ = writeElement(&buf, h.Nonce)
	buf.Write(h.ExtraNonce[:])
	return buf.Bytes()
}

// ShareHash computes the double Blake2b-256 hash of the header excluding
// the mask, the value a mining pool verifies shares against.
func (h *BlockHeader) ShareHash() chainhash.Hash {
	return chainhash.DoubleHashH(h.shareBytes())
}

// PowHash computes the proof-of-work hash: the share hash XORed with the
// header's mask. A block is valid when PowHash() <= target.
func (h *BlockHeader) PowHash() chainhash.Hash {
	share := h.ShareHash()
	var pow chainhash.Hash
	for i := range pow {
		pow[i] = share[i] ^ h.Mask[i]
	}
	return pow
}

// BlockHash returns the header's identity hash: Blake2b-256 over the full
// 236-byte serialization, mask included.
func (h *BlockHeader) BlockHash() chainhash.Hash {
	var buf bytes.Buffer
	buf.Grow(MaxBlockHeaderPayload)
	_ = h.Serialize(&buf)
	return chainhash.HashH(buf.Bytes())
}

// Serialize writes the header's fixed 236-byte little-endian encoding.
func (h *BlockHeader) Serialize(w io.Writer) error {
	if _, err := w.Write(h.shareBytes()); err != nil {
		return err
	}
	_, err := w.Write(h.Mask[:])
	return err
}

// Deserialize reads a header previously written by Serialize.
func (h *BlockHeader) Deserialize(r io.Reader) error {
	if err := readElement(r, &h.Version); err != nil {
		return err
	}
	for _, dst := range []*chainhash.Hash{&h.PrevBlock, &h.MerkleRoot, &h.WitnessRoot, &h.TreeRoot, &h.ReservedRoot} {
		if _, err := io.ReadFull(r, dst[:]); err != nil {
			return err
		}
	}
	if err := readElement(r, &h.Timestamp); err != nil {
		return err
	}
	if err := readElement(r, &h.Bits); err != nil {
		return err
	}
	if err := readElement(r, &h.Nonce); err != nil {
		return err
	}
	if _, err := io.ReadFull(r, h.ExtraNonce[:]); err != nil {
		return err
	}
	_, err := io.ReadFull(r, h.Mask[:])
	return err
}

// MsgBlock defines a block message: a header plus the ordered transaction
// list, coinbase first.
type MsgBlock struct {
	Header       BlockHeader
	Transactions []*MsgTx
}

// AddTransaction adds a transaction to the block.
func (msg *MsgBlock) AddTransaction(tx *MsgTx) {
	msg.Transactions = append(msg.Transactions, tx)
}

// BlockHash returns the hash of the block's header.
func (msg *MsgBlock) BlockHash() chainhash.Hash {
	return msg.Header.BlockHash()
}

// TxHashes returns the non-witness hash of every transaction in the block,
// coinbase first, the leaf set for MerkleRoot.
func (msg *MsgBlock) TxHashes() []chainhash.Hash {
	hashes := make([]chainhash.Hash, len(msg.Transactions))
	for i, tx := range msg.Transactions {
		hashes[i] = tx.TxHash()
	}
	return hashes
}

// WitnessHashes returns the witness-inclusive hash of every transaction in
// the block, with the coinbase's witness hash defined as the zero hash per
// the segwit commitment convention this chain inherits.
func (msg *MsgBlock) WitnessHashes() []chainhash.Hash {
	hashes := make([]chainhash.Hash, len(msg.Transactions))
	for i, tx := range msg.Transactions {
		if i == 0 {
			hashes[i] = chainhash.Hash{}
			continue
		}
		hashes[i] = tx.WitnessHash()
	}
	return hashes
}

// SerializeSize returns the number of bytes it would take to serialize the
// block.
func (msg *MsgBlock) SerializeSize() int {
	n := MaxBlockHeaderPayload
	n += VarIntSerializeSize(uint64(len(msg.Transactions)))
	for _, tx := range msg.Transactions {
		n += tx.SerializeSize()
	}
	return n
}

// Serialize writes the full wire encoding of the block to w.
func (msg *MsgBlock) Serialize(w io.Writer) error {
	if err := msg.Header.Serialize(w); err != nil {
		return err
	}
	if err := WriteVarInt(w, 0, uint64(len(msg.Transactions))); err != nil {
		return err
	}
	for _, tx := range msg.Transactions {
		if err := tx.Serialize(w); err != nil {
			return err
		}
	}
	return nil
}

const maxTxPerBlock = 1_000_000 / 60

// Deserialize reads a block previously written by Serialize.
func (msg *MsgBlock) Deserialize(r io.Reader) error {
	if err := msg.Header.Deserialize(r); err != nil {
		return err
	}

	count, err := ReadVarInt(r, 0)
	if err != nil {
		return err
	}
	if count > maxTxPerBlock {
		return fmt.Errorf("too many transactions in block: %d", count)
	}

	msg.Transactions = make([]*MsgTx, count)
	for i := range msg.Transactions {
		tx := new(MsgTx)
		if err := tx.Deserialize(r, true); err != nil {
			return err
		}
		msg.Transactions[i] = tx
	}
	return nil
}
