// Copyright (c) 2013-2024 The btcsuite developers
// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/nsdchain/nsd/chaincfg/chainhash"
)

// TxVersion is the current latest supported transaction version.
const TxVersion uint32 = 1

// MaxTxInSequenceNum is the sequence number that disables an input's
// relative-locktime/RBF signaling, the value final inputs carry.
const MaxTxInSequenceNum uint32 = 0xffffffff

// Limits bounding deserialization of untrusted transactions.
const (
	maxTxInPerMessage  = 1_000_000 / 41
	maxTxOutPerMessage = 1_000_000 / 9
	maxWitnessItems    = 500_000
	maxWitnessItemSize = 1_000_000
)

// TxIn defines a transaction input. SignatureScript and Witness carry the
// spending proof; a name-auction input carries its claim or airdrop payload
// in Witness rather than inventing a separate wire field, matching how the
// coinbase embeds claims and airdrops as additional inputs.
type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  []byte
	Witness          [][]byte
	Sequence         uint32
}

// SerializeSize returns the number of bytes the base (non-witness) encoding
// of the input would take.
func (t *TxIn) SerializeSize() int {
	n := 36 // PreviousOutPoint
	n += VarIntSerializeSize(uint64(len(t.SignatureScript)))
	n += len(t.SignatureScript)
	n += 4 // Sequence
	return n
}

// TxOut defines a transaction output. A non-nil Covenant attaches
// name-auction semantics to the coin this output creates.
type TxOut struct {
	Value    btcutil.Amount
	PkScript []byte
	Covenant *Covenant
}

// SerializeSize returns the number of bytes the encoding of the output
// would take.
func (t *TxOut) SerializeSize() int {
	n := 8 // Value
	n += VarIntSerializeSize(uint64(len(t.PkScript)))
	n += len(t.PkScript)
	n++ // covenant-present flag
	if t.Covenant != nil {
		n += t.Covenant.SerializeSize()
	}
	return n
}

// MsgTx implements a transaction message.
type MsgTx struct {
	Version  uint32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime uint32
}

// NewMsgTx returns a new transaction with the given version and no inputs
// or outputs.
func NewMsgTx(version uint32) *MsgTx {
	return &MsgTx{Version: version}
}

// AddTxIn adds a transaction input.
func (msg *MsgTx) AddTxIn(ti *TxIn) {
	msg.TxIn = append(msg.TxIn, ti)
}

// AddTxOut adds a transaction output.
func (msg *MsgTx) AddTxOut(to *TxOut) {
	msg.TxOut = append(msg.TxOut, to)
}

// HasWitness reports whether any input carries witness data.
func (msg *MsgTx) HasWitness() bool {
	for _, in := range msg.TxIn {
		if len(in.Witness) > 0 {
			return true
		}
	}
	return false
}

// IsCoinBase determines whether the transaction is a coinbase transaction: a
// single input whose previous outpoint has a zero hash and a max-value
// index, matching the upstream Bitcoin convention this chain inherits.
func (msg *MsgTx) IsCoinBase() bool {
	if len(msg.TxIn) != 1 {
		return false
	}
	prevOut := &msg.TxIn[0].PreviousOutPoint
	return prevOut.Index == ^uint32(0) && prevOut.Hash == (chainhash.Hash{})
}

// Copy creates a deep copy of the transaction.
func (msg *MsgTx) Copy() *MsgTx {
	newTx := &MsgTx{
		Version:  msg.Version,
		LockTime: msg.LockTime,
		TxIn:     make([]*TxIn, 0, len(msg.TxIn)),
		TxOut:    make([]*TxOut, 0, len(msg.TxOut)),
	}

	for _, oldIn := range msg.TxIn {
		newIn := &TxIn{
			PreviousOutPoint: oldIn.PreviousOutPoint,
			Sequence:         oldIn.Sequence,
		}
		if oldIn.SignatureScript != nil {
			newIn.SignatureScript = append([]byte(nil), oldIn.SignatureScript...)
		}
		for _, item := range oldIn.Witness {
			newIn.Witness = append(newIn.Witness, append([]byte(nil), item...))
		}
		newTx.TxIn = append(newTx.TxIn, newIn)
	}

	for _, oldOut := range msg.TxOut {
		newOut := &TxOut{Value: oldOut.Value}
		if oldOut.PkScript != nil {
			newOut.PkScript = append([]byte(nil), oldOut.PkScript...)
		}
		if oldOut.Covenant != nil {
			items := make([][]byte, len(oldOut.Covenant.Items))
			for i, item := range oldOut.Covenant.Items {
				items[i] = append([]byte(nil), item...)
			}
			newOut.Covenant = &Covenant{Type: oldOut.Covenant.Type, Items: items}
		}
		newTx.TxOut = append(newTx.TxOut, newOut)
	}

	return newTx
}

// TxHash computes the base (witness-stripped) transaction hash used as the
// transaction's identity and Merkle leaf.
func (msg *MsgTx) TxHash() chainhash.Hash {
	var buf bytes.Buffer
	_ = msg.serialize(&buf, false)
	return chainhash.HashH(buf.Bytes())
}

// WitnessHash computes the hash of the full witness-inclusive serialization,
// the leaf used for the block's witness Merkle root.
func (msg *MsgTx) WitnessHash() chainhash.Hash {
	if !msg.HasWitness() {
		return msg.TxHash()
	}
	var buf bytes.Buffer
	_ = msg.serialize(&buf, true)
	return chainhash.HashH(buf.Bytes())
}

// SerializeSize returns the number of bytes it would take to serialize the
// transaction, including witness data when present.
func (msg *MsgTx) SerializeSize() int {
	n := 4 + 4 // Version + LockTime
	n += VarIntSerializeSize(uint64(len(msg.TxIn)))
	for _, in := range msg.TxIn {
		n += in.SerializeSize()
	}
	n += VarIntSerializeSize(uint64(len(msg.TxOut)))
	for _, out := range msg.TxOut {
		n += out.SerializeSize()
	}
	if msg.HasWitness() {
		for _, in := range msg.TxIn {
			n += VarIntSerializeSize(uint64(len(in.Witness)))
			for _, item := range in.Witness {
				n += VarIntSerializeSize(uint64(len(item))) + len(item)
			}
		}
	}
	return n
}

// Serialize writes the full wire encoding, including witness data when
// present, to w.
func (msg *MsgTx) Serialize(w io.Writer) error {
	return msg.serialize(w, msg.HasWitness())
}

func (msg *MsgTx) serialize(w io.Writer, withWitness bool) error {
	if err := writeElement(w, msg.Version); err != nil {
		return err
	}
	if err := WriteVarInt(w, 0, uint64(len(msg.TxIn))); err != nil {
		return err
	}
	for _, in := range msg.TxIn {
		if err := writeOutPoint(w, &in.PreviousOutPoint); err != nil {
			return err
		}
		if err := WriteVarBytes(w, 0, in.SignatureScript); err != nil {
			return err
		}
		if err := writeElement(w, in.Sequence); err != nil {
			return err
		}
	}
	if err := WriteVarInt(w, 0, uint64(len(msg.TxOut))); err != nil {
		return err
	}
	for _, out := range msg.TxOut {
		if err := writeElement(w, out.Value); err != nil {
			return err
		}
		if err := WriteVarBytes(w, 0, out.PkScript); err != nil {
			return err
		}
		hasCovenant := out.Covenant != nil
		if err := writeElement(w, hasCovenant); err != nil {
			return err
		}
		if hasCovenant {
			if err := out.Covenant.Serialize(w); err != nil {
				return err
			}
		}
	}
	if withWitness {
		for _, in := range msg.TxIn {
			if err := WriteVarInt(w, 0, uint64(len(in.Witness))); err != nil {
				return err
			}
			for _, item := range in.Witness {
				if err := WriteVarBytes(w, 0, item); err != nil {
					return err
				}
			}
		}
	}
	return writeElement(w, msg.LockTime)
}

// Deserialize reads a transaction previously written by Serialize. The
// encoding carries no segwit marker/flag, so witness data is not detected:
// withWitness tells Deserialize whether every input's witness count is
// present, which Serialize writes exactly when HasWitness is true.
func (msg *MsgTx) Deserialize(r io.Reader, withWitness bool) error {
	if err := readElement(r, &msg.Version); err != nil {
		return err
	}

	inCount, err := ReadVarInt(r, 0)
	if err != nil {
		return err
	}
	if inCount > maxTxInPerMessage {
		return fmt.Errorf("too many transaction inputs: %d", inCount)
	}
	msg.TxIn = make([]*TxIn, inCount)
	for i := range msg.TxIn {
		ti := &TxIn{}
		if err := readOutPoint(r, &ti.PreviousOutPoint); err != nil {
			return err
		}
		if ti.SignatureScript, err = ReadVarBytes(r, 0, 10_000, "signature script"); err != nil {
			return err
		}
		if err := readElement(r, &ti.Sequence); err != nil {
			return err
		}
		msg.TxIn[i] = ti
	}

	outCount, err := ReadVarInt(r, 0)
	if err != nil {
		return err
	}
	if outCount > maxTxOutPerMessage {
		return fmt.Errorf("too many transaction outputs: %d", outCount)
	}
	msg.TxOut = make([]*TxOut, outCount)
	for i := range msg.TxOut {
		to := &TxOut{}
		if err := readElement(r, &to.Value); err != nil {
			return err
		}
		if to.PkScript, err = ReadVarBytes(r, 0, 10_000, "pk script"); err != nil {
			return err
		}
		var hasCovenant bool
		if err := readElement(r, &hasCovenant); err != nil {
			return err
		}
		if hasCovenant {
			if to.Covenant, err = DeserializeCovenant(r); err != nil {
				return err
			}
		}
		msg.TxOut[i] = to
	}

	if withWitness {
		for _, in := range msg.TxIn {
			witCount, err := ReadVarInt(r, 0)
			if err != nil {
				return err
			}
			if witCount > maxWitnessItems {
				return fmt.Errorf("too many witness items: %d", witCount)
			}
			in.Witness = make([][]byte, witCount)
			for j := range in.Witness {
				if in.Witness[j], err = ReadVarBytes(r, 0, maxWitnessItemSize, "witness item"); err != nil {
					return err
				}
			}
		}
	}

	return readElement(r, &msg.LockTime)
}
