// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"
)

// CovenantType tags the kind of name-auction covenant attached to a
// transaction output. The zero value, CovenantNone, marks an output that
// carries no name semantics at all.
type CovenantType uint8

const (
	CovenantNone CovenantType = iota
	CovenantOpen
	CovenantBid
	CovenantReveal
	CovenantRedeem
	CovenantRegister
	CovenantUpdate
	CovenantRenew
	CovenantTransfer
	CovenantFinalize
	CovenantCancel
	CovenantRevoke
	CovenantClaim
)

var covenantTypeStrings = map[CovenantType]string{
	CovenantNone:     "NONE",
	CovenantOpen:     "OPEN",
	CovenantBid:      "BID",
	CovenantReveal:   "REVEAL",
	CovenantRedeem:   "REDEEM",
	CovenantRegister: "REGISTER",
	CovenantUpdate:   "UPDATE",
	CovenantRenew:    "RENEW",
	CovenantTransfer: "TRANSFER",
	CovenantFinalize: "FINALIZE",
	CovenantCancel:   "CANCEL",
	CovenantRevoke:   "REVOKE",
	CovenantClaim:    "CLAIM",
}

// String returns the human-readable name of the covenant type.
func (t CovenantType) String() string {
	if s, ok := covenantTypeStrings[t]; ok {
		return s
	}
	return fmt.Sprintf("CovenantType(%d)", uint8(t))
}

// IsName reports whether the covenant type carries a nameHash as its first
// item, which holds for every type except NONE.
func (t CovenantType) IsName() bool {
	return t != CovenantNone
}

// maxCovenantItems and maxCovenantItemLen bound untrusted deserialization;
// the largest variant (CLAIM) carries five items (nameHash, name, flags,
// commitHash, commitHeight), none larger than a resource blob. CLAIM has
// no item for the block height the claim is made at.
const (
	maxCovenantItems   = 16
	maxCovenantItemLen = 1 << 16
)

// Covenant is the wire-level annotation on a transaction output that
// constrains how the coin carrying it may be spent. It is a closed tagged
// union: Type selects the variant and Items carries that variant's payload
// as opaque byte strings, in the field order the names package expects for
// that type. This mirrors a vault-style covenant template — a flat
// struct whose Serialize/Deserialize pair is the wire contract —
// generalized to a family of variants sharing one item-array encoding
// instead of one fixed struct.
type Covenant struct {
	Type  CovenantType
	Items [][]byte
}

// NameHash returns Items[0], the nameHash, for every covenant type except
// NONE. It returns nil for NONE or a malformed covenant with no items.
func (c *Covenant) NameHash() []byte {
	if c.Type == CovenantNone || len(c.Items) == 0 {
		return nil
	}
	return c.Items[0]
}

// SerializeSize returns the number of bytes Serialize would write.
func (c *Covenant) SerializeSize() int {
	n := 1 + VarIntSerializeSize(uint64(len(c.Items)))
	for _, item := range c.Items {
		n += VarIntSerializeSize(uint64(len(item))) + len(item)
	}
	return n
}

// Serialize encodes the covenant as a type byte followed by a count-prefixed
// list of length-prefixed items.
func (c *Covenant) Serialize(w io.Writer) error {
	if _, err := w.Write([]byte{byte(c.Type)}); err != nil {
		return err
	}
	if err := WriteVarInt(w, 0, uint64(len(c.Items))); err != nil {
		return err
	}
	for _, item := range c.Items {
		if err := WriteVarBytes(w, 0, item); err != nil {
			return err
		}
	}
	return nil
}

// DeserializeCovenant decodes a covenant previously written by Serialize.
func DeserializeCovenant(r io.Reader) (*Covenant, error) {
	var typeByte [1]byte
	if _, err := io.ReadFull(r, typeByte[:]); err != nil {
		return nil, err
	}

	count, err := ReadVarInt(r, 0)
	if err != nil {
		return nil, err
	}
	if count > maxCovenantItems {
		return nil, fmt.Errorf("covenant item count %d exceeds max %d", count, maxCovenantItems)
	}

	items := make([][]byte, count)
	for i := range items {
		item, err := ReadVarBytes(r, 0, maxCovenantItemLen, "covenant item")
		if err != nil {
			return nil, err
		}
		items[i] = item
	}

	return &Covenant{Type: CovenantType(typeByte[0]), Items: items}, nil
}
