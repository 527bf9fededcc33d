// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package names

import (
	"encoding/binary"
	"fmt"

	"github.com/nsdchain/nsd/chaincfg/chainhash"
	"github.com/nsdchain/nsd/wire"
)

// Each covenant type fixes the meaning of its wire.Covenant.Items slice.
// Items[0] is always the nameHash; the accessors below decode the rest of
// a given type's payload and reject anything malformed, so a dispatcher
// never has to index into Items directly.

// OpenData is the payload of an OPEN covenant: the plaintext name being
// bid on, asserted (by the validator, not by this decoder) to hash to
// Items[0].
type OpenData struct {
	NameHash chainhash.Hash
	Name     string
}

// DecodeOpen decodes an OPEN covenant's items.
func DecodeOpen(c *wire.Covenant) (*OpenData, error) {
	if c.Type != wire.CovenantOpen {
		return nil, fmt.Errorf("names: covenant is %s, not OPEN", c.Type)
	}
	if len(c.Items) != 2 {
		return nil, fmt.Errorf("names: OPEN wants 2 items, got %d", len(c.Items))
	}
	hash, err := nameHashFromItem(c.Items[0])
	if err != nil {
		return nil, err
	}
	return &OpenData{NameHash: hash, Name: string(c.Items[1])}, nil
}

// BidData is the payload of a BID covenant: a blind commitment to a bid
// amount, opened later by a matching REVEAL.
type BidData struct {
	NameHash  chainhash.Hash
	BlindHash chainhash.Hash
}

// DecodeBid decodes a BID covenant's items.
func DecodeBid(c *wire.Covenant) (*BidData, error) {
	if c.Type != wire.CovenantBid {
		return nil, fmt.Errorf("names: covenant is %s, not BID", c.Type)
	}
	if len(c.Items) != 2 {
		return nil, fmt.Errorf("names: BID wants 2 items, got %d", len(c.Items))
	}
	hash, err := nameHashFromItem(c.Items[0])
	if err != nil {
		return nil, err
	}
	blind, err := nameHashFromItem(c.Items[1])
	if err != nil {
		return nil, err
	}
	return &BidData{NameHash: hash, BlindHash: blind}, nil
}

// RevealData is the payload of a REVEAL covenant. The bid amount itself is
// carried by the spending output's value, not by an item; Nonce is what
// lets the validator recompute the BID's BlindHash and check it matches.
type RevealData struct {
	NameHash chainhash.Hash
	Nonce    chainhash.Hash
}

// DecodeReveal decodes a REVEAL covenant's items.
func DecodeReveal(c *wire.Covenant) (*RevealData, error) {
	if c.Type != wire.CovenantReveal {
		return nil, fmt.Errorf("names: covenant is %s, not REVEAL", c.Type)
	}
	if len(c.Items) != 2 {
		return nil, fmt.Errorf("names: REVEAL wants 2 items, got %d", len(c.Items))
	}
	hash, err := nameHashFromItem(c.Items[0])
	if err != nil {
		return nil, err
	}
	nonce, err := nameHashFromItem(c.Items[1])
	if err != nil {
		return nil, err
	}
	return &RevealData{NameHash: hash, Nonce: nonce}, nil
}

// RegisterData is the payload of a REGISTER or UPDATE covenant: the
// resource record blob to attach to the name.
type RegisterData struct {
	NameHash chainhash.Hash
	Data     []byte
}

func decodeDataCovenant(c *wire.Covenant, want wire.CovenantType) (*RegisterData, error) {
	if c.Type != want {
		return nil, fmt.Errorf("names: covenant is %s, not %s", c.Type, want)
	}
	if len(c.Items) != 2 {
		return nil, fmt.Errorf("names: %s wants 2 items, got %d", want, len(c.Items))
	}
	hash, err := nameHashFromItem(c.Items[0])
	if err != nil {
		return nil, err
	}
	return &RegisterData{NameHash: hash, Data: c.Items[1]}, nil
}

// DecodeRegister decodes a REGISTER covenant's items.
func DecodeRegister(c *wire.Covenant) (*RegisterData, error) {
	return decodeDataCovenant(c, wire.CovenantRegister)
}

// DecodeUpdate decodes an UPDATE covenant's items.
func DecodeUpdate(c *wire.Covenant) (*RegisterData, error) {
	return decodeDataCovenant(c, wire.CovenantUpdate)
}

// TransferData is the payload of a TRANSFER covenant: the recipient's
// output script, to become the name's new owner once FINALIZE lands.
type TransferData struct {
	NameHash  chainhash.Hash
	Recipient []byte
}

// DecodeTransfer decodes a TRANSFER covenant's items.
func DecodeTransfer(c *wire.Covenant) (*TransferData, error) {
	if c.Type != wire.CovenantTransfer {
		return nil, fmt.Errorf("names: covenant is %s, not TRANSFER", c.Type)
	}
	if len(c.Items) != 2 {
		return nil, fmt.Errorf("names: TRANSFER wants 2 items, got %d", len(c.Items))
	}
	hash, err := nameHashFromItem(c.Items[0])
	if err != nil {
		return nil, err
	}
	return &TransferData{NameHash: hash, Recipient: c.Items[1]}, nil
}

// ClaimData is the payload of a CLAIM covenant, proving ownership of a
// name reserved for an address from some external allocation rather than
// won through an auction.
type ClaimData struct {
	NameHash     chainhash.Hash
	Name         string
	Weak         bool
	CommitHash   chainhash.Hash
	CommitHeight int32
}

// DecodeClaim decodes a CLAIM covenant's items.
func DecodeClaim(c *wire.Covenant) (*ClaimData, error) {
	if c.Type != wire.CovenantClaim {
		return nil, fmt.Errorf("names: covenant is %s, not CLAIM", c.Type)
	}
	if len(c.Items) != 5 {
		return nil, fmt.Errorf("names: CLAIM wants 5 items, got %d", len(c.Items))
	}
	hash, err := nameHashFromItem(c.Items[0])
	if err != nil {
		return nil, err
	}
	if len(c.Items[2]) != 1 {
		return nil, fmt.Errorf("names: CLAIM flags item must be 1 byte, got %d", len(c.Items[2]))
	}
	commitHash, err := nameHashFromItem(c.Items[3])
	if err != nil {
		return nil, err
	}
	if len(c.Items[4]) != 4 {
		return nil, fmt.Errorf("names: CLAIM commit-height item must be 4 bytes, got %d", len(c.Items[4]))
	}
	return &ClaimData{
		NameHash:     hash,
		Name:         string(c.Items[1]),
		Weak:         c.Items[2][0]&1 != 0,
		CommitHash:   commitHash,
		CommitHeight: int32(binary.LittleEndian.Uint32(c.Items[4])),
	}, nil
}

// singleNameCovenant decodes the covenants whose only payload is the
// nameHash itself: REDEEM, RENEW, FINALIZE, CANCEL, REVOKE.
func singleNameCovenant(c *wire.Covenant, want wire.CovenantType) (chainhash.Hash, error) {
	if c.Type != want {
		return chainhash.Hash{}, fmt.Errorf("names: covenant is %s, not %s", c.Type, want)
	}
	if len(c.Items) != 1 {
		return chainhash.Hash{}, fmt.Errorf("names: %s wants 1 item, got %d", want, len(c.Items))
	}
	return nameHashFromItem(c.Items[0])
}

func nameHashFromItem(item []byte) (chainhash.Hash, error) {
	var h chainhash.Hash
	if len(item) != chainhash.HashSize {
		return h, fmt.Errorf("names: nameHash item must be %d bytes, got %d", chainhash.HashSize, len(item))
	}
	copy(h[:], item)
	return h, nil
}
