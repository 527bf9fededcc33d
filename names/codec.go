// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package names

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/nsdchain/nsd/wire"
)

var errUnsupportedVersion = errors.New("names: unsupported NameState record version")

// nameStateVersion lets the on-disk record format change without an
// immediate migration: readers reject a version they don't recognize
// instead of silently misparsing it.
const nameStateVersion = 1

// Serialize encodes the NameState for storage. The format is a flat,
// versioned field list rather than the wire package's tagged covenant
// encoding, since a NameState is never transmitted over the wire itself —
// only the covenants that produce it are.
func (s *NameState) Serialize() ([]byte, error) {
	var buf bytes.Buffer

	if err := binary.Write(&buf, binary.LittleEndian, uint8(nameStateVersion)); err != nil {
		return nil, err
	}
	if err := wire.WriteVarBytes(&buf, 0, []byte(s.Name)); err != nil {
		return nil, err
	}
	if _, err := buf.Write(s.NameHash[:]); err != nil {
		return nil, err
	}

	for _, v := range []int32{s.Height, s.Renewal, s.Transfer, s.Revoked} {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			return nil, err
		}
	}

	if _, err := buf.Write(s.Owner.Hash[:]); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, s.Owner.Index); err != nil {
		return nil, err
	}

	for _, v := range []btcutil.Amount{s.Value, s.Highest} {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			return nil, err
		}
	}

	if err := wire.WriteVarBytes(&buf, 0, s.Data); err != nil {
		return nil, err
	}
	if err := wire.WriteVarBytes(&buf, 0, s.PendingRecipient); err != nil {
		return nil, err
	}

	var flags uint8
	if s.Claimed {
		flags |= 1
	}
	if s.Weak {
		flags |= 2
	}
	if s.Registered {
		flags |= 4
	}
	if err := binary.Write(&buf, binary.LittleEndian, flags); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// DeserializeNameState decodes a record previously written by Serialize.
func DeserializeNameState(data []byte) (*NameState, error) {
	r := bytes.NewReader(data)

	var version uint8
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, err
	}
	if version != nameStateVersion {
		return nil, errUnsupportedVersion
	}

	name, err := wire.ReadVarBytes(r, 0, 1<<16, "name")
	if err != nil {
		return nil, err
	}

	s := &NameState{Name: string(name)}
	if _, err := io.ReadFull(r, s.NameHash[:]); err != nil {
		return nil, err
	}

	fields := []*int32{&s.Height, &s.Renewal, &s.Transfer, &s.Revoked}
	for _, f := range fields {
		if err := binary.Read(r, binary.LittleEndian, f); err != nil {
			return nil, err
		}
	}

	if _, err := io.ReadFull(r, s.Owner.Hash[:]); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &s.Owner.Index); err != nil {
		return nil, err
	}

	amounts := []*btcutil.Amount{&s.Value, &s.Highest}
	for _, a := range amounts {
		if err := binary.Read(r, binary.LittleEndian, a); err != nil {
			return nil, err
		}
	}

	data2, err := wire.ReadVarBytes(r, 0, 1<<16, "data")
	if err != nil {
		return nil, err
	}
	s.Data = data2

	recipient, err := wire.ReadVarBytes(r, 0, 1<<16, "recipient")
	if err != nil {
		return nil, err
	}
	s.PendingRecipient = recipient

	var flags uint8
	if err := binary.Read(r, binary.LittleEndian, &flags); err != nil {
		return nil, err
	}
	s.Claimed = flags&1 != 0
	s.Weak = flags&2 != 0
	s.Registered = flags&4 != 0

	return s, nil
}
