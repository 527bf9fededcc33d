// Copyright (c) 2013-2024 The btcsuite developers
// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// MaxVarIntPayload is the maximum payload size for a variable length integer.
const MaxVarIntPayload = 9

// littleEndian is the byte order for the lowest level of reading and
// writing fixed-width integer values to and from an io.Reader/io.Writer.
var littleEndian = binary.LittleEndian

// ReadVarInt reads a variable length integer from r and returns it as a
// uint64, matching Bitcoin's CompactSize encoding.
func ReadVarInt(r io.Reader, pver uint32) (uint64, error) {
	var buf [9]byte
	if _, err := io.ReadFull(r, buf[:1]); err != nil {
		return 0, err
	}

	switch buf[0] {
	case 0xff:
		if _, err := io.ReadFull(r, buf[1:9]); err != nil {
			return 0, err
		}
		return littleEndian.Uint64(buf[1:9]), nil
	case 0xfe:
		if _, err := io.ReadFull(r, buf[1:5]); err != nil {
			return 0, err
		}
		return uint64(littleEndian.Uint32(buf[1:5])), nil
	case 0xfd:
		if _, err := io.ReadFull(r, buf[1:3]); err != nil {
			return 0, err
		}
		return uint64(littleEndian.Uint16(buf[1:3])), nil
	default:
		return uint64(buf[0]), nil
	}
}

// WriteVarInt writes val to w using the minimal CompactSize encoding.
func WriteVarInt(w io.Writer, pver uint32, val uint64) error {
	if val < 0xfd {
		_, err := w.Write([]byte{byte(val)})
		return err
	}
	if val <= 0xffff {
		var buf [3]byte
		buf[0] = 0xfd
		littleEndian.PutUint16(buf[1:], uint16(val))
		_, err := w.Write(buf[:])
		return err
	}
	if val <= 0xffffffff {
		var buf [5]byte
		buf[0] = 0xfe
		littleEndian.PutUint32(buf[1:], uint32(val))
		_, err := w.Write(buf[:])
		return err
	}
	var buf [9]byte
	buf[0] = 0xff
	littleEndian.PutUint64(buf[1:], val)
	_, err := w.Write(buf[:])
	return err
}

// VarIntSerializeSize returns the number of bytes it would take to serialize
// val as a variable length integer.
func VarIntSerializeSize(val uint64) int {
	if val < 0xfd {
		return 1
	}
	if val <= 0xffff {
		return 3
	}
	if val <= 0xffffffff {
		return 5
	}
	return 9
}

// ReadVarBytes reads a variable length byte array, rejecting an encoded
// length greater than maxAllowed to bound allocation from untrusted input.
func ReadVarBytes(r io.Reader, pver uint32, maxAllowed uint32, fieldName string) ([]byte, error) {
	count, err := ReadVarInt(r, pver)
	if err != nil {
		return nil, err
	}
	if count > uint64(maxAllowed) {
		return nil, fmt.Errorf("%s exceeds max length %d (got %d)", fieldName, maxAllowed, count)
	}

	buf := make([]byte, count)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteVarBytes writes a variable length byte array prefixed with its
// CompactSize-encoded length.
func WriteVarBytes(w io.Writer, pver uint32, b []byte) error {
	if err := WriteVarInt(w, pver, uint64(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

func readElement(r io.Reader, v interface{}) error {
	return binary.Read(r, littleEndian, v)
}

func writeElement(w io.Writer, v interface{}) error {
	return binary.Write(w, littleEndian, v)
}
