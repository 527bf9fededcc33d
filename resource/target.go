// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package resource

import (
	"encoding/base32"
	"fmt"
	"io"
	"net"

	"github.com/nsdchain/nsd/wire"
)

// maxOnionLength bounds a decoded onion address; a v3 address is 56
// characters plus the ".onion" suffix some callers may include.
const maxOnionLength = 64

// writeTarget encodes a Target as a one-byte type tag followed by its
// type-specific payload. Name/glue targets are written as a symbol-table
// index rather than inline bytes, since they're the field most likely to
// repeat across a resource's NS and SERVICE records.
func writeTarget(w io.Writer, t Target, tab *symbolTable) error {
	if _, err := w.Write([]byte{byte(t.Type)}); err != nil {
		return err
	}
	switch t.Type {
	case TargetInet4:
		ip := t.Addr.To4()
		if ip == nil {
			return fmt.Errorf("resource: inet4 target %v is not an IPv4 address", t.Addr)
		}
		_, err := w.Write(ip)
		return err
	case TargetInet6:
		ip := t.Addr.To16()
		if ip == nil || t.Addr.To4() != nil {
			return fmt.Errorf("resource: inet6 target %v is not an IPv6 address", t.Addr)
		}
		_, err := w.Write(ip)
		return err
	case TargetOnion, TargetOnionNG:
		return wire.WriteVarBytes(w, 0, []byte(t.Onion))
	case TargetName, TargetGlue:
		if err := verifyName(t.Name, t.Type == TargetName); err != nil {
			return err
		}
		return wire.WriteVarInt(w, 0, uint64(tab.intern(t.Name)))
	default:
		return fmt.Errorf("resource: unknown target type %d", t.Type)
	}
}

func readTarget(r io.Reader, strs []string) (Target, error) {
	var tagByte [1]byte
	if _, err := io.ReadFull(r, tagByte[:]); err != nil {
		return Target{}, err
	}
	typ := TargetType(tagByte[0])

	switch typ {
	case TargetInet4:
		buf := make([]byte, net.IPv4len)
		if _, err := io.ReadFull(r, buf); err != nil {
			return Target{}, err
		}
		return Target{Type: typ, Addr: net.IP(buf)}, nil
	case TargetInet6:
		buf := make([]byte, net.IPv6len)
		if _, err := io.ReadFull(r, buf); err != nil {
			return Target{}, err
		}
		return Target{Type: typ, Addr: net.IP(buf)}, nil
	case TargetOnion, TargetOnionNG:
		b, err := wire.ReadVarBytes(r, 0, maxOnionLength, "onion target")
		if err != nil {
			return Target{}, err
		}
		return Target{Type: typ, Onion: string(b)}, nil
	case TargetName, TargetGlue:
		idx, err := wire.ReadVarInt(r, 0)
		if err != nil {
			return Target{}, err
		}
		name, err := symbolAt(strs, idx)
		if err != nil {
			return Target{}, err
		}
		return Target{Type: typ, Name: name}, nil
	default:
		return Target{}, fmt.Errorf("resource: unknown target type %d", typ)
	}
}

// PointerLabel synthesizes the "_<base32(packed-ip)>.<parent>" label an NS
// record's IP target resolves to, so the resolver can hand out matching
// glue in the additional section without a second round trip.
func PointerLabel(addr net.IP, parent string) string {
	var packed []byte
	if v4 := addr.To4(); v4 != nil {
		packed = v4
	} else {
		packed = addr.To16()
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	label := enc.EncodeToString(packed)
	return "_" + toLowerASCII(label) + "." + parent
}

func toLowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
