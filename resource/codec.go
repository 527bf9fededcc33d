// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package resource

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/nsdchain/nsd/wire"
)

// ErrUnsupportedVersion is returned by Decode when the blob's version byte
// isn't Version.
var ErrUnsupportedVersion = errors.New("resource: unsupported record version")

// ttlGranularity is the TTL word's unit, per §6's "(compat<<15)|(ttl>>6)"
// encoding: ttl is stored at 64-second granularity in the low 15 bits, and
// the high bit is the compat flag, which tells an older resolver whether
// it's safe to serve the record without understanding the tags that
// follow it.
const ttlGranularity = 64

func encodeTTLWord(ttl uint32, compat bool) uint16 {
	word := uint16((ttl / ttlGranularity) & 0x7fff)
	if compat {
		word |= 0x8000
	}
	return word
}

func decodeTTLWord(word uint16) (ttl uint32, compat bool) {
	compat = word&0x8000 != 0
	ttl = uint32(word&0x7fff) * ttlGranularity
	return
}

const maxRecordBody = 1 << 16

// Encode serializes r into its on-chain wire form.
func Encode(r Resource) ([]byte, error) {
	var buf bytes.Buffer
	if err := buf.WriteByte(Version); err != nil {
		return nil, err
	}

	ttlWord := encodeTTLWord(r.TTL, r.Compat)
	if err := binary.Write(&buf, binary.LittleEndian, ttlWord); err != nil {
		return nil, err
	}

	tab := newSymbolTable()
	internTargetNames(r, tab)
	if err := tab.encode(&buf); err != nil {
		return nil, err
	}

	if err := writeRecords(&buf, r, tab); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// internTargetNames pre-scans every name/glue target so the symbol table
// is complete before any record references it by index.
func internTargetNames(r Resource, tab *symbolTable) {
	intern := func(t *Target) {
		if t != nil && (t.Type == TargetName || t.Type == TargetGlue) {
			tab.intern(t.Name)
		}
	}
	intern(r.Canonical)
	intern(r.Delegate)
	for i := range r.NS {
		intern(&r.NS[i])
	}
	for i := range r.Services {
		intern(&r.Services[i].Target)
	}
}

func writeRecord(buf *bytes.Buffer, tag RecordTag, body []byte) error {
	if err := buf.WriteByte(byte(tag)); err != nil {
		return err
	}
	return wire.WriteVarBytes(buf, 0, body)
}

func writeRecords(buf *bytes.Buffer, r Resource, tab *symbolTable) error {
	for _, ip := range r.Hosts4 {
		v4 := ip.To4()
		if v4 == nil {
			return fmt.Errorf("resource: %v is not an IPv4 address", ip)
		}
		if err := writeRecord(buf, TagInet4, v4); err != nil {
			return err
		}
	}
	for _, ip := range r.Hosts6 {
		v6 := ip.To16()
		if v6 == nil || ip.To4() != nil {
			return fmt.Errorf("resource: %v is not an IPv6 address", ip)
		}
		if err := writeRecord(buf, TagInet6, v6); err != nil {
			return err
		}
	}
	for _, onion := range r.Onions {
		if err := writeRecord(buf, TagOnion, []byte(onion)); err != nil {
			return err
		}
	}
	for _, onion := range r.OnionsNG {
		if err := writeRecord(buf, TagOnionNG, []byte(onion)); err != nil {
			return err
		}
	}

	if r.Canonical != nil {
		if r.Canonical.IsTor() {
			return fmt.Errorf("resource: canonical target must not be a Tor address")
		}
		body, err := encodeTargetBody(*r.Canonical, tab)
		if err != nil {
			return err
		}
		if err := writeRecord(buf, TagCanonical, body); err != nil {
			return err
		}
	}
	if r.Delegate != nil {
		if r.Delegate.Type != TargetName && r.Delegate.Type != TargetGlue {
			return fmt.Errorf("resource: delegate target must be a name")
		}
		body, err := encodeTargetBody(*r.Delegate, tab)
		if err != nil {
			return err
		}
		if err := writeRecord(buf, TagDelegate, body); err != nil {
			return err
		}
	}
	for _, ns := range r.NS {
		body, err := encodeTargetBody(ns, tab)
		if err != nil {
			return err
		}
		if err := writeRecord(buf, TagNS, body); err != nil {
			return err
		}
	}

	for _, svc := range r.Services {
		body, err := encodeServiceBody(svc, tab)
		if err != nil {
			return err
		}
		if err := writeRecord(buf, TagService, body); err != nil {
			return err
		}
	}

	for _, s := range r.URLs {
		if err := writeRecord(buf, TagURL, []byte(s)); err != nil {
			return err
		}
	}
	for _, s := range r.Emails {
		if err := writeRecord(buf, TagEmail, []byte(s)); err != nil {
			return err
		}
	}
	for _, s := range r.Texts {
		if err := writeRecord(buf, TagText, []byte(s)); err != nil {
			return err
		}
	}
	for _, s := range r.Magnets {
		if err := writeRecord(buf, TagMagnet, []byte(s)); err != nil {
			return err
		}
	}
	for _, s := range r.Addrs {
		if err := writeRecord(buf, TagAddr, []byte(s)); err != nil {
			return err
		}
	}

	if r.Location != nil {
		body, err := encodeLocationBody(*r.Location)
		if err != nil {
			return err
		}
		if err := writeRecord(buf, TagLocation, body); err != nil {
			return err
		}
	}
	for _, ds := range r.DS {
		if err := writeRecord(buf, TagDS, encodeDSBody(ds)); err != nil {
			return err
		}
	}
	for _, t := range r.TLSA {
		if err := writeRecord(buf, TagTLSA, encodeTLSABody(t)); err != nil {
			return err
		}
	}
	for _, s := range r.SSHFP {
		if err := writeRecord(buf, TagSSHFP, encodeSSHFPBody(s)); err != nil {
			return err
		}
	}
	for _, k := range r.OpenPGP {
		if err := writeRecord(buf, TagOpenPGPKey, k); err != nil {
			return err
		}
	}

	for _, extra := range r.Extra {
		if err := writeRecord(buf, extra.Tag, extra.Data); err != nil {
			return err
		}
	}

	return nil
}

func encodeTargetBody(t Target, tab *symbolTable) ([]byte, error) {
	var b bytes.Buffer
	if err := writeTarget(&b, t, tab); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func encodeServiceBody(s ServiceRecord, tab *symbolTable) ([]byte, error) {
	var b bytes.Buffer
	if err := wire.WriteVarBytes(&b, 0, []byte(s.Service)); err != nil {
		return nil, err
	}
	if err := wire.WriteVarBytes(&b, 0, []byte(s.Protocol)); err != nil {
		return nil, err
	}
	for _, v := range []uint8{s.Priority, s.Weight} {
		if err := b.WriteByte(v); err != nil {
			return nil, err
		}
	}
	if err := writeTarget(&b, s.Target, tab); err != nil {
		return nil, err
	}
	if err := binary.Write(&b, binary.LittleEndian, s.Port); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func encodeLocationBody(l LocationRecord) ([]byte, error) {
	var b bytes.Buffer
	for _, v := range []int32{l.Latitude, l.Longitude, l.Altitude} {
		if err := binary.Write(&b, binary.LittleEndian, v); err != nil {
			return nil, err
		}
	}
	for _, v := range []uint8{l.Size, l.HorizPrecision, l.VertPrecision} {
		if err := b.WriteByte(v); err != nil {
			return nil, err
		}
	}
	return b.Bytes(), nil
}

func encodeDSBody(d DSRecord) []byte {
	var b bytes.Buffer
	binary.Write(&b, binary.LittleEndian, d.KeyTag)
	b.WriteByte(d.Algorithm)
	b.WriteByte(d.DigestType)
	b.Write(d.Digest)
	return b.Bytes()
}

func encodeTLSABody(t TLSARecord) []byte {
	var b bytes.Buffer
	b.WriteByte(t.Usage)
	b.WriteByte(t.Selector)
	b.WriteByte(t.MatchingType)
	b.Write(t.Data)
	return b.Bytes()
}

func encodeSSHFPBody(s SSHFPRecord) []byte {
	var b bytes.Buffer
	b.WriteByte(s.Algorithm)
	b.WriteByte(s.FPType)
	b.Write(s.Fingerprint)
	return b.Bytes()
}

// Decode parses a blob previously produced by Encode.
func Decode(data []byte) (Resource, error) {
	r := bytes.NewReader(data)

	version, err := r.ReadByte()
	if err != nil {
		return Resource{}, err
	}
	if version != Version {
		return Resource{}, ErrUnsupportedVersion
	}

	var ttlWord uint16
	if err := binary.Read(r, binary.LittleEndian, &ttlWord); err != nil {
		return Resource{}, err
	}
	ttl, compat := decodeTTLWord(ttlWord)

	strs, err := decodeSymbolTable(r)
	if err != nil {
		return Resource{}, err
	}

	out := Resource{TTL: ttl, Compat: compat}

	for r.Len() > 0 {
		tagByte, err := r.ReadByte()
		if err != nil {
			return Resource{}, err
		}
		body, err := wire.ReadVarBytes(r, 0, maxRecordBody, "record body")
		if err != nil {
			return Resource{}, err
		}
		if err := decodeRecord(RecordTag(tagByte), body, strs, &out); err != nil {
			return Resource{}, err
		}
	}

	return out, nil
}

func decodeRecord(tag RecordTag, body []byte, strs []string, out *Resource) error {
	switch tag {
	case TagInet4:
		if len(body) != net.IPv4len {
			return fmt.Errorf("resource: malformed inet4 record")
		}
		out.Hosts4 = append(out.Hosts4, net.IP(append([]byte(nil), body...)))
	case TagInet6:
		if len(body) != net.IPv6len {
			return fmt.Errorf("resource: malformed inet6 record")
		}
		out.Hosts6 = append(out.Hosts6, net.IP(append([]byte(nil), body...)))
	case TagOnion:
		out.Onions = append(out.Onions, string(body))
	case TagOnionNG:
		out.OnionsNG = append(out.OnionsNG, string(body))
	case TagCanonical:
		t, err := readTarget(bytes.NewReader(body), strs)
		if err != nil {
			return err
		}
		out.Canonical = &t
	case TagDelegate:
		t, err := readTarget(bytes.NewReader(body), strs)
		if err != nil {
			return err
		}
		out.Delegate = &t
	case TagNS:
		t, err := readTarget(bytes.NewReader(body), strs)
		if err != nil {
			return err
		}
		out.NS = append(out.NS, t)
	case TagService:
		svc, err := decodeServiceBody(body, strs)
		if err != nil {
			return err
		}
		out.Services = append(out.Services, svc)
	case TagURL:
		out.URLs = append(out.URLs, string(body))
	case TagEmail:
		out.Emails = append(out.Emails, string(body))
	case TagText:
		out.Texts = append(out.Texts, string(body))
	case TagMagnet:
		out.Magnets = append(out.Magnets, string(body))
	case TagAddr:
		out.Addrs = append(out.Addrs, string(body))
	case TagLocation:
		loc, err := decodeLocationBody(body)
		if err != nil {
			return err
		}
		out.Location = &loc
	case TagDS:
		out.DS = append(out.DS, decodeDSBody(body))
	case TagTLSA:
		out.TLSA = append(out.TLSA, decodeTLSABody(body))
	case TagSSHFP:
		out.SSHFP = append(out.SSHFP, decodeSSHFPBody(body))
	case TagOpenPGPKey:
		out.OpenPGP = append(out.OpenPGP, body)
	default:
		out.Extra = append(out.Extra, ExtraRecord{Tag: tag, Data: body})
	}
	return nil
}

func decodeServiceBody(body []byte, strs []string) (ServiceRecord, error) {
	r := bytes.NewReader(body)
	service, err := wire.ReadVarBytes(r, 0, maxSymbolLength, "service")
	if err != nil {
		return ServiceRecord{}, err
	}
	protocol, err := wire.ReadVarBytes(r, 0, maxSymbolLength, "protocol")
	if err != nil {
		return ServiceRecord{}, err
	}
	priority, err := r.ReadByte()
	if err != nil {
		return ServiceRecord{}, err
	}
	weight, err := r.ReadByte()
	if err != nil {
		return ServiceRecord{}, err
	}
	target, err := readTarget(r, strs)
	if err != nil {
		return ServiceRecord{}, err
	}
	var port uint16
	if err := binary.Read(r, binary.LittleEndian, &port); err != nil {
		return ServiceRecord{}, err
	}
	return ServiceRecord{
		Service:  string(service),
		Protocol: string(protocol),
		Priority: priority,
		Weight:   weight,
		Target:   target,
		Port:     port,
	}, nil
}

func decodeLocationBody(body []byte) (LocationRecord, error) {
	r := bytes.NewReader(body)
	var l LocationRecord
	for _, v := range []*int32{&l.Latitude, &l.Longitude, &l.Altitude} {
		if err := binary.Read(r, binary.LittleEndian, v); err != nil {
			return LocationRecord{}, err
		}
	}
	for _, v := range []*uint8{&l.Size, &l.HorizPrecision, &l.VertPrecision} {
		b, err := r.ReadByte()
		if err != nil {
			return LocationRecord{}, err
		}
		*v = b
	}
	return l, nil
}

func decodeDSBody(body []byte) DSRecord {
	r := bytes.NewReader(body)
	var d DSRecord
	binary.Read(r, binary.LittleEndian, &d.KeyTag)
	d.Algorithm, _ = r.ReadByte()
	d.DigestType, _ = r.ReadByte()
	d.Digest, _ = io.ReadAll(r)
	return d
}

func decodeTLSABody(body []byte) TLSARecord {
	r := bytes.NewReader(body)
	var t TLSARecord
	t.Usage, _ = r.ReadByte()
	t.Selector, _ = r.ReadByte()
	t.MatchingType, _ = r.ReadByte()
	t.Data, _ = io.ReadAll(r)
	return t
}

func decodeSSHFPBody(body []byte) SSHFPRecord {
	r := bytes.NewReader(body)
	var s SSHFPRecord
	s.Algorithm, _ = r.ReadByte()
	s.FPType, _ = r.ReadByte()
	s.Fingerprint, _ = io.ReadAll(r)
	return s
}
