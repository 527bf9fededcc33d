// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package resource implements the compact on-chain record set a name's
// NameState.Data blob decodes into: hosts, delegation, services, and the
// handful of free-form TXT-equivalent buckets the resolver serves.
package resource

import "net"

// Version is the only serialization version this package understands;
// Decode rejects anything else.
const Version = 0

// TargetType distinguishes the kinds of endpoint a record can point at.
type TargetType uint8

const (
	TargetInet4 TargetType = iota
	TargetInet6
	TargetOnion   // Tor v2, 16-character .onion
	TargetOnionNG // Tor v3, 56-character .onion
	TargetName    // a name on this chain
	TargetGlue    // a name in the external DNS namespace
)

// Target is a polymorphic endpoint: exactly one of Addr, Onion, or Name is
// meaningful, selected by Type.
type Target struct {
	Type  TargetType
	Addr  net.IP
	Onion string
	Name  string
}

// IsTor reports whether the target is a Tor hidden-service address,
// which must never appear as a CANONICAL record's target (§4.1).
func (t Target) IsTor() bool {
	return t.Type == TargetOnion || t.Type == TargetOnionNG
}

// ServiceRecord is the SRV-equivalent record: a named service/protocol
// pair pointing at a target and port, with priority/weight for
// client-side selection among several.
type ServiceRecord struct {
	Service  string
	Protocol string
	Priority uint8
	Weight   uint8
	Target   Target
	Port     uint16
}

// LocationRecord is the LOC-equivalent geographic record.
type LocationRecord struct {
	Latitude, Longitude int32 // 1e-6 degree units
	Altitude             int32 // centimeters above the WGS84 reference
	Size, HorizPrecision, VertPrecision uint8
}

// DSRecord is a DNSSEC delegation-signer record.
type DSRecord struct {
	KeyTag     uint16
	Algorithm  uint8
	DigestType uint8
	Digest     []byte
}

// TLSARecord authenticates a TLS endpoint certificate.
type TLSARecord struct {
	Usage        uint8
	Selector     uint8
	MatchingType uint8
	Data         []byte
}

// SSHFPRecord is an SSH host key fingerprint.
type SSHFPRecord struct {
	Algorithm   uint8
	FPType      uint8
	Fingerprint []byte
}

// ExtraRecord preserves an unrecognized record tag and body verbatim, so
// a decoder built against an older record-tag vocabulary round-trips
// resources created by a newer one instead of corrupting them.
type ExtraRecord struct {
	Tag  RecordTag
	Data []byte
}

// Resource is the decoded form of a name's on-chain data blob.
type Resource struct {
	TTL    uint32 // seconds; encoded at 64-second granularity on the wire
	Compat bool

	Hosts4   []net.IP
	Hosts6   []net.IP
	Onions   []string
	OnionsNG []string

	// Canonical and Delegate are CNAME/DNAME equivalents; at most one of
	// each may be set (§4.1 calls both "single" targets).
	Canonical *Target
	Delegate  *Target

	NS []Target

	Services []ServiceRecord

	URLs    []string
	Emails  []string
	Texts   []string
	Magnets []string
	Addrs   []string

	Location *LocationRecord
	DS       []DSRecord
	TLSA     []TLSARecord
	SSHFP    []SSHFPRecord
	OpenPGP  [][]byte

	Extra []ExtraRecord
}
