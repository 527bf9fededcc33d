// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package resource

// RecordTag identifies a record's wire type. Unrecognized tags decode into
// ExtraRecord instead of failing, so a resource produced by a newer record
// vocabulary still round-trips through an older decoder.
type RecordTag uint8

const (
	TagInet4 RecordTag = iota
	TagInet6
	TagOnion
	TagOnionNG
	TagCanonical
	TagDelegate
	TagNS
	TagService
	TagURL
	TagEmail
	TagText
	TagMagnet
	TagAddr
	TagLocation
	TagDS
	TagTLSA
	TagSSHFP
	TagOpenPGPKey
)
