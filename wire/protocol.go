// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
)

const (
	// ProtocolVersion is the latest protocol version this package supports.
	// The P2P wire protocol that carries it is an external collaborator;
	// no code in this repository reads this constant, and the mining
	// header's version is set separately.
	ProtocolVersion uint32 = 1
)

// ServiceFlag identifies services supported by a node, carried for
// compatibility with peer-discovery collaborators even though this
// package does not implement the P2P layer itself.
type ServiceFlag uint64

const (
	// SFNodeNetwork is a flag used to indicate a peer is a full node.
	SFNodeNetwork ServiceFlag = 1 << iota

	// SFNodeBloom is a flag used to indicate a peer supports bloom
	// filtering.
	SFNodeBloom
)

// HasFlag returns a bool indicating if the service has the given flag.
func (f ServiceFlag) HasFlag(s ServiceFlag) bool {
	return f&s == s
}

// BitcoinNet represents which network a message belongs to.
type BitcoinNet uint32

// Constants used to indicate the network a message belongs to. Naming
// preserved from btcsuite lineage, kept because chaincfg.Params.Net
// needs a magic value of this shape regardless of whether this repo
// implements the P2P layer that sends it over the wire.
const (
	// MainNet represents the main network.
	MainNet BitcoinNet = 0x4e534431 // "NSD1"

	// TestNet represents the test network.
	TestNet BitcoinNet = 0x4e534454 // "NSDT"

	// SimNet represents the simulation test network.
	SimNet BitcoinNet = 0x4e534453 // "NSDS"
)

// bnStrings is a map of networks back to their constant names for pretty
// printing.
var bnStrings = map[BitcoinNet]string{
	MainNet: "MainNet",
	TestNet: "TestNet",
	SimNet:  "SimNet",
}

// String returns the BitcoinNet in human-readable form.
func (n BitcoinNet) String() string {
	if s, ok := bnStrings[n]; ok {
		return s
	}

	return fmt.Sprintf("Unknown BitcoinNet (%d)", uint32(n))
}
