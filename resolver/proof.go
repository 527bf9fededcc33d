// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package resolver

import (
	"encoding/base64"
	"strings"

	"github.com/miekg/dns"

	"github.com/nsdchain/nsd/chaincfg/chainhash"
)

// maxTXTChunk is the character-string length limit a single TXT segment
// may carry.
const maxTXTChunk = 255

// Proof is a tree-inclusion or tree-exclusion proof for one name, as
// produced by the storage layer's authenticated tree. Nodes are the
// sibling hashes along the path from the leaf to Root; Data is the
// name's resource bytes when Exists is true, and is empty otherwise.
type Proof struct {
	Root   chainhash.Hash
	Exists bool
	Nodes  [][]byte
	Data   []byte
}

// ProofProvider is the storage layer's authenticated-tree boundary: the
// resolver asks for a proof, it doesn't compute one. The tree itself is
// an external collaborator (§1 scopes persistent storage out of the
// consensus core).
type ProofProvider interface {
	Prove(nameHash chainhash.Hash) (Proof, error)
}

// proofTXT builds the §6 name-proof record: a TXT RR whose first segment
// is the literal tag "hsk:proof" and whose remaining segments are
// ≤255-byte chunks that concatenate, as they are, into
// "tree-root:node1:node2:...:data_or_empty", each section of which is
// base64-encoded.
func proofTXT(owner string, p Proof) *dns.TXT {
	sections := make([]string, 0, len(p.Nodes)+2)
	sections = append(sections, base64.StdEncoding.EncodeToString(p.Root[:]))
	for _, n := range p.Nodes {
		sections = append(sections, base64.StdEncoding.EncodeToString(n))
	}
	if p.Exists {
		sections = append(sections, base64.StdEncoding.EncodeToString(p.Data))
	} else {
		sections = append(sections, "")
	}
	payload := strings.Join(sections, ":")

	segments := []string{"hsk:proof"}
	for len(payload) > 0 {
		n := maxTXTChunk
		if n > len(payload) {
			n = len(payload)
		}
		segments = append(segments, payload[:n])
		payload = payload[n:]
	}

	return &dns.TXT{
		Hdr: dns.RR_Header{Name: owner, Rrtype: dns.TypeTXT, Class: dns.ClassINET, Ttl: 0},
		Txt: segments,
	}
}
