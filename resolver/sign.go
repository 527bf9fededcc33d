// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package resolver

import (
	"encoding/base64"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/miekg/dns"

	"github.com/nsdchain/nsd/chaincfg/chainhash"
)

// ZoneSigner signs resolver answers under the root zone's key, the
// signature §4.5 promises to DNSSEC-enabled queries ("DNSSEC-enabled
// queries receive signatures for the response under the root zone key").
// secp256k1 is not one of RFC 4034's registered DNSSEC algorithms, so
// this does not produce an RRSIG record; the signature is attached as
// its own synthetic TXT record, the same convention §6 already uses for
// proof attachment instead of a dedicated RR type.
type ZoneSigner struct {
	key *secp256k1.PrivateKey
}

// NewZoneSigner wraps a root zone signing key.
func NewZoneSigner(key *secp256k1.PrivateKey) *ZoneSigner {
	return &ZoneSigner{key: key}
}

// PublicKey returns the key a client verifies sigTXT records against,
// published via the root zone's DNSKEY answer.
func (z *ZoneSigner) PublicKey() *secp256k1.PublicKey {
	return z.key.PubKey()
}

// sign returns the DER-encoded ECDSA signature over the Blake2b-256 hash
// of rrs' presentation-format strings (rr.String()) concatenated in answer
// order.
func (z *ZoneSigner) sign(rrs []dns.RR) []byte {
	var buf []byte
	for _, rr := range rrs {
		buf = append(buf, []byte(rr.String())...)
	}
	hash := chainhash.HashH(buf)
	return ecdsa.Sign(z.key, hash[:]).Serialize()
}

// Verify reports whether sig is z's signature over rrs, for tests and
// for a resolver client implementing its own verification.
func (z *ZoneSigner) Verify(rrs []dns.RR, sig []byte) bool {
	parsed, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false
	}
	var buf []byte
	for _, rr := range rrs {
		buf = append(buf, []byte(rr.String())...)
	}
	hash := chainhash.HashH(buf)
	return parsed.Verify(hash[:], z.PublicKey())
}

// sigTXT builds the synthetic answer-signature record for owner's
// answer set, following proofTXT's "hsk:" tag convention.
func sigTXT(owner string, sig []byte) *dns.TXT {
	return &dns.TXT{
		Hdr: header(owner, dns.TypeTXT, 0),
		Txt: []string{"hsk:sig", base64.StdEncoding.EncodeToString(sig)},
	}
}
