// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package resolver

import (
	"encoding/base64"
	"net"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/miekg/dns"
	"github.com/stretchr/testify/require"

	"github.com/nsdchain/nsd/names"
	"github.com/nsdchain/nsd/resource"
)

func testSigner(t *testing.T) *ZoneSigner {
	key, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	return NewZoneSigner(key)
}

func TestZoneSignerSignAndVerifyRoundTrip(t *testing.T) {
	signer := testSigner(t)
	rrs := []dns.RR{&dns.A{Hdr: header("example.", dns.TypeA, 3600), A: net.IPv4(203, 0, 113, 1)}}

	sig := signer.sign(rrs)
	require.True(t, signer.Verify(rrs, sig))

	other := testSigner(t)
	require.False(t, other.Verify(rrs, sig))
}

func TestZoneSignerVerifyRejectsTamperedAnswer(t *testing.T) {
	signer := testSigner(t)
	rrs := []dns.RR{&dns.A{Hdr: header("example.", dns.TypeA, 3600), A: net.IPv4(203, 0, 113, 1)}}
	sig := signer.sign(rrs)

	tampered := []dns.RR{&dns.A{Hdr: header("example.", dns.TypeA, 3600), A: net.IPv4(203, 0, 113, 2)}}
	require.False(t, signer.Verify(tampered, sig))
}

func TestServeDNSAttachesSignatureForEDNS0Query(t *testing.T) {
	state := nameStateWithResource(t, "example", resource.Resource{
		TTL:    3600,
		Hosts4: []net.IP{net.IPv4(203, 0, 113, 1).To4()},
	})
	q := &fakeQuery{byLabel: map[string]*names.NameState{"example": state}}
	signer := testSigner(t)
	r := New(Config{Query: q, DefaultTTL: 900, Signer: signer})

	req := new(dns.Msg)
	req.SetQuestion("example.", dns.TypeA)
	req.SetEdns0(4096, false)

	w := &recordingWriter{}
	r.ServeDNS(w, req)

	require.NotNil(t, w.msg)
	var sigRR *dns.TXT
	for _, rr := range w.msg.Extra {
		if txt, ok := rr.(*dns.TXT); ok && len(txt.Txt) > 0 && txt.Txt[0] == "hsk:sig" {
			sigRR = txt
		}
	}
	require.NotNil(t, sigRR)
	require.Len(t, sigRR.Txt, 2)

	sig, err := base64.StdEncoding.DecodeString(sigRR.Txt[1])
	require.NoError(t, err)
	require.True(t, signer.Verify(w.msg.Answer, sig))
}

func TestServeDNSNoSignatureWithoutEDNS0(t *testing.T) {
	state := nameStateWithResource(t, "example", resource.Resource{
		TTL:    3600,
		Hosts4: []net.IP{net.IPv4(203, 0, 113, 1).To4()},
	})
	q := &fakeQuery{byLabel: map[string]*names.NameState{"example": state}}
	r := New(Config{Query: q, DefaultTTL: 900, Signer: testSigner(t)})

	req := new(dns.Msg)
	req.SetQuestion("example.", dns.TypeA)

	w := &recordingWriter{}
	r.ServeDNS(w, req)

	require.NotNil(t, w.msg)
	for _, rr := range w.msg.Extra {
		if txt, ok := rr.(*dns.TXT); ok {
			require.NotEqual(t, "hsk:sig", txt.Txt[0])
		}
	}
}
