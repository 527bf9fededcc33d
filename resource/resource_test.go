// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package resource

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	r := Resource{
		TTL:    3600,
		Compat: true,
		Hosts4: []net.IP{net.IPv4(203, 0, 113, 1).To4()},
		Hosts6: []net.IP{net.ParseIP("2001:db8::1")},
		Onions: []string{"expyuzz4wqqyqhjn"},
		NS: []Target{
			{Type: TargetName, Name: "ns1.example.com"},
			{Type: TargetName, Name: "ns2.example.com"},
		},
		Services: []ServiceRecord{
			{
				Service:  "http",
				Protocol: "tcp",
				Priority: 10,
				Weight:   5,
				Target:   Target{Type: TargetName, Name: "ns1.example.com"},
				Port:     443,
			},
		},
		URLs:    []string{"https://example.com"},
		Emails:  []string{"hello@example.com"},
		Texts:   []string{"hello world"},
		Magnets: []string{"magnet:?xt=urn:btih:deadbeef"},
		Addrs:   []string{"bc1qexampleaddr"},
		DS: []DSRecord{
			{KeyTag: 12345, Algorithm: 8, DigestType: 2, Digest: []byte{1, 2, 3, 4}},
		},
		Extra: []ExtraRecord{
			{Tag: RecordTag(200), Data: []byte("future-record")},
		},
	}

	data, err := Encode(r)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)

	require.Equal(t, r.TTL/ttlGranularity*ttlGranularity, got.TTL)
	require.Equal(t, r.Compat, got.Compat)
	require.Len(t, got.Hosts4, 1)
	require.True(t, r.Hosts4[0].Equal(got.Hosts4[0]))
	require.Len(t, got.Hosts6, 1)
	require.True(t, r.Hosts6[0].Equal(got.Hosts6[0]))
	require.Equal(t, r.Onions, got.Onions)
	require.Equal(t, r.NS, got.NS)
	require.Equal(t, r.Services, got.Services)
	require.Equal(t, r.URLs, got.URLs)
	require.Equal(t, r.Emails, got.Emails)
	require.Equal(t, r.Texts, got.Texts)
	require.Equal(t, r.Magnets, got.Magnets)
	require.Equal(t, r.Addrs, got.Addrs)
	require.Equal(t, r.DS, got.DS)
	require.Equal(t, r.Extra, got.Extra)
}

func TestDecodeRejectsUnsupportedVersion(t *testing.T) {
	data, err := Encode(Resource{})
	require.NoError(t, err)
	data[0] = 1

	_, err = Decode(data)
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestTTLWordRoundTrip(t *testing.T) {
	word := encodeTTLWord(3600, true)
	ttl, compat := decodeTTLWord(word)
	require.True(t, compat)
	require.Equal(t, uint32(3600/ttlGranularity*ttlGranularity), ttl)
}

func TestCanonicalRejectsTorTarget(t *testing.T) {
	r := Resource{
		Canonical: &Target{Type: TargetOnionNG, Onion: "abc"},
	}
	_, err := Encode(r)
	require.Error(t, err)
}

func TestVerifyNameRules(t *testing.T) {
	require.NoError(t, verifyName("example.com", false))
	require.Error(t, verifyName("", false))
	require.Error(t, verifyName(".example.com", false))
	require.Error(t, verifyName("example..com", false))
	require.Error(t, verifyName("-example.com", false))
	require.Error(t, verifyName("my_name.example.com", false))
	require.NoError(t, verifyName("my_name.example.com", true))
	require.Error(t, verifyName("foo.test", false))
}

func TestSymbolTableDeduplicates(t *testing.T) {
	r := Resource{
		NS: []Target{
			{Type: TargetName, Name: "ns1.shared-parent"},
			{Type: TargetName, Name: "ns2.shared-parent"},
			{Type: TargetName, Name: "ns1.shared-parent"},
		},
	}
	data, err := Encode(r)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, r.NS, got.NS)
}

func TestPointerLabel(t *testing.T) {
	label := PointerLabel(net.IPv4(203, 0, 113, 1).To4(), "example")
	require.True(t, len(label) > len("example")+1)
	require.Equal(t, byte('_'), label[0])
}
