// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package resolver

import (
	"net"
	"testing"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/require"

	"github.com/nsdchain/nsd/chaincfg/chainhash"
	"github.com/nsdchain/nsd/names"
	"github.com/nsdchain/nsd/resource"
)

type fakeQuery struct {
	byLabel map[string]*names.NameState
}

func (f *fakeQuery) Name(hash chainhash.Hash) (*names.NameState, error) {
	for _, s := range f.byLabel {
		if s.NameHash == hash {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeQuery) NameByLabel(name string) (*names.NameState, error) {
	return f.byLabel[name], nil
}

func (f *fakeQuery) Height() int32 { return 100 }

type recordingWriter struct {
	msg *dns.Msg
}

func (w *recordingWriter) LocalAddr() net.Addr         { return nil }
func (w *recordingWriter) RemoteAddr() net.Addr        { return nil }
func (w *recordingWriter) WriteMsg(m *dns.Msg) error   { w.msg = m; return nil }
func (w *recordingWriter) Write(b []byte) (int, error) { return len(b), nil }
func (w *recordingWriter) Close() error                { return nil }
func (w *recordingWriter) TsigStatus() error           { return nil }
func (w *recordingWriter) TsigTimersOnly(bool)         {}
func (w *recordingWriter) Hijack()                     {}

func nameStateWithResource(t *testing.T, label string, r resource.Resource) *names.NameState {
	data, err := resource.Encode(r)
	require.NoError(t, err)
	return &names.NameState{
		Name:       label,
		NameHash:   chainhash.HashH([]byte(label)),
		Registered: true,
		Data:       data,
	}
}

func TestServeDNSReturnsAAnswer(t *testing.T) {
	state := nameStateWithResource(t, "example", resource.Resource{
		TTL:    3600,
		Hosts4: []net.IP{net.IPv4(203, 0, 113, 1).To4()},
	})
	q := &fakeQuery{byLabel: map[string]*names.NameState{"example": state}}
	r := New(Config{Query: q, DefaultTTL: 900})

	req := new(dns.Msg)
	req.SetQuestion("example.", dns.TypeA)

	w := &recordingWriter{}
	r.ServeDNS(w, req)

	require.NotNil(t, w.msg)
	require.Len(t, w.msg.Answer, 1)
	a, ok := w.msg.Answer[0].(*dns.A)
	require.True(t, ok)
	require.True(t, a.A.Equal(net.IPv4(203, 0, 113, 1)))
}

func TestServeDNSNXDOMAIN(t *testing.T) {
	q := &fakeQuery{byLabel: map[string]*names.NameState{}}
	r := New(Config{Query: q, DefaultTTL: 900, RootNS: []string{"ns1.root."}})

	req := new(dns.Msg)
	req.SetQuestion("nowhere.", dns.TypeA)

	w := &recordingWriter{}
	r.ServeDNS(w, req)

	require.NotNil(t, w.msg)
	require.Equal(t, dns.RcodeNameError, w.msg.Rcode)
	require.NotEmpty(t, w.msg.Ns)
}

func TestServeDNSReferral(t *testing.T) {
	state := nameStateWithResource(t, "example", resource.Resource{
		TTL: 3600,
		NS: []resource.Target{
			{Type: resource.TargetName, Name: "ns1.example.com"},
		},
	})
	q := &fakeQuery{byLabel: map[string]*names.NameState{"example": state}}
	r := New(Config{Query: q, DefaultTTL: 900})

	req := new(dns.Msg)
	req.SetQuestion("deep.example.", dns.TypeA)

	w := &recordingWriter{}
	r.ServeDNS(w, req)

	require.NotNil(t, w.msg)
	require.NotEmpty(t, w.msg.Ns)
	_, ok := w.msg.Ns[0].(*dns.NS)
	require.True(t, ok)
}

func TestServeDNSRootZone(t *testing.T) {
	q := &fakeQuery{byLabel: map[string]*names.NameState{}}
	r := New(Config{Query: q, DefaultTTL: 900, RootNS: []string{"ns1.root."}})

	req := new(dns.Msg)
	req.SetQuestion(".", dns.TypeSOA)

	w := &recordingWriter{}
	r.ServeDNS(w, req)

	require.NotNil(t, w.msg)
	require.Len(t, w.msg.Answer, 1)
	_, ok := w.msg.Answer[0].(*dns.SOA)
	require.True(t, ok)
}
