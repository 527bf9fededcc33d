// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package resolver serves authoritative DNS answers for the on-chain
// naming root and its top-level names, projecting NameState.Data through
// the resource codec into dns.Msg responses with tree-proof attachment.
// It is not a recursive resolver.
package resolver

import (
	"strings"

	"github.com/miekg/dns"

	"github.com/nsdchain/nsd/chaincfg/chainhash"
	"github.com/nsdchain/nsd/names"
	"github.com/nsdchain/nsd/resource"
)

// Config holds a Resolver's collaborators and the root zone's static
// answer set.
type Config struct {
	Query  names.Query
	Proofs ProofProvider

	// RootNS names the root zone's authoritative servers.
	RootNS []string
	// RootGlue maps a root nameserver's FQDN to its addresses, emitted
	// as additional-section glue for root NS/SOA/ANY answers.
	RootGlue map[string][]dns.RR
	// RootKeys are the DNSKEY RRs served for the root zone.
	RootKeys []dns.RR

	// Signer, if set, attaches a sigTXT record over the answer section
	// to every EDNS0 query, per §4.5's DNSSEC-enabled-query promise. A
	// nil Signer serves proofs but never signatures.
	Signer *ZoneSigner

	// DefaultTTL is used for synthesized root-zone answers; per-name
	// answers use the resource's own TTL.
	DefaultTTL uint32
}

// Resolver implements dns.Handler over Config.
type Resolver struct {
	cfg Config
}

// New builds a Resolver from cfg.
func New(cfg Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// ServeDNS implements github.com/miekg/dns's Handler interface.
func (res *Resolver) ServeDNS(w dns.ResponseWriter, req *dns.Msg) {
	m := new(dns.Msg)
	m.SetReply(req)
	m.Authoritative = true

	if len(req.Question) != 1 {
		m.Rcode = dns.RcodeFormatError
		w.WriteMsg(m)
		return
	}

	q := req.Question[0]
	qname := strings.ToLower(dns.Fqdn(q.Name))
	edns := req.IsEdns0()

	if qname == "." {
		res.answerRoot(m, q.Qtype)
		w.WriteMsg(m)
		return
	}

	labels := dns.SplitDomainName(qname)
	tld := labels[len(labels)-1]
	strictlyDeeper := len(labels) > 1

	state, err := res.cfg.Query.NameByLabel(tld)
	if err != nil || state == nil {
		log.Debugf("nxdomain for %q (tld %q)", qname, tld)
		res.answerAbsent(m, tld, edns)
		w.WriteMsg(m)
		return
	}

	rec, err := resource.Decode(state.Data)
	if err != nil {
		log.Warnf("failed to decode resource data for %q: %v", tld, err)
		m.Rcode = dns.RcodeServerFailure
		w.WriteMsg(m)
		return
	}

	res.answerPresent(m, q, tld, rec, strictlyDeeper)
	if edns != nil {
		res.attachProof(m, q.Name, tld)
		res.attachSignature(m)
	}
	w.WriteMsg(m)
}

// attachSignature appends a sigTXT record over m's answer section when a
// zone signer is configured.
func (res *Resolver) attachSignature(m *dns.Msg) {
	if res.cfg.Signer == nil || len(m.Answer) == 0 {
		return
	}
	sig := res.cfg.Signer.sign(m.Answer)
	m.Extra = append(m.Extra, sigTXT(m.Answer[0].Header().Name, sig))
}

func (res *Resolver) answerRoot(m *dns.Msg, qtype uint16) {
	ttl := res.cfg.DefaultTTL
	switch qtype {
	case dns.TypeSOA, dns.TypeANY:
		m.Answer = append(m.Answer, res.rootSOA(ttl))
		if qtype == dns.TypeANY {
			m.Answer = append(m.Answer, res.rootNS(ttl)...)
			m.Answer = append(m.Answer, res.cfg.RootKeys...)
		}
	case dns.TypeNS:
		m.Answer = append(m.Answer, res.rootNS(ttl)...)
	case dns.TypeDNSKEY:
		m.Answer = append(m.Answer, res.cfg.RootKeys...)
	default:
		m.Ns = append(m.Ns, res.rootSOA(ttl))
	}
	for _, ns := range res.cfg.RootNS {
		m.Extra = append(m.Extra, res.cfg.RootGlue[ns]...)
	}
}

func (res *Resolver) rootSOA(ttl uint32) dns.RR {
	return &dns.SOA{
		Hdr:     header(".", dns.TypeSOA, ttl),
		Ns:      dns.Fqdn(firstOr(res.cfg.RootNS, ".")),
		Mbox:    "hostmaster.",
		Serial:  1,
		Refresh: 3600,
		Retry:   900,
		Expire:  604800,
		Minttl:  ttl,
	}
}

func (res *Resolver) rootNS(ttl uint32) []dns.RR {
	var out []dns.RR
	for _, ns := range res.cfg.RootNS {
		out = append(out, &dns.NS{Hdr: header(".", dns.TypeNS, ttl), Ns: dns.Fqdn(ns)})
	}
	return out
}

func firstOr(xs []string, fallback string) string {
	if len(xs) == 0 {
		return fallback
	}
	return xs[0]
}

// answerAbsent handles a query for a name with no on-chain state:
// NXDOMAIN with the root SOA in authority, plus a non-inclusion proof
// when EDNS is present.
func (res *Resolver) answerAbsent(m *dns.Msg, tld string, edns *dns.OPT) {
	m.Rcode = dns.RcodeNameError
	m.Ns = append(m.Ns, res.rootSOA(res.cfg.DefaultTTL))
	if edns != nil {
		res.attachProof(m, dns.Fqdn(tld), tld)
	}
}

func (res *Resolver) attachProof(m *dns.Msg, owner, tld string) {
	if res.cfg.Proofs == nil {
		return
	}
	hash := chainhash.HashH([]byte(tld))
	proof, err := res.cfg.Proofs.Prove(hash)
	if err != nil {
		return
	}
	m.Extra = append(m.Extra, proofTXT(dns.Fqdn("_proof."+owner), proof))
}

// answerPresent decides between a referral and a directly-synthesized
// answer for a name with on-chain state, per §4.5.
func (res *Resolver) answerPresent(m *dns.Msg, q dns.Question, tld string, rec resource.Resource, strictlyDeeper bool) {
	owner := dns.Fqdn(q.Name)
	ttl := rec.TTL
	if ttl == 0 {
		ttl = res.cfg.DefaultTTL
	}

	if strictlyDeeper && len(rec.NS) > 0 {
		ns, glue := nsAndGlue(rec, dns.Fqdn(tld), ttl, tld)
		m.Ns = append(m.Ns, ns...)
		m.Extra = append(m.Extra, glue...)
		m.Extra = append(m.Extra, dsAnswers(rec, dns.Fqdn(tld), ttl)...)
		return
	}

	switch q.Qtype {
	case dns.TypeA, dns.TypeAAAA:
		m.Answer = append(m.Answer, hostAnswers(rec, owner, ttl, q.Qtype)...)
		if cname, additional := canonicalAnswer(rec, owner, ttl, tld); cname != nil {
			m.Answer = append(m.Answer, cname)
			m.Extra = append(m.Extra, additional...)
		}
	case dns.TypeCNAME:
		if cname, _ := canonicalAnswer(rec, owner, ttl, tld); cname != nil {
			m.Answer = append(m.Answer, cname)
		}
	case dns.TypeDNAME:
		if d := delegateAnswer(rec, owner, ttl); d != nil {
			m.Answer = append(m.Answer, d)
		}
	case dns.TypeMX:
		m.Answer = append(m.Answer, mxAnswers(rec, owner, ttl, tld)...)
	case dns.TypeSRV:
		m.Answer = append(m.Answer, srvAnswers(rec, owner, ttl, tld)...)
	case dns.TypeNS:
		ns, glue := nsAndGlue(rec, owner, ttl, tld)
		m.Answer = append(m.Answer, ns...)
		m.Extra = append(m.Extra, glue...)
	case dns.TypeTXT:
		m.Answer = append(m.Answer, txtBucketAnswers(rec, owner, ttl)...)
	case dns.TypeLOC:
		if loc := locAnswer(rec, owner, ttl); loc != nil {
			m.Answer = append(m.Answer, loc)
		}
	case dns.TypeDS:
		m.Answer = append(m.Answer, dsAnswers(rec, owner, ttl)...)
	case dns.TypeTLSA:
		m.Answer = append(m.Answer, tlsaAnswers(rec, owner, ttl)...)
	case dns.TypeSSHFP:
		m.Answer = append(m.Answer, sshfpAnswers(rec, owner, ttl)...)
	case dns.TypeOPENPGPKEY:
		m.Answer = append(m.Answer, openpgpkeyAnswers(rec, owner, ttl)...)
	case dns.TypeANY:
		m.Answer = append(m.Answer, res.rootSOA(ttl))
		ns, _ := nsAndGlue(rec, owner, ttl, tld)
		m.Answer = append(m.Answer, ns...)
	default:
		m.Ns = append(m.Ns, res.rootSOA(ttl))
	}

	if len(m.Answer) == 0 && len(m.Ns) == 0 {
		m.Ns = append(m.Ns, res.rootSOA(ttl))
	}
}
