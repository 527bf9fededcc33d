// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package resolver

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/miekg/dns"

	"github.com/nsdchain/nsd/resource"
)

// locMilliArcBias and locAltitudeBias are RFC 1876's fixed-point biases:
// LOC stores latitude/longitude as thousandths of an arc-second offset
// from the equator/meridian, and altitude in centimeters offset from
// 100,000m below the reference spheroid.
const (
	locMilliArcBias = 1 << 31
	locAltitudeBias = 10000000
)

func header(owner string, rrtype uint16, ttl uint32) dns.RR_Header {
	return dns.RR_Header{Name: owner, Rrtype: rrtype, Class: dns.ClassINET, Ttl: ttl}
}

func targetName(t resource.Target, zone string) string {
	switch t.Type {
	case resource.TargetName, resource.TargetGlue:
		return dns.Fqdn(t.Name)
	case resource.TargetInet4, resource.TargetInet6:
		return dns.Fqdn(resource.PointerLabel(t.Addr, zone))
	default:
		return ""
	}
}

// hostAnswers synthesizes A/AAAA records from a resource's host list.
func hostAnswers(r resource.Resource, owner string, ttl uint32, qtype uint16) []dns.RR {
	var out []dns.RR
	if qtype == dns.TypeA || qtype == dns.TypeANY {
		for _, ip := range r.Hosts4 {
			out = append(out, &dns.A{Hdr: header(owner, dns.TypeA, ttl), A: ip})
		}
	}
	if qtype == dns.TypeAAAA || qtype == dns.TypeANY {
		for _, ip := range r.Hosts6 {
			out = append(out, &dns.AAAA{Hdr: header(owner, dns.TypeAAAA, ttl), AAAA: ip})
		}
	}
	return out
}

// canonicalAnswer synthesizes the CNAME-equivalent answer, plus a
// synthesized pointer A/AAAA in additional when the target is an IP.
func canonicalAnswer(r resource.Resource, owner string, ttl uint32, zone string) (answer dns.RR, additional []dns.RR) {
	if r.Canonical == nil {
		return nil, nil
	}
	t := *r.Canonical
	target := targetName(t, zone)
	cname := &dns.CNAME{Hdr: header(owner, dns.TypeCNAME, ttl), Target: target}
	if t.Type == resource.TargetInet4 {
		additional = append(additional, &dns.A{Hdr: header(target, dns.TypeA, ttl), A: t.Addr})
	} else if t.Type == resource.TargetInet6 {
		additional = append(additional, &dns.AAAA{Hdr: header(target, dns.TypeAAAA, ttl), AAAA: t.Addr})
	}
	return cname, additional
}

func delegateAnswer(r resource.Resource, owner string, ttl uint32) dns.RR {
	if r.Delegate == nil {
		return nil
	}
	return &dns.DNAME{Hdr: header(owner, dns.TypeDNAME, ttl), Target: dns.Fqdn(r.Delegate.Name)}
}

// nsAndGlue builds the NS answer set plus any A/AAAA glue a pointer
// target needs, for use both as a referral and as a direct NS query
// response.
func nsAndGlue(r resource.Resource, owner string, ttl uint32, zone string) (ns []dns.RR, glue []dns.RR) {
	for _, t := range r.NS {
		target := targetName(t, zone)
		ns = append(ns, &dns.NS{Hdr: header(owner, dns.TypeNS, ttl), Ns: target})
		switch t.Type {
		case resource.TargetInet4:
			glue = append(glue, &dns.A{Hdr: header(target, dns.TypeA, ttl), A: t.Addr})
		case resource.TargetInet6:
			glue = append(glue, &dns.AAAA{Hdr: header(target, dns.TypeAAAA, ttl), AAAA: t.Addr})
		}
	}
	return ns, glue
}

// mxAnswers synthesizes MX records from services tagged "smtp".
func mxAnswers(r resource.Resource, owner string, ttl uint32, zone string) []dns.RR {
	var out []dns.RR
	for _, svc := range r.Services {
		if strings.EqualFold(svc.Service, "smtp") {
			out = append(out, &dns.MX{
				Hdr:        header(owner, dns.TypeMX, ttl),
				Preference: uint16(svc.Priority),
				Mx:         targetName(svc.Target, zone),
			})
		}
	}
	return out
}

// srvAnswers synthesizes SRV records from every service entry.
func srvAnswers(r resource.Resource, owner string, ttl uint32, zone string) []dns.RR {
	var out []dns.RR
	for _, svc := range r.Services {
		out = append(out, &dns.SRV{
			Hdr:      header(owner, dns.TypeSRV, ttl),
			Priority: uint16(svc.Priority),
			Weight:   uint16(svc.Weight),
			Port:     svc.Port,
			Target:   targetName(svc.Target, zone),
		})
	}
	return out
}

// txtBucketAnswers synthesizes the typed TXT aggregates (§4.1): URL,
// EMAIL, MAGNET, and ADDR entries are tag-prefixed; TEXT entries are
// carried as-is.
func txtBucketAnswers(r resource.Resource, owner string, ttl uint32) []dns.RR {
	var out []dns.RR
	add := func(tag string, vals []string) {
		for _, v := range vals {
			segs := []string{v}
			if tag != "" {
				segs = []string{tag, v}
			}
			out = append(out, &dns.TXT{Hdr: header(owner, dns.TypeTXT, ttl), Txt: segs})
		}
	}
	add("hsk:url", r.URLs)
	add("hsk:email", r.Emails)
	add("hsk:magnet", r.Magnets)
	add("hsk:addr", r.Addrs)
	add("", r.Texts)
	if len(r.Onions) > 0 || len(r.OnionsNG) > 0 {
		onions := append(append([]string{}, r.Onions...), r.OnionsNG...)
		out = append(out, &dns.TXT{Hdr: header(owner, dns.TypeTXT, ttl), Txt: append([]string{"hsk:tor"}, onions...)})
	}
	return out
}

func locAnswer(r resource.Resource, owner string, ttl uint32) dns.RR {
	if r.Location == nil {
		return nil
	}
	l := r.Location
	return &dns.LOC{
		Hdr:       header(owner, dns.TypeLOC, ttl),
		Version:   0,
		Size:      l.Size,
		HorizPre:  l.HorizPrecision,
		VertPre:   l.VertPrecision,
		Latitude:  uint32(locMilliArcBias + int64(l.Latitude)*36/10),
		Longitude: uint32(locMilliArcBias + int64(l.Longitude)*36/10),
		Altitude:  uint32(int64(l.Altitude) + locAltitudeBias),
	}
}

func dsAnswers(r resource.Resource, owner string, ttl uint32) []dns.RR {
	var out []dns.RR
	for _, d := range r.DS {
		out = append(out, &dns.DS{
			Hdr:        header(owner, dns.TypeDS, ttl),
			KeyTag:     d.KeyTag,
			Algorithm:  d.Algorithm,
			DigestType: d.DigestType,
			Digest:     fmt.Sprintf("%x", d.Digest),
		})
	}
	return out
}

func tlsaAnswers(r resource.Resource, owner string, ttl uint32) []dns.RR {
	var out []dns.RR
	for _, t := range r.TLSA {
		out = append(out, &dns.TLSA{
			Hdr:          header(owner, dns.TypeTLSA, ttl),
			Usage:        t.Usage,
			Selector:     t.Selector,
			MatchingType: t.MatchingType,
			Certificate:  fmt.Sprintf("%x", t.Data),
		})
	}
	return out
}

func sshfpAnswers(r resource.Resource, owner string, ttl uint32) []dns.RR {
	var out []dns.RR
	for _, s := range r.SSHFP {
		out = append(out, &dns.SSHFP{
			Hdr:         header(owner, dns.TypeSSHFP, ttl),
			Algorithm:   s.Algorithm,
			Type:        s.FPType,
			FingerPrint: fmt.Sprintf("%x", s.Fingerprint),
		})
	}
	return out
}

func openpgpkeyAnswers(r resource.Resource, owner string, ttl uint32) []dns.RR {
	var out []dns.RR
	for _, k := range r.OpenPGP {
		out = append(out, &dns.OPENPGPKEY{
			Hdr:       header(owner, dns.TypeOPENPGPKEY, ttl),
			PublicKey: base64.StdEncoding.EncodeToString(k),
		})
	}
	return out
}
