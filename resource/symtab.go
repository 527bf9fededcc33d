// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package resource

import (
	"fmt"
	"io"

	"github.com/nsdchain/nsd/wire"
)

// maxSymbolTableEntries bounds the table decoded from untrusted input.
const maxSymbolTableEntries = 1 << 12

// maxSymbolLength bounds a single interned string's length.
const maxSymbolLength = 1 << 10

// symbolTable deduplicates the domain-name strings a resource's NS,
// CANONICAL, DELEGATE, and SERVICE records tend to repeat (a zone's
// nameservers routinely share a parent suffix). Every occurrence after the
// first costs a single back-reference index instead of the full string.
type symbolTable struct {
	strs  []string
	index map[string]int
}

func newSymbolTable() *symbolTable {
	return &symbolTable{index: make(map[string]int)}
}

// intern returns s's index in the table, adding it if this is its first
// occurrence.
func (t *symbolTable) intern(s string) int {
	if i, ok := t.index[s]; ok {
		return i
	}
	i := len(t.strs)
	t.strs = append(t.strs, s)
	t.index[s] = i
	return i
}

func (t *symbolTable) encode(w io.Writer) error {
	if err := wire.WriteVarInt(w, 0, uint64(len(t.strs))); err != nil {
		return err
	}
	for _, s := range t.strs {
		if err := wire.WriteVarBytes(w, 0, []byte(s)); err != nil {
			return err
		}
	}
	return nil
}

func decodeSymbolTable(r io.Reader) ([]string, error) {
	count, err := wire.ReadVarInt(r, 0)
	if err != nil {
		return nil, err
	}
	if count > maxSymbolTableEntries {
		return nil, fmt.Errorf("resource: symbol table too large (%d entries)", count)
	}
	strs := make([]string, count)
	for i := range strs {
		b, err := wire.ReadVarBytes(r, 0, maxSymbolLength, "symbol")
		if err != nil {
			return nil, err
		}
		strs[i] = string(b)
	}
	return strs, nil
}

// symbolAt resolves a decoded back-reference index, rejecting an
// out-of-range index instead of panicking on malformed input.
func symbolAt(strs []string, idx uint64) (string, error) {
	if idx >= uint64(len(strs)) {
		return "", fmt.Errorf("resource: symbol index %d out of range (table has %d entries)", idx, len(strs))
	}
	return strs[idx], nil
}
