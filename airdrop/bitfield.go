// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package airdrop implements the spent/unspent bitmap over the airdrop
// Merkle tree's fixed leaf set, with the batched spend/undo/commit
// lifecycle a coinbase's airdrop inputs drive during block assembly and
// validation.
package airdrop

import "fmt"

// Field is a bit per leaf in the airdrop tree: 0 means unspent, 1 means
// spent. Storage is ceil(N/8) bytes, matching §4.6.
type Field struct {
	n    uint32
	bits []byte
}

// New allocates an all-unspent field of n leaves.
func New(n uint32) *Field {
	return &Field{n: n, bits: make([]byte, (n+7)/8)}
}

// Len returns the field's leaf count.
func (f *Field) Len() uint32 {
	return f.n
}

// Get reports the bit at index i. Indices at or beyond n always read as 1
// (spent), since they don't correspond to a leaf the tree ever committed.
func (f *Field) Get(i uint32) bool {
	if i >= f.n {
		return true
	}
	return f.bits[i/8]&(1<<(i%8)) != 0
}

// IsSpent is an alias for Get, matching §4.6's named operation.
func (f *Field) IsSpent(i uint32) bool {
	return f.Get(i)
}

// Set writes the bit at index i. It is a no-op for indices at or beyond n.
func (f *Field) Set(i uint32, v bool) {
	if i >= f.n {
		return
	}
	if v {
		f.bits[i/8] |= 1 << (i % 8)
	} else {
		f.bits[i/8] &^= 1 << (i % 8)
	}
}

// Encode returns the field's raw byte representation.
func (f *Field) Encode() []byte {
	out := make([]byte, len(f.bits))
	copy(out, f.bits)
	return out
}

// Decode reconstructs a Field of n leaves from bytes previously produced
// by Encode.
func Decode(n uint32, data []byte) (*Field, error) {
	want := int((n + 7) / 8)
	if len(data) != want {
		return nil, fmt.Errorf("airdrop: field for %d leaves needs %d bytes, got %d", n, want, len(data))
	}
	bits := make([]byte, want)
	copy(bits, data)
	return &Field{n: n, bits: bits}, nil
}

// Batch collects the airdrop spends a single block proposes against a
// committed Field, without mutating it until Commit. This lets the
// assembler and validator reject a block whose claims double-spend an
// index — either against already-committed history or against another
// claim earlier in the same block — before any of it becomes visible.
type Batch struct {
	field   *Field
	pending map[uint32]bool
}

// NewBatch opens a batch against field. field is read but not modified
// until the batch is committed.
func NewBatch(field *Field) *Batch {
	return &Batch{field: field, pending: make(map[uint32]bool)}
}

// Spend records index i as spent in this batch. It returns false without
// recording anything if i is already spent in the underlying field or
// earlier in this same batch.
func (b *Batch) Spend(i uint32) bool {
	if b.field.IsSpent(i) || b.pending[i] {
		return false
	}
	b.pending[i] = true
	return true
}

// Undo discards every index recorded in this batch, as if Spend had never
// been called for them.
func (b *Batch) Undo() {
	b.pending = make(map[uint32]bool)
}

// Commit applies every index recorded in this batch to field, then clears
// the batch. Callers pass the same field the batch was opened against;
// the parameter exists to make the target of the mutation explicit at the
// call site rather than implicit in the receiver.
func (b *Batch) Commit(field *Field) {
	for i := range b.pending {
		field.Set(i, true)
	}
	b.pending = make(map[uint32]bool)
}
