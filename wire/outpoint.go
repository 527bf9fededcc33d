// Copyright (c) 2013-2024 The btcsuite developers
// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"

	"github.com/nsdchain/nsd/chaincfg/chainhash"
)

// OutPoint defines a resource that a transaction input references, the
// transaction hash plus the output index it spends.
type OutPoint struct {
	Hash  chainhash.Hash
	Index uint32
}

// NewOutPoint returns a new OutPoint for the given hash and index.
func NewOutPoint(hash *chainhash.Hash, index uint32) *OutPoint {
	return &OutPoint{Hash: *hash, Index: index}
}

// String returns the OutPoint in the form "hash:index".
func (o OutPoint) String() string {
	return fmt.Sprintf("%s:%d", o.Hash.String(), o.Index)
}

func readOutPoint(r io.Reader, op *OutPoint) error {
	if _, err := io.ReadFull(r, op.Hash[:]); err != nil {
		return err
	}
	return readElement(r, &op.Index)
}

func writeOutPoint(w io.Writer, op *OutPoint) error {
	if _, err := w.Write(op.Hash[:]); err != nil {
		return err
	}
	return writeElement(w, op.Index)
}
