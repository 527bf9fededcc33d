// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainscan drives an interactive rescan over the chain's blocks
// (§9: "the scan loop is a driver that yields (entry, txs) and accepts a
// reply"). It is written as explicit state plus a callback rather than a
// generator, the shape §9 calls for in a language without one.
package chainscan

import (
	"errors"

	"github.com/nsdchain/nsd/chaincfg/chainhash"
	"github.com/nsdchain/nsd/wire"
)

// ErrAborted is returned by Run when a Handler replies with Abort.
var ErrAborted = errors.New("chainscan: scan aborted")

// Source is the chain view a Driver walks. A rescan never mutates chain
// state, so it only needs read access to blocks by height.
type Source interface {
	// BlockByHeight returns the block at height and its hash, or an error
	// if height exceeds the current tip.
	BlockByHeight(height int32) (*wire.MsgBlock, chainhash.Hash, error)

	// Tip returns the height of the best block.
	Tip() int32
}

// Entry is one block a Driver presents to its Handler.
type Entry struct {
	Height int32
	Hash   chainhash.Hash
	Block  *wire.MsgBlock
}

// Signal is the per-iteration control a Handler returns to the Driver
// (§5 "Cancellation").
type Signal int

const (
	// Next advances past the current entry to the following block.
	Next Signal = iota
	// Repeat redelivers the current entry unchanged, e.g. because the
	// handler needs to re-run it against an updated watch set.
	Repeat
	// RepeatSet replaces the watch filter and redelivers the current
	// entry against it.
	RepeatSet
	// RepeatAdd extends the watch filter and redelivers the current
	// entry against it.
	RepeatAdd
	// Abort stops the scan; Run returns ErrAborted.
	Abort
)

// Reply is what a Handler returns for each Entry it's given.
type Reply struct {
	Signal Signal

	// Filter is the replacement watch set for RepeatSet.
	Filter []chainhash.Hash

	// Items extends the watch set for RepeatAdd.
	Items []chainhash.Hash
}

// Handler inspects one block's worth of filtered transactions and decides
// how the scan should proceed.
type Handler func(entry Entry, txs []*wire.MsgTx) Reply

// Driver walks a Source's blocks from a starting height, presenting only
// the transactions touching names in its watch filter. Its state is just
// an index and a filter, so a caller can suspend and resume a rescan
// across process restarts by persisting both.
type Driver struct {
	source Source
	index  int32
	filter map[chainhash.Hash]struct{}
}

// NewDriver builds a Driver that will start scanning at start, watching
// the names named by filter. A nil or empty filter watches nothing, which
// is a legitimate starting point for a scan that grows its filter via
// RepeatAdd as it discovers names of interest.
func NewDriver(source Source, start int32, filter []chainhash.Hash) *Driver {
	d := &Driver{source: source, index: start, filter: make(map[chainhash.Hash]struct{}, len(filter))}
	for _, h := range filter {
		d.filter[h] = struct{}{}
	}
	return d
}

// Index returns the height the Driver will next present.
func (d *Driver) Index() int32 {
	return d.index
}

// Filter returns the names currently being watched.
func (d *Driver) Filter() []chainhash.Hash {
	out := make([]chainhash.Hash, 0, len(d.filter))
	for h := range d.filter {
		out = append(out, h)
	}
	return out
}

// Run presents blocks from the Driver's current index through the
// source's tip, one at a time, calling handle and acting on its Reply
// until the tip is passed or handle returns Abort.
func (d *Driver) Run(handle Handler) error {
	for d.index <= d.source.Tip() {
		block, hash, err := d.source.BlockByHeight(d.index)
		if err != nil {
			return err
		}

		entry := Entry{Height: d.index, Hash: hash, Block: block}
		reply := handle(entry, d.filterTxs(block))

		switch reply.Signal {
		case Next:
			d.index++
		case Repeat:
			// present the same index again
		case RepeatSet:
			d.filter = make(map[chainhash.Hash]struct{}, len(reply.Filter))
			for _, h := range reply.Filter {
				d.filter[h] = struct{}{}
			}
		case RepeatAdd:
			for _, h := range reply.Items {
				d.filter[h] = struct{}{}
			}
		case Abort:
			return ErrAborted
		}
	}
	return nil
}

// filterTxs returns the subset of block's transactions carrying a
// covenant whose nameHash is in the Driver's watch filter.
func (d *Driver) filterTxs(block *wire.MsgBlock) []*wire.MsgTx {
	if len(d.filter) == 0 {
		return nil
	}

	var matched []*wire.MsgTx
	for _, tx := range block.Transactions {
		for _, out := range tx.TxOut {
			if out.Covenant == nil {
				continue
			}
			raw := out.Covenant.NameHash()
			if raw == nil {
				continue
			}
			var hash chainhash.Hash
			if err := hash.SetBytes(raw); err != nil {
				continue
			}
			if _, ok := d.filter[hash]; ok {
				matched = append(matched, tx)
				break
			}
		}
	}
	return matched
}
