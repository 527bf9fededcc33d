// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import (
	"container/heap"

	"github.com/nsdchain/nsd/chaincfg/chainhash"
	"github.com/nsdchain/nsd/mempool"
)

// queueItem wraps one candidate transaction with the dependency-tracking
// and comparator state the assembler's priority queue needs.
type queueItem struct {
	desc       *mempool.TxDesc
	remaining  int          // unsatisfied parent dependencies
	dependents []*queueItem // items waiting on this one

	priority   float64
	feeRate    float64
	byPriority bool

	index int // heap.Interface bookkeeping
}

// txQueue is a max-heap ordered by priority while priority dominates, and
// by fee rate once the assembler has switched comparators per §4.3 step 4.
type txQueue []*queueItem

func (q txQueue) Len() int { return len(q) }

func (q txQueue) Less(i, j int) bool {
	if q[i].byPriority && q[j].byPriority {
		if q[i].priority != q[j].priority {
			return q[i].priority > q[j].priority
		}
		return q[i].feeRate > q[j].feeRate
	}
	return q[i].feeRate > q[j].feeRate
}

func (q txQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *txQueue) Push(x interface{}) {
	item := x.(*queueItem)
	item.index = len(*q)
	*q = append(*q, item)
}

func (q *txQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[:n-1]
	return item
}

// priorityExhaustionWeight is the accumulated transaction weight after
// which the assembler stops honoring coin-age priority and orders purely
// by fee rate, the same two-phase strategy as btcd's reference assembler.
const priorityExhaustionWeight = 1_000_000 * 4 // weight units, ~1MB base-equivalent

// buildDependencyQueue builds the initial priority-ordered queue from the
// mempool's candidate descriptors, linking parent/child relationships so
// a dependent only becomes eligible once every ancestor in this block has
// already been included.
func buildDependencyQueue(descs []*mempool.TxDesc, tipHeight int32, priorityThreshold float64) *txQueue {
	byTxHash := make(map[chainhash.Hash]*queueItem, len(descs))
	items := make([]*queueItem, 0, len(descs))

	for _, d := range descs {
		item := &queueItem{desc: d}
		item.priority = calcPriority(d, tipHeight)
		if d.Fee > 0 {
			item.feeRate = float64(d.Fee) / float64(d.Tx.SerializeSize())
		}
		item.byPriority = item.priority >= priorityThreshold
		items = append(items, item)
		byTxHash[d.Tx.TxHash()] = item
	}

	for _, item := range items {
		for _, in := range item.desc.Tx.TxIn {
			if parent, ok := byTxHash[in.PreviousOutPoint.Hash]; ok {
				parent.dependents = append(parent.dependents, item)
				item.remaining++
			}
		}
	}

	queue := &txQueue{}
	heap.Init(queue)
	for _, item := range items {
		if item.remaining == 0 {
			heap.Push(queue, item)
		}
	}
	return queue
}

// calcPriority scores a transaction as its StartingPriority plus the
// number of blocks the mempool entry has waited since it was added, so
// the score grows as the entry ages relative to the tip.
func calcPriority(d *mempool.TxDesc, tipHeight int32) float64 {
	age := tipHeight - d.Added
	if age < 0 {
		age = 0
	}
	return d.StartingPriority + float64(age)
}
