// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mining assembles block templates: it drains claims, airdrops,
// and ordinary mempool transactions into a candidate block while
// enforcing the chain's weight, sigop, and per-covenant caps.
package mining

import (
	"container/heap"
	"sort"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"

	"github.com/nsdchain/nsd/blockchain"
	"github.com/nsdchain/nsd/chaincfg"
	"github.com/nsdchain/nsd/chaincfg/chainhash"
	"github.com/nsdchain/nsd/mempool"
	"github.com/nsdchain/nsd/wire"
)

// maxClaimsPerBlock and maxAirdropsPerBlock bound the coinbase-embedded
// claim/airdrop sets regardless of how many are pending, per §4.3 step 2-3.
const (
	maxClaimsPerBlock   = 10
	maxAirdropsPerBlock = 10
)

// Config holds the assembler's dependencies, gathered once at startup
// the way a mining policy holds its chainParams and feature flags.
type Config struct {
	ChainParams *chaincfg.Params
	TxSource    mempool.TxSource

	// BestHeight and BestHash describe the tip the template extends.
	BestHeight int32
	BestHash   chainhash.Hash

	// MedianTimePast is the tip's MTP, the lower bound on the new
	// block's timestamp.
	MedianTimePast int64

	// PrevTime and PrevBits describe the tip header, needed for the
	// TargetReset rule.
	PrevTime int64
	PrevBits uint32

	// RewardScript is the output script that receives the block
	// subsidy plus fees.
	RewardScript []byte

	// PriorityThreshold is the priority score below which the
	// assembler switches from priority ordering to fee-rate ordering.
	PriorityThreshold float64

	// AllocationKey, if set, is the public key CLAIM proofs must verify
	// against before their claim is embedded in a template. Nil accepts
	// every pending claim unchecked.
	AllocationKey *btcec.PublicKey
}

// Template is an assembled, not-yet-mined block plus the bookkeeping the
// miner and the pre-verification pass need.
type Template struct {
	Block    *wire.MsgBlock
	Height   int32
	Fees     []btcutil.Amount
	SigOps   []int64
	Opens    int
	Updates  int
	Renewals int
}

// NewBlockTemplate runs the §4.3 assembly algorithm and returns a
// template ready for proof-of-work search.
func NewBlockTemplate(cfg *Config) (*Template, error) {
	params := cfg.ChainParams

	block := &wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:   1,
			PrevBlock: cfg.BestHash,
			Bits:      nextBits(cfg),
			Timestamp: nextTime(cfg),
		},
	}

	height := cfg.BestHeight + 1
	coinbase := newCoinbaseSkeleton(height, cfg.RewardScript)
	block.AddTransaction(coinbase)

	tmpl := &Template{Block: block, Height: height}

	claims := make([]*mempool.ClaimDesc, 0, len(cfg.TxSource.PendingClaims()))
	for _, c := range cfg.TxSource.PendingClaims() {
		if !verifyClaimProof(cfg.AllocationKey, c) {
			log.Debugf("dropping claim for %q: proof does not verify", c.Name)
			continue
		}
		claims = append(claims, c)
	}
	sort.Slice(claims, func(i, j int) bool { return claims[i].Rate > claims[j].Rate })
	if len(claims) > maxClaimsPerBlock {
		claims = claims[:maxClaimsPerBlock]
	}
	for _, c := range claims {
		appendClaim(coinbase, c)
	}

	airdrops := cfg.TxSource.PendingAirdrops()
	sort.Slice(airdrops, func(i, j int) bool { return airdrops[i].Rate > airdrops[j].Rate })
	if len(airdrops) > maxAirdropsPerBlock {
		airdrops = airdrops[:maxAirdropsPerBlock]
	}
	for _, a := range airdrops {
		appendAirdrop(coinbase, a)
	}

	weight := blockWeight(block)
	sigops := int64(0)

	seenNames := make(map[chainhash.Hash]bool)
	queue := buildDependencyQueue(cfg.TxSource.MiningDescs(), cfg.BestHeight, cfg.PriorityThreshold)

	var totalFees btcutil.Amount
	var priorityWeightUsed int64
	exhausted := false
	for queue.Len() > 0 {
		item := heap.Pop(queue).(*queueItem)
		tx := item.desc.Tx

		if !exhausted && priorityWeightUsed > priorityExhaustionWeight {
			exhausted = true
			for _, pending := range *queue {
				pending.byPriority = false
			}
			heap.Init(queue)
		}

		if !isFinalForTemplate(tx, height, cfg.MedianTimePast) {
			continue
		}

		txWeight := int64(txWeight(tx))
		txSigops := int64(countSigops(tx))
		if weight+txWeight > params.MaxBlockWeight || sigops+txSigops > int64(params.MaxBlockSigops) {
			continue
		}

		opens, updates, renewals, nameHashes, dupe := countCovenants(tx, seenNames)
		if dupe {
			continue
		}
		if tmpl.Opens+opens > int(params.MaxBlockOpens) ||
			tmpl.Updates+updates > int(params.MaxBlockUpdates) ||
			tmpl.Renewals+renewals > int(params.MaxBlockRenewals) {
			continue
		}

		block.AddTransaction(tx)
		weight += txWeight
		sigops += txSigops
		if item.byPriority {
			priorityWeightUsed += txWeight
		}
		tmpl.Opens += opens
		tmpl.Updates += updates
		tmpl.Renewals += renewals
		totalFees += item.desc.Fee
		tmpl.Fees = append(tmpl.Fees, item.desc.Fee)
		tmpl.SigOps = append(tmpl.SigOps, txSigops)
		for _, h := range nameHashes {
			seenNames[h] = true
		}

		for _, dependent := range item.dependents {
			dependent.remaining--
			if dependent.remaining == 0 {
				heap.Push(queue, dependent)
			}
		}
	}

	subsidy := blockchain.CalcBlockSubsidy(height, params)
	coinbase.TxOut[0].Value = subsidy + totalFees

	block.Header.MerkleRoot = blockchain.CalcMerkleRoot(block.Transactions)
	block.Header.WitnessRoot = blockchain.CalcWitnessRoot(block.Transactions)

	log.Debugf("assembled block template at height %d: %d transactions, weight %d, "+
		"%d opens, %d updates, %d renewals, fees %d", height, len(block.Transactions),
		weight, tmpl.Opens, tmpl.Updates, tmpl.Renewals, totalFees)

	return tmpl, nil
}

// nextTime implements §4.3's "updating time" rule: time = max(now, mtp+1).
func nextTime(cfg *Config) int64 {
	now := time.Now().Unix()
	if now <= cfg.MedianTimePast {
		return cfg.MedianTimePast + 1
	}
	return now
}

// nextBits implements the targetReset rule: if the new block's time is
// more than twice the target spacing past the previous block's time, the
// difficulty resets to the network minimum.
func nextBits(cfg *Config) uint32 {
	if !cfg.ChainParams.TargetReset {
		return cfg.PrevBits
	}
	t := nextTime(cfg)
	if t > cfg.PrevTime+2*int64(cfg.ChainParams.TargetTimePerBlock.Seconds()) {
		return cfg.ChainParams.PowLimitBits
	}
	return cfg.PrevBits
}

func blockWeight(block *wire.MsgBlock) int64 {
	base := int64(0)
	witness := int64(0)
	for _, tx := range block.Transactions {
		size := int64(tx.SerializeSize())
		stripped := size
		if tx.HasWitness() {
			for _, in := range tx.TxIn {
				stripped -= int64(wire.VarIntSerializeSize(uint64(len(in.Witness))))
				for _, item := range in.Witness {
					stripped -= int64(wire.VarIntSerializeSize(uint64(len(item))) + len(item))
				}
			}
		}
		base += stripped
		witness += size - stripped
	}
	// Weight follows SegWit's 3x/4x split: base bytes count 4x, witness
	// bytes count 1x on top, so total weight = base*3 + totalSize.
	return base*3 + base + witness
}

func txWeight(tx *wire.MsgTx) int {
	size := tx.SerializeSize()
	return size * 4
}

// countSigops is a conservative placeholder sigop counter: one sigop per
// input and one per output, since this chain's covenant-based scripts
// don't carry the arbitrary opcode surface a full script interpreter
// would need to count precisely.
func countSigops(tx *wire.MsgTx) int {
	return len(tx.TxIn) + len(tx.TxOut)
}

func isFinalForTemplate(tx *wire.MsgTx, height int32, mtp int64) bool {
	if tx.LockTime == 0 {
		return true
	}
	threshold := int64(height)
	if tx.LockTime >= 500000000 {
		threshold = mtp
	}
	if int64(tx.LockTime) < threshold {
		return true
	}
	for _, in := range tx.TxIn {
		if in.Sequence != wire.MaxTxInSequenceNum {
			return false
		}
	}
	return true
}

// countCovenants tallies OPEN/UPDATE/RENEW occurrences in tx and flags
// whether any of its covenant outputs collide with a nameHash already
// committed by an earlier, accepted transaction in this block, or with
// another output of tx itself. It never mutates seen: the caller merges
// nameHashes into seen only once tx is actually added to the block, so a
// rejected tx never poisons a name for later candidates.
func countCovenants(tx *wire.MsgTx, seen map[chainhash.Hash]bool) (opens, updates, renewals int, nameHashes []chainhash.Hash, dupe bool) {
	local := make(map[chainhash.Hash]bool)
	for _, out := range tx.TxOut {
		if out.Covenant == nil || out.Covenant.Type == wire.CovenantNone {
			continue
		}
		raw := out.Covenant.NameHash()
		if raw != nil {
			var hash chainhash.Hash
			copy(hash[:], raw)
			if seen[hash] || local[hash] {
				dupe = true
			}
			local[hash] = true
			nameHashes = append(nameHashes, hash)
		}
		switch out.Covenant.Type {
		case wire.CovenantOpen:
			opens++
		case wire.CovenantUpdate:
			updates++
		case wire.CovenantRenew:
			renewals++
		}
	}
	return
}
