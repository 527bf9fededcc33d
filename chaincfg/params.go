// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"errors"
	"math/big"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/nsdchain/nsd/chaincfg/chainhash"
	"github.com/nsdchain/nsd/wire"
)

var (
	// bigOne is 1 represented as a big.Int, defined once to avoid
	// reallocating it.
	bigOne = big.NewInt(1)

	// mainPowLimit is the highest proof-of-work value a main network block
	// may have: 2^224 - 1.
	mainPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 224), bigOne)

	// regTestPowLimit is the highest proof-of-work value a regression/sim
	// network block may have: 2^255 - 1, trivially easy for local testing.
	regTestPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)
)

// Checkpoint identifies a known-good block in the chain, used to reject
// deep reorganizations below the checkpoint height.
type Checkpoint struct {
	Height int32
	Hash   *chainhash.Hash
}

// DNSSeed identifies a DNS seed used for peer discovery.
type DNSSeed struct {
	Host         string
	HasFiltering bool
}

// String returns the hostname of the DNS seed.
func (d DNSSeed) String() string {
	return d.Host
}

// Params defines a naming-chain network by its consensus, auction-window,
// and block-assembler parameters. Applications differentiate networks, and
// the addresses and keys that belong to them, by comparing against a
// registered Params value rather than a bare magic number.
type Params struct {
	// Name is a human-readable identifier for the network.
	Name string

	// Net is the magic used to identify the network.
	Net wire.BitcoinNet

	// DefaultPort is the default peer-to-peer port for the network.
	DefaultPort string

	// DNSSeeds lists seeds used for peer discovery.
	DNSSeeds []DNSSeed

	// GenesisBlock is the first block of the chain.
	GenesisBlock *wire.MsgBlock

	// GenesisHash is the starting block hash.
	GenesisHash *chainhash.Hash

	// PowLimit is the highest allowed proof-of-work value for a block.
	PowLimit *big.Int

	// PowLimitBits is PowLimit in compact form.
	PowLimitBits uint32

	// PoWNoRetargeting disables difficulty retargeting; only regression
	// and simulation networks should set this.
	PoWNoRetargeting bool

	// TargetTimespan is the time period over which difficulty is
	// recalculated.
	TargetTimespan time.Duration

	// TargetTimePerBlock is the desired time between blocks.
	TargetTimePerBlock time.Duration

	// RetargetAdjustmentFactor bounds how much the difficulty may move in
	// a single retarget.
	RetargetAdjustmentFactor int64

	// ReduceMinDifficulty, if set, allows minimum-difficulty blocks after
	// MinDiffReductionTime has elapsed without a block. Test networks only.
	ReduceMinDifficulty bool

	// MinDiffReductionTime is the quiet period before ReduceMinDifficulty
	// takes effect.
	MinDiffReductionTime time.Duration

	// TargetReset, when set, resets the next block's difficulty to
	// PowLimitBits whenever its timestamp is more than
	// 2*TargetTimePerBlock after the previous block's.
	TargetReset bool

	// CoinbaseMaturity is the number of blocks before a coinbase output
	// may be spent.
	CoinbaseMaturity uint16

	// SubsidyReductionInterval is the number of blocks between halvings.
	SubsidyReductionInterval int32

	// InitialSubsidy is the coinbase reward paid for block 1, before any
	// halving, denominated in the chain's base unit.
	InitialSubsidy btcutil.Amount

	// --- Name-auction windows (one per phase boundary) ---

	// TreeInterval is the number of blocks between name-tree root
	// commitments.
	TreeInterval int32

	// BiddingPeriod is how long, in blocks, a name accepts BIDs after
	// OPEN.
	BiddingPeriod int32

	// RevealPeriod is how long, in blocks, bidders may REVEAL after
	// bidding closes.
	RevealPeriod int32

	// TransferLockup is the number of blocks a TRANSFER must wait before
	// it may be FINALIZEd.
	TransferLockup int32

	// AuctionMaturity is the number of blocks a REVOKEd name stays
	// unusable before it may be re-OPENed.
	AuctionMaturity int32

	// RenewalWindow is the number of blocks a registration stays valid
	// without a RENEW before it lapses.
	RenewalWindow int32

	// RenewalWindowGraceDivisor gates how early a RENEW may be sent:
	// only the last RenewalWindow/RenewalWindowGraceDivisor blocks of the
	// window accept one, so renewals can't be sent one block after the
	// previous renewal and reset the clock indefinitely.
	RenewalWindowGraceDivisor int32

	// LockupPeriod is the total number of blocks a BID's collateral stays
	// locked from OPEN until it is REDEEMable (BiddingPeriod + RevealPeriod,
	// tracked as its own parameter since wallets need it without deriving
	// it from the other two every time).
	LockupPeriod int32

	// --- Block assembler caps (§4.3) ---

	MaxBlockWeight   int64
	MaxBlockSize     int64
	MaxBlockSigops   int64
	MaxBlockOpens    int
	MaxBlockUpdates  int
	MaxBlockRenewals int

	// AirdropTreeLeaves is the fixed leaf count N of the airdrop bitfield.
	AirdropTreeLeaves uint32

	// Checkpoints, ordered oldest to newest.
	Checkpoints []Checkpoint

	RelayNonStdTxs bool

	// Bech32HRPSegwit is the human-readable part for bech32 addresses.
	Bech32HRPSegwit string

	PubKeyHashAddrID        byte
	ScriptHashAddrID        byte
	PrivateKeyID            byte
	WitnessPubKeyHashAddrID byte
	WitnessScriptHashAddrID byte

	HDPrivateKeyID [4]byte
	HDPublicKeyID  [4]byte
	HDCoinType     uint32
}

// MainNetParams defines the network parameters for the main network.
var MainNetParams = Params{
	Name:        "mainnet",
	Net:         wire.MainNet,
	DefaultPort: "9632",
	DNSSeeds: []DNSSeed{
		{"seed1.nsd.chain", true},
		{"seed2.nsd.chain", true},
		{"seed3.nsd.chain", true},
	},

	GenesisBlock: &genesisBlock,
	GenesisHash:  &genesisHash,

	PowLimit:         mainPowLimit,
	PowLimitBits:     0x1d00ffff,
	PoWNoRetargeting: false,

	TargetTimespan:           time.Hour * 24,
	TargetTimePerBlock:       time.Minute * 5,
	RetargetAdjustmentFactor: 4,
	ReduceMinDifficulty:      false,
	MinDiffReductionTime:     0,
	TargetReset:              true,

	CoinbaseMaturity:         100,
	SubsidyReductionInterval: 262800, // ~2.5 years at 5-minute blocks
	InitialSubsidy:           2000 * 1e6,

	TreeInterval:              36,     // ~3 hours
	BiddingPeriod:             2880,   // ~10 days
	RevealPeriod:              1440,   // ~5 days
	TransferLockup:            2016,   // ~1 week
	AuctionMaturity:           4032,   // ~2 weeks
	RenewalWindow:             262800, // ~2.5 years
	RenewalWindowGraceDivisor: 8,      // last 1/8 of the window accepts a RENEW
	LockupPeriod:              2880 + 1440,

	MaxBlockWeight:   4_000_000,
	MaxBlockSize:     1_000_000,
	MaxBlockSigops:   80_000,
	MaxBlockOpens:    100,
	MaxBlockUpdates:  1000,
	MaxBlockRenewals: 1000,

	AirdropTreeLeaves: 1 << 20,

	Checkpoints: []Checkpoint{},

	RelayNonStdTxs: false,

	Bech32HRPSegwit: "ns",

	PubKeyHashAddrID:        0x1c,
	ScriptHashAddrID:        0x3c,
	PrivateKeyID:            0x9c,
	WitnessPubKeyHashAddrID: 0x06,
	WitnessScriptHashAddrID: 0x0a,

	HDPrivateKeyID: [4]byte{0x04, 0x88, 0xad, 0xe4},
	HDPublicKeyID:  [4]byte{0x04, 0x88, 0xb2, 0x1e},

	HDCoinType: 9632,
}

// SimNetParams defines the network parameters for the local simulation
// network: trivial proof-of-work and compressed auction windows so a whole
// auction lifecycle fits into a short-lived test.
var SimNetParams = Params{
	Name:        "simnet",
	Net:         wire.SimNet,
	DefaultPort: "19632",

	GenesisBlock: &simNetGenesisBlock,
	GenesisHash:  &simNetGenesisHash,

	PowLimit:         regTestPowLimit,
	PowLimitBits:     0x207fffff,
	PoWNoRetargeting: true,

	TargetTimespan:           time.Hour * 24,
	TargetTimePerBlock:       time.Minute * 5,
	RetargetAdjustmentFactor: 4,
	ReduceMinDifficulty:      true,
	MinDiffReductionTime:     time.Minute * 10,
	TargetReset:              false,

	CoinbaseMaturity:         10,
	SubsidyReductionInterval: 210_000,
	InitialSubsidy:           2000 * 1e6,

	TreeInterval:              5,
	BiddingPeriod:             10,
	RevealPeriod:              10,
	TransferLockup:            10,
	AuctionMaturity:           10,
	RenewalWindow:             5000,
	RenewalWindowGraceDivisor: 8,
	LockupPeriod:              20,

	MaxBlockWeight:   4_000_000,
	MaxBlockSize:     1_000_000,
	MaxBlockSigops:   80_000,
	MaxBlockOpens:    100,
	MaxBlockUpdates:  1000,
	MaxBlockRenewals: 1000,

	AirdropTreeLeaves: 1 << 10,

	RelayNonStdTxs: true,

	Bech32HRPSegwit: "nss",

	PubKeyHashAddrID:        0x3f,
	ScriptHashAddrID:        0x7b,
	PrivateKeyID:            0x64,
	WitnessPubKeyHashAddrID: 0x19,
	WitnessScriptHashAddrID: 0x28,

	HDPrivateKeyID: [4]byte{0x04, 0x20, 0xb9, 0x00},
	HDPublicKeyID:  [4]byte{0x04, 0x20, 0xbd, 0x3a},

	HDCoinType: 1,
}

var (
	// ErrDuplicateNet is returned when a network is registered twice.
	ErrDuplicateNet = errors.New("duplicate network")

	// ErrUnknownHDKeyID is returned when an HD key ID has no registered
	// counterpart.
	ErrUnknownHDKeyID = errors.New("unknown hd private extended key bytes")

	// ErrInvalidHDKeyID is returned when an HD key ID is malformed.
	ErrInvalidHDKeyID = errors.New("invalid hd extended key version bytes")
)

var (
	registeredNets       = make(map[wire.BitcoinNet]struct{})
	pubKeyHashAddrIDs    = make(map[byte]struct{})
	scriptHashAddrIDs    = make(map[byte]struct{})
	bech32SegwitPrefixes = make(map[string]struct{})
	hdPrivToPubKeyIDs    = make(map[[4]byte][]byte)
)

// Register registers the parameters for a network, so library code can look
// up addresses and keys for it without a direct dependency on the main
// package that selected it. It errors with ErrDuplicateNet if the network
// magic is already registered.
func Register(params *Params) error {
	if _, ok := registeredNets[params.Net]; ok {
		return ErrDuplicateNet
	}
	registeredNets[params.Net] = struct{}{}
	pubKeyHashAddrIDs[params.PubKeyHashAddrID] = struct{}{}
	scriptHashAddrIDs[params.ScriptHashAddrID] = struct{}{}

	if err := RegisterHDKeyID(params.HDPublicKeyID[:], params.HDPrivateKeyID[:]); err != nil {
		return err
	}

	bech32SegwitPrefixes[params.Bech32HRPSegwit+"1"] = struct{}{}
	return nil
}

// mustRegister is like Register but panics on error; only safe to call from
// package init.
func mustRegister(params *Params) {
	if err := Register(params); err != nil {
		panic("failed to register network: " + err.Error())
	}
}

// IsPubKeyHashAddrID reports whether id prefixes a pay-to-pubkey-hash
// address on any registered network.
func IsPubKeyHashAddrID(id byte) bool {
	_, ok := pubKeyHashAddrIDs[id]
	return ok
}

// IsScriptHashAddrID reports whether id prefixes a pay-to-script-hash
// address on any registered network.
func IsScriptHashAddrID(id byte) bool {
	_, ok := scriptHashAddrIDs[id]
	return ok
}

// IsBech32SegwitPrefix reports whether prefix is a known bech32 HRP+"1" on
// any registered network.
func IsBech32SegwitPrefix(prefix string) bool {
	_, ok := bech32SegwitPrefixes[strings.ToLower(prefix)]
	return ok
}

// RegisterHDKeyID registers a public/private HD extended key ID pair so
// HDPrivateKeyToPublicKeyID can look up the counterpart of a private key ID.
func RegisterHDKeyID(hdPublicKeyID, hdPrivateKeyID []byte) error {
	if len(hdPublicKeyID) != 4 || len(hdPrivateKeyID) != 4 {
		return ErrInvalidHDKeyID
	}

	var keyID [4]byte
	copy(keyID[:], hdPrivateKeyID)
	hdPrivToPubKeyIDs[keyID] = hdPublicKeyID
	return nil
}

// HDPrivateKeyToPublicKeyID returns the public key ID registered for the
// given private key ID.
func HDPrivateKeyToPublicKeyID(id []byte) ([]byte, error) {
	if len(id) != 4 {
		return nil, ErrUnknownHDKeyID
	}

	var key [4]byte
	copy(key[:], id)
	pubBytes, ok := hdPrivToPubKeyIDs[key]
	if !ok {
		return nil, ErrUnknownHDKeyID
	}
	return pubBytes, nil
}

func init() {
	mustRegister(&MainNetParams)
	mustRegister(&SimNetParams)
}
