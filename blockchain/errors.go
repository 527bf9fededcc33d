// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import "fmt"

// ErrorCode identifies a stable, ASCII consensus-failure reason. Peers that
// relay a block rejected with one of these codes lose reputation in
// proportion to the code's severity.
type ErrorCode int

const (
	// ErrDuplicateBlock indicates a block has already been processed.
	ErrDuplicateBlock ErrorCode = iota

	// ErrNoTransactions indicates a block has no transactions.
	ErrNoTransactions

	// ErrFirstTxNotCoinbase indicates the first transaction in a block is
	// not a coinbase transaction.
	ErrFirstTxNotCoinbase

	// ErrBadDiffBits indicates the difficulty bits of a block do not match
	// the calculated value.
	ErrBadDiffBits

	// ErrTimeTooOld indicates the block's timestamp is not after the
	// median of the last several blocks.
	ErrTimeTooOld

	// ErrMissingTxOut indicates a transaction references an output that
	// either does not exist or has already been spent.
	ErrMissingTxOut

	// ErrBadCoinbaseHeight indicates the coinbase's height commitment does
	// not match the block's actual height.
	ErrBadCoinbaseHeight

	// ErrWitnessCommitmentMismatch indicates the witness root in the
	// header does not match the commitment computed from the block's
	// transactions.
	ErrWitnessCommitmentMismatch

	// ErrMerkleRootMismatch indicates the header's MerkleRoot does not
	// match the block's actual Merkle root.
	ErrMerkleRootMismatch

	// ErrBlockWeightTooHigh indicates a block exceeds the maximum allowed
	// weight.
	ErrBlockWeightTooHigh

	// ErrBlockTooBig indicates a block's serialized size exceeds the
	// maximum allowed.
	ErrBlockTooBig

	// ErrTooManySigOps indicates a block's total signature operation
	// count exceeds the maximum allowed.
	ErrTooManySigOps

	// ErrTooManyOpens indicates a block's OPEN covenant count exceeds
	// MaxBlockOpens.
	ErrTooManyOpens

	// ErrTooManyUpdates indicates a block's UPDATE covenant count exceeds
	// MaxBlockUpdates.
	ErrTooManyUpdates

	// ErrTooManyRenewals indicates a block's RENEW covenant count exceeds
	// MaxBlockRenewals.
	ErrTooManyRenewals

	// ErrDuplicateName indicates two transactions in the same block carry
	// an exclusive covenant for the same nameHash.
	ErrDuplicateName

	// ErrTxOutTotalTooLarge indicates a transaction's total output value
	// exceeds the maximum allowed.
	ErrTxOutTotalTooLarge

	// ErrSpendTooHigh indicates a transaction's total input value is less
	// than its total output value.
	ErrSpendTooHigh

	// ErrImmatureSpend indicates a transaction attempts to spend a
	// coinbase output before it has reached CoinbaseMaturity.
	ErrImmatureSpend

	// ErrBadCoinbaseValue indicates a coinbase pays out more than the
	// allowed subsidy plus fees.
	ErrBadCoinbaseValue

	// ErrForkTooOld indicates a reorganization would rewrite a block at
	// or before a known checkpoint.
	ErrForkTooOld

	// ErrBadNameState indicates a covenant is not permitted by the
	// current phase of the name it targets.
	ErrBadNameState

	// ErrBadAuctionValue indicates a REVEAL or REGISTER carries a
	// value/highest pairing inconsistent with second-price auction rules.
	ErrBadAuctionValue

	// ErrNonexistentInput indicates a covenant input references a name
	// with no NameState, or an owner outpoint mismatch.
	ErrNonexistentInput

	// ErrMalformedCovenant indicates a covenant's items could not be
	// decoded into the fixed layout its type requires.
	ErrMalformedCovenant

	// ErrTransferLockup indicates a FINALIZE arrived before TransferLockup
	// blocks elapsed since the matching TRANSFER, a hard permission-table
	// condition rather than assembler or mempool policy.
	ErrTransferLockup
)

var errorCodeReasons = map[ErrorCode]string{
	ErrDuplicateBlock:            "duplicate-block",
	ErrNoTransactions:            "bad-blk-length",
	ErrFirstTxNotCoinbase:        "bad-cb-missing",
	ErrBadDiffBits:               "bad-diffbits",
	ErrTimeTooOld:                "time-too-old",
	ErrMissingTxOut:              "bad-txns-inputs-missingorspent",
	ErrBadCoinbaseHeight:         "bad-cb-height",
	ErrWitnessCommitmentMismatch: "bad-witnessroot",
	ErrMerkleRootMismatch:        "bad-txnmrklroot",
	ErrBlockWeightTooHigh:        "bad-blk-weight",
	ErrBlockTooBig:               "bad-blk-length",
	ErrTooManySigOps:             "bad-blk-sigops",
	ErrTooManyOpens:              "bad-blk-opens",
	ErrTooManyUpdates:            "bad-blk-updates",
	ErrTooManyRenewals:           "bad-blk-renewals",
	ErrDuplicateName:             "bad-blk-names",
	ErrTxOutTotalTooLarge:        "bad-txns-txouttotal-toolarge",
	ErrSpendTooHigh:              "bad-txns-in-belowout",
	ErrImmatureSpend:             "bad-txns-premature-spend-of-coinbase",
	ErrBadCoinbaseValue:          "bad-cb-amount",
	ErrForkTooOld:                "bad-fork-prior-to-checkpoint",
	ErrBadNameState:              "bad-name-state",
	ErrBadAuctionValue:           "bad-auction-value",
	ErrNonexistentInput:          "bad-nonexistent-input",
	ErrMalformedCovenant:         "bad-covenant-data",
	ErrTransferLockup:            "bad-transfer-lockup",
}

// String returns the stable ASCII reason string for the error code.
func (e ErrorCode) String() string {
	if s, ok := errorCodeReasons[e]; ok {
		return s
	}
	return "unknown-reason"
}

// RuleError identifies a rule violation. It carries both the stable
// machine-readable reason (via Code) and a human-readable description for
// logs.
type RuleError struct {
	Code        ErrorCode
	Description string
}

// Error satisfies the error interface.
func (e RuleError) Error() string {
	return e.Description
}

// GetCode returns the error's reason code.
func (e RuleError) GetCode() ErrorCode {
	return e.Code
}

// ruleError creates a RuleError given a set of arguments.
func ruleError(c ErrorCode, desc string) RuleError {
	return RuleError{Code: c, Description: desc}
}

// ruleErrorf is a convenience wrapper around ruleError that builds the
// description with fmt.Sprintf.
func ruleErrorf(c ErrorCode, format string, args ...interface{}) RuleError {
	return ruleError(c, fmt.Sprintf(format, args...))
}

// PolicyError identifies a non-consensus validation failure from the
// assembler, resolver, or mempool. Unlike RuleError it is never scored
// against a peer and never aborts the process; it simply means "this
// particular thing could not be done."
type PolicyError struct {
	Reason string
}

// Error satisfies the error interface.
func (e PolicyError) Error() string {
	return e.Reason
}

// policyError creates a PolicyError with the given reason.
func policyError(reason string) PolicyError {
	return PolicyError{Reason: reason}
}

// policyErrorf is a convenience wrapper around policyError that builds the
// reason with fmt.Sprintf.
func policyErrorf(format string, args ...interface{}) PolicyError {
	return policyError(fmt.Sprintf(format, args...))
}
