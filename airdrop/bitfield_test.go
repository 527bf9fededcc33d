// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package airdrop

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFieldGetSetOutOfRange(t *testing.T) {
	f := New(10)
	require.False(t, f.IsSpent(3))
	f.Set(3, true)
	require.True(t, f.IsSpent(3))

	require.True(t, f.IsSpent(10))
	require.True(t, f.IsSpent(1000))

	f.Set(10, true)
	require.True(t, f.IsSpent(10))
}

func TestFieldEncodeDecodeRoundTrip(t *testing.T) {
	f := New(20)
	f.Set(0, true)
	f.Set(19, true)

	data := f.Encode()
	require.Len(t, data, 3)

	got, err := Decode(20, data)
	require.NoError(t, err)
	require.True(t, got.IsSpent(0))
	require.True(t, got.IsSpent(19))
	require.False(t, got.IsSpent(1))
}

func TestDecodeRejectsWrongLength(t *testing.T) {
	_, err := Decode(20, make([]byte, 2))
	require.Error(t, err)
}

func TestBatchSpendRejectsDoubleSpend(t *testing.T) {
	f := New(10)
	f.Set(2, true)

	b := NewBatch(f)
	require.False(t, b.Spend(2), "already spent in the committed field")
	require.True(t, b.Spend(5))
	require.False(t, b.Spend(5), "already spent earlier in this batch")
}

func TestBatchUndoClearsPending(t *testing.T) {
	f := New(10)
	b := NewBatch(f)
	require.True(t, b.Spend(1))
	b.Undo()

	require.False(t, f.IsSpent(1), "undo must not have touched the field")
	require.True(t, b.Spend(1), "index should be spendable again after undo")
}

func TestBatchCommitAppliesPendingBits(t *testing.T) {
	f := New(10)
	b := NewBatch(f)
	require.True(t, b.Spend(4))
	require.True(t, b.Spend(7))

	b.Commit(f)
	require.True(t, f.IsSpent(4))
	require.True(t, f.IsSpent(7))

	b2 := NewBatch(f)
	require.False(t, b2.Spend(4))
}
