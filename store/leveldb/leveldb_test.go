// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package leveldb

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/nsdchain/nsd/migration"
)

func openTestDB(t *testing.T) *leveldb.DB {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDriverLoadRecordMissingReturnsNil(t *testing.T) {
	d := NewDriver(openTestDB(t))

	rec, err := d.LoadRecord()
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestDriverSaveAndLoadRoundTrip(t *testing.T) {
	d := NewDriver(openTestDB(t))

	want := &migration.Record{Version: 1, NextMigration: 4, Skipped: []uint64{1}}
	require.NoError(t, d.SaveRecord(want))

	got, err := d.LoadRecord()
	require.NoError(t, err)
	require.Equal(t, want, got)
}
