// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package leveldb is a concrete, goleveldb-backed migration.Driver, kept
// separate from names.LevelDBStore even though both key unrelated
// concerns into one shared database rather than opening one handle per
// concern (see names/leveldbstore.go's nameKeyPrefix comment) — a daemon
// wiring both opens a single *leveldb.DB and hands it to each.
package leveldb

import (
	"errors"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/nsdchain/nsd/migration"
)

// migrationRecordKey is the single fixed key a database's migration.Record
// lives under, namespaced the same way nameKeyPrefix namespaces NameState
// records in names/leveldbstore.go.
var migrationRecordKey = []byte("migration:record")

// Driver adapts a *leveldb.DB to migration.Driver.
type Driver struct {
	db *leveldb.DB
}

// NewDriver wraps an already-open database handle. The caller owns the
// handle's lifecycle; Driver never closes it.
func NewDriver(db *leveldb.DB) *Driver {
	return &Driver{db: db}
}

// LoadRecord implements migration.Driver.
func (d *Driver) LoadRecord() (*migration.Record, error) {
	raw, err := d.db.Get(migrationRecordKey, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return migration.DecodeRecord(raw)
}

// SaveRecord implements migration.Driver.
func (d *Driver) SaveRecord(r *migration.Record) error {
	raw, err := r.Encode()
	if err != nil {
		return err
	}
	return d.db.Put(migrationRecordKey, raw, nil)
}
