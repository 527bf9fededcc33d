// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package migration is the minimal forward-only versioned schema runner
// every node needs at boot, kept deliberately thin since the engineering
// core lives in names, mining, and resolver, not here. A database carries
// exactly one Record describing how far its migrations have progressed;
// Manager.Open decides, from that record and the registered Migration
// sequence, what (if anything) still needs to run before the database is
// safe to use.
package migration

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/nsdchain/nsd/wire"
)

// recordVersion versions the Record encoding itself, the same
// forward-compatibility escape hatch names.NameState's own Serialize uses.
const recordVersion = 1

var errUnsupportedVersion = errors.New("migration: unsupported record version")

// ErrMigrationsRemain is returned by Open when an existing database has
// pending migrations and the operator-supplied target doesn't name the
// latest migration ID, per §6: a boot must not silently run migrations an
// operator hasn't explicitly acknowledged.
var ErrMigrationsRemain = errors.New("migration: pending migrations require an explicit operator target")

// Action is what a registered Migration does to the database's recorded
// position when it runs.
type Action int

const (
	// Migrate runs the migration's Run function and advances past it.
	Migrate Action = iota
	// Skip advances past the migration without running it, recording its
	// ID in Skipped so later audits can see it was deliberately bypassed.
	Skip
	// FakeMigrate advances past the migration without running it and
	// without recording it as skipped, for databases known by other means
	// to already be in the post-migration state.
	FakeMigrate
)

func (a Action) String() string {
	switch a {
	case Migrate:
		return "MIGRATE"
	case Skip:
		return "SKIP"
	case FakeMigrate:
		return "FAKE_MIGRATE"
	default:
		return "UNKNOWN"
	}
}

// Migration is one step in the dense ID sequence. Run is only invoked for
// steps resolved to Migrate; Resolve picks the Action for a given step at
// Open time, so the same registered sequence can be driven differently by
// different operator targets (a normal boot vs. a recovery boot that fakes
// past a step already applied by hand).
type Migration struct {
	ID   uint64
	Name string
	Run  func(ctx context.Context) error
}

// Resolver picks the Action to take for a pending migration. The default
// Resolver (used when Open is called with a nil one) always returns
// Migrate; operators wanting to skip or fake-migrate a specific ID supply
// their own.
type Resolver func(m Migration) Action

func migrateAll(Migration) Action { return Migrate }

// Record is the on-disk bookkeeping record (§6): version, whether a
// migration was interrupted mid-run, the next pending ID, and the set of
// IDs that were explicitly skipped rather than run.
type Record struct {
	Version        uint32
	InProgress     bool
	NextMigration  uint64
	Skipped        []uint64
	InProgressData []byte
}

// Driver is the storage a Manager reads and writes its Record through.
// Out of scope as a concrete concern per spec.md §1; store/leveldb
// supplies a concrete implementation for tests and as a reference.
type Driver interface {
	// LoadRecord returns the stored Record, or nil if the database has
	// never run a migration (a fresh database).
	LoadRecord() (*Record, error)
	SaveRecord(*Record) error
}

// Encode serializes a Record, starting with its version as a 4-byte
// little-endian uint32 (names.NameState.Serialize uses a single version
// byte instead).
func (r *Record) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, uint32(recordVersion)); err != nil {
		return nil, err
	}
	var inProgress byte
	if r.InProgress {
		inProgress = 1
	}
	if err := buf.WriteByte(inProgress); err != nil {
		return nil, err
	}
	if err := wire.WriteVarInt(&buf, 0, r.NextMigration); err != nil {
		return nil, err
	}
	if err := wire.WriteVarInt(&buf, 0, uint64(len(r.Skipped))); err != nil {
		return nil, err
	}
	for _, id := range r.Skipped {
		if err := wire.WriteVarInt(&buf, 0, id); err != nil {
			return nil, err
		}
	}
	if err := wire.WriteVarBytes(&buf, 0, r.InProgressData); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeRecord is the inverse of Record.Encode.
func DecodeRecord(data []byte) (*Record, error) {
	r := bytes.NewReader(data)

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, err
	}
	if version != recordVersion {
		return nil, fmt.Errorf("%w: got %d", errUnsupportedVersion, version)
	}

	inProgress, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	next, err := wire.ReadVarInt(r, 0)
	if err != nil {
		return nil, err
	}

	count, err := wire.ReadVarInt(r, 0)
	if err != nil {
		return nil, err
	}
	skipped := make([]uint64, 0, count)
	for i := uint64(0); i < count; i++ {
		id, err := wire.ReadVarInt(r, 0)
		if err != nil {
			return nil, err
		}
		skipped = append(skipped, id)
	}

	inProgressData, err := wire.ReadVarBytes(r, 0, 1<<24, "InProgressData")
	if err != nil {
		return nil, err
	}

	return &Record{
		Version:        version,
		InProgress:     inProgress != 0,
		NextMigration:  next,
		Skipped:        skipped,
		InProgressData: inProgressData,
	}, nil
}

// Manager runs a registered, dense (0, 1, 2, ...) migration sequence
// against a Driver's stored Record.
type Manager struct {
	driver     Driver
	migrations []Migration
}

// NewManager validates that migrations forms a dense 0-based ID sequence
// in order and returns a Manager over it.
func NewManager(driver Driver, migrations []Migration) (*Manager, error) {
	for i, m := range migrations {
		if m.ID != uint64(i) {
			return nil, fmt.Errorf("migration: sequence is not dense at index %d: got ID %d", i, m.ID)
		}
	}
	return &Manager{driver: driver, migrations: migrations}, nil
}

// Latest returns the highest registered migration ID an operator must
// pass as Open's target to let pending migrations run, or 0 if none are
// registered.
func (m *Manager) Latest() uint64 {
	if len(m.migrations) == 0 {
		return 0
	}
	return uint64(len(m.migrations) - 1)
}

// Open runs migrations forward from the database's recorded position.
//
// A fresh database (no Record yet) skips straight to the latest ID without
// running anything, since there is no prior schema for a migration to act
// on. An existing database with migrations remaining refuses to open
// (ErrMigrationsRemain) unless target is non-nil and equals the latest
// registered ID, acknowledging the operator has reviewed what's about to
// run. resolve picks MIGRATE/SKIP/FAKE_MIGRATE per pending step; a nil
// resolve defaults every step to MIGRATE.
func (m *Manager) Open(ctx context.Context, target *uint64, resolve Resolver) error {
	if resolve == nil {
		resolve = migrateAll
	}

	record, err := m.driver.LoadRecord()
	if err != nil {
		return err
	}

	// count is the number of registered migrations; a dense 0-based
	// sequence means the latest migration's ID is count-1 and "nothing
	// pending" means NextMigration == count.
	count := uint64(len(m.migrations))

	if record == nil {
		log.Infof("fresh database, skipping straight to migration %d", count)
		return m.driver.SaveRecord(&Record{Version: recordVersion, NextMigration: count})
	}

	if record.NextMigration >= count {
		return nil
	}

	latestID := count - 1
	if target == nil || *target != latestID {
		return fmt.Errorf("%w: %d migrations pending, latest ID is %d", ErrMigrationsRemain, count-record.NextMigration, latestID)
	}

	skipped := append([]uint64{}, record.Skipped...)
	for _, step := range m.migrations[record.NextMigration:] {
		action := resolve(step)
		log.Infof("migration %d (%s): %s", step.ID, step.Name, action)

		if action == Migrate {
			record.InProgress = true
			if err := m.driver.SaveRecord(record); err != nil {
				return err
			}
			if err := step.Run(ctx); err != nil {
				return fmt.Errorf("migration %d (%s): %w", step.ID, step.Name, err)
			}
		}
		if action == Skip {
			skipped = append(skipped, step.ID)
		}

		record = &Record{
			Version:       recordVersion,
			InProgress:    false,
			NextMigration: step.ID + 1,
			Skipped:       skipped,
		}
		if err := m.driver.SaveRecord(record); err != nil {
			return err
		}
	}

	return nil
}
