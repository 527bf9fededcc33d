// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package migration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type memDriver struct {
	record *Record
}

func (d *memDriver) LoadRecord() (*Record, error) { return d.record, nil }
func (d *memDriver) SaveRecord(r *Record) error {
	cp := *r
	d.record = &cp
	return nil
}

func stepsUpTo(n int, ran *[]uint64) []Migration {
	steps := make([]Migration, n)
	for i := 0; i < n; i++ {
		id := uint64(i)
		steps[i] = Migration{
			ID:   id,
			Name: "step",
			Run:  func(context.Context) error { *ran = append(*ran, id); return nil },
		}
	}
	return steps
}

func TestOpenFreshDatabaseSkipsToLatestWithoutRunning(t *testing.T) {
	var ran []uint64
	driver := &memDriver{}
	m, err := NewManager(driver, stepsUpTo(3, &ran))
	require.NoError(t, err)

	require.NoError(t, m.Open(context.Background(), nil, nil))
	require.Empty(t, ran)
	require.NotNil(t, driver.record)
	require.Equal(t, uint64(3), driver.record.NextMigration)
}

func TestOpenExistingDatabaseRefusesWithoutTarget(t *testing.T) {
	var ran []uint64
	driver := &memDriver{record: &Record{Version: recordVersion, NextMigration: 0}}
	m, err := NewManager(driver, stepsUpTo(2, &ran))
	require.NoError(t, err)

	err = m.Open(context.Background(), nil, nil)
	require.ErrorIs(t, err, ErrMigrationsRemain)
	require.Empty(t, ran)
}

func TestOpenRunsMigrationsWhenTargetMatchesLatest(t *testing.T) {
	var ran []uint64
	driver := &memDriver{record: &Record{Version: recordVersion, NextMigration: 0}}
	m, err := NewManager(driver, stepsUpTo(3, &ran))
	require.NoError(t, err)

	target := m.Latest()
	require.NoError(t, m.Open(context.Background(), &target, nil))
	require.Equal(t, []uint64{0, 1, 2}, ran)
	require.Equal(t, uint64(3), driver.record.NextMigration)
}

func TestOpenNoOpWhenNothingPending(t *testing.T) {
	var ran []uint64
	driver := &memDriver{record: &Record{Version: recordVersion, NextMigration: 2}}
	m, err := NewManager(driver, stepsUpTo(2, &ran))
	require.NoError(t, err)

	require.NoError(t, m.Open(context.Background(), nil, nil))
	require.Empty(t, ran)
}

func TestOpenResolverCanSkipAndFakeMigrate(t *testing.T) {
	var ran []uint64
	driver := &memDriver{record: &Record{Version: recordVersion, NextMigration: 0}}
	steps := stepsUpTo(3, &ran)
	m, err := NewManager(driver, steps)
	require.NoError(t, err)

	target := m.Latest()
	resolve := func(step Migration) Action {
		switch step.ID {
		case 0:
			return Skip
		case 1:
			return FakeMigrate
		default:
			return Migrate
		}
	}
	require.NoError(t, m.Open(context.Background(), &target, resolve))
	require.Equal(t, []uint64{2}, ran)
	require.Equal(t, []uint64{0}, driver.record.Skipped)
}

func TestNewManagerRejectsNonDenseSequence(t *testing.T) {
	_, err := NewManager(&memDriver{}, []Migration{{ID: 0}, {ID: 2}})
	require.Error(t, err)
}

func TestRecordEncodeDecodeRoundTrip(t *testing.T) {
	r := &Record{
		Version:        recordVersion,
		InProgress:     true,
		NextMigration:  5,
		Skipped:        []uint64{1, 3},
		InProgressData: []byte("partial"),
	}
	data, err := r.Encode()
	require.NoError(t, err)

	got, err := DecodeRecord(data)
	require.NoError(t, err)
	require.Equal(t, r, got)
}

func TestDecodeRecordRejectsUnsupportedVersion(t *testing.T) {
	r := &Record{Version: recordVersion, NextMigration: 1}
	data, err := r.Encode()
	require.NoError(t, err)
	data[0] = 9

	_, err = DecodeRecord(data)
	require.ErrorIs(t, err, errUnsupportedVersion)
}
