// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"os"

	"github.com/jrick/logrotate/rotator"

	"github.com/nsdchain/nsd/log"
	"github.com/nsdchain/nsd/migration"
	"github.com/nsdchain/nsd/mining"
	"github.com/nsdchain/nsd/names"
	"github.com/nsdchain/nsd/resolver"
)

// logRotator is nil when file logging is disabled.
var logRotator *rotator.Rotator

// logWriter fans out to stdout and, if enabled, the rotator — a standard
// two-sink logging setup.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	os.Stdout.Write(p)
	if logRotator != nil {
		logRotator.Write(p)
	}
	return len(p), nil
}

// initLogRotator opens logFile for rotation at 10 MiB, keeping 8 rolled
// files, the usual btcd-derived defaults.
func initLogRotator(logFile string) error {
	r, err := rotator.New(logFile, 10*1024, false, 8)
	if err != nil {
		return err
	}
	logRotator = r
	return nil
}

// subsystemLoggers returns every package's subsystem logger, tagged the
// way btcd's own log.go tags BLKC/MINR/etc.
func subsystemLoggers() log.Subsystems {
	return log.Subsystems{
		"NAMS": log.NewSubsystem("NAMS"),
		"MINR": log.NewSubsystem("MINR"),
		"RSLV": log.NewSubsystem("RSLV"),
		"MIGR": log.NewSubsystem("MIGR"),
	}
}

// initLogging wires the shared log package's backend to stdout (and a
// rotated file, unless disabled), then hands each domain package its own
// tagged subsystem logger via UseLogger.
func initLogging(cfg *config) (log.Subsystems, error) {
	var w io.Writer = logWriter{}
	if cfg.NoFileLog {
		w = os.Stdout
	} else if err := initLogRotator(cfg.logFile); err != nil {
		return nil, err
	}
	log.InitBackend(w)

	subsystems := subsystemLoggers()
	names.UseLogger(subsystems["NAMS"])
	mining.UseLogger(subsystems["MINR"])
	resolver.UseLogger(subsystems["RSLV"])
	migration.UseLogger(subsystems["MIGR"])

	log.SetLevels(subsystems, cfg.LogLevel)
	return subsystems, nil
}
