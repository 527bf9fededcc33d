// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package log is the btcsuite-style subsystem logging setup: a single
// btclog.Backend writes to whatever io.Writer the daemon entrypoint
// installs, and each package that wants to log gets its own tagged
// btclog.Logger carved off that backend, defaulting to btclog.Disabled
// until the daemon calls UseLogger.
package log

import (
	"io"
	"os"

	"github.com/btcsuite/btclog"
)

// backend is reassigned by InitBackend once the daemon knows where logs
// should go; until then every subsystem logger is the disabled sink, so
// library code and tests can log freely without a writer configured.
var backend = btclog.NewBackend(io.Discard)

// Disabled is the sink every subsystem logger starts as.
var Disabled = btclog.Disabled

// InitBackend points all future NewSubsystem loggers at w. Called once
// from cmd/nsd after the log rotator is set up; anything logged before
// this point (package init order) goes nowhere — standard two-phase
// logger wiring.
func InitBackend(w io.Writer) {
	backend = btclog.NewBackend(w)
}

// NewSubsystem carves a tagged Logger off the current backend. tag is
// the short subsystem label (e.g. "NAMS", "MINR", "RSLV") btcd-derived
// subsystems use.
func NewSubsystem(tag string) btclog.Logger {
	return backend.Logger(tag)
}

// Subsystems collects every package's logger so cmd/nsd can apply a
// configured level to all of them at once.
type Subsystems map[string]btclog.Logger

// SetLevels parses levelStr ("trace", "debug", "info", "warn", "error",
// "critical", "off") and applies it to every logger in s. An unrecognized
// level string is a no-op, matching btcd's own lenient config handling.
func SetLevels(s Subsystems, levelStr string) {
	level, ok := btclog.LevelFromString(levelStr)
	if !ok {
		return
	}
	for _, logger := range s {
		logger.SetLevel(level)
	}
}

// Stdout is the default writer used before a log file is configured.
var Stdout io.Writer = os.Stdout
