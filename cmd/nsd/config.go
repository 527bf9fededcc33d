// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"

	"github.com/nsdchain/nsd/chaincfg"
)

const (
	defaultDataDirname  = "data"
	defaultLogFilename  = "nsd.log"
	defaultLogLevel     = "info"
	defaultDNSListen    = "127.0.0.1:5350"
	defaultNameCacheLen = 4096
)

// config follows the standard jessevdk/go-flags struct-tag convention:
// one flat struct, short and long flag names, defaults set before parsing.
type config struct {
	HomeDir      string `short:"A" long:"appdata" description:"Application data directory"`
	DNSListen    string `long:"dnslisten" description:"host:port the authoritative resolver listens on"`
	LogLevel     string `long:"loglevel" description:"Logging level {trace, debug, info, warn, error, critical}"`
	NoFileLog    bool   `long:"nofilelogging" description:"Disable logging to a file"`
	TestNet      bool   `long:"testnet" description:"Use the test network (runs with the simulation network's parameters)"`
	SimNet       bool   `long:"simnet" description:"Use the simulation network"`
	MigrateTo    int64  `long:"migrateto" default:"-1" description:"Acknowledge pending migrations up to this ID (-1 leaves migrations unacknowledged)"`
	NameCacheLen uint   `long:"namecachelen" description:"Size of the negative name lookup cache"`

	dataDir    string
	logFile    string
	chainParam *chaincfg.Params
}

// loadConfig parses command-line flags into a config with its package
// defaults, resolves the network-specific data directory, and registers
// which chaincfg.Params the rest of the daemon uses.
func loadConfig() (*config, error) {
	cfg := config{
		LogLevel:     defaultLogLevel,
		DNSListen:    defaultDNSListen,
		NameCacheLen: defaultNameCacheLen,
	}

	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		return nil, err
	}

	if cfg.HomeDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		cfg.HomeDir = filepath.Join(home, ".nsd")
	}

	switch {
	case cfg.TestNet:
		cfg.chainParam = &chaincfg.SimNetParams // chaincfg defines no separate test network.
	case cfg.SimNet:
		cfg.chainParam = &chaincfg.SimNetParams
	default:
		cfg.chainParam = &chaincfg.MainNetParams
	}

	netDir := filepath.Join(cfg.HomeDir, cfg.chainParam.Name)
	cfg.dataDir = filepath.Join(netDir, defaultDataDirname)
	cfg.logFile = filepath.Join(netDir, "logs", defaultLogFilename)

	if err := os.MkdirAll(cfg.dataDir, 0700); err != nil {
		return nil, err
	}
	if !cfg.NoFileLog {
		if err := os.MkdirAll(filepath.Dir(cfg.logFile), 0700); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}
