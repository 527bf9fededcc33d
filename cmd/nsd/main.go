// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// nsd serves authoritative DNS answers for the on-chain naming root out
// of a local name-state database, after running any pending schema
// migrations against it.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/miekg/dns"

	"github.com/nsdchain/nsd/migration"
	"github.com/nsdchain/nsd/names"
	"github.com/nsdchain/nsd/resolver"
	storeleveldb "github.com/nsdchain/nsd/store/leveldb"

	"github.com/syndtr/goleveldb/leveldb"
)

// migrations is the daemon's registered, dense schema migration sequence.
// Empty today: nsd has shipped no on-disk format changes yet, so every
// boot (fresh or existing) has nothing pending.
var migrations []migration.Migration

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if _, err := initLogging(cfg); err != nil {
		return err
	}

	db, err := leveldb.OpenFile(filepath.Join(cfg.dataDir, "chain"), nil)
	if err != nil {
		return fmt.Errorf("open chain database: %w", err)
	}
	defer db.Close()

	manager, err := migration.NewManager(storeleveldb.NewDriver(db), migrations)
	if err != nil {
		return fmt.Errorf("register migrations: %w", err)
	}

	var target *uint64
	if cfg.MigrateTo >= 0 {
		t := uint64(cfg.MigrateTo)
		target = &t
	}
	if err := manager.Open(context.Background(), target, nil); err != nil {
		return fmt.Errorf("schema migrations: %w", err)
	}

	store, err := names.OpenLevelDBStore(filepath.Join(cfg.dataDir, "names"), cfg.NameCacheLen)
	if err != nil {
		return fmt.Errorf("open name database: %w", err)
	}
	defer store.Close()

	signer, err := loadZoneSigner(cfg.dataDir)
	if err != nil {
		return fmt.Errorf("load zone signing key: %w", err)
	}

	res := resolver.New(resolver.Config{
		Query:      store,
		RootNS:     []string{"ns1." + cfg.chainParam.Name + "."},
		Signer:     signer,
		DefaultTTL: 3600,
	})

	server := &dns.Server{Addr: cfg.DNSListen, Net: "udp", Handler: res}
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("dns server: %w", err)
	case <-interrupt:
		return server.Shutdown()
	}
}
