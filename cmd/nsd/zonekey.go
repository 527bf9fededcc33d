// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/nsdchain/nsd/resolver"
)

const zoneKeyFilename = "zone.key"

// loadZoneSigner loads the root zone's signing key from dataDir, or
// generates and persists one on first run. The key's raw 32-byte
// encoding is stored directly, storing the node's identity material as
// a bare file rather than a config field.
func loadZoneSigner(dataDir string) (*resolver.ZoneSigner, error) {
	path := filepath.Join(dataDir, zoneKeyFilename)

	raw, err := os.ReadFile(path)
	if err == nil {
		key := secp256k1.PrivKeyFromBytes(raw)
		return resolver.NewZoneSigner(key), nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read zone key: %w", err)
	}

	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate zone key: %w", err)
	}
	if err := os.WriteFile(path, key.Serialize(), 0600); err != nil {
		return nil, fmt.Errorf("persist zone key: %w", err)
	}
	return resolver.NewZoneSigner(key), nil
}
