// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package names

import "github.com/btcsuite/btclog"

// log is this package's subsystem logger, disabled until the daemon
// entrypoint calls UseLogger, following the standard btcsuite logging
// convention.
var log = btclog.Disabled

// UseLogger sets the subsystem logger used by this package.
func UseLogger(logger btclog.Logger) {
	log = logger
}
