// Copyright (c) 2024 The Massa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package posstate

import "github.com/decred/slog"

// log is the package-level logger shared by this package's files. It
// is disabled by default so importers that never call UseLogger still
// compile and run silently, matching the convention used throughout the
// dcrd family (blockchain, peer, txscript each keep their own log.go).
var log = slog.Disabled

// UseLogger sets the logger used by this package. It must be called before
// any exported function if the caller wants PoS final state activity
// logged.
func UseLogger(logger slog.Logger) {
	log = logger
}
