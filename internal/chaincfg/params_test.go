// Copyright (c) 2024 The Massa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import "testing"

// TestNetworksDistinct checks that every predefined network has a unique
// magic and port, so a node can never mistake one network's peers for
// another's.
func TestNetworksDistinct(t *testing.T) {
	all := []*Params{MainNetParams(), TestNetParams(), SimNetParams(), RegNetParams()}

	seenNet := make(map[uint32]string)
	seenPort := make(map[string]string)
	for _, p := range all {
		if other, ok := seenNet[p.Net]; ok {
			t.Errorf("network magic 0x%x shared by %q and %q", p.Net, p.Name, other)
		}
		seenNet[p.Net] = p.Name

		if other, ok := seenPort[p.DefaultPort]; ok {
			t.Errorf("default port %q shared by %q and %q", p.DefaultPort, p.Name, other)
		}
		seenPort[p.DefaultPort] = p.Name
	}
}

// TestGeometryWellFormed checks the invariants FinalState.New enforces at
// construction time, for every predefined network.
func TestGeometryWellFormed(t *testing.T) {
	for _, p := range []*Params{MainNetParams(), TestNetParams(), SimNetParams(), RegNetParams()} {
		t.Run(p.Name, func(t *testing.T) {
			if p.ThreadCount == 0 {
				t.Error("thread count must be > 0")
			}
			if p.PeriodsPerCycle == 0 {
				t.Error("periods per cycle must be > 0")
			}
			if p.HistoryLength == 0 {
				t.Error("history length must be > 0")
			}
			if p.T0 <= 0 {
				t.Error("T0 must be positive")
			}
		})
	}
}
