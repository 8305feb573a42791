// Copyright (c) 2024 The Massa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package posstate

import (
	"github.com/massalabs/massa-pos/address"
	"github.com/massalabs/massa-pos/posstats"
	"github.com/massalabs/massa-pos/serialization"
)

// CycleInfo is the per-cycle slice of the final state: how many rolls each
// address held, the RNG seed bits contributed slot by slot, and per-address
// production statistics, for one staking cycle.
type CycleInfo struct {
	Cycle           uint64
	Complete        bool
	RollCounts      map[address.Address]uint64
	RngSeed         *serialization.BitVec
	ProductionStats map[address.Address]posstats.Stats
}

// newCycleInfo returns an empty, incomplete CycleInfo for the given cycle
// number.
func newCycleInfo(cycle uint64) *CycleInfo {
	return &CycleInfo{
		Cycle:           cycle,
		RollCounts:      make(map[address.Address]uint64),
		RngSeed:         serialization.NewBitVec(),
		ProductionStats: make(map[address.Address]posstats.Stats),
	}
}

// clone returns a deep copy of c. NewestCycle uses it so callers never
// hold a reference to the live history entry.
func (c *CycleInfo) clone() *CycleInfo {
	rollCounts := make(map[address.Address]uint64, len(c.RollCounts))
	for a, n := range c.RollCounts {
		rollCounts[a] = n
	}
	stats := make(map[address.Address]posstats.Stats, len(c.ProductionStats))
	for a, s := range c.ProductionStats {
		stats[a] = s
	}
	seed := serialization.NewBitVec()
	seed.Extend(c.RngSeed)
	return &CycleInfo{
		Cycle:           c.Cycle,
		Complete:        c.Complete,
		RollCounts:      rollCounts,
		RngSeed:         seed,
		ProductionStats: stats,
	}
}

// mergeFrom folds another cycle's partial payload into c in place. It is
// used by set_cycle_history_part (merge-into-back); ApplyChanges updates
// the newest cycle directly instead.
func (c *CycleInfo) mergeFrom(other *CycleInfo) {
	c.Complete = other.Complete
	for a, n := range other.RollCounts {
		c.RollCounts[a] = n
	}
	c.RngSeed.Extend(other.RngSeed)
	for a, s := range other.ProductionStats {
		c.ProductionStats[a] = c.ProductionStats[a].Extend(s)
	}
}
