// Copyright (c) 2024 The Massa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package poschange defines PoSChanges, the unit of mutation the execution
// engine produces at every slot and the PoS final state applies. It is
// also the wire format used for bootstrap payloads (spec §4.5).
package poschange

import (
	"github.com/massalabs/massa-pos/address"
	"github.com/massalabs/massa-pos/poscredits"
	"github.com/massalabs/massa-pos/posstats"
	"github.com/massalabs/massa-pos/serialization"
)

// Changes recaps every PoS-relevant effect of applying one slot: extra RNG
// seed bits, roll deltas (0 means "remove this address"), production stat
// deltas, and newly scheduled deferred credits.
type Changes struct {
	SeedBits        *serialization.BitVec
	RollChanges     map[address.Address]uint64
	ProductionStats map[address.Address]posstats.Stats
	DeferredCredits *poscredits.DeferredCredits
}

// New returns an empty Changes, ready to accumulate via Extend.
func New() *Changes {
	return &Changes{
		SeedBits:        serialization.NewBitVec(),
		RollChanges:     make(map[address.Address]uint64),
		ProductionStats: make(map[address.Address]posstats.Stats),
		DeferredCredits: poscredits.New(),
	}
}

// IsEmpty reports whether every subfield is empty.
func (c *Changes) IsEmpty() bool {
	return c.SeedBits.Len() == 0 &&
		len(c.RollChanges) == 0 &&
		len(c.ProductionStats) == 0 &&
		c.DeferredCredits.Len() == 0
}

// Extend folds other into c:
//   - seed bits are appended, order preserved;
//   - roll changes overwrite per address (last writer wins; 0 marks
//     deletion and is handled by the applier, not here);
//   - production stats saturating-add per address;
//   - deferred credits nested-extend.
func (c *Changes) Extend(other *Changes) {
	if other == nil {
		return
	}
	c.SeedBits.Extend(other.SeedBits)

	for addr, roll := range other.RollChanges {
		c.RollChanges[addr] = roll
	}

	for addr, stats := range other.ProductionStats {
		c.ProductionStats[addr] = c.ProductionStats[addr].Extend(stats)
	}

	c.DeferredCredits.NestedExtend(other.DeferredCredits)
}
