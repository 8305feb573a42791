// Copyright (c) 2024 The Massa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package posstate implements the PoS final state: the authoritative,
// replicated accounting structure tracking rolls, RNG seed bits, block
// production statistics, and deferred credits per staking cycle, plus the
// streaming bootstrap protocol a joining node uses to reconstruct it.
package posstate

import (
	"fmt"
	"sync"

	"github.com/decred/dcrd/chaincfg/chainhash"

	"github.com/massalabs/massa-pos/address"
	"github.com/massalabs/massa-pos/poschange"
	"github.com/massalabs/massa-pos/poscredits"
	"github.com/massalabs/massa-pos/posconfig"
	"github.com/massalabs/massa-pos/selector"
	"github.com/massalabs/massa-pos/serialization"
	"github.com/massalabs/massa-pos/slot"
)

// FinalState is the aggregate root of the PoS accounting subsystem. It is
// a single-writer, multi-reader shared resource: the execution engine
// (steady state) and the bootstrap receiver (sync) are the only writers,
// and those two phases never overlap; readers (bootstrap sender, queries)
// proceed concurrently under the embedded RWMutex, the same discipline the
// teacher's BlockChain type uses around its chainLock.
type FinalState struct {
	mu sync.RWMutex

	// cycleHistory is ordered oldest-first; the back entry is the newest
	// and the only one that may have Complete == false.
	cycleHistory []*CycleInfo

	deferredCredits *poscredits.DeferredCredits

	initialRolls map[address.Address]uint64
	initialSeeds [2]chainhash.Hash // cycle -2, then cycle -1

	selector selector.Controller

	threadCount     uint8
	periodsPerCycle uint64
	historyLength   uint64
	cycleLookback   uint64
}

// New builds a FinalState from the initial ledger contents and
// configuration supplied at node startup (spec §3 Lifecycle).
func New(cfg *posconfig.Config, initialRolls map[address.Address]uint64, initialSeeds [2]chainhash.Hash, sel selector.Controller) (*FinalState, error) {
	if cfg.ThreadCount == 0 {
		return nil, fmt.Errorf("posstate: thread_count must be > 0")
	}
	if cfg.PeriodsPerCycle == 0 {
		return nil, fmt.Errorf("posstate: periods_per_cycle must be > 0")
	}
	if cfg.HistoryLength < 1 {
		return nil, fmt.Errorf("posstate: history_length must be >= 1")
	}

	rolls := make(map[address.Address]uint64, len(initialRolls))
	for a, n := range initialRolls {
		rolls[a] = n
	}

	return &FinalState{
		cycleHistory:    []*CycleInfo{newCycleInfo(0)},
		deferredCredits: poscredits.New(),
		initialRolls:    rolls,
		initialSeeds:    initialSeeds,
		selector:        sel,
		threadCount:     cfg.ThreadCount,
		periodsPerCycle: cfg.PeriodsPerCycle,
		historyLength:   cfg.HistoryLength,
		cycleLookback:   cfg.CycleLookback,
	}, nil
}

// ThreadCount returns the configured number of parallel slot threads.
func (fs *FinalState) ThreadCount() uint8 {
	return fs.threadCount
}

// PeriodsPerCycle returns the configured number of periods per cycle.
func (fs *FinalState) PeriodsPerCycle() uint64 {
	return fs.periodsPerCycle
}

// RollCount returns the effective roll count for addr in the newest cycle,
// or 0 if the address holds no rolls there.
func (fs *FinalState) RollCount(addr address.Address) uint64 {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	back := fs.cycleHistory[len(fs.cycleHistory)-1]
	return back.RollCounts[addr]
}

// CycleHistoryLen returns the number of CycleInfo entries currently
// retained.
func (fs *FinalState) CycleHistoryLen() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return len(fs.cycleHistory)
}

// NewestCycle returns a copy of the newest retained CycleInfo.
func (fs *FinalState) NewestCycle() *CycleInfo {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.cycleHistory[len(fs.cycleHistory)-1].clone()
}

// DeferredCreditsLen returns the number of slots currently holding
// deferred credits.
func (fs *FinalState) DeferredCreditsLen() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.deferredCredits.Len()
}

// ApplyChanges folds the PoSChanges produced by execution at slot s into
// the final state. Changes must be applied in ascending slot order; the
// caller, not this method, is responsible for that ordering (spec §5).
func (fs *FinalState) ApplyChanges(s slot.Slot, changes *poschange.Changes) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	cycle := s.Cycle(fs.periodsPerCycle)
	back := fs.cycleHistory[len(fs.cycleHistory)-1]
	if back.Cycle != cycle {
		back = fs.pushCycleLocked(cycle)
	}

	for addr, roll := range changes.RollChanges {
		if roll == 0 {
			delete(back.RollCounts, addr)
			continue
		}
		back.RollCounts[addr] = roll
	}

	back.RngSeed.Extend(changes.SeedBits)

	for addr, stat := range changes.ProductionStats {
		back.ProductionStats[addr] = back.ProductionStats[addr].Extend(stat)
	}

	fs.deferredCredits.NestedExtend(changes.DeferredCredits)
	fs.deferredCredits.RemoveZeros()

	if slot.IsLastOfCycle(s, fs.threadCount, fs.periodsPerCycle) {
		back.Complete = true
		if fs.selector != nil {
			rollsSnapshot := make(map[address.Address]uint64, len(back.RollCounts))
			for a, n := range back.RollCounts {
				rollsSnapshot[a] = n
			}
			seedBytes := packSeedBytes(back.RngSeed)
			if err := fs.selector.FeedCycle(cycle+fs.cycleLookback, rollsSnapshot, seedBytes); err != nil {
				return NewRuntimeError("apply_changes.feed_cycle", err)
			}
		}
	}

	log.Debugf("applied PoS changes for slot %d-%d (cycle %d)", s.Period, s.Thread, cycle)
	return nil
}

// pushCycleLocked appends a new, empty CycleInfo for cycle, evicting the
// oldest retained cycle if the history is already at capacity. Callers
// must hold fs.mu for writing.
func (fs *FinalState) pushCycleLocked(cycle uint64) *CycleInfo {
	next := newCycleInfo(cycle)
	fs.cycleHistory = append(fs.cycleHistory, next)
	if uint64(len(fs.cycleHistory)) > fs.historyLength {
		fs.cycleHistory = fs.cycleHistory[1:]
	}
	return next
}

// packSeedBytes packs a bit vector's current contents MSB-first into bytes,
// for handoff to the selector, which only needs a seed to hash, not the
// exact bit length.
func packSeedBytes(seed *serialization.BitVec) []byte {
	n := seed.Len()
	out := make([]byte, (n+7)/8)
	for i := 0; i < n; i++ {
		if seed.Get(i) {
			out[i/8] |= 0x80 >> uint(i%8)
		}
	}
	return out
}
