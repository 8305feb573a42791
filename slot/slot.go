// Copyright (c) 2024 The Massa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package slot defines the scheduling tick (period, thread) that orders
// every event in the PoS final state: block production, seed accumulation,
// deferred-credit payout, and bootstrap streaming all index by Slot.
package slot

// Slot identifies one of thread_count parallel scheduling ticks within a
// period. Thread must satisfy thread < thread_count for any Slot stored or
// decoded by this module; that bound is enforced at the codec boundary,
// not here, since a bare Slot value carries no thread_count of its own.
type Slot struct {
	Period uint64
	Thread uint8
}

// Cycle derives the staking cycle this slot belongs to, given the
// configured number of periods per cycle.
func (s Slot) Cycle(periodsPerCycle uint64) uint64 {
	return s.Period / periodsPerCycle
}

// Less reports whether s sorts strictly before o: first by period, then by
// thread. This is the canonical Slot ordering used by deferred-credit
// range scans and bootstrap emission.
func (s Slot) Less(o Slot) bool {
	if s.Period != o.Period {
		return s.Period < o.Period
	}
	return s.Thread < o.Thread
}

// IsLastOfCycle reports whether s is the final slot of its cycle: the last
// thread of the last period before the next cycle boundary.
func IsLastOfCycle(s Slot, threadCount uint8, periodsPerCycle uint64) bool {
	if s.Thread != threadCount-1 {
		return false
	}
	nextPeriod := s.Period + 1
	return nextPeriod%periodsPerCycle == 0
}
