// Copyright (c) 2024 The Massa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package selector

import (
	"sync"

	"github.com/massalabs/massa-pos/address"
	"github.com/massalabs/massa-pos/slot"
)

// Mock is a deterministic Controller for tests: it always selects the
// lowest-sorting address among those in the roll snapshot fed for the
// highest cycle number, with no randomness. It does not attempt to reproduce the real oracle's
// draw algorithm; it only needs to be a stable, inspectable stand-in.
type Mock struct {
	mu           sync.Mutex
	fed          map[uint64]map[address.Address]uint64
	numEndorsers int
}

// NewMock returns a Mock that draws numEndorsers endorsers per slot.
func NewMock(numEndorsers int) *Mock {
	return &Mock{
		fed:          make(map[uint64]map[address.Address]uint64),
		numEndorsers: numEndorsers,
	}
}

// FeedCycle records the rolls available for drawing at the given cycle.
func (m *Mock) FeedCycle(cycle uint64, lookbackRolls map[address.Address]uint64, lookbackSeed []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make(map[address.Address]uint64, len(lookbackRolls))
	for a, r := range lookbackRolls {
		cp[a] = r
	}
	m.fed[cycle] = cp
	return nil
}

// GetSelection returns a deterministic Selection built from the
// highest-numbered cycle fed so far: the producer is the lowest-sorting
// address in that roll snapshot (roll counts, including zero, are not
// consulted), and the endorsers are the following addresses in ascending
// order, wrapping around.
func (m *Mock) GetSelection(s slot.Slot) (Selection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	addrs := m.sortedFedAddresses()
	if len(addrs) == 0 {
		return Selection{}, nil
	}
	producer := addrs[0]
	endorsements := make([]address.Address, 0, m.numEndorsers)
	for i := 0; i < m.numEndorsers; i++ {
		endorsements = append(endorsements, addrs[(i+1)%len(addrs)])
	}
	return Selection{Producer: producer, Endorsements: endorsements}, nil
}

// maxDrawsPerQuery bounds how many future slots GetAddressSelections will
// enumerate per call, so a caller passing a wide-open [start, end) range
// can't make the mock iterate forever.
const maxDrawsPerQuery = 16

// GetAddressSelections reports addr's active rolls from the
// highest-numbered fed cycle, plus the slots in [start, end) — one per period, capped at
// maxDrawsPerQuery — where addr would be drawn as producer or endorser
// under GetSelection's same deterministic rule.
func (m *Mock) GetAddressSelections(addr address.Address, start, end slot.Slot) (AddressInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rolls := m.latestFedRolls()
	info := AddressInfo{ActiveRolls: rolls[addr]}

	addrs := address.Sorted(rolls)
	if len(addrs) == 0 {
		return info, nil
	}

	producer := addrs[0]
	for n, period := 0, start.Period; n < maxDrawsPerQuery && period < end.Period; n, period = n+1, period+1 {
		s := slot.Slot{Period: period, Thread: start.Thread}
		if producer == addr {
			info.NextBlockDraws = append(info.NextBlockDraws, s)
		}
		for i := 0; i < m.numEndorsers; i++ {
			if addrs[(i+1)%len(addrs)] == addr {
				info.NextEndorsementDraws = append(info.NextEndorsementDraws, IndexedSlot{Slot: s, Index: uint64(i)})
			}
		}
	}
	return info, nil
}

// latestFedRolls returns the roll snapshot belonging to the highest cycle
// number fed so far, or nil if FeedCycle has never been called.
func (m *Mock) latestFedRolls() map[address.Address]uint64 {
	latest := uint64(0)
	haveLatest := false
	for c := range m.fed {
		if !haveLatest || c > latest {
			latest = c
			haveLatest = true
		}
	}
	if !haveLatest {
		return nil
	}
	return m.fed[latest]
}

func (m *Mock) sortedFedAddresses() []address.Address {
	return address.Sorted(m.latestFedRolls())
}
