// Copyright (c) 2024 The Massa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import "time"

// DNSSeed identifies a DNS seed used to discover bootstrap peers for a
// network. Unlike the chain networks this package is adapted from, a PoS
// final-state node only ever needs peers to stream a bootstrap from, so
// there is no separate "full node only" flag.
type DNSSeed struct {
	Host string
}

// Params holds every network-specific constant a node needs before it can
// construct a posstate.FinalState and start accepting bootstrap
// connections: the slot/cycle geometry, the genesis clock, and how to
// find peers.
type Params struct {
	Name        string
	Net         uint32
	DefaultPort string
	DNSSeeds    []DNSSeed

	// ThreadCount is the number of parallel slot threads per period.
	ThreadCount uint8
	// PeriodsPerCycle is the number of periods making up one staking
	// cycle.
	PeriodsPerCycle uint64
	// GenesisTimestamp anchors slot 0 of thread 0.
	GenesisTimestamp time.Time
	// T0 is the duration of one period, divided evenly across
	// ThreadCount slots.
	T0 time.Duration
	// HistoryLength bounds how many cycles of CycleInfo are retained
	// (spec's configurable safety margin).
	HistoryLength uint64
	// CycleLookback is how many cycles ahead of the cycle just
	// completed the selector is fed (draws for cycle N are computed
	// from the roll distribution and seed of cycle N-CycleLookback).
	CycleLookback uint64
}

// MainNetParams returns the parameters for the production network.
func MainNetParams() *Params {
	return &Params{
		Name:        "mainnet",
		Net:         0xa1a2a3a4,
		DefaultPort: "31244",
		DNSSeeds: []DNSSeed{
			{"boot1.massa.net"},
			{"boot2.massa.net"},
		},

		ThreadCount:      32,
		PeriodsPerCycle:  128,
		GenesisTimestamp: time.Date(2021, time.September, 9, 0, 0, 0, 0, time.UTC),
		T0:               16 * time.Second,
		HistoryLength:    6,
		CycleLookback:    2,
	}
}

// TestNetParams returns the parameters for the public test network. The
// geometry matches MainNet so integration software does not need a
// separate code path, but the genesis clock and magic differ so a node
// can never cross-connect the two networks.
func TestNetParams() *Params {
	return &Params{
		Name:        "testnet",
		Net:         0xb1b2b3b4,
		DefaultPort: "31344",
		DNSSeeds: []DNSSeed{
			{"test.boot1.massa.net"},
			{"test.boot2.massa.net"},
		},

		ThreadCount:      32,
		PeriodsPerCycle:  128,
		GenesisTimestamp: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		T0:               16 * time.Second,
		HistoryLength:    6,
		CycleLookback:    2,
	}
}

// SimNetParams returns the parameters for private multi-node simulation.
// Thread count and cycle length are shrunk well below MainNet's so a
// simulated cluster can walk through several staking cycles in seconds
// rather than hours, while still exercising the same cycle-history
// eviction and bootstrap-merge code paths.
func SimNetParams() *Params {
	return &Params{
		Name:        "simnet",
		Net:         0xc1c2c3c4,
		DefaultPort: "31444",
		DNSSeeds:    nil, // peers are specified explicitly in simnet

		ThreadCount:      4,
		PeriodsPerCycle:  8,
		GenesisTimestamp: time.Unix(0, 0).UTC(),
		T0:               2 * time.Second,
		HistoryLength:    3,
		CycleLookback:    1,
	}
}

// RegNetParams returns the parameters for single-node regression testing.
// Geometry is shrunk to two threads per period and four periods per cycle,
// small values that still produce more than one slot per period and more
// than one period per cycle, so tests can
// drive full cycle completion, bootstrap streaming, and history eviction
// deterministically and quickly.
func RegNetParams() *Params {
	return &Params{
		Name:        "regnet",
		Net:         0xd1d2d3d4,
		DefaultPort: "31544",
		DNSSeeds:    nil,

		ThreadCount:      2,
		PeriodsPerCycle:  4,
		GenesisTimestamp: time.Unix(0, 0).UTC(),
		T0:               100 * time.Millisecond,
		HistoryLength:    2,
		CycleLookback:    1,
	}
}
