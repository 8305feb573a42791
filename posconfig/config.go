// Copyright (c) 2024 The Massa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package posconfig defines the structured configuration surface of the
// PoS final state subsystem (spec §6.4), tagged for github.com/jessevdk/
// go-flags the way the wider dcrd-family config.go files are.
package posconfig

import "time"

// ChannelSize is the capacity of the bounded queues collaborators (the
// execution engine, the protocol worker) use to hand work to or receive
// work from the final state. The queues themselves are out of core; this
// constant is carried from original_source's CHANNEL_SIZE so the
// collaborator contract stays documented in one place.
const ChannelSize = 256

// Config holds every option the PoS final state needs at construction
// time.
type Config struct {
	// InitialSCELedgerPath is the filesystem path to the initial ledger
	// used to seed initial rolls at genesis.
	InitialSCELedgerPath string `long:"initialledger" description:"Path to the initial SCE ledger file"`

	// ThreadCount is the number of parallel slot threads per period.
	ThreadCount uint8 `long:"threadcount" default:"32" description:"Number of parallel slot threads per period"`

	// GenesisTimestamp anchors period 0, thread 0.
	GenesisTimestamp time.Time `long:"genesistimestamp" description:"Wall-clock anchor for period 0"`

	// T0 is the duration of one period.
	T0 time.Duration `long:"t0" default:"16s" description:"Period duration"`

	// ClockCompensation is a signed offset applied to wall-clock reads
	// when deriving the current slot, to correct for drift against
	// trusted network time.
	ClockCompensation time.Duration `long:"clockcompensation" description:"Signed offset applied to wall-clock reads"`

	// PeriodsPerCycle is the number of periods making up one staking
	// cycle.
	PeriodsPerCycle uint64 `long:"periodspercycle" default:"128" description:"Number of periods per staking cycle"`

	// HistoryLength bounds the number of CycleInfo entries retained in
	// memory, and is also the safety-margin threshold bootstrap emission
	// uses to decide whether to skip the oldest retained cycle. This
	// replaces the hard-coded threshold of 6 the original implementation
	// used (see DESIGN.md, Open Question #2).
	HistoryLength uint64 `long:"historylength" default:"6" description:"Number of cycles retained in memory"`

	// CycleLookback is the number of cycles a roll/seed snapshot leads
	// the cycle it will be used to draw for.
	CycleLookback uint64 `long:"cyclelookback" default:"2" description:"Cycles between feeding a snapshot and its use in draws"`
}
