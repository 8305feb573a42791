// Copyright (c) 2024 The Massa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package selector defines the capability the PoS final state consumes
// from the leader/endorser drawing oracle. The oracle itself — how it
// draws, what RNG it runs — is out of scope here; this package only
// states the boundary (spec §4.8).
package selector

import (
	"github.com/massalabs/massa-pos/address"
	"github.com/massalabs/massa-pos/slot"
)

// Selection is the producer and endorsers drawn for one slot.
type Selection struct {
	Producer     address.Address
	Endorsements []address.Address
}

// IndexedSlot pairs a slot with the endorsement index drawn within it, for
// AddressInfo.NextEndorsementDraws.
type IndexedSlot struct {
	Slot  slot.Slot
	Index uint64
}

// AddressInfo reports what the selector knows about one address's current
// and future draws.
type AddressInfo struct {
	ActiveRolls          uint64
	NextBlockDraws       []slot.Slot
	NextEndorsementDraws []IndexedSlot
}

// Controller is the capability set the final state holds the selector
// behind. The only implementation in this module is Mock, a deterministic
// stand-in that both the tests and cmd/posnode wire; a real drawing oracle
// lives outside this module.
type Controller interface {
	// FeedCycle installs the rolls and seed that will drive draws for
	// cycle+N, where N is the cycle-lookback distance fixed by consensus
	// configuration.
	FeedCycle(cycle uint64, lookbackRolls map[address.Address]uint64, lookbackSeed []byte) error

	// GetSelection returns the producer and endorsers drawn for a future
	// slot.
	GetSelection(s slot.Slot) (Selection, error)

	// GetAddressSelections reports every draw for addr in [start, end).
	GetAddressSelections(addr address.Address, start, end slot.Slot) (AddressInfo, error)
}
