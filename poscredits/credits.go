// Copyright (c) 2024 The Massa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package poscredits holds coin amounts owed to addresses at future slots:
// refunded roll sales, rewards, or any other payout the execution engine
// schedules ahead of time.
package poscredits

import (
	"sort"

	"github.com/massalabs/massa-pos/address"
	"github.com/massalabs/massa-pos/amount"
	"github.com/massalabs/massa-pos/slot"
)

// DeferredCredits is an ordered map from Slot to the per-address amounts
// owed at that slot. Iteration in ascending slot order is required for
// every path that produces deterministic bytes (bootstrap emission).
type DeferredCredits struct {
	bySlot map[slot.Slot]map[address.Address]amount.Amount
}

// New returns an empty DeferredCredits.
func New() *DeferredCredits {
	return &DeferredCredits{bySlot: make(map[slot.Slot]map[address.Address]amount.Amount)}
}

// Len returns the number of slots holding at least one credit.
func (d *DeferredCredits) Len() int {
	return len(d.bySlot)
}

// At returns the per-address credit map for slot s, or nil if s is absent.
// Callers must not mutate the returned map.
func (d *DeferredCredits) At(s slot.Slot) map[address.Address]amount.Amount {
	return d.bySlot[s]
}

// Set installs amt as the credit owed to addr at slot s, creating the slot
// entry if necessary. A zero amt is accepted here; RemoveZeros is what
// prunes it, mirroring the slash-by-zeroing pattern in PoSChanges.
func (d *DeferredCredits) Set(s slot.Slot, addr address.Address, amt amount.Amount) {
	inner, ok := d.bySlot[s]
	if !ok {
		inner = make(map[address.Address]amount.Amount)
		d.bySlot[s] = inner
	}
	inner[addr] = amt
}

// Slots returns every slot holding credits, in ascending order.
func (d *DeferredCredits) Slots() []slot.Slot {
	out := make([]slot.Slot, 0, len(d.bySlot))
	for s := range d.bySlot {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// SlotsAfter returns every slot strictly greater than cursor, in ascending
// order. A nil cursor means unbounded from the start. This is the range
// scan the deferred-credits bootstrap sender performs.
func (d *DeferredCredits) SlotsAfter(cursor *slot.Slot) []slot.Slot {
	all := d.Slots()
	if cursor == nil {
		return all
	}
	for i, s := range all {
		if cursor.Less(s) {
			return all[i:]
		}
	}
	return nil
}

// LastSlot returns the greatest slot holding credits, or nil if empty.
func (d *DeferredCredits) LastSlot() *slot.Slot {
	slots := d.Slots()
	if len(slots) == 0 {
		return nil
	}
	last := slots[len(slots)-1]
	return &last
}

// NestedExtend merges other into d: a slot absent from d is inserted
// wholesale, while a slot present in both has its per-address amounts
// saturating-added.
func (d *DeferredCredits) NestedExtend(other *DeferredCredits) {
	if other == nil {
		return
	}
	for s, newCredits := range other.bySlot {
		cur, ok := d.bySlot[s]
		if !ok {
			cp := make(map[address.Address]amount.Amount, len(newCredits))
			for a, amt := range newCredits {
				cp[a] = amt
			}
			d.bySlot[s] = cp
			continue
		}
		for a, amt := range newCredits {
			cur[a] = cur[a].SaturatingAdd(amt)
		}
	}
}

// RemoveZeros drops every zero-amount address entry, then drops any slot
// whose inner map became empty as a result. It is idempotent: a second call
// with no intervening mutation is a no-op.
func (d *DeferredCredits) RemoveZeros() {
	var emptySlots []slot.Slot
	for s, inner := range d.bySlot {
		for a, amt := range inner {
			if amt.IsZero() {
				delete(inner, a)
			}
		}
		if len(inner) == 0 {
			emptySlots = append(emptySlots, s)
		}
	}
	for _, s := range emptySlots {
		delete(d.bySlot, s)
	}
}
