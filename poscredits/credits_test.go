// Copyright (c) 2024 The Massa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package poscredits

import (
	"testing"

	"github.com/massalabs/massa-pos/address"
	"github.com/massalabs/massa-pos/amount"
	"github.com/massalabs/massa-pos/slot"
)

func addrOf(b byte) address.Address {
	var a address.Address
	a[0] = b
	return a
}

func TestSetAndAt(t *testing.T) {
	d := New()
	s := slot.Slot{Period: 10, Thread: 0}
	d.Set(s, addrOf(1), 100)
	d.Set(s, addrOf(2), 200)

	got := d.At(s)
	if len(got) != 2 || got[addrOf(1)] != 100 || got[addrOf(2)] != 200 {
		t.Errorf("At(%+v) = %v, want {1:100, 2:200}", s, got)
	}
	if d.Len() != 1 {
		t.Errorf("Len() = %d, want 1", d.Len())
	}
}

func TestSlotsAscendingOrder(t *testing.T) {
	d := New()
	s3 := slot.Slot{Period: 3, Thread: 0}
	s1 := slot.Slot{Period: 1, Thread: 0}
	s2 := slot.Slot{Period: 2, Thread: 0}
	d.Set(s3, addrOf(1), 1)
	d.Set(s1, addrOf(1), 1)
	d.Set(s2, addrOf(1), 1)

	got := d.Slots()
	want := []slot.Slot{s1, s2, s3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Slots() = %v, want %v", got, want)
		}
	}
}

func TestSlotsAfter(t *testing.T) {
	d := New()
	s1 := slot.Slot{Period: 1, Thread: 0}
	s2 := slot.Slot{Period: 2, Thread: 0}
	s3 := slot.Slot{Period: 3, Thread: 0}
	for _, s := range []slot.Slot{s1, s2, s3} {
		d.Set(s, addrOf(1), 1)
	}

	if got := d.SlotsAfter(nil); len(got) != 3 {
		t.Errorf("SlotsAfter(nil) = %v, want all 3 slots", got)
	}
	got := d.SlotsAfter(&s1)
	want := []slot.Slot{s2, s3}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("SlotsAfter(%+v) = %v, want %v", s1, got, want)
	}
	if got := d.SlotsAfter(&s3); len(got) != 0 {
		t.Errorf("SlotsAfter(last slot) = %v, want empty", got)
	}
}

func TestLastSlot(t *testing.T) {
	d := New()
	if d.LastSlot() != nil {
		t.Errorf("LastSlot() of empty map = %v, want nil", d.LastSlot())
	}
	s1 := slot.Slot{Period: 1, Thread: 0}
	s2 := slot.Slot{Period: 5, Thread: 0}
	d.Set(s1, addrOf(1), 1)
	d.Set(s2, addrOf(1), 1)
	if got := d.LastSlot(); got == nil || *got != s2 {
		t.Errorf("LastSlot() = %v, want %+v", got, s2)
	}
}

func TestNestedExtendMergesAdditively(t *testing.T) {
	s := slot.Slot{Period: 1, Thread: 0}
	d := New()
	d.Set(s, addrOf(1), 100)

	other := New()
	other.Set(s, addrOf(1), 50)
	other.Set(s, addrOf(2), 10)

	d.NestedExtend(other)

	got := d.At(s)
	if got[addrOf(1)] != 150 {
		t.Errorf("overlapping address = %d, want 150", got[addrOf(1)])
	}
	if got[addrOf(2)] != 10 {
		t.Errorf("new address = %d, want 10", got[addrOf(2)])
	}
}

func TestNestedExtendSaturates(t *testing.T) {
	s := slot.Slot{Period: 1, Thread: 0}
	d := New()
	d.Set(s, addrOf(1), amount.MaxAmount)

	other := New()
	other.Set(s, addrOf(1), 1)
	d.NestedExtend(other)

	if got := d.At(s)[addrOf(1)]; got != amount.MaxAmount {
		t.Errorf("NestedExtend overflow = %d, want saturated at max", got)
	}
}

func TestRemoveZerosIsIdempotentAndPrunesEmptySlots(t *testing.T) {
	s := slot.Slot{Period: 1, Thread: 0}
	d := New()
	d.Set(s, addrOf(1), 0)
	d.Set(s, addrOf(2), 5)

	d.RemoveZeros()
	got := d.At(s)
	if len(got) != 1 || got[addrOf(2)] != 5 {
		t.Fatalf("RemoveZeros result = %v, want only addr(2):5", got)
	}

	// Zero out the remaining entry and prune the now-empty slot.
	d.Set(s, addrOf(2), 0)
	d.RemoveZeros()
	if d.Len() != 0 {
		t.Errorf("Len() after pruning last entry = %d, want 0", d.Len())
	}

	// Second call with no intervening mutation must be a no-op.
	d.RemoveZeros()
	if d.Len() != 0 {
		t.Errorf("RemoveZeros is not idempotent: Len() = %d, want 0", d.Len())
	}
}
