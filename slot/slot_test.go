// Copyright (c) 2024 The Massa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package slot

import "testing"

func TestCycle(t *testing.T) {
	tests := []struct {
		s    Slot
		ppc  uint64
		want uint64
	}{
		{Slot{Period: 0, Thread: 0}, 128, 0},
		{Slot{Period: 127, Thread: 31}, 128, 0},
		{Slot{Period: 128, Thread: 0}, 128, 1},
		{Slot{Period: 255, Thread: 0}, 128, 1},
		{Slot{Period: 256, Thread: 0}, 128, 2},
	}
	for _, tc := range tests {
		if got := tc.s.Cycle(tc.ppc); got != tc.want {
			t.Errorf("%+v.Cycle(%d) = %d, want %d", tc.s, tc.ppc, got, tc.want)
		}
	}
}

func TestLess(t *testing.T) {
	a := Slot{Period: 1, Thread: 5}
	b := Slot{Period: 1, Thread: 6}
	c := Slot{Period: 2, Thread: 0}

	if !a.Less(b) {
		t.Errorf("Less: same period, lower thread should sort first")
	}
	if a.Less(a) {
		t.Errorf("Less: a slot must not be less than itself")
	}
	if !b.Less(c) {
		t.Errorf("Less: earlier period must sort first regardless of thread")
	}
	if c.Less(a) {
		t.Errorf("Less: later period must not sort before earlier period")
	}
}

func TestIsLastOfCycle(t *testing.T) {
	const threadCount = 32
	const periodsPerCycle = 128

	tests := []struct {
		name string
		s    Slot
		want bool
	}{
		{"last thread, last period of cycle", Slot{Period: 127, Thread: 31}, true},
		{"last thread, not last period", Slot{Period: 126, Thread: 31}, false},
		{"not last thread, last period", Slot{Period: 127, Thread: 30}, false},
		{"first slot of next cycle", Slot{Period: 128, Thread: 0}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsLastOfCycle(tc.s, threadCount, periodsPerCycle); got != tc.want {
				t.Errorf("IsLastOfCycle(%+v) = %v, want %v", tc.s, got, tc.want)
			}
		})
	}
}
