// Copyright (c) 2024 The Massa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package posstats

import (
	"math"
	"math/big"
	"testing"
)

func TestExtend(t *testing.T) {
	a := Stats{BlockSuccessCount: 3, BlockFailureCount: 1}
	b := Stats{BlockSuccessCount: 2, BlockFailureCount: 4}
	got := a.Extend(b)
	want := Stats{BlockSuccessCount: 5, BlockFailureCount: 5}
	if got != want {
		t.Errorf("Extend = %+v, want %+v", got, want)
	}
}

func TestExtendSaturates(t *testing.T) {
	a := Stats{BlockSuccessCount: math.MaxUint64, BlockFailureCount: 0}
	b := Stats{BlockSuccessCount: 1, BlockFailureCount: 0}
	got := a.Extend(b)
	if got.BlockSuccessCount != math.MaxUint64 {
		t.Errorf("BlockSuccessCount = %d, want saturated at max", got.BlockSuccessCount)
	}
}

func TestIsSatisfying(t *testing.T) {
	oneThird := big.NewRat(1, 3)

	tests := []struct {
		name string
		s    Stats
		want bool
	}{
		{"no opportunities is trivially satisfying", Stats{}, true},
		{"exactly at threshold", Stats{BlockSuccessCount: 2, BlockFailureCount: 1}, true},
		{"above threshold", Stats{BlockSuccessCount: 1, BlockFailureCount: 2}, false},
		{"all success", Stats{BlockSuccessCount: 10, BlockFailureCount: 0}, true},
		{"all failure", Stats{BlockSuccessCount: 0, BlockFailureCount: 1}, false},
		{
			"failure count saturated at MaxUint64 is still above threshold",
			Stats{BlockSuccessCount: 0, BlockFailureCount: math.MaxUint64},
			false,
		},
		{
			"success count saturated at MaxUint64 with zero failures is satisfying",
			Stats{BlockSuccessCount: math.MaxUint64, BlockFailureCount: 0},
			true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.s.IsSatisfying(oneThird); got != tc.want {
				t.Errorf("IsSatisfying(%+v) = %v, want %v", tc.s, got, tc.want)
			}
		})
	}
}
