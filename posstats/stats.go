// Copyright (c) 2024 The Massa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package posstats defines per-address block production bookkeeping: how
// many blocks an address successfully produced versus missed in a cycle.
package posstats

import "math/big"

// Stats counts successful and missed block production opportunities for one
// address in one cycle.
type Stats struct {
	BlockSuccessCount uint64
	BlockFailureCount uint64
}

// Extend returns the saturating sum of s and other, counter by counter.
func (s Stats) Extend(other Stats) Stats {
	return Stats{
		BlockSuccessCount: saturatingAddU64(s.BlockSuccessCount, other.BlockSuccessCount),
		BlockFailureCount: saturatingAddU64(s.BlockFailureCount, other.BlockFailureCount),
	}
}

// IsSatisfying reports whether the miss ratio of s is at or below
// maxMissRatio. With zero opportunities the address is trivially
// satisfying: it has not had the chance to fail. The comparison is done
// with exact rationals, never floats, so that a ratio like 1/3 is never
// subject to rounding error near the configured threshold.
func (s Stats) IsSatisfying(maxMissRatio *big.Rat) bool {
	if s.BlockSuccessCount == 0 && s.BlockFailureCount == 0 {
		return true
	}
	opportunities := new(big.Int).Add(
		new(big.Int).SetUint64(s.BlockSuccessCount),
		new(big.Int).SetUint64(s.BlockFailureCount),
	)
	ratio := new(big.Rat).SetFrac(
		new(big.Int).SetUint64(s.BlockFailureCount),
		opportunities,
	)
	return ratio.Cmp(maxMissRatio) <= 0
}

func saturatingAddU64(a, b uint64) uint64 {
	sum := a + b
	if sum < a {
		return ^uint64(0)
	}
	return sum
}
