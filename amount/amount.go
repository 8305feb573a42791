// Copyright (c) 2024 The Massa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package amount defines the bounded, saturating coin value used by
// deferred credits. Amount is a raw fixed-point integer: the scaling
// factor (decimal places) is a concern of the collaborator that displays
// values to users, not of the final state, which only ever adds, compares,
// and serializes the internal integer.
package amount

import "math"

// Amount is a non-negative fixed-point coin value.
type Amount uint64

// MinAmount and MaxAmount bound every Amount accepted by the codec and
// produced by saturating arithmetic.
const (
	MinAmount Amount = 0
	MaxAmount Amount = math.MaxUint64
)

// IsZero reports whether the amount is exactly zero.
func (a Amount) IsZero() bool {
	return a == MinAmount
}

// SaturatingAdd adds b to a, clamping to MaxAmount instead of wrapping on
// overflow. Every deferred-credit merge uses this instead of raw addition:
// a slashed or re-credited address must never wrap back around to a small
// positive balance.
func (a Amount) SaturatingAdd(b Amount) Amount {
	sum := a + b
	if sum < a {
		return MaxAmount
	}
	return sum
}
