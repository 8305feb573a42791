// Copyright (c) 2024 The Massa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package address defines the fixed-width account identifier used
// throughout the PoS final state: a staking address owning rolls,
// receiving deferred credits, and accumulating production statistics.
package address

import (
	"encoding/hex"
	"fmt"
	"sort"
)

// Size is the number of bytes in the raw representation of an Address.
const Size = 32

// Address is an opaque 32-byte account identifier. It has no internal
// structure as far as this package is concerned; the accounting layer only
// ever needs equality, ordering, and a fixed-width wire image.
type Address [Size]byte

// String returns the lowercase hex encoding of the address.
func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// Bytes returns a copy of the raw 32-byte representation.
func (a Address) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, a[:])
	return b
}

// IsZero reports whether the address is the all-zero value.
func (a Address) IsZero() bool {
	return a == Address{}
}

// FromBytes builds an Address from a byte slice of exactly Size bytes.
func FromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) != Size {
		return a, fmt.Errorf("address: invalid length %d, want %d", len(b), Size)
	}
	copy(a[:], b)
	return a, nil
}

// Less reports whether a sorts strictly before b under ascending byte order.
// Every iteration of an address-keyed map that must produce deterministic
// bytes (bootstrap payloads, PoSChanges serialization) uses this ordering.
func Less(a, b Address) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// Sorted returns the keys of m in ascending address order.
func Sorted[V any](m map[Address]V) []Address {
	out := make([]Address, 0, len(m))
	for a := range m {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return Less(out[i], out[j]) })
	return out
}
