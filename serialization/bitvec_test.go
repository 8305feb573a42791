// Copyright (c) 2024 The Massa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package serialization

import (
	"bytes"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func bitsOf(bits ...bool) *BitVec {
	v := NewBitVec()
	for _, b := range bits {
		v.Append(b)
	}
	return v
}

func TestBitVecAppendAndGet(t *testing.T) {
	v := bitsOf(true, false, true, true, false, false, false, true, true)
	if v.Len() != 9 {
		t.Fatalf("Len() = %d, want 9", v.Len())
	}
	want := []bool{true, false, true, true, false, false, false, true, true}
	for i, w := range want {
		if got := v.Get(i); got != w {
			t.Errorf("Get(%d) = %v, want %v", i, got, w)
		}
	}
}

func TestBitVecMSBFirstPacking(t *testing.T) {
	// 10110001 must pack to a single byte 0xB1, not 0x8D (the LSB-first
	// packing a library like jrick/bitset would produce).
	v := bitsOf(true, false, true, true, false, false, false, true)
	var buf bytes.Buffer
	WriteBitVec(&buf, v)

	// skip the varint length prefix (1 byte for n=8)
	packed := buf.Bytes()[1:]
	if len(packed) != 1 || packed[0] != 0xB1 {
		t.Errorf("packed bytes = %x, want b1 (MSB-first)", packed)
	}
}

func TestBitVecExtend(t *testing.T) {
	a := bitsOf(true, false)
	b := bitsOf(true, true, false)
	a.Extend(b)
	if a.Len() != 5 {
		t.Fatalf("Len() after Extend = %d, want 5", a.Len())
	}
	want := bitsOf(true, false, true, true, false)
	if !a.Equal(want) {
		t.Errorf("Extend result = %s, want %s", spew.Sdump(a), spew.Sdump(want))
	}
}

func TestBitVecRoundTrip(t *testing.T) {
	cases := [][]bool{
		{},
		{true},
		{false},
		{true, false, true, true, false, false, false, true},
		{true, false, true, true, false, false, false, true, true, false, true},
	}
	for _, bits := range cases {
		v := bitsOf(bits...)
		var buf bytes.Buffer
		WriteBitVec(&buf, v)
		got, err := ReadBitVec(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("ReadBitVec(%v): unexpected error %v", bits, err)
		}
		if !got.Equal(v) {
			t.Errorf("round trip of %v produced %s, want %s", bits, spew.Sdump(got), spew.Sdump(v))
		}
	}
}

func TestBitVecRejectsNonZeroPadding(t *testing.T) {
	// 3 bits, but set a padding bit in the final byte.
	var buf bytes.Buffer
	WriteVarUint(&buf, 3)
	buf.WriteByte(0xFF) // only the top 3 bits are meaningful; the rest must be zero
	if _, err := ReadBitVec(bytes.NewReader(buf.Bytes())); err == nil {
		t.Errorf("ReadBitVec: expected error on non-zero padding bits")
	}
}

func TestBitVecGetOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Get out of range: expected panic")
		}
	}()
	bitsOf(true).Get(5)
}
