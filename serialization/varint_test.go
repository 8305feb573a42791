// Copyright (c) 2024 The Massa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package serialization

import (
	"bytes"
	"math"
	"testing"
)

func TestVarUintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 129, 16383, 16384, math.MaxUint32, math.MaxUint64}
	for _, v := range values {
		var buf bytes.Buffer
		WriteVarUint(&buf, v)
		got, err := ReadVarUint(bytes.NewReader(buf.Bytes()), FullRangeU64[0], FullRangeU64[1])
		if err != nil {
			t.Fatalf("ReadVarUint(%d): unexpected error %v", v, err)
		}
		if got != v {
			t.Errorf("round trip of %d produced %d", v, got)
		}
	}
}

func TestVarUintMinimalEncoding(t *testing.T) {
	// Single-byte values must encode to exactly one byte.
	var buf bytes.Buffer
	WriteVarUint(&buf, 100)
	if buf.Len() != 1 {
		t.Errorf("WriteVarUint(100) produced %d bytes, want 1", buf.Len())
	}
}

func TestVarUintRangeRejection(t *testing.T) {
	var buf bytes.Buffer
	WriteVarUint(&buf, 1000)
	if _, err := ReadVarUint(bytes.NewReader(buf.Bytes()), 0, 999); err == nil {
		t.Errorf("ReadVarUint: expected range error for value above hi bound")
	}
	buf.Reset()
	WriteVarUint(&buf, 5)
	if _, err := ReadVarUint(bytes.NewReader(buf.Bytes()), 6, 10); err == nil {
		t.Errorf("ReadVarUint: expected range error for value below lo bound")
	}
}

func TestVarUintTruncatedInput(t *testing.T) {
	// A continuation byte with nothing following must error, not panic.
	if _, err := ReadVarUint(bytes.NewReader([]byte{0x80}), FullRangeU64[0], FullRangeU64[1]); err == nil {
		t.Errorf("ReadVarUint: expected error on truncated continuation byte")
	}
}
