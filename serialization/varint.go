// Copyright (c) 2024 The Massa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package serialization

import (
	"bytes"
	"fmt"
	"io"
	"math"
)

// WriteVarUint appends v to buf as a little-endian base-128 varint: seven
// payload bits per byte, continuation bit set in every byte but the last.
func WriteVarUint(buf *bytes.Buffer, v uint64) {
	for v >= 0x80 {
		buf.WriteByte(byte(v) | 0x80)
		v >>= 7
	}
	buf.WriteByte(byte(v))
}

// ReadVarUint decodes a varint from r and rejects a value outside the
// inclusive range [lo, hi]. The range check is what lets a single codec
// serve bounded fields (amounts, thread-bounded slots) and unbounded ones
// (counts, periods) alike.
func ReadVarUint(r io.ByteReader, lo, hi uint64) (uint64, error) {
	var result uint64
	var shift uint
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, NewDeserializeError("varint", err)
		}
		if shift >= 64 {
			return 0, NewDeserializeError("varint", fmt.Errorf("value exceeds 64 bits"))
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			break
		}
		shift += 7
	}
	if result < lo || result > hi {
		return 0, NewDeserializeError("varint",
			fmt.Errorf("value %d out of range [%d, %d]", result, lo, hi))
	}
	return result, nil
}

// FullRangeU64 is the inclusive [0, math.MaxUint64] bound, used wherever the
// spec leaves a varint unbounded (entry counts, periods).
var FullRangeU64 = [2]uint64{0, math.MaxUint64}
