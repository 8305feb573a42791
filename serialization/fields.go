// Copyright (c) 2024 The Massa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package serialization

import (
	"bytes"
	"fmt"
	"io"

	"github.com/massalabs/massa-pos/address"
	"github.com/massalabs/massa-pos/amount"
	"github.com/massalabs/massa-pos/slot"
)

// WriteAddress appends the raw fixed-width image of a, with no length
// prefix: the address codec is the one primitive that needs no framing.
func WriteAddress(buf *bytes.Buffer, a address.Address) {
	buf.Write(a[:])
}

// ReadAddress decodes a fixed-width Address from r.
func ReadAddress(r io.Reader) (address.Address, error) {
	var raw [address.Size]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return address.Address{}, NewDeserializeError("address", err)
	}
	return address.Address(raw), nil
}

// WriteAmount appends a's internal integer representation as a varint.
func WriteAmount(buf *bytes.Buffer, a amount.Amount) {
	WriteVarUint(buf, uint64(a))
}

// ReadAmount decodes an Amount, bounded to [amount.MinAmount,
// amount.MaxAmount].
func ReadAmount(r io.ByteReader) (amount.Amount, error) {
	v, err := ReadVarUint(r, uint64(amount.MinAmount), uint64(amount.MaxAmount))
	if err != nil {
		return 0, err
	}
	return amount.Amount(v), nil
}

// byteAndReader is the minimal surface the slot codec needs: a single-byte
// read for the thread, byte-at-a-time reads for the period varint.
type byteAndReader interface {
	io.Reader
	io.ByteReader
}

// WriteSlot appends s as a varint period followed by a single thread byte.
func WriteSlot(buf *bytes.Buffer, s slot.Slot) {
	WriteVarUint(buf, s.Period)
	buf.WriteByte(s.Thread)
}

// ReadSlot decodes a Slot and enforces thread < threadCount, per spec §3's
// thread well-formedness invariant.
func ReadSlot(r byteAndReader, threadCount uint8) (slot.Slot, error) {
	period, err := ReadVarUint(r, FullRangeU64[0], FullRangeU64[1])
	if err != nil {
		return slot.Slot{}, err
	}
	b, err := r.ReadByte()
	if err != nil {
		return slot.Slot{}, NewDeserializeError("slot.thread", err)
	}
	if b >= threadCount {
		return slot.Slot{}, NewDeserializeError("slot.thread",
			fmt.Errorf("thread %d >= thread_count %d", b, threadCount))
	}
	return slot.Slot{Period: period, Thread: b}, nil
}
