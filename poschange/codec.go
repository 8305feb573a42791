// Copyright (c) 2024 The Massa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package poschange

import (
	"bytes"
	"fmt"

	"github.com/massalabs/massa-pos/address"
	"github.com/massalabs/massa-pos/poscredits"
	"github.com/massalabs/massa-pos/posstats"
	"github.com/massalabs/massa-pos/serialization"
)

// Serializer encodes a Changes value per spec §4.5: strict concatenation,
// no framing, with every address-keyed map walked in ascending address
// order so two peers produce byte-identical output for the same value
// (Open Question #3 in spec.md is resolved this way, not left to map
// iteration order).
type Serializer struct{}

// NewSerializer returns a Changes serializer. It carries no state; it
// exists as a type for symmetry with Deserializer, which does.
func NewSerializer() *Serializer {
	return &Serializer{}
}

// Serialize encodes c into a fresh byte slice.
func (s *Serializer) Serialize(c *Changes) ([]byte, error) {
	var buf bytes.Buffer
	serialization.WriteBitVec(&buf, c.SeedBits)

	rollAddrs := address.Sorted(c.RollChanges)
	serialization.WriteVarUint(&buf, uint64(len(rollAddrs)))
	for _, a := range rollAddrs {
		serialization.WriteAddress(&buf, a)
		serialization.WriteVarUint(&buf, c.RollChanges[a])
	}

	statAddrs := address.Sorted(c.ProductionStats)
	serialization.WriteVarUint(&buf, uint64(len(statAddrs)))
	for _, a := range statAddrs {
		st := c.ProductionStats[a]
		serialization.WriteAddress(&buf, a)
		serialization.WriteVarUint(&buf, st.BlockSuccessCount)
		serialization.WriteVarUint(&buf, st.BlockFailureCount)
	}

	slots := c.DeferredCredits.Slots()
	serialization.WriteVarUint(&buf, uint64(len(slots)))
	for _, sl := range slots {
		serialization.WriteSlot(&buf, sl)
		inner := c.DeferredCredits.At(sl)
		innerAddrs := address.Sorted(inner)
		serialization.WriteVarUint(&buf, uint64(len(innerAddrs)))
		for _, a := range innerAddrs {
			serialization.WriteAddress(&buf, a)
			serialization.WriteAmount(&buf, inner[a])
		}
	}

	return buf.Bytes(), nil
}

// Deserializer decodes Changes payloads produced by Serializer. It is
// parameterized by thread_count because the embedded Slot codec must
// reject a thread index outside the configured bound.
type Deserializer struct {
	threadCount uint8
}

// NewDeserializer returns a Changes deserializer bound to threadCount.
func NewDeserializer(threadCount uint8) *Deserializer {
	return &Deserializer{threadCount: threadCount}
}

// Deserialize decodes a Changes value from data and requires that the
// entire buffer be consumed; trailing bytes are a DeserializeError.
func (d *Deserializer) Deserialize(data []byte) (*Changes, error) {
	r := bytes.NewReader(data)

	seedBits, err := serialization.ReadBitVec(r)
	if err != nil {
		return nil, err
	}

	rollChanges, err := d.readRollChanges(r)
	if err != nil {
		return nil, err
	}

	productionStats, err := d.readProductionStats(r)
	if err != nil {
		return nil, err
	}

	deferredCredits, err := d.readDeferredCredits(r)
	if err != nil {
		return nil, err
	}

	if r.Len() != 0 {
		return nil, serialization.NewDeserializeError("changes",
			fmt.Errorf("%d trailing byte(s) after PoSChanges", r.Len()))
	}

	return &Changes{
		SeedBits:        seedBits,
		RollChanges:     rollChanges,
		ProductionStats: productionStats,
		DeferredCredits: deferredCredits,
	}, nil
}

func (d *Deserializer) readRollChanges(r *bytes.Reader) (map[address.Address]uint64, error) {
	n, err := serialization.ReadVarUint(r, serialization.FullRangeU64[0], serialization.FullRangeU64[1])
	if err != nil {
		return nil, err
	}
	out := make(map[address.Address]uint64, n)
	for i := uint64(0); i < n; i++ {
		a, err := serialization.ReadAddress(r)
		if err != nil {
			return nil, err
		}
		roll, err := serialization.ReadVarUint(r, serialization.FullRangeU64[0], serialization.FullRangeU64[1])
		if err != nil {
			return nil, err
		}
		out[a] = roll
	}
	return out, nil
}

func (d *Deserializer) readProductionStats(r *bytes.Reader) (map[address.Address]posstats.Stats, error) {
	n, err := serialization.ReadVarUint(r, serialization.FullRangeU64[0], serialization.FullRangeU64[1])
	if err != nil {
		return nil, err
	}
	out := make(map[address.Address]posstats.Stats, n)
	for i := uint64(0); i < n; i++ {
		a, err := serialization.ReadAddress(r)
		if err != nil {
			return nil, err
		}
		success, err := serialization.ReadVarUint(r, serialization.FullRangeU64[0], serialization.FullRangeU64[1])
		if err != nil {
			return nil, err
		}
		failure, err := serialization.ReadVarUint(r, serialization.FullRangeU64[0], serialization.FullRangeU64[1])
		if err != nil {
			return nil, err
		}
		out[a] = posstats.Stats{BlockSuccessCount: success, BlockFailureCount: failure}
	}
	return out, nil
}

func (d *Deserializer) readDeferredCredits(r *bytes.Reader) (*poscredits.DeferredCredits, error) {
	n, err := serialization.ReadVarUint(r, serialization.FullRangeU64[0], serialization.FullRangeU64[1])
	if err != nil {
		return nil, err
	}
	out := poscredits.New()
	for i := uint64(0); i < n; i++ {
		s, err := serialization.ReadSlot(r, d.threadCount)
		if err != nil {
			return nil, err
		}
		innerCount, err := serialization.ReadVarUint(r, serialization.FullRangeU64[0], serialization.FullRangeU64[1])
		if err != nil {
			return nil, err
		}
		for j := uint64(0); j < innerCount; j++ {
			a, err := serialization.ReadAddress(r)
			if err != nil {
				return nil, err
			}
			amt, err := serialization.ReadAmount(r)
			if err != nil {
				return nil, err
			}
			out.Set(s, a, amt)
		}
	}
	return out, nil
}
