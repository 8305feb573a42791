// Copyright (c) 2024 The Massa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package posstate

import (
	"bytes"
	"fmt"

	"github.com/massalabs/massa-pos/address"
	"github.com/massalabs/massa-pos/poscredits"
	"github.com/massalabs/massa-pos/posstats"
	"github.com/massalabs/massa-pos/serialization"
	"github.com/massalabs/massa-pos/slot"
)

// GetCycleHistoryPart emits at most one CycleInfo payload for the
// bootstrap cycle-history stream, and the cursor the caller should present
// on its next call.
//
// cursor is the cycle number last successfully transferred, or nil for the
// initial call. The returned complete flag is nil only when no cycle is
// available at all; otherwise it mirrors CycleInfo.Complete for the cycle
// just emitted (false, with no data, means "caller already has the newest
// cycle; nothing new yet").
//
// The payload travels wrapped in a StorageRef, the same handle a transport
// collaborator hands bootstrap bytes around in.
func (fs *FinalState) GetCycleHistoryPart(cursor *uint64) (data *StorageRef, nextCursor *uint64, complete *bool, err error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	targetIndex, noProgress := fs.resolveCycleTargetIndexLocked(cursor)
	if noProgress {
		c := false
		return nil, cursor, &c, nil
	}
	if targetIndex >= len(fs.cycleHistory) {
		return nil, nil, nil, nil
	}

	info := fs.cycleHistory[targetIndex]
	var buf bytes.Buffer
	serialization.WriteVarUint(&buf, info.Cycle)
	if info.Complete {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
	rollAddrs := address.Sorted(info.RollCounts)
	serialization.WriteVarUint(&buf, uint64(len(rollAddrs)))
	for _, a := range rollAddrs {
		serialization.WriteAddress(&buf, a)
		serialization.WriteVarUint(&buf, info.RollCounts[a])
	}
	serialization.WriteBitVec(&buf, info.RngSeed)
	statAddrs := address.Sorted(info.ProductionStats)
	serialization.WriteVarUint(&buf, uint64(len(statAddrs)))
	for _, a := range statAddrs {
		st := info.ProductionStats[a]
		serialization.WriteAddress(&buf, a)
		serialization.WriteVarUint(&buf, st.BlockSuccessCount)
		serialization.WriteVarUint(&buf, st.BlockFailureCount)
	}

	cycle := info.Cycle
	completeFlag := info.Complete
	return NewStorageRef(buf.Bytes()), &cycle, &completeFlag, nil
}

// resolveCycleTargetIndexLocked implements spec §4.7's sender algorithm.
// It reports noProgress when the cursor already points at the newest
// retained cycle: the caller should return (empty, cursor, false).
func (fs *FinalState) resolveCycleTargetIndexLocked(cursor *uint64) (targetIndex int, noProgress bool) {
	first := fs.firstCycleIndexLocked()
	if cursor == nil {
		return first, false
	}
	for idx, info := range fs.cycleHistory {
		if info.Cycle == *cursor {
			if idx == len(fs.cycleHistory)-1 {
				return 0, true
			}
			return idx + 1, false
		}
	}
	// cursor refers to a cycle no longer retained: restart from the
	// safety margin, not from the cursor's (evicted) position.
	return first, false
}

// firstCycleIndexLocked returns the index of the oldest cycle the sender
// should ever stream. When the history is already at capacity, index 0 is
// a "safety" entry whose older content is redundant and is skipped.
func (fs *FinalState) firstCycleIndexLocked() int {
	if uint64(len(fs.cycleHistory)) >= fs.historyLength {
		return 1
	}
	return 0
}

// SetCycleHistoryPart applies one CycleInfo payload received from a
// bootstrap peer, and returns the cycle number now at the back of the
// local history.
//
// A nil part, or one with empty payload, is a no-op (the sender had
// nothing new) and returns (nil, nil). The whole payload is parsed into a
// detached CycleInfo before any mutation, so a malformed payload never
// leaves the receiver partially mutated (spec §7 atomicity). A part whose
// StorageRef has already been released is reported as a ChannelError: the
// transport collaborator handed over a handle it no longer backs.
func (fs *FinalState) SetCycleHistoryPart(part *StorageRef) (*uint64, error) {
	if part == nil {
		return nil, nil
	}
	payload, err := part.Payload()
	if err != nil {
		return nil, NewChannelError("set_cycle_history_part", err)
	}
	if len(payload) == 0 {
		return nil, nil
	}

	incoming, rest, err := decodeCycleInfo(payload)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, serialization.NewDeserializeError("cycle_history_part",
			fmt.Errorf("%d trailing byte(s) after CycleInfo", len(rest)))
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	back := fs.cycleHistory[len(fs.cycleHistory)-1]
	if back.Cycle == incoming.Cycle {
		back.mergeFrom(incoming)
	} else {
		fs.cycleHistory = append(fs.cycleHistory, incoming)
		if uint64(len(fs.cycleHistory)) > fs.historyLength {
			fs.cycleHistory = fs.cycleHistory[1:]
		}
	}

	cycle := fs.cycleHistory[len(fs.cycleHistory)-1].Cycle
	return &cycle, nil
}

func decodeCycleInfo(part []byte) (info *CycleInfo, rest []byte, err error) {
	r := bytes.NewReader(part)

	cycle, err := serialization.ReadVarUint(r, serialization.FullRangeU64[0], serialization.FullRangeU64[1])
	if err != nil {
		return nil, nil, err
	}
	completeByte, err := r.ReadByte()
	if err != nil {
		return nil, nil, serialization.NewDeserializeError("cycle_info.complete", err)
	}
	if completeByte != 0 && completeByte != 1 {
		return nil, nil, serialization.NewDeserializeError("cycle_info.complete",
			fmt.Errorf("expected 0 or 1, got %d", completeByte))
	}

	rollCountsLen, err := serialization.ReadVarUint(r, serialization.FullRangeU64[0], serialization.FullRangeU64[1])
	if err != nil {
		return nil, nil, err
	}
	rollCounts := make(map[address.Address]uint64, rollCountsLen)
	for i := uint64(0); i < rollCountsLen; i++ {
		a, err := serialization.ReadAddress(r)
		if err != nil {
			return nil, nil, err
		}
		n, err := serialization.ReadVarUint(r, serialization.FullRangeU64[0], serialization.FullRangeU64[1])
		if err != nil {
			return nil, nil, err
		}
		rollCounts[a] = n
	}

	rngSeed, err := serialization.ReadBitVec(r)
	if err != nil {
		return nil, nil, err
	}

	statsLen, err := serialization.ReadVarUint(r, serialization.FullRangeU64[0], serialization.FullRangeU64[1])
	if err != nil {
		return nil, nil, err
	}
	stats := make(map[address.Address]posstats.Stats, statsLen)
	for i := uint64(0); i < statsLen; i++ {
		a, err := serialization.ReadAddress(r)
		if err != nil {
			return nil, nil, err
		}
		success, err := serialization.ReadVarUint(r, serialization.FullRangeU64[0], serialization.FullRangeU64[1])
		if err != nil {
			return nil, nil, err
		}
		failure, err := serialization.ReadVarUint(r, serialization.FullRangeU64[0], serialization.FullRangeU64[1])
		if err != nil {
			return nil, nil, err
		}
		stats[a] = posstats.Stats{BlockSuccessCount: success, BlockFailureCount: failure}
	}

	info = &CycleInfo{
		Cycle:           cycle,
		Complete:        completeByte == 1,
		RollCounts:      rollCounts,
		RngSeed:         rngSeed,
		ProductionStats: stats,
	}

	remaining := make([]byte, r.Len())
	_, _ = r.Read(remaining)
	return info, remaining, nil
}

// GetDeferredCreditsPart emits every deferred credit strictly after
// cursor, in ascending slot order.
//
// The emitted slot count is read from the full deferred-credits map, not
// from the windowed range actually emitted below it — this mirrors the
// original implementation's observed behavior (spec §9 Open Question #1)
// rather than fixing what may be a bug. SetDeferredCreditsPart reads
// exactly that many slot entries, so a part emitted with a cursor that
// skips earlier slots runs out of data and is rejected with a
// DeserializeError; only a part covering the whole map applies cleanly.
//
// The payload travels wrapped in a StorageRef, the same handle
// GetCycleHistoryPart uses.
func (fs *FinalState) GetDeferredCreditsPart(cursor *slot.Slot) (data *StorageRef, nextCursor *slot.Slot, err error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	slots := fs.deferredCredits.SlotsAfter(cursor)
	if len(slots) == 0 {
		return nil, nil, nil
	}

	var buf bytes.Buffer
	serialization.WriteVarUint(&buf, uint64(fs.deferredCredits.Len()))
	for _, s := range slots {
		serialization.WriteSlot(&buf, s)
		inner := fs.deferredCredits.At(s)
		addrs := address.Sorted(inner)
		serialization.WriteVarUint(&buf, uint64(len(addrs)))
		for _, a := range addrs {
			serialization.WriteAddress(&buf, a)
			serialization.WriteAmount(&buf, inner[a])
		}
	}

	last := slots[len(slots)-1]
	return NewStorageRef(buf.Bytes()), &last, nil
}

// SetDeferredCreditsPart applies one deferred-credits payload received
// from a bootstrap peer, merging it additively, and returns the greatest
// slot now present in the receiver's map.
//
// A nil part, or one with empty payload, is a no-op. A part whose
// StorageRef has already been released is reported as a ChannelError.
func (fs *FinalState) SetDeferredCreditsPart(part *StorageRef) (*slot.Slot, error) {
	if part == nil {
		return nil, nil
	}
	payload, err := part.Payload()
	if err != nil {
		return nil, NewChannelError("set_deferred_credits_part", err)
	}
	if len(payload) == 0 {
		return nil, nil
	}

	r := bytes.NewReader(payload)
	n, err := serialization.ReadVarUint(r, serialization.FullRangeU64[0], serialization.FullRangeU64[1])
	if err != nil {
		return nil, err
	}

	fs.mu.RLock()
	threadCount := fs.threadCount
	fs.mu.RUnlock()

	incoming, err := decodeDeferredCredits(r, n, threadCount)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, serialization.NewDeserializeError("deferred_credits_part",
			fmt.Errorf("%d trailing byte(s) after deferred credits", r.Len()))
	}

	fs.mu.Lock()
	fs.deferredCredits.NestedExtend(incoming)
	last := fs.deferredCredits.LastSlot()
	fs.mu.Unlock()

	return last, nil
}

func decodeDeferredCredits(r *bytes.Reader, slotCount uint64, threadCount uint8) (*poscredits.DeferredCredits, error) {
	out := poscredits.New()
	for i := uint64(0); i < slotCount; i++ {
		s, err := serialization.ReadSlot(r, threadCount)
		if err != nil {
			return nil, err
		}
		innerLen, err := serialization.ReadVarUint(r, serialization.FullRangeU64[0], serialization.FullRangeU64[1])
		if err != nil {
			return nil, err
		}
		for j := uint64(0); j < innerLen; j++ {
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
