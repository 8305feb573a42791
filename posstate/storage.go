// Copyright (c) 2024 The Massa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package posstate

import (
	"errors"
	"sync/atomic"
)

// StorageRef is a minimal reference-counted handle standing in for the
// wider node's Storage type (original_source's massa-protocol-exports
// shows bootstrap payloads traveling inside a protocol event carrying a
// Storage snapshot owned by the receiver on delivery). The final state
// does not know how to fetch or persist the bytes it wraps; it only needs
// to hand a payload to a transport collaborator without that collaborator
// racing a second clone's Release against the original.
//
// This is the handle GetCycleHistoryPart/GetDeferredCreditsPart return and
// Set*Part accept: the bootstrap façade never deals in raw []byte.
type StorageRef struct {
	payload  []byte
	refs     *int32
	released *int32
}

// NewStorageRef wraps payload in a fresh, single-owner StorageRef.
func NewStorageRef(payload []byte) *StorageRef {
	refs := int32(1)
	released := int32(0)
	return &StorageRef{payload: payload, refs: &refs, released: &released}
}

// Clone returns a new handle to the same payload, incrementing the shared
// reference count.
func (s *StorageRef) Clone() *StorageRef {
	atomic.AddInt32(s.refs, 1)
	return &StorageRef{payload: s.payload, refs: s.refs, released: s.released}
}

// Payload returns the wrapped bytes. It errors once every clone's Release
// has been called, since the collaborator on the other side of the
// transport may have already reused or discarded the backing buffer.
func (s *StorageRef) Payload() ([]byte, error) {
	if atomic.LoadInt32(s.released) != 0 {
		return nil, errors.New("storage ref payload accessed after release")
	}
	return s.payload, nil
}

// Release drops this handle's reference. It reports whether this was the
// last outstanding reference, at which point every clone's Payload starts
// erroring.
func (s *StorageRef) Release() bool {
	if atomic.AddInt32(s.refs, -1) == 0 {
		atomic.StoreInt32(s.released, 1)
		return true
	}
	return false
}
