// Copyright 2025 CloudWeGo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package arena manages a single fixed 2048-byte buffer as two
// populations growing from opposite ends: queue records from the low
// end and data blocks from the high end. It is the in-band allocator
// underneath package queue, in the same spirit as unsafex/malloc's
// arena-resident allocators: every handle is an offset into the one
// owning byte slice, never a Go pointer into its interior.
package arena

import (
	"fmt"
	"unsafe"

	"github.com/kvarena/blockqueue/internal/layout"
)

// Buffer is a view over a single layout.BufferSize byte arena holding
// the allocator header, the queue-record pool, and the data-block
// pool. The zero value is not usable; construct with New or Wrap.
type Buffer struct {
	data  []byte
	start unsafe.Pointer

	onOutOfMemory      func()
	onIllegalOperation func()
}

// New allocates a fresh layout.BufferSize arena and returns an
// uninitialized Buffer over it. The backing slice starts zeroed: a zero
// lowest_free_queue_offset is what marks the arena uninitialized, and
// zero first_block_offset / next_block_offset fields are what mark
// record and block slots free, none of which Init writes.
func New() *Buffer {
	return Wrap(make([]byte, layout.BufferSize))
}

// Wrap returns a Buffer over an existing byte slice. data must be
// exactly layout.BufferSize bytes; Wrap panics otherwise, since a
// mis-sized arena would silently corrupt the dual-region layout.
func Wrap(data []byte) *Buffer {
	if len(data) != layout.BufferSize {
		panic(fmt.Sprintf("arena: buffer must be exactly %d bytes, got %d", layout.BufferSize, len(data)))
	}
	b := &Buffer{data: data, start: unsafe.Pointer(&data[0])}
	b.onOutOfMemory = b.defaultOutOfMemory
	b.onIllegalOperation = b.defaultIllegalOperation
	return b
}

// Bytes returns the raw backing slice. Intended for host-side
// diagnostics (e.g. a pretty-printer); callers must not retain offsets
// derived from it across mutating calls that could move cursors.
func (b *Buffer) Bytes() []byte { return b.data }

func (b *Buffer) u16(off uint16) uint16 {
	return *(*uint16)(unsafe.Add(b.start, off))
}

func (b *Buffer) setU16(off uint16, v uint16) {
	*(*uint16)(unsafe.Add(b.start, off)) = v
}

func (b *Buffer) i8(off uint16) int8 {
	return *(*int8)(unsafe.Add(b.start, off))
}

func (b *Buffer) setI8(off uint16, v int8) {
	*(*int8)(unsafe.Add(b.start, off)) = v
}

// Header field offsets within the 8-byte allocator state at offset 0.
const (
	offLowestFreeQueue  = 0
	offHighestFreeBlock = 2
	offHighestQueue     = 4
	offLowestBlock      = 6
)

// LowestFreeQueueOffset returns the smallest offset known free for a
// queue record, or 0 if the allocator has never been initialized.
func (b *Buffer) LowestFreeQueueOffset() uint16 { return b.u16(offLowestFreeQueue) }

func (b *Buffer) setLowestFreeQueueOffset(v uint16) { b.setU16(offLowestFreeQueue, v) }

// HighestFreeBlockOffset returns the largest offset known free for a
// data block.
func (b *Buffer) HighestFreeBlockOffset() uint16 { return b.u16(offHighestFreeBlock) }

func (b *Buffer) setHighestFreeBlockOffset(v uint16) { b.setU16(offHighestFreeBlock, v) }

// HighestQueueOffset returns the largest offset currently holding a
// live queue record, or 0 if none are live.
func (b *Buffer) HighestQueueOffset() uint16 { return b.u16(offHighestQueue) }

func (b *Buffer) setHighestQueueOffset(v uint16) { b.setU16(offHighestQueue, v) }

// LowestBlockOffset returns the smallest offset currently holding a
// live data block, or the layout.LowestBlockSentinel value when none
// are live.
func (b *Buffer) LowestBlockOffset() uint16 { return b.u16(offLowestBlock) }

func (b *Buffer) setLowestBlockOffset(v uint16) { b.setU16(offLowestBlock, v) }

// Initialized reports whether Init has run on this arena.
func (b *Buffer) Initialized() bool { return b.LowestFreeQueueOffset() != 0 }

// Init resets the allocator header to its post-initialization values.
// It is idempotent only in the sense that calling it again discards
// any live queues; callers normally call it at most once, lazily, the
// first time CreateQueue observes an uninitialized arena.
func (b *Buffer) Init() {
	b.setLowestFreeQueueOffset(layout.FirstRecordOffset)
	b.setHighestFreeBlockOffset(layout.BufferSize - layout.BlockSize)
	b.setHighestQueueOffset(0)
	b.setLowestBlockOffset(layout.LowestBlockSentinel)
}

// SetOutOfMemoryHandler installs the callback invoked when a data
// block allocation would collide the block region with the record
// region. The handler MUST NOT return; the default panics.
func (b *Buffer) SetOutOfMemoryHandler(f func()) {
	if f == nil {
		f = b.defaultOutOfMemory
	}
	b.onOutOfMemory = f
}

// SetIllegalOperationHandler installs the callback invoked on a null
// handle, a destroyed handle, or dequeuing an empty queue. The
// handler MUST NOT return; the default panics.
func (b *Buffer) SetIllegalOperationHandler(f func()) {
	if f == nil {
		f = b.defaultIllegalOperation
	}
	b.onIllegalOperation = f
}

func (b *Buffer) defaultOutOfMemory() {
	panic("arena: out of memory")
}

func (b *Buffer) defaultIllegalOperation() {
	panic("arena: illegal operation")
}

// raiseOutOfMemory invokes the out-of-memory handler and, since a
// conforming handler never returns, panics anyway as a backstop so a
// misbehaving handler cannot leave the allocator in a half-updated
// state.
func (b *Buffer) raiseOutOfMemory() {
	b.onOutOfMemory()
	panic("arena: out-of-memory handler returned")
}

// raiseIllegalOperation invokes the illegal-operation handler and
// panics if it returns, mirroring raiseOutOfMemory.
func (b *Buffer) raiseIllegalOperation() {
	b.onIllegalOperation()
	panic("arena: illegal-operation handler returned")
}

// RaiseOutOfMemory invokes the out-of-memory contract (§7). Exported
// for package queue, whose CreateQueue checks Exhausted before taking
// a record slot; Enqueue reaches this error only through AllocBlock.
func (b *Buffer) RaiseOutOfMemory() { b.raiseOutOfMemory() }

// RaiseIllegalOperation invokes the illegal-operation contract (§7)
// for the handle-validity checks that live in package queue: a null
// handle, a destroyed handle, or dequeuing an empty queue.
func (b *Buffer) RaiseIllegalOperation() { b.raiseIllegalOperation() }
