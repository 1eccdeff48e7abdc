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

package queue

import "github.com/kvarena/blockqueue/arena"

// Manager owns one arena and the queues living inside it. The zero
// value is not usable; construct with NewManager or NewManagerWithArena.
type Manager struct {
	arena *arena.Buffer
}

// NewManager allocates a fresh 2048-byte arena and returns a Manager
// over it. The arena is lazily initialized by the first CreateQueue
// call, matching the source's "first create_queue wins" behavior.
func NewManager() *Manager {
	return &Manager{arena: arena.New()}
}

// NewManagerWithArena returns a Manager over an already-constructed
// arena.Buffer, e.g. one the caller built with arena.Wrap over a
// buffer they own.
func NewManagerWithArena(buf *arena.Buffer) *Manager {
	return &Manager{arena: buf}
}

// SetOutOfMemoryHandler installs the callback invoked when the arena
// cannot satisfy a block allocation (§7). The handler MUST NOT return.
func (m *Manager) SetOutOfMemoryHandler(f func()) {
	m.arena.SetOutOfMemoryHandler(f)
}

// SetIllegalOperationHandler installs the callback invoked on a null
// or destroyed handle, or dequeuing an empty queue (§7). The handler
// MUST NOT return.
func (m *Manager) SetIllegalOperationHandler(f func()) {
	m.arena.SetIllegalOperationHandler(f)
}

// CreateQueue allocates a new, empty FIFO queue and returns its
// handle (spec §4.1, §4.3).
func (m *Manager) CreateQueue() Handle {
	b := m.arena
	if !b.Initialized() {
		b.Init()
	}
	if b.Exhausted() {
		b.RaiseOutOfMemory()
	}

	off := b.NextRecordOffset()
	block := b.AllocBlock() // may itself raise out-of-memory
	b.RecordAt(off).InitEmpty(block)
	b.CommitRecordAlloc(off)

	return Handle(off)
}

// DestroyQueue frees a queue's record and every block in its chain
// (spec §4.4). h must be a handle returned by CreateQueue and not
// already destroyed; otherwise the illegal-operation callback fires.
func (m *Manager) DestroyQueue(h Handle) {
	b := m.arena
	if h == NullHandle {
		b.RaiseIllegalOperation()
	}
	rec := b.RecordAt(uint16(h))
	if rec.Free() {
		b.RaiseIllegalOperation()
	}

	destroyChain(b, rec.FirstBlock())

	// Unlike the source, whose handle is a raw pointer and must scan
	// the record region to recover its own offset, Handle already IS
	// the record's offset (spec §9 "queue handle stability" decision),
	// so the record to free is known directly.
	b.FreeRecord(uint16(h))
}

// destroyChain walks next_block_offset from head, freeing every block
// along the way. An explicit loop is used rather than recursion (as
// the original does) to avoid stack depth proportional to chain
// length (spec §9).
func destroyChain(b *arena.Buffer, head uint16) {
	for cur := head; cur != 1 && cur != 0; {
		next := b.BlockAt(cur).Next()
		b.FreeBlock(cur)
		cur = next
	}
}
