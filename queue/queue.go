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

import (
	"github.com/kvarena/blockqueue/arena"
	"github.com/kvarena/blockqueue/internal/layout"
)

// blockDataSize and maxIndex are layout.BlockDataSize (14) and its
// last valid index (13) as int8, matching the signed 8-bit cursor
// fields they're compared and added against.
const (
	blockDataSize int8 = layout.BlockDataSize
	maxIndex      int8 = layout.BlockDataSize - 1
)

// Enqueue appends one byte to the tail of the queue identified by h
// (spec §4.5).
func (m *Manager) Enqueue(h Handle, b byte) {
	buf := m.arena
	rec := m.liveRecord(h)

	tail := buf.BlockAt(rec.LastBlock())
	if rec.FirstBlock() == rec.LastBlock() && rec.Size() >= layout.BlockDataSize && rec.First() != 0 {
		// A full single block whose contents wrap around: rotate the
		// oldest byte to index 0 so the block reads first..13 in order
		// before a successor is linked after it.
		var tmp [layout.BlockDataSize]byte
		for i := int8(0); i < blockDataSize; i++ {
			tmp[i] = tail.Byte((rec.First() + i) % blockDataSize)
		}
		for i := int8(0); i < blockDataSize; i++ {
			tail.SetByte(i, tmp[i])
		}
		rec.SetFirst(0)
		rec.SetLast(maxIndex)
	}
	if rec.Last() == maxIndex && rec.Size() >= layout.BlockDataSize {
		newBlock := buf.AllocBlock()
		tail.SetNext(newBlock)
		rec.SetLastBlock(newBlock)
		tail = buf.BlockAt(newBlock)
		rec.SetLast(0)
	} else {
		rec.SetLast((rec.Last() + 1) % blockDataSize)
	}
	tail.SetByte(rec.Last(), b)
	rec.SetSize(rec.Size() + 1)
}

// Dequeue removes and returns the oldest byte in the queue identified
// by h (spec §4.6), triggering block-merge compaction or head-block
// retirement as needed.
func (m *Manager) Dequeue(h Handle) byte {
	buf := m.arena
	rec := m.liveRecord(h)
	if rec.Size() == 0 {
		buf.RaiseIllegalOperation()
	}

	head := buf.BlockAt(rec.FirstBlock())
	out := head.Byte(rec.First())
	head.SetByte(rec.First(), 0)
	rec.SetSize(rec.Size() - 1)

	switch {
	case rec.FirstBlock() != rec.LastBlock() && rec.Size() < 7:
		merge(buf, rec)
	case rec.First() == maxIndex && rec.FirstBlock() != rec.LastBlock():
		advanceHeadBlock(buf, rec, head)
	default:
		rec.SetFirst((rec.First() + 1) % blockDataSize)
	}
	return out
}

// advanceHeadBlock retires a fully-consumed head block and makes its
// successor the new head (spec §4.6 point 2).
func advanceHeadBlock(buf *arena.Buffer, rec arena.Record, head arena.Block) {
	oldHead := rec.FirstBlock()
	successor := head.Next()
	rec.SetFirst(0)
	rec.SetFirstBlock(successor)
	buf.FreeBlock(oldHead)
}

// merge folds a 2-block queue down to its tail block alone, packing
// the size remaining live bytes against index 0 (spec §4.7). Only
// called when first_block_offset != last_block_offset and size < 7, so
// the queue spans exactly two blocks. The tail holds last+1 live bytes
// and the head holds 13-first (first has not advanced past the byte
// just removed), which can be zero. The loop copies the tail's bytes
// first and switches to the head when last drops below 0, after
// exactly last+1 copies; that is at most size copies, so the loop
// always performs exactly one source-block switch (possibly on its
// final iteration) and always frees the head block.
func merge(buf *arena.Buffer, rec arena.Record) {
	target := buf.BlockAt(rec.LastBlock())
	current := target
	last := rec.Last()
	oldHead := rec.FirstBlock()
	size := rec.Size()

	for i := int(size) - 1; i >= 0; i-- {
		target.SetByte(int8(i), current.Byte(last))
		last--
		if last == -1 {
			last = maxIndex
			current = buf.BlockAt(oldHead)
			current.SetNext(0)
		}
	}

	buf.NoteBlockFreed(oldHead)

	rec.SetFirstBlock(rec.LastBlock())
	rec.SetFirst(0)
	rec.SetLast(int8(size) - 1)
}

// liveRecord validates h and returns a view over its record, raising
// the illegal-operation contract (§7) for a null or destroyed handle.
func (m *Manager) liveRecord(h Handle) arena.Record {
	if h == NullHandle {
		m.arena.RaiseIllegalOperation()
	}
	rec := m.arena.RecordAt(uint16(h))
	if rec.Free() {
		m.arena.RaiseIllegalOperation()
	}
	return rec
}
