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

package arena

import "github.com/kvarena/blockqueue/internal/layout"

// Exhausted reports whether a further block allocation would collide
// the block region with the queue-record region.
func (b *Buffer) Exhausted() bool {
	return b.HighestFreeBlockOffset() < b.HighestQueueOffset()+layout.HeaderSize
}

// AllocBlock allocates one 16-byte data block, marks it allocated
// terminal, and returns its offset. It invokes the out-of-memory
// handler (which must not return) if the allocator is exhausted.
func (b *Buffer) AllocBlock() uint16 {
	if b.Exhausted() {
		b.raiseOutOfMemory()
	}

	offset := b.HighestFreeBlockOffset()
	b.BlockAt(offset).SetNext(layout.BlockTerminal)

	if offset < b.LowestBlockOffset() {
		// Block allocations are contiguous: the region is extending
		// downward for the first time at this offset. offset is always
		// >= BlockSize here (the exhaustion check above never admits an
		// offset below HeaderSize, and BlockSize == HeaderSize*2), so
		// this subtraction cannot underflow.
		b.setLowestBlockOffset(offset)
		b.setHighestFreeBlockOffset(offset - layout.BlockSize)
	} else {
		low := b.LowestBlockOffset()
		found := false
		for i := int(offset) - layout.BlockSize; i >= int(low); i -= layout.BlockSize {
			if b.BlockAt(uint16(i)).Free() {
				b.setHighestFreeBlockOffset(uint16(i))
				found = true
				break
			}
		}
		if !found {
			// Open-question fix (spec §9): the source computes
			// lowest_block_offset - BlockSize unconditionally here. Once
			// the block region has grown all the way down to offset 0,
			// that subtraction underflows the unsigned cursor to a huge
			// bogus offset, which then satisfies every future exhaustion
			// check and lets a later AllocBlock hand out a garbage
			// out-of-range offset. Clamping to 0 instead keeps the
			// cursor well-defined: 0 is always < any real threshold
			// (HighestQueueOffset()+HeaderSize is at least HeaderSize),
			// so Exhausted() reports true from here on, same as the
			// source intends but without the wraparound.
			if low < layout.BlockSize {
				b.setHighestFreeBlockOffset(0)
			} else {
				b.setHighestFreeBlockOffset(low - layout.BlockSize)
			}
		}
	}

	return offset
}

// FreeBlock returns the block at off to the free pool, updating the
// highest-free and lowest-block cursors. Used by queue destruction
// and head-block retirement.
func (b *Buffer) FreeBlock(off uint16) {
	b.BlockAt(off).SetNext(layout.BlockFree)
	b.NoteBlockFreed(off)
}

// NoteBlockFreed updates the free-block cursors for a block whose
// next_block_offset has already been cleared by the caller. Block-merge
// compaction frees its retired head block in place, inside the
// byte-copy loop, and calls this afterward instead of FreeBlock to
// avoid clearing next_block_offset a second time.
func (b *Buffer) NoteBlockFreed(off uint16) {
	if off > b.HighestFreeBlockOffset() {
		b.setHighestFreeBlockOffset(off)
	}
	if off == b.LowestBlockOffset() {
		b.recomputeLowestBlockOffset(off)
	}
}

// recomputeLowestBlockOffset scans upward in offset (i.e. toward the
// top of the buffer, where the block region starts) from a block that was just freed,
// looking for the next allocated block. If none remain, the cursor
// resets to the sentinel.
func (b *Buffer) recomputeLowestBlockOffset(from uint16) {
	for i := int(from) + layout.BlockSize; i < layout.BufferSize; i += layout.BlockSize {
		if !b.BlockAt(uint16(i)).Free() {
			b.setLowestBlockOffset(uint16(i))
			return
		}
	}
	b.setLowestBlockOffset(layout.LowestBlockSentinel)
}

// NextRecordOffset peeks at the slot a new queue record would occupy,
// without mutating allocator state. Callers must write the record's
// fields (marking the slot occupied) before calling CommitRecordAlloc.
func (b *Buffer) NextRecordOffset() uint16 {
	return b.LowestFreeQueueOffset()
}

// CommitRecordAlloc updates the queue-record cursors after the slot at
// off has been written with a live record. It must be called only
// after the record's first_block_offset field is non-zero, since the
// cursor search below distinguishes free slots by that field.
func (b *Buffer) CommitRecordAlloc(off uint16) {
	if off > b.HighestQueueOffset() {
		// Record allocations are contiguous: extending upward.
		b.setHighestQueueOffset(off)
		b.setLowestFreeQueueOffset(off + layout.RecordSize)
		return
	}
	for i := off; i <= b.HighestQueueOffset(); i += layout.RecordSize {
		if b.RecordAt(i).Free() {
			b.setLowestFreeQueueOffset(i)
			return
		}
	}
	b.setLowestFreeQueueOffset(b.HighestQueueOffset() + layout.RecordSize)
}

// FreeRecord returns the record slot at off to the free pool.
func (b *Buffer) FreeRecord(off uint16) {
	if off < b.LowestFreeQueueOffset() {
		b.setLowestFreeQueueOffset(off)
	}
	if off == b.HighestQueueOffset() {
		b.recomputeHighestQueueOffset()
	}
	b.RecordAt(off).SetFirstBlock(0)
}

// recomputeHighestQueueOffset scans downward from the record that was
// just freed, looking for the next live record. If none remain, the
// cursor resets to 0.
func (b *Buffer) recomputeHighestQueueOffset() {
	for i := int(b.HighestQueueOffset()) - layout.RecordSize; i >= layout.FirstRecordOffset; i -= layout.RecordSize {
		if !b.RecordAt(uint16(i)).Free() {
			b.setHighestQueueOffset(uint16(i))
			return
		}
	}
	b.setHighestQueueOffset(0)
}
