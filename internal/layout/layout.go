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

// Package layout holds the fixed offsets and field widths shared by the
// arena and queue packages. Every constant here is part of the on-wire
// buffer contract: changing one changes the bytes a host sees.
package layout

const (
	// BufferSize is the total size of the arena backing every allocator
	// instance. The spec fixes this at exactly 2048 bytes; it is not
	// configurable.
	BufferSize = 2048

	// HeaderSize is the size of the allocator state at offset 0.
	HeaderSize = 8

	// RecordSize is the size of one queue record.
	RecordSize = 8

	// BlockSize is the size of one data block (2-byte link + payload).
	BlockSize = 16

	// BlockDataSize is the number of payload bytes per data block.
	BlockDataSize = BlockSize - 2

	// LowestBlockSentinel is the value `lowest_block_offset` takes when
	// no data blocks are live. It is BufferSize-1, not BufferSize,
	// and is observable on the wire (spec §9).
	LowestBlockSentinel = BufferSize - 1

	// BlockFree marks a block's next_block_offset as unallocated.
	BlockFree = 0

	// BlockTerminal marks a block as allocated with no successor.
	BlockTerminal = 1

	// FirstRecordOffset is the lowest offset a queue record may occupy.
	FirstRecordOffset = HeaderSize
)
