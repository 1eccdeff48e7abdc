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

// Block field offsets, relative to the start of a 16-byte data block.
const (
	blkOffNext  = 0
	blkOffBytes = 2
)

// Block is a view over one 16-byte data-block slot.
type Block struct {
	buf *Buffer
	Off uint16
}

// BlockAt returns a Block view over the slot at off.
func (b *Buffer) BlockAt(off uint16) Block {
	return Block{buf: b, Off: off}
}

// Next returns the next_block_offset field: 0 free, 1 terminal,
// >=16 the offset of the successor block.
func (bl Block) Next() uint16 { return bl.buf.u16(bl.Off + blkOffNext) }
func (bl Block) SetNext(v uint16) { bl.buf.setU16(bl.Off+blkOffNext, v) }

// Byte returns payload byte i (0 <= i < layout.BlockDataSize).
func (bl Block) Byte(i int8) byte {
	return bl.buf.data[int(bl.Off)+blkOffBytes+int(i)]
}

// SetByte writes payload byte i.
func (bl Block) SetByte(i int8, v byte) {
	bl.buf.data[int(bl.Off)+blkOffBytes+int(i)] = v
}

// Free reports whether this block slot is unallocated.
func (bl Block) Free() bool { return bl.Next() == layout.BlockFree }
