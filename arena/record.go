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

// Record field offsets, relative to the start of an 8-byte queue
// record.
const (
	recOffFirstBlock = 0
	recOffLastBlock  = 2
	recOffSize       = 4
	recOffFirst      = 6
	recOffLast       = 7
)

// Record is a view over one 8-byte queue-record slot. It carries no
// state of its own beyond the arena and the slot's offset; all reads
// and writes go straight through to the backing array.
type Record struct {
	buf *Buffer
	Off uint16
}

// RecordAt returns a Record view over the slot at off.
func (b *Buffer) RecordAt(off uint16) Record {
	return Record{buf: b, Off: off}
}

func (r Record) FirstBlock() uint16 { return r.buf.u16(r.Off + recOffFirstBlock) }
func (r Record) SetFirstBlock(v uint16) { r.buf.setU16(r.Off+recOffFirstBlock, v) }

func (r Record) LastBlock() uint16 { return r.buf.u16(r.Off + recOffLastBlock) }
func (r Record) SetLastBlock(v uint16) { r.buf.setU16(r.Off+recOffLastBlock, v) }

func (r Record) Size() uint16 { return r.buf.u16(r.Off + recOffSize) }
func (r Record) SetSize(v uint16) { r.buf.setU16(r.Off+recOffSize, v) }

func (r Record) First() int8 { return r.buf.i8(r.Off + recOffFirst) }
func (r Record) SetFirst(v int8) { r.buf.setI8(r.Off+recOffFirst, v) }

func (r Record) Last() int8 { return r.buf.i8(r.Off + recOffLast) }
func (r Record) SetLast(v int8) { r.buf.setI8(r.Off+recOffLast, v) }

// Free reports whether this record slot is unallocated.
func (r Record) Free() bool { return r.FirstBlock() == 0 }

// InitEmpty fills a freshly allocated record slot with the state of
// an empty, single-block queue (spec §4.3).
func (r Record) InitEmpty(block uint16) {
	r.SetFirstBlock(block)
	r.SetLastBlock(block)
	r.SetSize(0)
	r.SetFirst(0)
	r.SetLast(layout.BlockDataSize - 1)
}
