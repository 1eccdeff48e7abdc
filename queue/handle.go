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

// Package queue implements many independent FIFO byte queues sharing
// one fixed 2048-byte arena (package arena). It is the FIFO engine and
// lifecycle API sitting on top of that arena's dual-region allocator,
// the way container/ring sits on top of a plain Go slice in the
// teacher repo this module is built from.
package queue

// Handle identifies a live queue. It is the 16-bit offset of the
// queue's record within the arena, returned by value rather than as a
// pointer into the arena's interior (spec §9): records never move
// during their lifetime, so the offset alone is a stable reference.
type Handle uint16

// NullHandle is the zero Handle. No live queue ever occupies offset 0
// (the arena header lives there), so it doubles as "no queue".
const NullHandle Handle = 0
