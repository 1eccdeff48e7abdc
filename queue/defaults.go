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

// defaultManager is a package-level Manager over its own arena, so
// callers who only need one arena can use the free functions below
// without constructing a Manager themselves — the same shape as
// concurrency/gopool's defaultGoPool backing the package-level Go/CtxGo
// helpers in the teacher repo this module is built from.
var defaultManager = NewManager()

// CreateQueue allocates a new queue in the package-level default
// arena. See (*Manager).CreateQueue.
func CreateQueue() Handle { return defaultManager.CreateQueue() }

// DestroyQueue frees a queue in the package-level default arena. See
// (*Manager).DestroyQueue.
func DestroyQueue(h Handle) { defaultManager.DestroyQueue(h) }

// Enqueue appends a byte to a queue in the package-level default
// arena. See (*Manager).Enqueue.
func Enqueue(h Handle, b byte) { defaultManager.Enqueue(h, b) }

// Dequeue removes a byte from a queue in the package-level default
// arena. See (*Manager).Dequeue.
func Dequeue(h Handle) byte { return defaultManager.Dequeue(h) }

// SetOutOfMemoryHandler installs the out-of-memory handler for the
// package-level default arena.
func SetOutOfMemoryHandler(f func()) { defaultManager.SetOutOfMemoryHandler(f) }

// SetIllegalOperationHandler installs the illegal-operation handler
// for the package-level default arena.
func SetIllegalOperationHandler(f func()) { defaultManager.SetIllegalOperationHandler(f) }
