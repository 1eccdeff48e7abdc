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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInterleavedTwoQueues is scenario S1: two queues interleave
// enqueues, dequeues, and a destroy, and every dequeue must return the
// byte enqueued to that specific queue in FIFO order, unaffected by the
// other queue's activity.
func TestInterleavedTwoQueues(t *testing.T) {
	m := NewManager()

	q0 := m.CreateQueue()
	m.Enqueue(q0, 0)
	m.Enqueue(q0, 1)
	q1 := m.CreateQueue()
	m.Enqueue(q1, 3)
	m.Enqueue(q0, 2)
	m.Enqueue(q1, 4)

	assert.Equal(t, byte(0), m.Dequeue(q0))
	assert.Equal(t, byte(1), m.Dequeue(q0))

	m.Enqueue(q0, 5)
	m.Enqueue(q1, 6)

	assert.Equal(t, byte(2), m.Dequeue(q0))
	assert.Equal(t, byte(5), m.Dequeue(q0))
	m.DestroyQueue(q0)

	assert.Equal(t, byte(3), m.Dequeue(q1))
	assert.Equal(t, byte(4), m.Dequeue(q1))
	assert.Equal(t, byte(6), m.Dequeue(q1))
	m.DestroyQueue(q1)
}

// TestOutOfMemoryDoesNotCorruptEarlierQueues is scenario S4: creating
// queues without ever destroying one eventually exhausts the arena,
// firing the out-of-memory callback, without corrupting a queue created
// earlier in the run.
func TestOutOfMemoryDoesNotCorruptEarlierQueues(t *testing.T) {
	m := NewManager()

	first := m.CreateQueue()
	for i := byte(0); i < 5; i++ {
		m.Enqueue(first, i)
	}

	var fired bool
	m.SetOutOfMemoryHandler(func() { fired = true })

	assert.Panics(t, func() {
		for {
			m.CreateQueue()
		}
	})
	assert.True(t, fired)

	for i := byte(0); i < 5; i++ {
		assert.Equal(t, i, m.Dequeue(first))
	}
}

// TestAllocatorCursorRecovery is scenario S6: destroying a
// not-most-recent queue and creating a new one must reuse the
// destroyed queue's record slot, not extend past the highest live
// queue.
func TestAllocatorCursorRecovery(t *testing.T) {
	m := NewManager()

	q0 := m.CreateQueue()
	q1 := m.CreateQueue()
	q2 := m.CreateQueue()
	require.True(t, q0 < q1 && q1 < q2)

	m.DestroyQueue(q1)

	q3 := m.CreateQueue()
	assert.Equal(t, q1, q3, "the new queue must reuse q1's former slot, not extend past q2")
}
