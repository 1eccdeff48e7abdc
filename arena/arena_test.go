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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvarena/blockqueue/internal/layout"
)

func TestWrapRejectsWrongSize(t *testing.T) {
	assert.Panics(t, func() { Wrap(make([]byte, layout.BufferSize-1)) })
	assert.Panics(t, func() { Wrap(make([]byte, layout.BufferSize+1)) })
	assert.NotPanics(t, func() { Wrap(make([]byte, layout.BufferSize)) })
}

func TestInitializedAndInit(t *testing.T) {
	b := New()
	assert.False(t, b.Initialized())

	b.Init()
	assert.True(t, b.Initialized())
	assert.Equal(t, uint16(layout.FirstRecordOffset), b.LowestFreeQueueOffset())
	assert.Equal(t, uint16(layout.BufferSize-layout.BlockSize), b.HighestFreeBlockOffset())
	assert.Equal(t, uint16(0), b.HighestQueueOffset())
	assert.Equal(t, uint16(layout.LowestBlockSentinel), b.LowestBlockOffset())
}

func TestOutOfMemoryHandlerRunsBeforeBackstopPanic(t *testing.T) {
	b := New()
	b.Init()

	var called bool
	b.SetOutOfMemoryHandler(func() { called = true })

	// Force exhaustion directly on the header rather than allocating
	// 2040 bytes worth of blocks: HighestQueueOffset()+HeaderSize must
	// exceed HighestFreeBlockOffset().
	b.setHighestFreeBlockOffset(layout.FirstRecordOffset)
	b.setHighestQueueOffset(layout.FirstRecordOffset)

	assert.Panics(t, func() { b.RaiseOutOfMemory() })
	assert.True(t, called)
}

func TestIllegalOperationHandlerRunsBeforeBackstopPanic(t *testing.T) {
	b := New()
	b.Init()

	var called bool
	b.SetIllegalOperationHandler(func() { called = true })

	assert.Panics(t, func() { b.RaiseIllegalOperation() })
	assert.True(t, called)
}

func TestSetHandlerNilRestoresDefault(t *testing.T) {
	b := New()
	b.Init()

	b.SetOutOfMemoryHandler(func() {})
	b.SetOutOfMemoryHandler(nil)
	require.Panics(t, func() { b.RaiseOutOfMemory() })
}
