// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package buffer_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/ion/internal/buffer"
)

func TestPush(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 2, 3, 7, 16, 100, 1000} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			t.Parallel()

			var b buffer.Buffer[int]
			for i := range n {
				b.Push(i * 3)
			}

			require.Equal(t, n, b.Len())
			assert.LessOrEqual(t, b.Len(), b.Cap())
			for i := range n {
				v, err := b.Get(i)
				require.NoError(t, err)
				assert.Equal(t, i*3, v)
			}

			var seen []int
			for i, v := range b.All() {
				assert.Equal(t, i*3, v)
				seen = append(seen, v)
			}
			assert.Len(t, seen, n)
		})
	}
}

func TestGrowth(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	var b buffer.Buffer[string]
	assert.Equal(0, b.Cap())

	var caps []int
	for i := range 16 {
		b.Push(fmt.Sprint(i))
		caps = append(caps, b.Cap())
	}
	assert.Equal([]int{
		1,
		3, 3,
		7, 7, 7, 7,
		15, 15, 15, 15, 15, 15, 15, 15,
		31,
	}, caps)

	// A large request jumps straight to the requested size.
	b.Grow(100)
	assert.Equal(116, b.Cap())
	assert.Equal(16, b.Len())

	// Asking for room that already exists does not reallocate.
	b.Grow(10)
	assert.Equal(116, b.Cap())
}

func TestAccess(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	var b buffer.Buffer[int]
	b.Push(10)
	b.Push(18)

	*b.At(1) = 19
	assert.Equal("[10 19]", b.String())

	_, err := b.Get(2)
	require.ErrorIs(t, err, buffer.ErrOutOfRange)
	_, err = b.Get(-1)
	require.ErrorIs(t, err, buffer.ErrOutOfRange)

	assert.Panics(func() { b.At(2) })
	assert.Panics(func() { b.At(-1) })
	assert.Panics(func() { b.Grow(-1) })
}

func TestFree(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	var b buffer.Buffer[int]
	for i := range 5 {
		b.Push(i)
	}
	b.Free()
	assert.Equal(0, b.Len())
	assert.Equal(0, b.Cap())
	assert.Equal("[]", b.String())

	b.Push(42)
	assert.Equal(1, b.Len())
	assert.Equal(42, *b.At(0))
}
