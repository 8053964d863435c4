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

// Package buffer defines a growable contiguous array with an explicit growth
// policy.
package buffer

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// ErrOutOfRange is returned by [Buffer.Get] for indices outside of
// [0, Len()).
var ErrOutOfRange = errors.New("buffer: index out of range")

// Buffer is a growable array of T.
//
// Unlike an ordinary slice, the growth policy is fixed: whenever a buffer
// needs more room, its new capacity is max(2*cap+1, needed). Growing moves
// every element into a new backing array; pointers returned by [Buffer.At]
// before a growth refer to the old array and must not be used afterwards.
//
// A zero Buffer[T] is empty and ready to use. A Buffer must not be mutated
// from multiple goroutines concurrently.
type Buffer[T any] struct {
	// Invariant: len(data) <= cap(data), and cap(data) only ever changes in
	// grow (or Free, which resets it to zero).
	data []T
}

// Len returns the number of elements in the buffer.
func (b *Buffer[T]) Len() int {
	return len(b.data)
}

// Cap returns the number of elements the buffer can hold before it needs to
// grow.
func (b *Buffer[T]) Cap() int {
	return cap(b.data)
}

// Push appends value to the end of the buffer, growing it first if it is
// full.
func (b *Buffer[T]) Push(value T) {
	if len(b.data) == cap(b.data) {
		b.grow(len(b.data) + 1)
	}
	b.data = append(b.data, value)
}

// Grow ensures that at least n more elements can be pushed without another
// growth.
func (b *Buffer[T]) Grow(n int) {
	if n < 0 {
		panic(fmt.Sprintf("buffer: negative grow: %d", n))
	}
	if len(b.data)+n > cap(b.data) {
		b.grow(len(b.data) + n)
	}
}

// At returns a pointer to the element at index i.
//
// Panics if i is out of range; use [Buffer.Get] for a checked lookup.
func (b *Buffer[T]) At(i int) *T {
	if i < 0 || i >= len(b.data) {
		panic(fmt.Sprintf("buffer: index out of range: %d (len %d)", i, len(b.data)))
	}
	return &b.data[i]
}

// Get returns a copy of the element at index i.
//
// Returns an error wrapping [ErrOutOfRange] if i is out of range.
func (b *Buffer[T]) Get(i int) (T, error) {
	if i < 0 || i >= len(b.data) {
		var z T
		return z, fmt.Errorf("%w: %d (len %d)", ErrOutOfRange, i, len(b.data))
	}
	return b.data[i], nil
}

// All returns an iterator over the indices and elements of this buffer, in
// the order they were pushed.
func (b *Buffer[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range b.data {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Free releases the buffer's storage. The buffer is empty afterwards and may
// be reused.
func (b *Buffer[T]) Free() {
	b.data = nil
}

// String implements [fmt.Stringer].
func (b *Buffer[T]) String() string {
	var out strings.Builder
	out.WriteByte('[')
	for i, v := range b.data {
		if i != 0 {
			out.WriteByte(' ')
		}
		fmt.Fprint(&out, v)
	}
	out.WriteByte(']')
	return out.String()
}

// grow reallocates the backing array so that it holds at least needed
// elements.
func (b *Buffer[T]) grow(needed int) {
	// Do not rely on append's growth heuristics; the capacity sequence is
	// part of this type's contract.
	newCap := max(2*cap(b.data)+1, needed)
	data := make([]T, len(b.data), newCap)
	copy(data, b.data)
	b.data = data
}
