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

// Package intern provides an interning table abstraction, used for giving
// identifiers cheaply comparable identities.
package intern

import (
	"fmt"
	"iter"
	"strings"
	"sync"

	"github.com/bufbuild/ion/internal/buffer"
)

// ID is an interned string in a particular [Table].
//
// IDs can be compared very cheaply: two IDs from the same table are equal if
// and only if the strings they were interned from are equal. The zero value
// of ID always corresponds to the empty string.
type ID int32

// String implements [fmt.Stringer].
//
// Note that this will not convert the ID back into a string; to do that, you
// must call [Table.Value].
func (id ID) String() string {
	if id == 0 {
		return `intern.ID("")`
	}
	return fmt.Sprintf("intern.ID(%d)", int(id))
}

// GoString implements [fmt.GoStringer].
func (id ID) GoString() string {
	return id.String()
}

// Record is a single interned string, as stored in a [Table].
type Record struct {
	ID   ID
	Len  int
	Text string
}

// Table is an interning table.
//
// A table can be used to convert strings into [ID]s and back again. Every
// distinct non-empty string interned into a table is stored exactly once, as
// a [Record], in insertion order.
//
// The zero value of Table is empty and ready to use. Strings interned into a
// table live as long as the table does.
type Table struct {
	mu      sync.RWMutex
	index   map[string]ID
	records buffer.Buffer[Record]
}

// Intern interns the given string into this table.
//
// This function may be called by multiple goroutines concurrently.
func (t *Table) Intern(s string) ID {
	// Fast path for strings that have already been interned.
	if id, ok := t.Query(s); ok {
		return id
	}

	return t.internSlow(s)
}

// InternBytes interns the given byte string into this table.
//
// This function may be called by multiple goroutines concurrently, but bytes
// must not be modified until this function returns.
func (t *Table) InternBytes(bytes []byte) ID {
	t.mu.RLock()
	// The compiler does not allocate for a map lookup keyed by string(bytes).
	id, ok := t.index[string(bytes)]
	t.mu.RUnlock()
	if ok || len(bytes) == 0 {
		return id
	}

	return t.internSlow(string(bytes))
}

// Query will query whether s has already been interned.
//
// If s has never been interned, returns false. The empty string is treated
// as always being interned.
func (t *Table) Query(s string) (ID, bool) {
	if s == "" {
		return 0, true
	}

	t.mu.RLock()
	id, ok := t.index[s]
	t.mu.RUnlock()

	return id, ok
}

func (t *Table) internSlow(s string) ID {
	// Tables are long-lived compared to the source text that identifiers are
	// sliced out of. Avoid holding onto the whole source by cloning.
	s = strings.Clone(s)

	t.mu.Lock()
	defer t.mu.Unlock()

	// Check if someone raced us to intern this string.
	if id, ok := t.index[s]; ok {
		return id
	}

	// The first ID will have value 1. ID 0 is reserved for "".
	id := ID(t.records.Len() + 1)
	if id < 0 {
		panic(fmt.Sprintf("internal/intern: %d interning IDs exhausted", t.records.Len()))
	}

	t.records.Push(Record{ID: id, Len: len(s), Text: s})
	if t.index == nil {
		t.index = make(map[string]ID)
	}
	t.index[s] = id

	return id
}

// Value converts an [ID] back into its corresponding string.
//
// If id was created by a different [Table], the results are unspecified,
// including potentially a panic.
//
// This function may be called by multiple goroutines concurrently.
func (t *Table) Value(id ID) string {
	if id == 0 {
		return ""
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.records.At(int(id) - 1).Text
}

// Len returns the number of strings stored in this table. The empty string is
// never stored, so it is not counted.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.records.Len()
}

// All returns an iterator over every record in this table, in the order the
// strings were first interned.
//
// The table must not be modified while iterating.
func (t *Table) All() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		t.mu.RLock()
		defer t.mu.RUnlock()
		for _, r := range t.records.All() {
			if !yield(r) {
				return
			}
		}
	}
}

// Set is a set of intern IDs.
type Set map[ID]struct{}

// AddID adds an ID to s, and returns whether it was added.
func (s Set) AddID(id ID) (inserted bool) {
	if _, ok := s[id]; ok {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Add adds a string to s, and returns whether it was added.
func (s Set) Add(table *Table, key string) (inserted bool) {
	return s.AddID(table.Intern(key))
}

// Map is a map keyed by intern IDs.
type Map[T any] map[ID]T

// AddID adds an ID to m, and returns whether it was added. If it was not
// added, returns the value already mapped.
func (m Map[T]) AddID(id ID, v T) (mapped T, inserted bool) {
	if prev, ok := m[id]; ok {
		return prev, false
	}
	m[id] = v
	return v, true
}

// Add adds a string to m, and returns whether it was added.
func (m Map[T]) Add(table *Table, key string, v T) (mapped T, inserted bool) {
	return m.AddID(table.Intern(key), v)
}
