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

// Package source provides in-memory source files and positions within them.
package source

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// File is an in-memory source buffer, plus the book-keeping needed to turn
// byte offsets into line and column numbers.
//
// Files are immutable once created. A nil *File behaves like an empty file
// with the name "".
type File struct {
	name, text string

	once sync.Once
	// The offset at which each line starts. lines[0] is always zero.
	lines []int
}

// NewFile constructs a new source file.
func NewFile(name, text string) *File {
	return &File{name: name, text: text}
}

// Name returns this file's name. It need not be a real path.
func (f *File) Name() string {
	if f == nil {
		return ""
	}
	return f.name
}

// Text returns this file's textual contents.
func (f *File) Text() string {
	if f == nil {
		return ""
	}
	return f.text
}

// Len returns the length of this file, in bytes.
func (f *File) Len() int {
	return len(f.Text())
}

// Span is a shorthand for creating a new Span, checking that it lies within
// this file.
func (f *File) Span(start, end int) Span {
	if start < 0 || end < start || end > f.Len() {
		panic(fmt.Sprintf("source: invalid span [%d:%d] in file of length %d", start, end, f.Len()))
	}
	return Span{Start: start, End: end}
}

// Pos computes the full position information for the given byte offset.
//
// Columns are 1-indexed and count bytes, except that tabs advance to the next
// multiple-of-eight stop.
func (f *File) Pos(offset int) Pos {
	if offset < 0 || offset > f.Len() {
		panic(fmt.Sprintf("source: invalid offset %d in file of length %d", offset, f.Len()))
	}

	line := f.LineByOffset(offset)
	col := 0
	for _, b := range []byte(f.Text()[f.lineIndex()[line-1]:offset]) {
		if b == '\t' {
			col += 8 - (col % 8)
		} else {
			col++
		}
	}

	return Pos{
		Filename: f.Name(),
		Offset:   offset,
		Line:     line,
		Col:      col + 1,
	}
}

// LineByOffset returns the 1-indexed line containing the given offset.
//
// This operation is O(log n).
func (f *File) LineByOffset(offset int) int {
	lines := f.lineIndex()
	line, exact := slices.BinarySearch(lines, offset)
	if !exact {
		line--
	}
	return line + 1
}

// Line returns the text of the given 1-indexed line, without its trailing
// newline.
func (f *File) Line(line int) string {
	lines := f.lineIndex()
	if line < 1 || line > len(lines) {
		panic(fmt.Sprintf("source: line %d out of range in file with %d lines", line, len(lines)))
	}

	start, end := lines[line-1], f.Len()
	if line < len(lines) {
		end = lines[line]
	}
	return strings.TrimRight(f.Text()[start:end], "\r\n")
}

// Lines returns the number of lines in this file. An empty file has one
// (empty) line.
func (f *File) Lines() int {
	return len(f.lineIndex())
}

func (f *File) lineIndex() []int {
	if f == nil {
		return []int{0}
	}

	f.once.Do(func() {
		f.lines = append(f.lines, 0)
		for i := range len(f.text) {
			if f.text[i] == '\n' {
				f.lines = append(f.lines, i+1)
			}
		}
	})
	return f.lines
}

// Span is a range of bytes within a [File].
type Span struct {
	Start, End int
}

// Len returns the length of this span, in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Text returns the text this span covers in f.
func (s Span) Text(f *File) string {
	return f.Text()[s.Start:s.End]
}

// String implements [fmt.Stringer].
func (s Span) String() string {
	return fmt.Sprintf("[%d:%d]", s.Start, s.End)
}

// Pos is a fully resolved location in a [File].
type Pos struct {
	Filename  string
	Line, Col int
	Offset    int
}

// String implements [fmt.Stringer].
func (pos Pos) String() string {
	if pos.Line <= 0 || pos.Col <= 0 {
		return pos.Filename
	}
	return fmt.Sprintf("%s:%d:%d", pos.Filename, pos.Line, pos.Col)
}
