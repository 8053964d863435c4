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

package reporter

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/bufbuild/ion/source"
)

// TabstopWidth is the size we render all tabstops as.
const TabstopWidth int = 4

// Level represents the severity of a rendered diagnostic.
type Level int8

const (
	LevelError Level = 1 + iota
	LevelWarning
)

// String implements [fmt.Stringer].
func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	default:
		return fmt.Sprintf("reporter.Level(%d)", int(l))
	}
}

// Renderer renders diagnostics in a human-readable format, with the
// offending source line and a row of carets under the reported span.
type Renderer struct {
	// If set, diagnostics are rendered as a single line of the form
	// "file:line:col: level: message".
	Compact bool

	// Colorize, if not nil, is applied to the level label and the carets,
	// e.g. to add terminal colors.
	Colorize func(level Level, text string) string
}

// Render writes a rendering of err to w. file must be the file err's
// position refers to.
func (r Renderer) Render(w io.Writer, level Level, file *source.File, err ErrorWithPos) error {
	_, e := io.WriteString(w, r.RenderString(level, file, err))
	return e
}

// RenderString is like [Renderer.Render], but returns a string.
func (r Renderer) RenderString(level Level, file *source.File, err ErrorWithPos) string {
	label := r.colorize(level, level.String())
	msg := err.Error()
	if inner := errors.Unwrap(err); inner != nil {
		msg = inner.Error()
	}
	pos := err.GetPosition()

	if r.Compact {
		return fmt.Sprintf("%s: %s: %s\n", pos, label, msg)
	}

	var out strings.Builder
	fmt.Fprintf(&out, "%s: %s\n", label, msg)

	number := strconv.Itoa(pos.Line)
	gutter := strings.Repeat(" ", len(number))
	fmt.Fprintf(&out, "%s--> %s\n", gutter, pos)
	fmt.Fprintf(&out, "%s |\n", gutter)

	// Only the first line of a multi-line span is underlined.
	text := file.Line(pos.Line)
	lineStart := pos.Offset - len(prefixOf(file, pos))
	start := min(pos.Offset-lineStart, len(text))
	end := min(err.GetSpan().End-lineStart, len(text))
	end = max(end, start)

	before, column := renderText(0, text[:start])
	under, next := renderText(column, text[start:end])
	after, _ := renderText(next, text[end:])

	fmt.Fprintf(&out, "%s | %s%s%s\n", number, before, under, after)
	carets := strings.Repeat("^", max(1, next-column))
	fmt.Fprintf(&out, "%s | %s%s\n", gutter, strings.Repeat(" ", column), r.colorize(level, carets))
	return out.String()
}

func (r Renderer) colorize(level Level, text string) string {
	if r.Colorize == nil {
		return text
	}
	return r.Colorize(level, text)
}

// prefixOf returns the text of pos's line that comes before pos.
func prefixOf(file *source.File, pos source.Pos) string {
	text := file.Text()[:pos.Offset]
	if nl := strings.LastIndexByte(text, '\n'); nl != -1 {
		return text[nl+1:]
	}
	return text
}

// nonPrint defines whether or not a rune is considered "unprintable for the
// purposes of diagnostics", that is, whether it is a rune that the renderer
// will replace with <U+NNNN> when printing.
func nonPrint(r rune) bool {
	return !strings.ContainsRune(" \r\t\n", r) && !unicode.IsPrint(r)
}

// renderText renders text as if placed at the given column, expanding tabs
// and escaping unprintable runes. Returns the rendered text and the column
// after it.
func renderText(column int, text string) (string, int) {
	var out strings.Builder
	for text != "" {
		idx := strings.IndexFunc(text, func(r rune) bool { return r == '\t' || nonPrint(r) })
		if idx == -1 {
			out.WriteString(text)
			column += uniseg.StringWidth(text)
			break
		}

		chunk := text[:idx]
		out.WriteString(chunk)
		column += uniseg.StringWidth(chunk)

		r, n := utf8.DecodeRuneInString(text[idx:])
		text = text[idx+n:]
		if r == '\t' {
			tab := TabstopWidth - (column % TabstopWidth)
			out.WriteString(strings.Repeat(" ", tab))
			column += tab
			continue
		}

		escape := fmt.Sprintf("<U+%04X>", r)
		out.WriteString(escape)
		column += len(escape)
	}
	return out.String(), column
}
