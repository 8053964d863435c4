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

// Package lexer converts source text into a stream of tokens, one token of
// lookahead at a time.
package lexer

import (
	"unicode/utf8"

	"github.com/bufbuild/ion/internal/intern"
	"github.com/bufbuild/ion/reporter"
	"github.com/bufbuild/ion/source"
	"github.com/bufbuild/ion/token"
)

// Lexer is the lexer state for a single source file: a cursor into the text,
// plus the most recently lexed token.
//
// Every call to [Lexer.Next] overwrites the current token, so callers must
// copy out whatever they need from it before advancing.
//
// Identifiers are interned into the table the lexer was created with, so
// identifier tokens from the same table can be compared by ID.
type Lexer struct {
	file    *source.File
	table   *intern.Table
	handler *reporter.Handler

	cursor int
	token  token.Token
}

// New creates a lexer over file and lexes the first token, which is then
// available from [Lexer.Token].
//
// If handler is nil, a handler that stops at the first error is used.
func New(file *source.File, table *intern.Table, handler *reporter.Handler) *Lexer {
	if handler == nil {
		handler = reporter.NewHandler(nil)
	}
	l := &Lexer{file: file, table: table, handler: handler}
	l.Next()
	return l
}

// Lex runs the lexer over the whole of file and returns every token it
// produces, ending with (and including) the [token.EOF] token.
func Lex(file *source.File, table *intern.Table, handler *reporter.Handler) []token.Token {
	l := New(file, table, handler)
	tokens := []token.Token{l.Token()}

	mp := l.mustProgress()
	for l.Token().Kind != token.EOF {
		mp.check()
		tokens = append(tokens, l.Next())
	}
	return tokens
}

// File returns the file this lexer is lexing.
func (l *Lexer) File() *source.File {
	return l.file
}

// Table returns the table identifiers are interned into.
func (l *Lexer) Table() *intern.Table {
	return l.table
}

// Handler returns the handler that diagnostics are reported to.
func (l *Lexer) Handler() *reporter.Handler {
	return l.handler
}

// Token returns the current token.
func (l *Lexer) Token() token.Token {
	return l.token
}

// Next advances to the next token and returns it.
//
// Once the end of the input is reached, Next returns a [token.EOF] token on
// every call. If the handler has already been told to stop by its reporter,
// the rest of the input is skipped.
func (l *Lexer) Next() token.Token {
	if l.handler.ReporterError() != nil {
		l.cursor = l.file.Len()
	}

	l.takeWhile(isSpace)

	start := l.cursor
	l.token = token.Token{Span: l.file.Span(start, start)}
	if l.done() {
		l.token.Kind = token.EOF
		return l.token
	}

	switch c := l.peek(); {
	case isDigit(c):
		l.lexInt()
	case isIdentStart(c):
		l.token.Kind = token.Ident
		l.token.Name = l.table.Intern(l.takeWhile(isIdentContinue))
	default:
		l.lexPunct()
	}

	l.token.Span = l.spanFrom(start)
	return l.token
}

// lexPunct lexes a single character as a punctuation token.
func (l *Lexer) lexPunct() {
	start := l.cursor
	r, n := utf8.DecodeRuneInString(l.rest())
	l.cursor += n

	l.token.Kind = token.Punct
	l.token.Char = r

	if r == 0 {
		l.handler.HandleWarningf(l.file, l.spanFrom(start),
			"NUL byte in input; it does not end the input and will be treated as punctuation")
	}
}

// rest returns the remaining unlexed text.
func (l *Lexer) rest() string {
	return l.file.Text()[l.cursor:]
}

// done returns whether or not we're done lexing.
func (l *Lexer) done() bool {
	return l.cursor >= l.file.Len()
}

// peek peeks the next byte. Must not be called if l.done().
func (l *Lexer) peek() byte {
	return l.file.Text()[l.cursor]
}

// takeWhile consumes bytes while they match the given function and returns
// the consumed text.
func (l *Lexer) takeWhile(f func(byte) bool) string {
	start := l.cursor
	for !l.done() && f(l.peek()) {
		l.cursor++
	}
	return l.file.Text()[start:l.cursor]
}

func (l *Lexer) spanFrom(start int) source.Span {
	return l.file.Span(start, l.cursor)
}
